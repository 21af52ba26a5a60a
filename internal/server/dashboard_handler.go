package server

import (
	"bytes"
	"context"
	goerrors "errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"chemviz/internal/chart"
	"chemviz/internal/dashboard"
	"chemviz/internal/export"
	"chemviz/internal/sink"
	"chemviz/internal/view"
	"chemviz/pkg/log"
)

const (
	chartPie = "pie"
	chartBar = "bar"

	workbookFilename = "chemviz.xlsx"
)

func (s *Server) redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/")
}

// handleIndex renders the dashboard page.
func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, dashboardTemplate, view.NewPage(s.dash.State()))
}

// handleAnalyze analyzes the file posted with this request. A form without a
// file clears the selection and uploads nothing.
// @Summary Analyze a CSV file
// @Description Uploads the posted CSV to the analysis service and redirects to the dashboard.
// @Tags dashboard
// @Accept multipart/form-data
// @Param file formData file false "CSV file"
// @Success 303 "Redirect to the dashboard"
// @Failure 400 {object} ErrorResponse "Unreadable form"
// @Failure 413 {object} ErrorResponse "File too large"
// @Router /analyze [post]
func (s *Server) handleAnalyze(c *gin.Context) {
	logger := log.GetLogger(c.Request.Context())

	file, header, err := c.Request.FormFile("file")
	if err != nil && !goerrors.Is(err, http.ErrMissingFile) {
		s.writeError(c, http.StatusBadRequest, err)
		return
	}
	if err != nil {
		// nothing posted: forget any earlier selection
		s.dash.SelectFile(nil)
	} else {
		defer file.Close()
		if header.Size > maxUploadSize {
			s.writeError(c, http.StatusRequestEntityTooLarge, fmt.Errorf("file too large, max %d bytes", maxUploadSize))
			return
		}
		// multipart temp files do not outlive the request
		content, err := io.ReadAll(file)
		if err != nil {
			s.writeError(c, http.StatusBadRequest, err)
			return
		}
		s.dash.SelectFile(&dashboard.File{
			Name: header.Filename,
			Size: int64(len(content)),
			Open: func() (io.ReadCloser, error) {
				return io.NopCloser(bytes.NewReader(content)), nil
			},
		})
	}

	err = s.dash.Analyze(c.Request.Context())
	switch {
	case err == nil:
	case goerrors.Is(err, dashboard.ErrNoFile):
		logger.Debug("analyze without a selected file")
	case goerrors.Is(err, dashboard.ErrSuperseded):
		logger.Info("analysis superseded by a newer upload")
	default:
		logger.WithError(err).Warn("analysis failed")
	}
	s.redirectHome(c)
}

// handleRefreshHistory fetches the upload history again.
// @Summary Refresh upload history
// @Tags dashboard
// @Success 303 "Redirect to the dashboard"
// @Router /history/refresh [post]
func (s *Server) handleRefreshHistory(c *gin.Context) {
	if err := s.dash.RefreshHistory(c.Request.Context()); err != nil {
		log.GetLogger(c.Request.Context()).WithError(err).Warn("refresh history failed")
	}
	s.redirectHome(c)
}

// handleReset clears the dashboard and loads the history again, as a fresh
// page would.
// @Summary Clear the dashboard
// @Tags dashboard
// @Success 303 "Redirect to the dashboard"
// @Router /reset [post]
func (s *Server) handleReset(c *gin.Context) {
	s.dash.Reset()
	s.dash.Mount(c.Request.Context())
	s.redirectHome(c)
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

// attachmentSaver hands a report to the browser as a download.
type attachmentSaver struct {
	c *gin.Context
}

func (a attachmentSaver) Save(_ context.Context, data []byte, filename string) error {
	a.c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	a.c.Data(http.StatusOK, sink.ContentType(filename), data)
	return nil
}

// handleReport downloads the PDF report of the displayed analysis. Browsers
// are sent back to the dashboard on failure, where the error is shown.
// @Summary Download the PDF report
// @Tags dashboard
// @Produce application/pdf
// @Success 200 {file} file "report_{id}.pdf"
// @Failure 409 {object} ErrorResponse "No analysis loaded"
// @Failure 502 {object} ErrorResponse "Analysis service failed"
// @Router /report [get]
func (s *Server) handleReport(c *gin.Context) {
	err := s.dash.DownloadReport(c.Request.Context(), attachmentSaver{c: c})
	if err == nil {
		return
	}
	if !wantsJSON(c) {
		s.redirectHome(c)
		return
	}
	if goerrors.Is(err, dashboard.ErrNoAnalysis) {
		s.writeError(c, http.StatusConflict, err)
		return
	}
	s.writeError(c, http.StatusBadGateway, err)
}

// handleChart renders the type distribution as PNG.
// @Summary Distribution chart
// @Tags charts
// @Produce image/png
// @Success 200 {file} file "PNG image"
// @Failure 404 {object} ErrorResponse "No analysis or empty distribution"
// @Router /charts/pie.png [get]
// @Router /charts/bar.png [get]
func (s *Server) handleChart(kind string) gin.HandlerFunc {
	render := chart.RenderPie
	if kind == chartBar {
		render = chart.RenderBar
	}
	return func(c *gin.Context) {
		st := s.dash.State()
		if st.Analysis == nil {
			s.writeError(c, http.StatusNotFound, dashboard.ErrNoAnalysis)
			return
		}
		var buf bytes.Buffer
		err := render(&buf, chart.FromDistribution(st.Analysis.TypeDistribution))
		if goerrors.Is(err, chart.ErrNoData) {
			s.writeError(c, http.StatusNotFound, err)
			return
		} else if err != nil {
			s.writeError(c, http.StatusInternalServerError, err)
			return
		}
		c.Header("Cache-Control", "no-store")
		c.Data(http.StatusOK, "image/png", buf.Bytes())
	}
}

// handleExportWorkbook downloads the current analysis and history as XLSX.
// @Summary Export workbook
// @Tags dashboard
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success 200 {file} file "chemviz.xlsx"
// @Failure 500 {object} ErrorResponse "Workbook could not be built"
// @Router /export.xlsx [get]
func (s *Server) handleExportWorkbook(c *gin.Context) {
	st := s.dash.State()
	var buf bytes.Buffer
	if err := export.Write(&buf, st.Analysis, st.History); err != nil {
		s.writeError(c, http.StatusInternalServerError, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+workbookFilename)
	c.Data(http.StatusOK, export.ContentType, buf.Bytes())
}

// handleGetState returns a snapshot of the dashboard state.
// @Summary Dashboard state
// @Tags api
// @Produce json
// @Success 200 {object} dashboard.State
// @Router /api/state [get]
func (s *Server) handleGetState(c *gin.Context) {
	c.JSON(http.StatusOK, s.dash.State())
}
