package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (s *Server) SetUpRouter() *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = maxUploadSize
	router.Use(RequestId())
	router.Use(Logger())
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(newTemplate())

	router.GET("/healthz", s.handleHealthz)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))

	router.GET("/", s.handleIndex)
	router.POST("/analyze", s.handleAnalyze)
	router.POST("/history/refresh", s.handleRefreshHistory)
	router.POST("/reset", s.handleReset)
	router.GET("/report", s.handleReport)
	router.GET("/export.xlsx", s.handleExportWorkbook)

	charts := router.Group("/charts")
	charts.GET("/pie.png", s.handleChart(chartPie))
	charts.GET("/bar.png", s.handleChart(chartBar))

	api := router.Group("/api")
	api.GET("/state", s.handleGetState)

	return router
}

// handleHealthz liveness probe
// @Summary Health check
// @Tags api
// @Produce json
// @Success 200 {object} map[string]string
// @Router /healthz [get]
func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "ok",
	})
}
