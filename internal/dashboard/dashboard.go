package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"chemviz/internal/backend"
	"chemviz/internal/dao"
)

var (
	ErrNoFile     = errors.New("no file selected")
	ErrNoAnalysis = errors.New("no analysis loaded")
	// ErrSuperseded is returned by a request whose response arrived after a
	// newer request of the same kind started, or after Reset.
	ErrSuperseded = errors.New("superseded by a newer request")
)

// Backend is the analysis service the dashboard drives.
type Backend interface {
	Upload(ctx context.Context, filename string, content io.Reader) (*dao.AnalysisResult, error)
	History(ctx context.Context) ([]dao.HistoryRecord, error)
	Report(ctx context.Context, id int64) ([]byte, error)
}

// Saver persists a downloaded report under filename.
type Saver interface {
	Save(ctx context.Context, data []byte, filename string) error
}

// Notifier is told about every analysis applied to the view.
type Notifier interface {
	NotifyAnalysis(ctx context.Context, event *dao.AnalysisEvent) error
}

// File is a user selection waiting to be analyzed.
type File struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}

// LocalFile selects a file on disk.
func LocalFile(path string) (*File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory", path)
	}
	return &File{
		Name: filepath.Base(path),
		Size: info.Size(),
		Open: func() (io.ReadCloser, error) {
			return os.Open(path)
		},
	}, nil
}

// FileInfo is the part of a selection exposed in State.
type FileInfo struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
}

// State is a point-in-time copy of the view state.
type State struct {
	File     *FileInfo           `json:"file,omitempty"`
	Analysis *dao.AnalysisResult `json:"analysis,omitempty"`
	History  []dao.HistoryRecord `json:"history"`
	Loading  bool                `json:"loading"`
	Error    string              `json:"error,omitempty"`
}

// CanExport reports whether a report download may be requested.
func (s State) CanExport() bool {
	return s.Analysis != nil && s.Analysis.Id != 0
}

// Dashboard owns the view state of one dashboard instance and runs the
// upload, history and export flows against a Backend. Methods may be called
// from multiple goroutines; the lock is never held across backend calls.
type Dashboard struct {
	backend  Backend
	notifier Notifier
	logger   *logrus.Entry

	mu         sync.Mutex
	file       *File
	analysis   *dao.AnalysisResult
	history    []dao.HistoryRecord
	loading    bool
	errMsg     string
	uploadGen  uint64
	historyGen uint64
}

func New(backend Backend, notifier Notifier, logger *logrus.Entry) *Dashboard {
	return &Dashboard{
		backend:  backend,
		notifier: notifier,
		logger:   logger,
		history:  []dao.HistoryRecord{},
	}
}

// Mount loads the initial history. Failures are logged and leave the
// history empty.
func (d *Dashboard) Mount(ctx context.Context) {
	if err := d.RefreshHistory(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		d.logger.WithError(err).Warn("initial history fetch failed")
	}
}

// Reset drops all view state. Responses of requests still in flight are
// discarded when they arrive.
func (d *Dashboard) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.file = nil
	d.analysis = nil
	d.history = []dao.HistoryRecord{}
	d.loading = false
	d.errMsg = ""
	d.uploadGen++
	d.historyGen++
}

// SelectFile replaces the current selection. A nil file clears it.
func (d *Dashboard) SelectFile(f *File) {
	if f != nil && !strings.EqualFold(filepath.Ext(f.Name), ".csv") {
		d.logger.Warnf("selected file %s does not look like a CSV", f.Name)
	}
	d.mu.Lock()
	d.file = f
	d.mu.Unlock()
}

func (d *Dashboard) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := State{
		Analysis: d.analysis,
		History:  append([]dao.HistoryRecord(nil), d.history...),
		Loading:  d.loading,
		Error:    d.errMsg,
	}
	if s.History == nil {
		s.History = []dao.HistoryRecord{}
	}
	if d.file != nil {
		s.File = &FileInfo{Name: d.file.Name, Size: d.file.Size}
	}
	return s
}

// Analyze uploads the selected file. Without a selection it does nothing and
// returns ErrNoFile. On success the analysis is replaced and the history is
// fetched again; on failure the error message is set and the previous
// analysis stays in place.
func (d *Dashboard) Analyze(ctx context.Context) error {
	d.mu.Lock()
	file := d.file
	if file == nil {
		d.mu.Unlock()
		return ErrNoFile
	}
	d.uploadGen++
	gen := d.uploadGen
	d.loading = true
	d.errMsg = ""
	d.mu.Unlock()

	logger := d.logger.WithFields(logrus.Fields{"file": file.Name, "gen": gen})
	logger.Info("uploading")

	result, err := d.upload(ctx, file)

	d.mu.Lock()
	if gen != d.uploadGen {
		d.mu.Unlock()
		logger.Debug("discarding stale upload response")
		return ErrSuperseded
	}
	d.loading = false
	if err != nil {
		d.errMsg = "Upload failed: " + reason(err)
		d.mu.Unlock()
		logger.WithError(err).Error("upload failed")
		return err
	}
	d.analysis = result
	d.mu.Unlock()

	logger.WithField("id", result.Id).Info("analysis loaded")
	d.notify(ctx, file.Name, result)

	if err := d.RefreshHistory(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		logger.WithError(err).Warn("history refresh after upload failed")
	}
	return nil
}

func (d *Dashboard) upload(ctx context.Context, file *File) (*dao.AnalysisResult, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", file.Name, err)
	}
	defer rc.Close()
	return d.backend.Upload(ctx, file.Name, rc)
}

func (d *Dashboard) notify(ctx context.Context, file string, result *dao.AnalysisResult) {
	if d.notifier == nil {
		return
	}
	event := &dao.AnalysisEvent{
		Id:               result.Id,
		File:             file,
		Summary:          result.Summary,
		TypeDistribution: result.TypeDistribution,
		AnalyzedAt:       time.Now().UTC().Format(time.RFC3339),
	}
	if err := d.notifier.NotifyAnalysis(ctx, event); err != nil {
		d.logger.WithError(err).Warnf("notify analysis %d failed", result.Id)
	}
}

// RefreshHistory fetches the latest upload records. On failure the previous
// history is kept and the error is only logged and returned.
func (d *Dashboard) RefreshHistory(ctx context.Context) error {
	d.mu.Lock()
	d.historyGen++
	gen := d.historyGen
	d.mu.Unlock()

	records, err := d.backend.History(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.historyGen {
		return ErrSuperseded
	}
	if err != nil {
		d.logger.WithError(err).Warn("failed to fetch history")
		return err
	}
	if records == nil {
		records = []dao.HistoryRecord{}
	}
	d.history = records
	return nil
}

// ReportFilename is the name a report of analysis id is saved under.
func ReportFilename(id int64) string {
	return fmt.Sprintf("report_%d.pdf", id)
}

// DownloadReport fetches the report of the displayed analysis and hands it to
// saver. Without an analysis it returns ErrNoAnalysis and makes no request.
// Failures are surfaced through the error message like upload failures.
func (d *Dashboard) DownloadReport(ctx context.Context, saver Saver) error {
	d.mu.Lock()
	analysis := d.analysis
	if analysis == nil || analysis.Id == 0 {
		d.mu.Unlock()
		return ErrNoAnalysis
	}
	d.errMsg = ""
	d.mu.Unlock()

	id := analysis.Id
	filename := ReportFilename(id)
	logger := d.logger.WithField("id", id)

	data, err := d.backend.Report(ctx, id)
	if err == nil {
		err = saver.Save(ctx, data, filename)
	}
	if err != nil {
		logger.WithError(err).Error("report download failed")
		d.mu.Lock()
		d.errMsg = "Report download failed: " + reason(err)
		d.mu.Unlock()
		return err
	}
	logger.Infof("report saved as %s", filename)
	return nil
}

func reason(err error) string {
	var apiErr *backend.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
