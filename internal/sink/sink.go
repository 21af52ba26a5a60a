package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"chemviz/internal/config"
)

// Saver stores a named blob, typically a downloaded report.
type Saver interface {
	Save(ctx context.Context, data []byte, filename string) error
}

// New builds the saver selected by conf.Sink.
func New(conf config.ReportConfig, logger *logrus.Entry) (Saver, error) {
	switch conf.Sink {
	case config.SinkDir, "":
		return &Dir{Path: conf.Dir, logger: logger}, nil
	case config.SinkS3:
		return NewMinio(conf.S3, logger)
	default:
		return nil, fmt.Errorf("unknown report sink %q", conf.Sink)
	}
}

// Dir writes files into a local directory, creating it when missing.
type Dir struct {
	Path   string
	logger *logrus.Entry
}

func NewDir(path string, logger *logrus.Entry) *Dir {
	return &Dir{Path: path, logger: logger}
}

func (d *Dir) Save(_ context.Context, data []byte, filename string) error {
	name := filepath.Base(filename)
	if name == "." || name == string(filepath.Separator) {
		return fmt.Errorf("invalid file name %q", filename)
	}
	if err := os.MkdirAll(d.Path, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	target := filepath.Join(d.Path, name)
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	if d.logger != nil {
		d.logger.Infof("saved %s", target)
	}
	return nil
}

// ContentType guesses a MIME type from the file extension.
func ContentType(filename string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	switch ext {
	case "pdf":
		return "application/pdf"
	case "png":
		return "image/png"
	case "csv":
		return "text/csv"
	case "xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case "json":
		return "application/json"
	case "txt":
		return "text/plain"
	}
	return "application/octet-stream"
}
