package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestLoadConfig_EmptyPathUsesDefaults(t *testing.T) {
	conf, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if conf.Backend.BaseURL != "http://127.0.0.1:8000/api/" {
		t.Fatalf("unexpected baseURL: %s", conf.Backend.BaseURL)
	}
	if conf.Report.Sink != SinkDir {
		t.Fatalf("unexpected sink: %s", conf.Report.Sink)
	}
	if conf.Backend.TimeoutDuration().Seconds() != 30 {
		t.Fatalf("unexpected timeout: %v", conf.Backend.TimeoutDuration())
	}
}

func TestLoadConfig_YAMLOverridesDefaults(t *testing.T) {
	p := writeFile(t, "chemviz.yaml", `
backend:
  baseURL: http://backend.local:9000/api/
  username: admin
  password: pw
view:
  addr: 0.0.0.0:9999
report:
  sink: s3
  s3:
    bucket: reports
    endpoint: minio.local:9000
`)
	conf, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if conf.Backend.BaseURL != "http://backend.local:9000/api/" || conf.Backend.Username != "admin" {
		t.Fatalf("backend not loaded: %+v", conf.Backend)
	}
	if conf.View.Addr != "0.0.0.0:9999" {
		t.Fatalf("unexpected addr: %s", conf.View.Addr)
	}
	if conf.Report.Sink != SinkS3 || conf.Report.S3.Bucket != "reports" {
		t.Fatalf("report not loaded: %+v", conf.Report)
	}
	// untouched defaults survive
	if conf.Backend.Timeout != 30 || conf.Report.S3.Region != "us-east-1" {
		t.Fatalf("defaults lost: %+v", conf)
	}
}

func TestLoadConfig_TOML(t *testing.T) {
	p := writeFile(t, "chemviz.toml", `
[backend]
baseURL = "https://analysis.example.com/api/"
timeout = 5

[events]
enabled = true
nsqdAddr = "nsqd:4150"
topic = "uploads"
`)
	conf, err := LoadConfig(p)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if conf.Backend.BaseURL != "https://analysis.example.com/api/" || conf.Backend.Timeout != 5 {
		t.Fatalf("backend not loaded: %+v", conf.Backend)
	}
	if !conf.Events.Enabled || conf.Events.Topic != "uploads" {
		t.Fatalf("events not loaded: %+v", conf.Events)
	}
}

func TestLoadConfig_PasswordFromEnv(t *testing.T) {
	t.Setenv(envBackendPassword, "from-env")
	conf, err := LoadConfig("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if conf.Backend.Password != "from-env" {
		t.Fatalf("unexpected password: %q", conf.Backend.Password)
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad url", "backend:\n  baseURL: not a url\n"},
		{"bad sink", "report:\n  sink: ftp\n"},
		{"negative timeout", "backend:\n  timeout: -1\n"},
		{"events without topic", "events:\n  enabled: true\n  topic: \"\"\n"},
		{"s3 without bucket", "report:\n  sink: s3\n  s3:\n    bucket: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeFile(t, "c.yaml", tt.content)
			if _, err := LoadConfig(p); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "absent.yaml") {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestSchema_UsesYAMLKeys(t *testing.T) {
	data, err := json.Marshal(Schema())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, key := range []string{`"baseURL"`, `"nsqdAddr"`, `"secretAccessKey"`} {
		if !strings.Contains(string(data), key) {
			t.Errorf("schema missing %s", key)
		}
	}
}

func TestRedacted(t *testing.T) {
	conf := DefaultConfig()
	conf.Backend.Password = "pw"
	conf.Report.S3.SecretAccessKey = "sk"
	r := conf.Redacted()
	if r.Backend.Password == "pw" || r.Report.S3.SecretAccessKey == "sk" {
		t.Fatalf("secrets not redacted: %+v", r)
	}
	if conf.Backend.Password != "pw" {
		t.Fatalf("original mutated")
	}
}
