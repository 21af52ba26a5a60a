package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

const (
	SinkDir = "dir"
	SinkS3  = "s3"

	envBackendPassword = "CHEMVIZ_BACKEND_PASSWORD"
)

type BackendConfig struct {
	BaseURL            string `yaml:"baseURL" toml:"baseURL" json:"baseURL" validate:"required,url"`
	Username           string `yaml:"username" toml:"username" json:"username,omitempty"`
	Password           string `yaml:"password" toml:"password" json:"password,omitempty"`
	Timeout            int    `yaml:"timeout" toml:"timeout" json:"timeout" validate:"gte=0" jsonschema:"description=Request timeout in seconds (0 disables it)"`
	InsecureSkipVerify bool   `yaml:"insecureSkipVerify" toml:"insecureSkipVerify" json:"insecureSkipVerify,omitempty"`
}

func (b BackendConfig) TimeoutDuration() time.Duration {
	return time.Duration(b.Timeout) * time.Second
}

type ViewConfig struct {
	Addr        string `yaml:"addr" toml:"addr" json:"addr" validate:"required,hostname_port"`
	OpenBrowser bool   `yaml:"openBrowser" toml:"openBrowser" json:"openBrowser,omitempty"`
	Pprof       bool   `yaml:"pprof" toml:"pprof" json:"pprof,omitempty"`
	SSLCert     string `yaml:"sslCert" toml:"sslCert" json:"sslCert,omitempty"`
	SSLKey      string `yaml:"sslKey" toml:"sslKey" json:"sslKey,omitempty"`
}

type S3Config struct {
	Bucket          string `yaml:"bucket" toml:"bucket" json:"bucket"`
	Endpoint        string `yaml:"endpoint" toml:"endpoint" json:"endpoint"`
	AccessKeyID     string `yaml:"accessKeyID" toml:"accessKeyID" json:"accessKeyID,omitempty"`
	SecretAccessKey string `yaml:"secretAccessKey" toml:"secretAccessKey" json:"secretAccessKey,omitempty"`
	UseSSL          bool   `yaml:"useSSL" toml:"useSSL" json:"useSSL,omitempty"`
	Region          string `yaml:"region" toml:"region" json:"region,omitempty"`
	Prefix          string `yaml:"prefix" toml:"prefix" json:"prefix,omitempty"`
}

func (s3 *S3Config) UrlPrefix() string {
	if s3.UseSSL {
		return fmt.Sprintf("https://%s/%s", s3.Endpoint, s3.Bucket)
	}
	return fmt.Sprintf("http://%s/%s", s3.Endpoint, s3.Bucket)
}

type ReportConfig struct {
	Sink string   `yaml:"sink" toml:"sink" json:"sink" validate:"oneof=dir s3" jsonschema:"enum=dir,enum=s3"`
	Dir  string   `yaml:"dir" toml:"dir" json:"dir" validate:"required_if=Sink dir"`
	S3   S3Config `yaml:"s3" toml:"s3" json:"s3"`
}

type NSQConfig struct {
	Enabled  bool   `yaml:"enabled" toml:"enabled" json:"enabled"`
	NSQDAddr string `yaml:"nsqdAddr" toml:"nsqdAddr" json:"nsqdAddr" validate:"required_if=Enabled true"`
	Topic    string `yaml:"topic" toml:"topic" json:"topic" validate:"required_if=Enabled true"`
	Channel  string `yaml:"channel" toml:"channel" json:"channel,omitempty" jsonschema:"description=Channel used by chemviz events"`
}

type Config struct {
	Backend BackendConfig `yaml:"backend" toml:"backend" json:"backend"`
	View    ViewConfig    `yaml:"view" toml:"view" json:"view"`
	Report  ReportConfig  `yaml:"report" toml:"report" json:"report"`
	Events  NSQConfig     `yaml:"events" toml:"events" json:"events"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://127.0.0.1:8000/api/",
			Timeout: 30,
		},
		View: ViewConfig{
			Addr: "127.0.0.1:8090",
		},
		Report: ReportConfig{
			Sink: SinkDir,
			Dir:  "./reports",
			S3: S3Config{
				Bucket:   "chemviz",
				Endpoint: "127.0.0.1:9000",
				UseSSL:   false,
				Region:   "us-east-1",
				Prefix:   "reports/",
			},
		},
		Events: NSQConfig{
			NSQDAddr: "127.0.0.1:4150",
			Topic:    "chemviz_analyses",
			Channel:  "chemviz-tail",
		},
	}
}

// LoadYAMLConfig load config from filename in YAML format
func LoadYAMLConfig(filename string, cfg interface{}) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("ReadFile: %v", err)
	}
	return yaml.Unmarshal(data, cfg)
}

// LoadTOMLConfig load config from filename in TOML format
func LoadTOMLConfig(filename string, cfg interface{}) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("ReadFile: %v", err)
	}
	return toml.Unmarshal(data, cfg)
}

// LoadConfig reads configPath over the defaults. An empty path yields the
// defaults alone. The password environment override is applied last.
func LoadConfig(configPath string) (*Config, error) {
	conf := DefaultConfig()

	if configPath != "" {
		var err error
		switch strings.ToLower(filepath.Ext(configPath)) {
		case ".toml":
			err = LoadTOMLConfig(configPath, conf)
		default:
			err = LoadYAMLConfig(configPath, conf)
		}
		if err != nil {
			return nil, fmt.Errorf("load config file %s: %w", configPath, err)
		}
	}

	if pw := os.Getenv(envBackendPassword); pw != "" {
		conf.Backend.Password = pw
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if c.Report.Sink == SinkS3 && (c.Report.S3.Bucket == "" || c.Report.S3.Endpoint == "") {
		return fmt.Errorf("invalid config: report.s3 needs bucket and endpoint")
	}
	return nil
}
