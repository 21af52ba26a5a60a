package config

import (
	"github.com/invopop/jsonschema"
)

// Schema describes the configuration file. Property names follow the YAML keys.
func Schema() *jsonschema.Schema {
	r := &jsonschema.Reflector{
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}
	s := r.Reflect(&Config{})
	s.Title = "chemviz configuration"
	return s
}

// Redacted returns a copy safe for printing.
func (c Config) Redacted() Config {
	if c.Backend.Password != "" {
		c.Backend.Password = "******"
	}
	if c.Report.S3.SecretAccessKey != "" {
		c.Report.S3.SecretAccessKey = "******"
	}
	return c
}
