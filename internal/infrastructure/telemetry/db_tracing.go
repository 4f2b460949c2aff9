package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled bool
	DBName  string
	// IncludeVariables puts bound query arguments into span attributes; keep off
	// outside development since they carry customer data
	IncludeVariables bool
}

// NewDBTracingPlugin returns the otelgorm plugin, or nil when tracing is disabled
func NewDBTracingPlugin(cfg DBTracingConfig) gorm.Plugin {
	if !cfg.Enabled {
		return nil
	}
	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBName)}
	if !cfg.IncludeVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	return otelgorm.NewPlugin(opts...)
}
