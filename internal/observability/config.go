package observability

import (
	"resumelens/internal/config"
)

// Config is the flattened view of observability settings the Manager
// consumes.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Enabled        bool
	ConsoleOutput  bool
	PrettyPrint    bool
	SampleRate     float64
	Prometheus     PrometheusConfig
}

// FromConfig flattens the nested observability section, substituting
// the binary version when no service version is pinned. A nil config
// yields a disabled manager.
func FromConfig(cfg *config.Config, version string) Config {
	if cfg == nil {
		return Config{ServiceName: "resumelens", ServiceVersion: version}
	}

	obs := cfg.Observability
	serviceVersion := obs.ServiceVersion
	if serviceVersion == "" {
		serviceVersion = version
	}

	return Config{
		ServiceName:    obs.ServiceName,
		ServiceVersion: serviceVersion,
		Enabled:        obs.Enabled,
		ConsoleOutput:  obs.ConsoleOutput,
		PrettyPrint:    obs.Console.PrettyPrint,
		SampleRate:     obs.SampleRate,
		Prometheus: PrometheusConfig{
			Enabled:  obs.Prometheus.Enabled,
			Endpoint: obs.Prometheus.Endpoint,
			Port:     obs.Prometheus.Port,
		},
	}
}
