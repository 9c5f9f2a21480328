package observability

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// PrometheusConfig holds the scrape endpoint settings.
type PrometheusConfig struct {
	Enabled  bool
	Endpoint string
	Port     string
}

// servePrometheus registers an OTel Prometheus exporter and starts a
// sidecar HTTP server exposing the scrape endpoint. The metrics server
// lives on its own port so scrapes bypass API auth and rate limiting.
func servePrometheus(cfg PrometheusConfig) (sdkmetric.Reader, error) {
	exporter, err := prometheus.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle(cfg.Endpoint, promhttp.Handler())

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Printf("Prometheus metrics on http://localhost:%s%s", cfg.Port, cfg.Endpoint)

	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("Prometheus server error: %v", err)
		}
	}()

	return exporter, nil
}
