package observability

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"resumelens/internal/config"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.34.0"
	oteltrace "go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Metrics holds the instruments recorded by the analysis pipeline.
type Metrics struct {
	AnalysisDuration metric.Float64Histogram
	AnalysisCount    metric.Int64Counter

	ResumesScored  metric.Int64Counter
	ATSAudits      metric.Int64Counter
	SkillsMatched  metric.Int64Counter
	ReportsBuilt   metric.Int64Counter
	KeywordReloads metric.Int64Counter

	RateLimitHits metric.Int64Counter
}

// Manager owns the OpenTelemetry providers for the serve command. A
// disabled manager is fully usable; every method degrades to a no-op.
type Manager struct {
	config         Config
	fullConfig     *config.Config
	tracerProvider *trace.TracerProvider
	meterProvider  *sdkmetric.MeterProvider
	metrics        *Metrics
	shutdownFuncs  []func(context.Context) error
}

// NewManager wires up tracing and metrics per the resolved config.
func NewManager(obsConfig Config, fullConfig *config.Config) (*Manager, error) {
	mgr := &Manager{config: obsConfig, fullConfig: fullConfig}
	if !obsConfig.Enabled {
		return mgr, nil
	}

	if err := mgr.initTracing(); err != nil {
		return nil, fmt.Errorf("failed to initialize tracing: %w", err)
	}
	if err := mgr.initMetrics(); err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}
	return mgr, nil
}

func (mgr *Manager) initTracing() error {
	var exporter trace.SpanExporter
	var err error

	switch {
	case mgr.config.ConsoleOutput:
		opts := []stdouttrace.Option{}
		if mgr.config.PrettyPrint {
			opts = append(opts, stdouttrace.WithPrettyPrint())
		}
		exporter, err = stdouttrace.New(opts...)
	case mgr.otlpEnabled():
		exporter, err = otlptracehttp.New(context.Background(), mgr.otlpTraceOptions()...)
	default:
		// Spans are still created for context propagation, just never
		// exported.
		exporter = discardSpanExporter{}
	}
	if err != nil {
		return fmt.Errorf("failed to create trace exporter: %w", err)
	}

	res, err := mgr.buildResource()
	if err != nil {
		return err
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
		trace.WithResource(res),
		trace.WithSampler(trace.TraceIDRatioBased(mgr.config.SampleRate)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	mgr.tracerProvider = tp
	mgr.shutdownFuncs = append(mgr.shutdownFuncs, tp.Shutdown)
	return nil
}

func (mgr *Manager) initMetrics() error {
	readers, err := mgr.metricReaders()
	if err != nil {
		return err
	}

	res, err := mgr.buildResource()
	if err != nil {
		return err
	}

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	for _, reader := range readers {
		opts = append(opts, sdkmetric.WithReader(reader))
	}

	mp := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(mp)
	mgr.meterProvider = mp
	mgr.shutdownFuncs = append(mgr.shutdownFuncs, mp.Shutdown)

	return mgr.registerInstruments()
}

// metricReaders assembles every enabled exporter: stdout for local
// debugging, OTLP push for a collector, and a scrape endpoint for
// Prometheus.
func (mgr *Manager) metricReaders() ([]sdkmetric.Reader, error) {
	var readers []sdkmetric.Reader

	if mgr.config.ConsoleOutput {
		exporter, err := stdoutmetric.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create console metric exporter: %w", err)
		}
		readers = append(readers,
			sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(mgr.collectionInterval())))
	}

	if mgr.otlpEnabled() {
		exporter, err := otlpmetrichttp.New(context.Background(), mgr.otlpMetricOptions()...)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
		}
		readers = append(readers,
			sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(mgr.collectionInterval())))
	}

	if mgr.config.Prometheus.Enabled {
		reader, err := servePrometheus(mgr.config.Prometheus)
		if err != nil {
			return nil, err
		}
		readers = append(readers, reader)
	}

	if len(readers) == 0 {
		readers = append(readers, sdkmetric.NewManualReader())
	}
	return readers, nil
}

func (mgr *Manager) buildResource() (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(mgr.config.ServiceName),
			semconv.ServiceVersion(mgr.config.ServiceVersion),
			attribute.String("service.instance.id", mgr.serviceInstanceID()),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// registerInstruments creates every instrument up front so recording
// sites never pay creation cost or handle errors.
func (mgr *Manager) registerInstruments() error {
	meter := mgr.meterProvider.Meter(mgr.config.ServiceName)
	m := &Metrics{}

	var err error
	m.AnalysisDuration, err = meter.Float64Histogram(
		"resumelens_analysis_duration_seconds",
		metric.WithDescription("Time spent running analysis operations"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis duration metric: %w", err)
	}

	counters := []struct {
		dst  *metric.Int64Counter
		name string
		desc string
	}{
		{&m.AnalysisCount, "resumelens_analysis_operations_total", "Total number of analysis operations"},
		{&m.ResumesScored, "resumelens_resumes_scored_total", "Total number of resumes scored"},
		{&m.ATSAudits, "resumelens_ats_audits_total", "Total number of ATS audits performed"},
		{&m.SkillsMatched, "resumelens_skill_matches_total", "Total number of skill match computations"},
		{&m.ReportsBuilt, "resumelens_reports_total", "Total number of full analysis reports built"},
		{&m.KeywordReloads, "resumelens_keyword_reloads_total", "Total number of keyword configuration reloads"},
		{&m.RateLimitHits, "resumelens_rate_limit_hits_total", "Total number of rate limit hits"},
	}
	for _, c := range counters {
		*c.dst, err = meter.Int64Counter(c.name, metric.WithDescription(c.desc))
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", c.name, err)
		}
	}

	mgr.metrics = m
	return nil
}

// GetMetrics never returns nil; a disabled manager hands back inert
// instruments.
func (mgr *Manager) GetMetrics() *Metrics {
	if mgr.metrics == nil {
		return &Metrics{}
	}
	return mgr.metrics
}

// HTTPMiddleware instruments inbound requests with otelhttp.
func (mgr *Manager) HTTPMiddleware() func(http.Handler) http.Handler {
	if !mgr.config.Enabled {
		return func(h http.Handler) http.Handler { return h }
	}
	return otelhttp.NewMiddleware(
		mgr.config.ServiceName,
		otelhttp.WithTracerProvider(mgr.tracerProvider),
		otelhttp.WithMeterProvider(mgr.meterProvider),
	)
}

// Tracer returns the named tracer, or a noop one when disabled.
func (mgr *Manager) Tracer(name string) oteltrace.Tracer {
	if !mgr.config.Enabled {
		return noop.NewTracerProvider().Tracer(name)
	}
	return otel.Tracer(name)
}

// Shutdown flushes and stops the providers.
func (mgr *Manager) Shutdown(ctx context.Context) error {
	for _, shutdown := range mgr.shutdownFuncs {
		if err := shutdown(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (mgr *Manager) otlpEnabled() bool {
	return mgr.fullConfig != nil && mgr.fullConfig.Observability.OTLP.Enabled
}

func (mgr *Manager) otlpTraceOptions() []otlptracehttp.Option {
	otlp := mgr.fullConfig.Observability.OTLP
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(otlp.Endpoint)}
	if otlp.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	if len(otlp.Headers) > 0 {
		opts = append(opts, otlptracehttp.WithHeaders(otlp.Headers))
	}
	return opts
}

func (mgr *Manager) otlpMetricOptions() []otlpmetrichttp.Option {
	otlp := mgr.fullConfig.Observability.OTLP
	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpointURL(otlp.Endpoint)}
	if otlp.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	if len(otlp.Headers) > 0 {
		opts = append(opts, otlpmetrichttp.WithHeaders(otlp.Headers))
	}
	return opts
}

func (mgr *Manager) serviceInstanceID() string {
	if mgr.fullConfig != nil && mgr.fullConfig.Observability.ServiceInstance != "" {
		return mgr.fullConfig.Observability.ServiceInstance
	}
	return "resumelens-1"
}

func (mgr *Manager) collectionInterval() time.Duration {
	if mgr.fullConfig != nil && mgr.fullConfig.Observability.Metrics.CollectionInterval > 0 {
		return mgr.fullConfig.Observability.Metrics.CollectionInterval
	}
	return 15 * time.Second
}

// TrackAnalysis wraps one analysis operation in a span and records its
// duration and outcome.
func (m *Metrics) TrackAnalysis(ctx context.Context, operation string, fn func(context.Context) error) error {
	if m.AnalysisDuration == nil {
		return fn(ctx)
	}

	tracer := otel.Tracer("resumelens.analysis")
	ctx, span := tracer.Start(ctx, "analysis."+operation)
	defer span.End()

	start := time.Now()
	err := fn(ctx)

	attrs := []attribute.KeyValue{
		attribute.String("operation", operation),
		attribute.Bool("success", err == nil),
	}
	m.AnalysisDuration.Record(ctx, time.Since(start).Seconds(), metric.WithAttributes(attrs...))
	m.AnalysisCount.Add(ctx, 1, metric.WithAttributes(attrs...))
	span.SetAttributes(attrs...)

	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("error", true))
	}
	return err
}

// RecordBusinessMetric bumps the counter for a named domain event.
// Unknown names are dropped silently.
func (m *Metrics) RecordBusinessMetric(ctx context.Context, metricType string, success bool, attributes ...attribute.KeyValue) {
	var counter metric.Int64Counter
	switch metricType {
	case "resume_scored":
		counter = m.ResumesScored
	case "ats_audited":
		counter = m.ATSAudits
	case "skills_matched":
		counter = m.SkillsMatched
	case "resume_analyzed":
		counter = m.ReportsBuilt
	case "keywords_reloaded":
		counter = m.KeywordReloads
	case "rate_limit_hit":
		counter = m.RateLimitHits
	}
	if counter == nil {
		return
	}

	attrs := append([]attribute.KeyValue{attribute.Bool("success", success)}, attributes...)
	counter.Add(ctx, 1, metric.WithAttributes(attrs...))
}

type discardSpanExporter struct{}

func (discardSpanExporter) ExportSpans(context.Context, []trace.ReadOnlySpan) error { return nil }
func (discardSpanExporter) Shutdown(context.Context) error                          { return nil }
