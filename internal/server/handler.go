package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"resumelens/internal/observability"
	"resumelens/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// parseAnalysisRequest parses and validates the shared analysis request body.
// requireJD makes the job description mandatory (the match endpoint).
func (s *Server) parseAnalysisRequest(w http.ResponseWriter, r *http.Request, requireJD bool) (*AnalysisRequest, bool) {
	var req AnalysisRequest
	if err := parseJSONRequest(r, &req); err != nil {
		writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
		return nil, false
	}

	if req.Fields == nil {
		writeErrorResponse(w, "Missing fields", "fields object is required", http.StatusBadRequest)
		return nil, false
	}

	if requireJD && strings.TrimSpace(req.JobDescription) == "" {
		writeErrorResponse(w, "Missing job description", "jobDescription field is required", http.StatusBadRequest)
		return nil, false
	}

	return &req, true
}

// writeJSONResponse encodes the result, reporting encoding failures
func writeJSONResponse(w http.ResponseWriter, result any) error {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return err
	}
	return nil
}

// createScoreHandler wraps the resume score handler with observability
func (s *Server) createScoreHandler(om *observability.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.score")
		defer span.End()

		req, ok := s.parseAnalysisRequest(w, r, false)
		if !ok {
			span.SetAttributes(attribute.String("error.type", "validation"))
			return
		}

		span.SetAttributes(
			attribute.Int("request.skills_count", len(req.Fields.Skills)),
			attribute.String("operation", "score"),
		)

		metrics := om.GetMetrics()
		var result types.ResumeScore
		_ = metrics.TrackAnalysis(ctx, "score", func(ctx context.Context) error {
			result = s.Analyzer.ResumeScore(req.Fields)
			return nil
		})

		metrics.RecordBusinessMetric(ctx, "resume_scored", true,
			attribute.Int("score.total", result.Total))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("score.total", result.Total),
		)

		if err := writeJSONResponse(w, result); err != nil {
			span.RecordError(err)
		}
	}
}

// createATSHandler wraps the ATS audit handler with observability
func (s *Server) createATSHandler(om *observability.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.ats")
		defer span.End()

		req, ok := s.parseAnalysisRequest(w, r, false)
		if !ok {
			span.SetAttributes(attribute.String("error.type", "validation"))
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.Bool("request.has_jd", strings.TrimSpace(req.JobDescription) != ""),
			attribute.String("operation", "ats"),
		)

		metrics := om.GetMetrics()
		var result types.ATSScore
		_ = metrics.TrackAnalysis(ctx, "ats", func(ctx context.Context) error {
			result = s.Analyzer.ATSScore(req.Fields, req.JobDescription)
			return nil
		})

		metrics.RecordBusinessMetric(ctx, "ats_audited", true,
			attribute.Int("score.total", result.Total),
			attribute.Int("tips.count", len(result.Tips)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("score.total", result.Total),
		)

		if err := writeJSONResponse(w, result); err != nil {
			span.RecordError(err)
		}
	}
}

// createMatchHandler wraps the skill match handler with observability
func (s *Server) createMatchHandler(om *observability.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.match")
		defer span.End()

		req, ok := s.parseAnalysisRequest(w, r, true)
		if !ok {
			span.SetAttributes(attribute.String("error.type", "validation"))
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.Int("request.skills_count", len(req.Fields.Skills)),
			attribute.String("operation", "match"),
		)

		metrics := om.GetMetrics()
		var result types.MatchResult
		_ = metrics.TrackAnalysis(ctx, "match", func(ctx context.Context) error {
			result = s.Analyzer.SkillMatch(req.Fields, req.JobDescription)
			return nil
		})

		metrics.RecordBusinessMetric(ctx, "skills_matched", true,
			attribute.Int("match.percentage", result.Percentage),
			attribute.Int("match.missing_count", len(result.Missing)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("match.percentage", result.Percentage),
		)

		if err := writeJSONResponse(w, result); err != nil {
			span.RecordError(err)
		}
	}
}

// createAnalyzeHandler wraps the full report handler with observability
func (s *Server) createAnalyzeHandler(om *observability.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumelens.api")
		ctx, span := tracer.Start(ctx, "api.analyze")
		defer span.End()

		req, ok := s.parseAnalysisRequest(w, r, false)
		if !ok {
			span.SetAttributes(attribute.String("error.type", "validation"))
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.Bool("request.has_jd", strings.TrimSpace(req.JobDescription) != ""),
			attribute.String("operation", "analyze"),
		)

		metrics := om.GetMetrics()
		var result types.Report
		_ = metrics.TrackAnalysis(ctx, "analyze", func(ctx context.Context) error {
			result = s.Analyzer.Analyze(req.Fields, req.JobDescription)
			return nil
		})

		metrics.RecordBusinessMetric(ctx, "resume_analyzed", true,
			attribute.Int("resume.score", result.Resume.Total),
			attribute.Int("ats.score", result.ATS.Total),
			attribute.Float64("experience.years", result.ExperienceYears))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("resume.score", result.Resume.Total),
			attribute.Int("ats.score", result.ATS.Total),
		)

		if err := writeJSONResponse(w, result); err != nil {
			span.RecordError(err)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.Manager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
