// Package relayserver exposes the two HTTP endpoints the voice client
// depends on, relaying prompts to a language model backend and text to a
// speech synthesis backend.
package relayserver

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"go.uber.org/zap"
)

type ServerOption func(*Server)

func WithLogger(logger *zap.SugaredLogger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRateLimit caps requests per client IP per minute. Zero disables the
// limiter.
func WithRateLimit(requestsPerMinute int) ServerOption {
	return func(s *Server) {
		s.requestsPerMinute = requestsPerMinute
	}
}

func WithAllowedOrigins(origins []string) ServerOption {
	return func(s *Server) {
		if len(origins) > 0 {
			s.allowedOrigins = origins
		}
	}
}

type Server struct {
	answers AnswerBackend
	speech  SpeechBackend

	logger            *zap.SugaredLogger
	requestsPerMinute int
	allowedOrigins    []string
}

func New(answers AnswerBackend, speech SpeechBackend, opts ...ServerOption) *Server {
	s := &Server{
		answers:           answers,
		speech:            speech,
		logger:            zap.NewNop().Sugar(),
		requestsPerMinute: 60,
		allowedOrigins:    []string{"*"},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Handler builds the HTTP routing tree.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(s.logRequests)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	if s.requestsPerMinute > 0 {
		router.Use(httprate.LimitByIP(s.requestsPerMinute, time.Minute))
	}

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok")) //nolint:errcheck
	})
	router.Post("/api/ask", s.handleAsk)
	router.Post("/api/tts", s.handleSpeak)

	return router
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Prompt string `json:"prompt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Prompt) == "" {
		writeError(w, http.StatusBadRequest, "Prompt is required")
		return
	}

	answer, err := s.answers.Answer(r.Context(), body.Prompt)
	if err != nil {
		s.logger.Errorw("Answer backend failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate response")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) handleSpeak(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Text) == "" {
		writeError(w, http.StatusBadRequest, "Text is required")
		return
	}

	audio, err := s.speech.Synthesize(r.Context(), body.Text)
	if err != nil {
		s.logger.Errorw("Speech backend failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to generate speech")
		return
	}
	defer audio.Close()

	// Stream the payload through without buffering it.
	w.Header().Set("Content-Type", "audio/wav")
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, audio); err != nil {
		s.logger.Warnw("Audio stream aborted", "error", err)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(wrapped, r)

		s.logger.Infow("Request handled",
			"method", r.Method,
			"path", r.URL.Path,
			"status", wrapped.Status(),
			"bytes", wrapped.BytesWritten(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
