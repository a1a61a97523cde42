// Package api exposes the classifier and router over HTTP. The surface is
// small: a liveness root, one-shot claim classification, and full routed
// message handling.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mythwatch/mythwatch/internal/model"
)

// ClaimClassifier verifies a free-text claim.
type ClaimClassifier interface {
	Classify(ctx context.Context, text string) model.ClassificationResult
}

// MessageRouter handles a routed conversation message.
type MessageRouter interface {
	Process(ctx context.Context, userID, message string) model.Response
}

// Server is the HTTP API server.
type Server struct {
	httpServer *http.Server
	claims     ClaimClassifier
	router     MessageRouter
}

// NewServer creates an API server listening on cfg.Addr.
func NewServer(cfg model.HTTPConfig, claims ClaimClassifier, router MessageRouter) *Server {
	s := &Server{claims: claims, router: router}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/classify", s.handleClassify)
	mux.HandleFunc("/message", s.handleMessage)

	s.httpServer = &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// ListenAndServe blocks serving requests until Shutdown.
func (s *Server) ListenAndServe() error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("api server listening")
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Handler returns the HTTP handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("Mythwatch API is live"))
}

type classifyRequest struct {
	Text string `json:"text"`
}

type messageRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req classifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "missing 'text' in request body")
		return
	}

	result := s.claims.Classify(r.Context(), model.Normalize(req.Text))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		writeError(w, http.StatusBadRequest, "missing 'text' in request body")
		return
	}
	if req.UserID == "" {
		req.UserID = "anonymous"
	}

	resp := s.router.Process(r.Context(), req.UserID, req.Text)
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Warn().Err(err).Msg("response encoding failed")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
