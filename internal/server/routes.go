package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"algomentor/internal/interview"
	"algomentor/internal/pipeline"
)

type analyzeRequest struct {
	Problem        string `json:"problem"`
	Mode           string `json:"mode,omitempty"`
	RevealSolution bool   `json:"reveal_solution,omitempty"`
}

type evaluateRequest struct {
	Problem string `json:"problem"`
	Code    string `json:"code"`
}

type messageRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.pipe.Analyze(r.Context(), req.Problem, pipeline.Options{
		Mode:           req.Mode,
		RevealSolution: req.RevealSolution,
	})
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.pipe.EvaluateCode(r.Context(), req.Problem, req.Code)
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.pipe.GetStatus())
}

func (s *Server) handleInterviewStart(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.pipe.Analyze(r.Context(), req.Problem, pipeline.Options{
		Mode: string(pipeline.ModeInterview),
	})
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleInterviewMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	res, err := s.pipe.Analyze(r.Context(), req.Message, pipeline.Options{
		SessionID: chi.URLParam(r, "id"),
	})
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleInterviewReveal(w http.ResponseWriter, r *http.Request) {
	res, err := s.pipe.Analyze(r.Context(), "", pipeline.Options{
		SessionID:      chi.URLParam(r, "id"),
		RevealSolution: true,
	})
	if err != nil {
		writePipelineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleInterviewEnd(w http.ResponseWriter, r *http.Request) {
	s.pipe.Sessions().End(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// writePipelineError maps pipeline errors to HTTP status codes: validation
// failures are the caller's fault, unknown sessions are 404, anything else
// means a backend failed.
func writePipelineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, pipeline.ErrEmptyProblem), errors.Is(err, pipeline.ErrEmptyCode):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, interview.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		log.Printf("pipeline error: %v", err)
		writeError(w, http.StatusBadGateway, err.Error())
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
