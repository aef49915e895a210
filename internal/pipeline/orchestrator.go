// Package pipeline composes retrieval, prompt assembly, completion, and
// parsing into the end-to-end analyze and evaluate operations.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"algomentor/internal/interview"
	"algomentor/internal/llm"
	"algomentor/internal/parser"
	"algomentor/internal/prompt"
	"algomentor/internal/retriever"
	"algomentor/internal/vectorindex"
)

var (
	// ErrEmptyProblem rejects analyze/evaluate calls with no problem text.
	ErrEmptyProblem = errors.New("problem text is empty")
	// ErrEmptyCode rejects evaluate calls with no candidate code.
	ErrEmptyCode = errors.New("code is empty")
)

// Options are the caller-supplied knobs for one analyze request.
type Options struct {
	// Mode is quick, detailed, or interview. Empty or unknown means detailed.
	Mode string
	// SessionID continues an existing interview session. The input text is
	// then the candidate's message, not a fresh problem statement.
	SessionID string
	// RevealSolution forces a full structured analysis even when interview
	// mode would otherwise apply, and ends the session if one is given.
	RevealSolution bool
}

// Guidance is the interview-mode result: raw mentor text tagged with the
// session's position, never a structured analysis.
type Guidance struct {
	SessionID       string          `json:"session_id"`
	Phase           interview.Phase `json:"phase"`
	Text            string          `json:"text"`
	Interactions    int             `json:"interactions"`
	MaxInteractions int             `json:"max_interactions"`
}

// Result is the outcome of one analyze call. Exactly one of Analysis and
// Guidance is set, depending on the resolved mode.
type Result struct {
	Mode       Mode                       `json:"mode"`
	Analysis   *parser.StructuredResponse `json:"analysis,omitempty"`
	Guidance   *Guidance                  `json:"guidance,omitempty"`
	Sources    []retriever.Source         `json:"sources,omitempty"`
	Model      string                     `json:"model"`
	Tokens     int                        `json:"tokens"`
	DurationMS int64                      `json:"duration_ms"`
}

// EvaluationResult is the outcome of one evaluate call.
type EvaluationResult struct {
	Evaluation parser.EvaluationRecord `json:"evaluation"`
	Model      string                  `json:"model"`
	Tokens     int                     `json:"tokens"`
	DurationMS int64                   `json:"duration_ms"`
}

// Status reports the orchestrator's readiness and counters.
type Status struct {
	Initialized     bool   `json:"initialized"`
	DocumentCount   int    `json:"document_count"`
	EmbeddingModel  string `json:"embedding_model"`
	CompletionModel string `json:"completion_model"`
	ActiveSessions  int    `json:"active_sessions"`
}

// Orchestrator is the composition root for the analysis pipeline. It owns no
// locking of its own; the store and session manager guard their state.
type Orchestrator struct {
	store     *vectorindex.Store
	retriever *retriever.Retriever
	provider  llm.Provider
	sessions  *interview.Manager
}

// New wires the pipeline components together.
func New(store *vectorindex.Store, ret *retriever.Retriever, provider llm.Provider, sessions *interview.Manager) *Orchestrator {
	return &Orchestrator{
		store:     store,
		retriever: ret,
		provider:  provider,
		sessions:  sessions,
	}
}

// Sessions exposes the session manager for lifecycle calls keyed by ID.
func (o *Orchestrator) Sessions() *interview.Manager {
	return o.sessions
}

// Analyze runs the full pipeline for a problem statement: mode resolution,
// retrieval, prompt assembly, completion, and parsing. Interview intent is
// detected from the explicit mode or from the trigger phrase in the text.
func (o *Orchestrator) Analyze(ctx context.Context, input string, opts Options) (*Result, error) {
	start := time.Now()

	input = strings.TrimSpace(input)
	if input == "" && opts.SessionID == "" {
		return nil, ErrEmptyProblem
	}

	mode := resolveMode(opts.Mode)
	if !opts.RevealSolution && (mode == ModeInterview || opts.SessionID != "" || o.sessions.IsTriggered(input)) {
		return o.interviewTurn(ctx, input, opts, start)
	}

	problem := input
	if opts.RevealSolution && opts.SessionID != "" {
		sess, err := o.sessions.ForceReveal(opts.SessionID)
		if err != nil {
			return nil, err
		}
		problem = sess.Problem
		// Revealing ends the interview; the session is not resumable.
		defer o.sessions.End(opts.SessionID)
	}
	if opts.RevealSolution {
		mode = ModeDetailed
	}

	params := mode.params()
	contextText, sources := o.retriever.Retrieve(ctx, problem, params.topK, params.format)
	system, user := prompt.Analysis(problem, contextText)

	resp, err := o.complete(ctx, system, user, nil, params)
	if err != nil {
		return nil, err
	}

	structured := parser.ParseAnalysis(resp.Content)
	return &Result{
		Mode:       mode,
		Analysis:   &structured,
		Sources:    sources,
		Model:      resp.Model,
		Tokens:     resp.InputTokens + resp.OutputTokens,
		DurationMS: time.Since(start).Milliseconds(),
	}, nil
}

// interviewTurn opens or advances an interview session and returns raw
// guidance for the current phase. Structured parsing is skipped: the mentor's
// questions are the product, not an analysis record.
func (o *Orchestrator) interviewTurn(ctx context.Context, input string, opts Options, start time.Time) (*Result, error) {
	var (
		sess *interview.Session
		err  error
	)
	if opts.SessionID == "" {
		sess = o.sessions.Create(input)
	} else {
		sess, err = o.sessions.Advance(opts.SessionID, input)
		if err != nil {
			return nil, err
		}
	}

	params := ModeInterview.params()
	contextText, sources := o.retriever.Retrieve(ctx, sess.Problem, params.topK, params.format)

	candidateMessage := ""
	history := sess.Transcript
	if opts.SessionID != "" {
		candidateMessage = input
		// Advance already appended the candidate's message; keep it out of
		// the history so it appears once, in the assembled prompt.
		if n := len(history); n > 0 && history[n-1].Role == "user" {
			history = history[:n-1]
		}
	}

	system, user := prompt.Interview(sess.Problem, contextText, sess.Phase.Instructions(), candidateMessage)

	resp, err := o.complete(ctx, system, user, history, params)
	if err != nil {
		return nil, err
	}

	// The session may have been swept between the completion call and now;
	// losing one transcript entry in that case is acceptable.
	_ = o.sessions.RecordAssistantTurn(sess.ID, resp.Content)

	return &Result{
		Mode: ModeInterview,
		Guidance: &Guidance{
			SessionID:       sess.ID,
			Phase:           sess.Phase,
			Text:            resp.Content,
			Interactions:    sess.Interactions,
			MaxInteractions: sess.MaxInteractions,
		},
		Sources:    sources,
		Model:      resp.Model,
		Tokens:     resp.InputTokens + resp.OutputTokens,
		DurationMS: time.Since(start).Milliseconds(),
	}, nil
}

// EvaluateCode scores candidate code against the fixed rubric. Parse failures
// never abort the request; the default record carries the raw reply instead.
func (o *Orchestrator) EvaluateCode(ctx context.Context, problem, code string) (*EvaluationResult, error) {
	start := time.Now()

	problem = strings.TrimSpace(problem)
	code = strings.TrimSpace(code)
	if problem == "" {
		return nil, ErrEmptyProblem
	}
	if code == "" {
		return nil, ErrEmptyCode
	}

	system, user := prompt.Evaluation(problem, code)
	resp, err := o.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: system},
			{Role: llm.RoleUser, Content: user},
		},
		MaxTokens:   evalMaxTokens,
		Temperature: evalTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}

	return &EvaluationResult{
		Evaluation: parser.ParseEvaluation(resp.Content),
		Model:      resp.Model,
		Tokens:     resp.InputTokens + resp.OutputTokens,
		DurationMS: time.Since(start).Milliseconds(),
	}, nil
}

// GetStatus reports readiness for health and status endpoints.
func (o *Orchestrator) GetStatus() Status {
	return Status{
		Initialized:     o.store.Count() > 0,
		DocumentCount:   o.store.Count(),
		EmbeddingModel:  o.store.ModelID(),
		CompletionModel: o.provider.Name(),
		ActiveSessions:  o.sessions.ActiveCount(),
	}
}

func (o *Orchestrator) complete(ctx context.Context, system, user string, history []interview.Turn, params modeParams) (*llm.CompletionResponse, error) {
	messages := make([]llm.Message, 0, len(history)+2)
	messages = append(messages, llm.Message{Role: llm.RoleSystem, Content: system})
	for _, turn := range history {
		role := llm.RoleUser
		if turn.Role == "assistant" {
			role = llm.RoleAssistant
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: user})

	resp, err := o.provider.Complete(ctx, llm.CompletionRequest{
		Messages:    messages,
		MaxTokens:   params.maxTokens,
		Temperature: params.temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("completion failed: %w", err)
	}
	return resp, nil
}
