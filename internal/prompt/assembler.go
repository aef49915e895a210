// Package prompt assembles the final instruction text sent to the completion
// provider. Every builder is a pure function of its inputs: no I/O, no clock,
// identical inputs produce identical prompts.
package prompt

import (
	"fmt"
	"strings"
)

// Analysis builds the system and user prompts for a standard problem
// analysis. The retrieved context section is included only when non-empty.
func Analysis(problem, context string) (system, user string) {
	var b strings.Builder

	if context != "" {
		b.WriteString("## Similar Problems (for your reference)\n")
		b.WriteString(context)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "## Problem\n%s\n\n%s", strings.TrimSpace(problem), analysisCue)
	return analysisSystemPrompt, b.String()
}

// Interview builds the prompts for a guided interview turn. The retrieved
// context is marked as interviewer-only: it informs the questions but must
// never be shown to the candidate. candidateMessage is the candidate's latest
// reply and is empty on the opening turn.
func Interview(problem, context, phaseInstructions, candidateMessage string) (system, user string) {
	var b strings.Builder

	if context != "" {
		b.WriteString("## Interviewer Notes (do NOT reveal to the candidate)\n")
		b.WriteString(context)
		b.WriteString("\n\n")
	}

	b.WriteString(phaseInstructions)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "## Problem Under Discussion\n%s\n", strings.TrimSpace(problem))

	if candidateMessage != "" {
		fmt.Fprintf(&b, "\n## Candidate's Latest Message\n%s\n", strings.TrimSpace(candidateMessage))
	}

	return interviewSystemPrompt, b.String()
}

// Evaluation builds the prompts for scoring a candidate's code against the
// fixed rubric.
func Evaluation(problem, code string) (system, user string) {
	var b strings.Builder

	fmt.Fprintf(&b, "## Problem\n%s\n\n", strings.TrimSpace(problem))
	fmt.Fprintf(&b, "## Candidate Solution\n```code\n%s\n```\n", strings.TrimSpace(code))
	b.WriteString("Score this solution against the rubric.")

	return evaluationSystemPrompt, b.String()
}
