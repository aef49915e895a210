package interview

// Phase is a session's position in the fixed disclosure progression. Phases
// only move forward; Reveal is terminal and also reachable directly when the
// interaction cap is hit or the caller explicitly asks for the solution.
type Phase string

const (
	PhaseUnderstanding Phase = "understanding"
	PhaseApproach      Phase = "approach"
	PhaseOptimization  Phase = "optimization"
	PhaseReveal        Phase = "reveal"
)

// phaseOrder is the forward progression. No skipping, no backward moves.
var phaseOrder = []Phase{PhaseUnderstanding, PhaseApproach, PhaseOptimization, PhaseReveal}

// next returns the phase after p in the fixed order. Reveal stays Reveal.
func (p Phase) next() Phase {
	for i, ph := range phaseOrder {
		if ph == p && i+1 < len(phaseOrder) {
			return phaseOrder[i+1]
		}
	}
	return PhaseReveal
}

// Instructions returns the phase's guidance rules for the prompt assembler.
// These are static policy text, not computed.
func (p Phase) Instructions() string {
	return phaseInstructions[p]
}

var phaseInstructions = map[Phase]string{
	PhaseUnderstanding: `Current phase: UNDERSTANDING.
Help the candidate restate the problem in their own words.
- Ask 1-2 clarifying questions about inputs, outputs, and constraints
- Confirm or correct their understanding of what is being asked
- Do NOT name any algorithm, data structure, or solution strategy
- Do NOT discuss complexity or implementation`,

	PhaseApproach: `Current phase: APPROACH.
Nudge the candidate toward a workable strategy without giving it away.
- Ask what brute-force idea comes to mind first and what it would cost
- Point at the part of the problem structure worth exploiting, as a question
- You may name a general family of techniques only if the candidate already mentioned it
- Do NOT state the optimal algorithm or write any code`,

	PhaseOptimization: `Current phase: OPTIMIZATION.
The candidate has a working direction; help them tighten it.
- Discuss the time/space cost of their current approach
- Hint at what to trade (memory for lookups, sorting for scan order) without naming the final algorithm
- Small pseudocode fragments for a step they already described are allowed
- Do NOT provide a complete solution`,

	PhaseReveal: `Current phase: REVEAL.
Guided interactions are over. Provide the full structured analysis now:
complete explanation, the optimal approach, complexity, working code, and
edge cases. Hold nothing back.`,
}
