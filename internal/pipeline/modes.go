package pipeline

import "algomentor/internal/retriever"

// Mode selects an operating-parameter bundle for analysis requests.
type Mode string

const (
	// ModeQuick trades depth for latency: short generations, minimal context.
	ModeQuick Mode = "quick"
	// ModeDetailed is the default full analysis.
	ModeDetailed Mode = "detailed"
	// ModeInterview withholds the solution and guides the caller instead.
	ModeInterview Mode = "interview"
)

// modeParams is one mode's generation and retrieval settings.
type modeParams struct {
	topK        int
	maxTokens   int
	temperature float64
	format      retriever.Format
}

var modeTable = map[Mode]modeParams{
	ModeQuick:     {topK: 2, maxTokens: 1024, temperature: 0.5, format: retriever.FormatMinimal},
	ModeDetailed:  {topK: 3, maxTokens: 4096, temperature: 0.7, format: retriever.FormatFull},
	ModeInterview: {topK: 2, maxTokens: 1536, temperature: 0.6, format: retriever.FormatHints},
}

// evalTemperature is fixed and lower than any analysis mode: scoring should
// be repeatable, not creative.
const evalTemperature = 0.2

const evalMaxTokens = 2048

// resolveMode maps a caller-supplied mode string to a known Mode. Unknown or
// empty values resolve to ModeDetailed.
func resolveMode(s string) Mode {
	switch Mode(s) {
	case ModeQuick, ModeDetailed, ModeInterview:
		return Mode(s)
	default:
		return ModeDetailed
	}
}

func (m Mode) params() modeParams {
	if p, ok := modeTable[m]; ok {
		return p
	}
	return modeTable[ModeDetailed]
}
