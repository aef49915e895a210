package parser

// StructuredResponse is the fixed record extracted from a model's free-text
// analysis. Every field has a defined default (empty string or empty slice);
// parsing never fails, it only degrades.
type StructuredResponse struct {
	Understanding   string   `json:"understanding"`
	Pattern         string   `json:"pattern"`
	BruteForce      string   `json:"brute_force"`
	Optimized       string   `json:"optimized"`
	TimeComplexity  string   `json:"time_complexity"`
	SpaceComplexity string   `json:"space_complexity"`
	Code            string   `json:"code"`
	EdgeCases       []string `json:"edge_cases"`
	FollowUps       []string `json:"follow_ups"`
	CommonMistakes  []string `json:"common_mistakes"`
	Variations      []string `json:"variations"`
}

// IsEmpty reports whether no field was populated at all.
func (r *StructuredResponse) IsEmpty() bool {
	return r.Understanding == "" && r.Pattern == "" && r.BruteForce == "" &&
		r.Optimized == "" && r.TimeComplexity == "" && r.SpaceComplexity == "" &&
		r.Code == "" && len(r.EdgeCases) == 0 && len(r.FollowUps) == 0 &&
		len(r.CommonMistakes) == 0 && len(r.Variations) == 0
}

// CriterionScore is one rubric criterion's sub-score and feedback.
type CriterionScore struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// EvaluationCriteria is the five-criterion rubric breakdown.
type EvaluationCriteria struct {
	Correctness      CriterionScore `json:"correctness"`
	Efficiency       CriterionScore `json:"efficiency"`
	CodeQuality      CriterionScore `json:"code_quality"`
	EdgeCaseHandling CriterionScore `json:"edge_case_handling"`
	Readability      CriterionScore `json:"readability"`
}

// EvaluationRecord is the parsed result of a code evaluation. Raw carries the
// model's original reply when the rubric JSON could not be parsed.
type EvaluationRecord struct {
	OverallScore float64            `json:"overall_score"`
	Criteria     EvaluationCriteria `json:"criteria"`
	Suggestions  []string           `json:"suggestions"`
	Hint         string             `json:"hint,omitempty"`
	Raw          string             `json:"raw,omitempty"`
}

// unableToEvaluate marks criterion feedback in the fixed default record.
const unableToEvaluate = "unable to evaluate"

// defaultEvaluation returns the fixed record used when the model's reply does
// not parse: every sub-score 0, feedback flagged, raw text attached for
// diagnostic display.
func defaultEvaluation(raw string) EvaluationRecord {
	failed := CriterionScore{Score: 0, Feedback: unableToEvaluate}
	return EvaluationRecord{
		OverallScore: 0,
		Criteria: EvaluationCriteria{
			Correctness:      failed,
			Efficiency:       failed,
			CodeQuality:      failed,
			EdgeCaseHandling: failed,
			Readability:      failed,
		},
		Suggestions: []string{},
		Raw:         raw,
	}
}
