// Package parser extracts structured records from unstructured model output.
// Extraction is best-effort by design: model format compliance cannot be
// guaranteed, so every section degrades independently to its default and the
// parse functions never return an error.
package parser

import (
	"regexp"
	"strings"
)

// headingPattern builds a tolerant matcher for one numbered markdown heading:
// optional hashes or bold markers, optional (possibly wrong) section number,
// case-insensitive name, optional trailing colon.
func headingPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)^\s*(?:#{1,6}\s*)?(?:\*\*)?\s*(?:\d{1,2}\s*[.):]\s*)?` + name + `\s*(?:\*\*)?\s*:?\s*$`)
}

// sectionRule is one section's independently testable extraction rule.
type sectionRule struct {
	name      string
	primary   *regexp.Regexp
	secondary *regexp.Regexp // looser wording, tried only if primary never matches
	list      bool
	assign    func(*StructuredResponse, string, []string)
}

var analysisSections = []sectionRule{
	{
		name:    "understanding",
		primary: headingPattern(`problem\s+understanding`),
		assign:  func(r *StructuredResponse, s string, _ []string) { r.Understanding = s },
	},
	{
		name:    "pattern",
		primary: headingPattern(`(?:algorithmic\s+)?pattern`),
		assign:  func(r *StructuredResponse, s string, _ []string) { r.Pattern = s },
	},
	{
		name:    "brute_force",
		primary: headingPattern(`brute[\s-]?force(?:\s+approach)?`),
		assign:  func(r *StructuredResponse, s string, _ []string) { r.BruteForce = s },
	},
	{
		name:    "optimized",
		primary: headingPattern(`(?:optimized(?:\s+approach)?|optimal\s+approach)`),
		assign:  func(r *StructuredResponse, s string, _ []string) { r.Optimized = s },
	},
	{
		name:    "time_complexity",
		primary: headingPattern(`time\s+complexity`),
		assign:  func(r *StructuredResponse, s string, _ []string) { r.TimeComplexity = s },
	},
	{
		name:    "space_complexity",
		primary: headingPattern(`space\s+complexity`),
		assign:  func(r *StructuredResponse, s string, _ []string) { r.SpaceComplexity = s },
	},
	{
		name:    "code",
		primary: headingPattern(`(?:code(?:\s+solution)?|solution\s+code)`),
		// Content is ignored for assignment: code comes from fence extraction.
		// The heading still participates as a boundary for other sections.
		assign: func(_ *StructuredResponse, _ string, _ []string) {},
	},
	{
		name:    "edge_cases",
		primary: headingPattern(`edge\s+cases?`),
		list:    true,
		assign:  func(r *StructuredResponse, _ string, items []string) { r.EdgeCases = items },
	},
	{
		name:      "follow_ups",
		primary:   headingPattern(`follow[\s-]?up\s+questions?`),
		secondary: regexp.MustCompile(`(?i)^\s*(?:#{1,6}\s*)?(?:\d{1,2}\s*[.):]\s*)?.{0,20}follow[\s-]?ups?\b.*$`),
		list:      true,
		assign:    func(r *StructuredResponse, _ string, items []string) { r.FollowUps = items },
	},
	{
		name:    "common_mistakes",
		primary: headingPattern(`common\s+mistakes?`),
		list:    true,
		assign:  func(r *StructuredResponse, _ string, items []string) { r.CommonMistakes = items },
	},
	{
		name:    "variations",
		primary: headingPattern(`variations?`),
		list:    true,
		assign:  func(r *StructuredResponse, _ string, items []string) { r.Variations = items },
	},
}

// fencedCodeRe matches a fenced code block, with or without a language tag.
var fencedCodeRe = regexp.MustCompile("(?s)```[a-zA-Z0-9+#_-]*[ \t]*\r?\n(.*?)```")

// listItemRe matches one bullet or numbered list line and captures its text.
var listItemRe = regexp.MustCompile(`^\s*(?:[-*•]|\d{1,2}[.)])\s+(.+)$`)

// ParseAnalysis extracts the structured record from a model reply. It never
// fails: sections that cannot be located keep their defaults, and if nothing
// at all can be extracted the whole raw text lands in Understanding so no
// information is silently dropped.
func ParseAnalysis(raw string) StructuredResponse {
	resp := StructuredResponse{
		EdgeCases:      []string{},
		FollowUps:      []string{},
		CommonMistakes: []string{},
		Variations:     []string{},
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return resp
	}

	lines := strings.Split(raw, "\n")
	bounds := findHeadings(lines)

	for i, rule := range analysisSections {
		start, ok := bounds[i]
		if !ok {
			continue
		}
		body := captureUntilNextHeading(lines, start+1, bounds)
		if rule.list {
			rule.assign(&resp, body, parseListItems(body))
		} else {
			rule.assign(&resp, body, nil)
		}
	}

	// Code is pulled from a fenced block independently of heading order:
	// models frequently reorder or omit the numbered code heading.
	resp.Code = extractFencedCode(raw)

	// Total-failure fallback: hand the caller the raw text instead of nothing.
	if resp.IsEmpty() {
		resp.Understanding = trimmed
	}

	return resp
}

// findHeadings locates the first heading line for each section rule. Primary
// matches win; a rule's secondary pattern is consulted only when its primary
// matched nowhere in the text.
func findHeadings(lines []string) map[int]int {
	bounds := make(map[int]int, len(analysisSections))
	for i, rule := range analysisSections {
		for n, line := range lines {
			if rule.primary.MatchString(line) {
				bounds[i] = n
				break
			}
		}
		if _, ok := bounds[i]; !ok && rule.secondary != nil {
			for n, line := range lines {
				if rule.secondary.MatchString(line) {
					bounds[i] = n
					break
				}
			}
		}
	}
	return bounds
}

// captureUntilNextHeading joins lines from start up to the next recognized
// heading (of any section) or end of text.
func captureUntilNextHeading(lines []string, start int, bounds map[int]int) string {
	end := len(lines)
	for _, h := range bounds {
		if h >= start && h < end {
			end = h
		}
	}
	return strings.TrimSpace(strings.Join(lines[start:end], "\n"))
}

// parseListItems keeps only lines that look like list items, with markers
// stripped and empties discarded.
func parseListItems(body string) []string {
	items := []string{}
	for _, line := range strings.Split(body, "\n") {
		m := listItemRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if item := strings.TrimSpace(m[1]); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// extractFencedCode returns the longest fenced code block in the text.
// Replies often contain small illustrative fragments; the solution is the
// long one.
func extractFencedCode(raw string) string {
	var best string
	for _, m := range fencedCodeRe.FindAllStringSubmatch(raw, -1) {
		if len(m[1]) > len(best) {
			best = m[1]
		}
	}
	return strings.TrimRight(best, "\n")
}
