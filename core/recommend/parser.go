package recommend

import (
	"encoding/json"
	"strings"
)

// coercion defaults; the model is untrusted free text and every field must
// end up displayable
const (
	defaultName        = "General Career Guidance"
	defaultMatchReason = "We recommend exploring various career options based on your skills."
	defaultSkill       = "Communication"
	defaultSalary      = "Varies by field"
	defaultEducation   = "Varies by career"
)

// fallbackCareers maps each academic stream to a fixed career template used
// when the model output cannot be parsed.
var fallbackCareers = map[string]CareerRecommendation{
	"science": {
		Name:           "Data Analyst",
		MatchReason:    "Based on your analytical skills and problem-solving abilities.",
		RequiredSkills: []string{"Data Analysis", "Statistics", "SQL"},
		SalaryRange:    "$60,000 - $90,000",
		Education:      "Bachelor's degree in a related field",
	},
	"commerce": {
		Name:           "Financial Analyst",
		MatchReason:    "Based on your organizational skills and interest in business.",
		RequiredSkills: []string{"Financial Modeling", "Accounting", "Excel"},
		SalaryRange:    "$55,000 - $85,000",
		Education:      "Bachelor's degree in finance or commerce",
	},
	"arts": {
		Name:           "Content Designer",
		MatchReason:    "Based on your creativity and communication strengths.",
		RequiredSkills: []string{"Writing", "Design Thinking", "Communication"},
		SalaryRange:    "$45,000 - $75,000",
		Education:      "Bachelor's degree in arts, design or humanities",
	},
	"vocational": {
		Name:           "Skilled Trades Technician",
		MatchReason:    "Based on your hands-on aptitude and drive to make an impact.",
		RequiredSkills: []string{"Technical Aptitude", "Problem Solving"},
		SalaryRange:    "$40,000 - $70,000",
		Education:      "Vocational training or apprenticeship",
	},
}

// Parse extracts structured career recommendations from the model's free-form
// text. It never fails and never returns an empty list: when the text yields
// no usable JSON array (parse failure, non-array, empty array), it falls back
// to the built-in table keyed by the caller's top streams.
func Parse(raw string, fallbackStreams map[string]int) Outcome {
	if recs, ok := parseArray(raw); ok {
		return Outcome{Source: SourceParsed, Recommendations: recs}
	}
	return Outcome{Source: SourceFallback, Recommendations: fallback(fallbackStreams)}
}

func parseArray(raw string) ([]CareerRecommendation, bool) {
	extracted, ok := extractJSONArray(stripFences(raw))
	if !ok {
		return nil, false
	}

	var entries []map[string]interface{}
	if err := json.Unmarshal([]byte(extracted), &entries); err != nil {
		return nil, false
	}
	if len(entries) == 0 {
		return nil, false
	}

	recs := make([]CareerRecommendation, 0, len(entries))
	for _, entry := range entries {
		recs = append(recs, coerce(entry))
	}
	return recs, true
}

// stripFences removes markdown code-fence markers (```json / ```) around the payload.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}

// extractJSONArray returns the first bracket-balanced [...] substring,
// tolerating prose around it. Brackets inside JSON strings are ignored.
func extractJSONArray(raw string) (string, bool) {
	start := strings.IndexByte(raw, '[')
	if start == -1 {
		return "", false
	}

	var (
		depth    int
		inString bool
		escaped  bool
	)
	for i := start; i < len(raw); i++ {
		c := raw[i]
		switch {
		case escaped:
			escaped = false
		case c == '\\' && inString:
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
			// skip brackets within strings
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}

// coerce maps one raw entry into a CareerRecommendation, substituting safe
// defaults for missing or malformed fields.
func coerce(entry map[string]interface{}) CareerRecommendation {
	rec := CareerRecommendation{
		Name:           stringField(entry, "name", defaultName),
		MatchReason:    stringField(entry, "match_reason", defaultMatchReason),
		SalaryRange:    stringField(entry, "salary_range", defaultSalary),
		Education:      stringField(entry, "education", defaultEducation),
		RequiredSkills: []string{defaultSkill},
	}

	if raw, ok := entry["required_skills"].([]interface{}); ok && len(raw) > 0 {
		skills := make([]string, 0, len(raw))
		for _, item := range raw {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				skills = append(skills, strings.TrimSpace(s))
			}
		}
		if len(skills) > 0 {
			rec.RequiredSkills = skills
		}
	}
	return rec
}

func stringField(entry map[string]interface{}, key, fallback string) string {
	if s, ok := entry[key].(string); ok && strings.TrimSpace(s) != "" {
		return strings.TrimSpace(s)
	}
	return fallback
}

// fallback builds at most one deterministic entry per top stream (up to 3);
// a generic entry when no stream scored at all.
func fallback(streamScores map[string]int) []CareerRecommendation {
	recs := make([]CareerRecommendation, 0, topStreams)
	for _, stream := range topCategories(streamScores, topStreams) {
		if rec, ok := fallbackCareers[stream]; ok {
			recs = append(recs, rec)
		}
	}
	if len(recs) == 0 {
		recs = append(recs, CareerRecommendation{
			Name:           defaultName,
			MatchReason:    defaultMatchReason,
			RequiredSkills: []string{defaultSkill, "Problem Solving"},
			SalaryRange:    defaultSalary,
			Education:      defaultEducation,
		})
	}
	return recs
}
