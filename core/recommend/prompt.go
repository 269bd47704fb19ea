package recommend

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

const (
	// SystemPrompt frames the model as a counselor and constrains the output shape.
	SystemPrompt = "You are an expert career counselor. Provide thoughtful, personalized career " +
		"recommendations based on student assessments. Respond with JSON only."

	topStreams = 3
	topSkills  = 6
)

// BuildPrompt serializes the aggregated scores and raw answers into a
// deterministic user prompt. Maps are embedded as JSON (Go sorts map keys
// when marshalling) and the top categories are listed explicitly so the
// model weighs the strongest signals first. Empty score maps are embedded
// as-is; an unanswered quiz still produces a valid prompt.
func BuildPrompt(skillScores, streamScores map[string]int, answers map[int]string) string {
	skillsJSON, _ := json.MarshalIndent(skillScores, "", "  ")
	streamsJSON, _ := json.MarshalIndent(streamScores, "", "  ")
	answersJSON, _ := json.Marshal(answers)

	var b strings.Builder
	b.WriteString("Based on the following career assessment results, recommend 3-5 suitable career paths.\n\n")

	if top := topCategories(streamScores, topStreams); len(top) > 0 {
		fmt.Fprintf(&b, "Strongest academic streams: %s\n", strings.Join(top, ", "))
	}
	if top := topCategories(skillScores, topSkills); len(top) > 0 {
		fmt.Fprintf(&b, "Strongest skills: %s\n", strings.Join(top, ", "))
	}

	fmt.Fprintf(&b, "\nSkill Scores: %s\n", skillsJSON)
	fmt.Fprintf(&b, "Stream Scores: %s\n", streamsJSON)
	fmt.Fprintf(&b, "User Answers: %s\n", answersJSON)

	b.WriteString(`
For each recommended career, provide:
1. Career name
2. Why it's a good match (2-3 sentences)
3. Key skills required
4. Average salary range
5. Education requirements

Format the response as a JSON array of objects with fields: "name", "match_reason", "required_skills", "salary_range", "education".`)

	return b.String()
}

// topCategories returns the n highest-scoring categories, ordered by score
// descending then label ascending so the prompt is deterministic.
func topCategories(scores map[string]int, n int) []string {
	if n <= 0 || len(scores) == 0 {
		return nil
	}

	top := make([]string, 0, len(scores))
	for tag := range scores {
		top = append(top, tag)
	}
	sort.Slice(top, func(i, j int) bool {
		if scores[top[i]] != scores[top[j]] {
			return scores[top[i]] > scores[top[j]]
		}
		return top[i] < top[j]
	})

	if len(top) > n {
		top = top[:n]
	}
	return top
}
