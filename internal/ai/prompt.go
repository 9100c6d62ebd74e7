package ai

import (
	"fmt"
	"strings"

	"github.com/RaheesAhmed/growthcompass/internal/assessment"
)

const systemPrompt = `You are an experienced leadership coach. You write ` +
	`practical, encouraging development plans grounded in the specific ` +
	`responses the leader gave, never generic advice. Structure the plan by ` +
	`capability area, lead with strengths, and give concrete next steps with ` +
	`a 90-day horizon.`

// BuildPrompt renders the assessment into the user message for plan
// generation. Level One ratings come first in questionnaire order, then the
// deep-dive responses with their free-text answers, so the model sees the
// same narrative arc the respondent went through.
func BuildPrompt(req PlanRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The leader's responsibility level is %q (level %d of 10).\n\n",
		req.RoleName, req.LevelIndex+1)

	b.WriteString("Self-assessment ratings (1-5):\n")
	for _, record := range req.Records {
		if record.Kind != assessment.RecordLevelOne {
			continue
		}
		fmt.Fprintf(&b, "- [%s] %s\n  Skill: %d, Confidence: %d\n",
			record.Area, record.Question, record.SkillRating, record.ConfidenceRating)
	}

	var wroteHeader bool
	for _, record := range req.Records {
		if record.Kind != assessment.RecordDeepDive {
			continue
		}
		if !wroteHeader {
			b.WriteString("\nDeep-dive responses for areas the leader wants to grow in:\n")
			wroteHeader = true
		}
		fmt.Fprintf(&b, "- [%s] %s\n  Rating: %d\n  Response: %s\n",
			record.Area, record.Question, record.Rating, record.Response)
		if record.Reflection != "" {
			fmt.Fprintf(&b, "  Reflection: %s\n", record.Reflection)
		}
	}

	b.WriteString("\nWrite a personalized growth plan for this leader.")
	return b.String()
}
