package assessment

// RecordKind distinguishes Level One rating records from deep-dive records.
type RecordKind string

const (
	RecordLevelOne RecordKind = "level_one"
	RecordDeepDive RecordKind = "deep_dive"
)

// Record is one aggregated response handed to plan generation.
type Record struct {
	Area             string     `json:"area"`
	Kind             RecordKind `json:"kind"`
	Question         string     `json:"question"`
	ConfidencePrompt string     `json:"confidencePrompt,omitempty"`
	SkillRating      int        `json:"skillRating,omitempty"`
	ConfidenceRating int        `json:"confidenceRating,omitempty"`
	Rating           int        `json:"rating,omitempty"`
	Response         string     `json:"response,omitempty"`
	Reflection       string     `json:"reflection,omitempty"`
}

// Responses aggregates the full response set of a completed session: all
// Level One responses in area-then-question order, followed by the deep-dive
// responses in the order their rounds were completed. This ordering is what
// the plan generation consumer expects.
func (s *Session) Responses() ([]Record, error) {
	if s.state != StateComplete {
		return nil, ErrNotComplete
	}

	var records []Record
	for areaIdx, area := range s.areas {
		for questionIdx := range area.Questions {
			response, answered := s.levelOne[levelOneKey{area: areaIdx, question: questionIdx}]
			if !answered {
				continue
			}
			records = append(records, Record{
				Area:             response.Area,
				Kind:             RecordLevelOne,
				Question:         response.SkillPrompt,
				ConfidencePrompt: response.ConfidencePrompt,
				SkillRating:      response.Skill,
				ConfidenceRating: response.Confidence,
			})
		}
	}
	for _, round := range s.completedRounds {
		for _, question := range round.Questions {
			answer, answered := round.Answers[question.ID]
			if !answered {
				continue
			}
			records = append(records, Record{
				Area:       round.Area,
				Kind:       RecordDeepDive,
				Question:   answer.Question.Prompt,
				Rating:     answer.Rating,
				Response:   answer.Response,
				Reflection: answer.Reflection,
			})
		}
	}
	return records, nil
}
