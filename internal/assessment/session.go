// Package assessment implements the adaptive questionnaire: progression
// through the capability areas, the conditional deep-dive branching driven by
// the Level One ratings, and the final aggregation of responses for plan
// generation.
package assessment

import (
	"log/slog"

	"github.com/RaheesAhmed/growthcompass/internal/classifier"
	"github.com/RaheesAhmed/growthcompass/internal/errors"
	"github.com/RaheesAhmed/growthcompass/internal/questions"
	"github.com/RaheesAhmed/growthcompass/internal/themes"
)

// State is the questionnaire state for one session.
type State string

const (
	StateAwaitingLevelOneRating   State = "awaiting_level_one_rating"
	StateAwaitingDeepDiveDecision State = "awaiting_deep_dive_decision"
	StateInDeepDive               State = "in_deep_dive"
	StateComplete                 State = "complete"
)

// Directive tells the caller what to present next after a submission.
type Directive string

const (
	DirectiveAdvance       Directive = "advance"
	DirectiveOfferDeepDive Directive = "offer_deep_dive"
	DirectiveEnterDeepDive Directive = "enter_deep_dive"
	DirectiveComplete      Directive = "complete"
)

// A deep dive is offered when either rating falls below these cutoffs.
const (
	skillCutoff      = 4
	confidenceCutoff = 3
)

const (
	ratingMin = 1
	ratingMax = 5
)

var (
	ErrRatingOutOfRange   = errors.NewSentinel("rating out of range")
	ErrInvalidTransition  = errors.NewSentinel("submission does not match questionnaire state")
	ErrIncompleteDeepDive = errors.NewSentinel("deep dive has unanswered questions")
	ErrUnknownQuestion    = errors.NewSentinel("unknown deep dive question")
	ErrNotComplete        = errors.NewSentinel("questionnaire is not complete")
)

// Area is one capability area resolved against the respondent's level.
type Area struct {
	Name      string
	Questions []questions.LevelOneQuestion
	Narrative string
}

// LevelOneResponse is the recorded rating pair for one Level One question.
type LevelOneResponse struct {
	Area             string
	SkillPrompt      string
	ConfidencePrompt string
	Skill            int
	Confidence       int
}

// DeepDiveAnswer is the recorded answer to one deep-dive question.
type DeepDiveAnswer struct {
	Question   themes.Question
	Rating     int
	Response   string
	Reflection string
}

// DeepDiveRound is one deep dive through a capability area. The triggering
// Level One ratings are carried along as context for plan generation.
type DeepDiveRound struct {
	Area              string
	TriggerSkill      int
	TriggerConfidence int
	Questions         []themes.Question
	Answers           map[string]DeepDiveAnswer
	// Cursor points at the question currently presented.
	Cursor int
}

type levelOneKey struct {
	area     int
	question int
}

// Session is the in-memory questionnaire state for one respondent. It is not
// safe for concurrent use; the [Store] serializes access per session.
type Session struct {
	id         string
	levelIndex int
	role       string

	areas         []Area
	state         State
	areaIndex     int
	questionIndex int

	levelOne           map[levelOneKey]LevelOneResponse
	completedDeepDives map[string]bool
	completedRounds    []*DeepDiveRound
	active             *DeepDiveRound
}

// NewSession resolves the question content for the classified level and
// starts the questionnaire at the first capability area.
func NewSession(id string, result classifier.Result, bank *questions.Bank) (*Session, error) {
	capabilities := bank.Capabilities()
	areas := make([]Area, 0, len(capabilities))
	for _, capability := range capabilities {
		question, err := bank.LevelOne(capability, result.LevelIndex)
		if err != nil {
			return nil, errors.Wrap(err, "resolve level one question", slog.String("capability", capability))
		}
		narrative, err := bank.Narrative(capability, result.LevelIndex)
		if err != nil {
			return nil, errors.Wrap(err, "resolve narrative", slog.String("capability", capability))
		}
		areas = append(areas, Area{
			Name:      capability,
			Questions: []questions.LevelOneQuestion{question},
			Narrative: narrative,
		})
	}

	return &Session{
		id:                 id,
		levelIndex:         result.LevelIndex,
		role:               result.RoleName,
		areas:              areas,
		state:              StateAwaitingLevelOneRating,
		areaIndex:          0,
		questionIndex:      0,
		levelOne:           map[levelOneKey]LevelOneResponse{},
		completedDeepDives: map[string]bool{},
		completedRounds:    nil,
		active:             nil,
	}, nil
}

func (s *Session) ID() string      { return s.id }
func (s *Session) Role() string    { return s.role }
func (s *Session) LevelIndex() int { return s.levelIndex }
func (s *Session) State() State    { return s.state }

// PendingDeepDiveOffer reports whether the session waits on a yes/no
// deep-dive decision.
func (s *Session) PendingDeepDiveOffer() bool {
	return s.state == StateAwaitingDeepDiveDecision
}

// CurrentArea returns the capability area the cursor points at.
func (s *Session) CurrentArea() (Area, error) {
	if s.areaIndex < 0 || s.areaIndex >= len(s.areas) {
		return Area{}, errors.Wrap(ErrInvalidTransition, "cursor outside areas", slog.Int("areaIndex", s.areaIndex))
	}
	return s.areas[s.areaIndex], nil
}

// CurrentQuestion returns the Level One question the cursor points at.
func (s *Session) CurrentQuestion() (questions.LevelOneQuestion, error) {
	area, err := s.CurrentArea()
	if err != nil {
		return questions.LevelOneQuestion{}, err
	}
	if s.questionIndex < 0 || s.questionIndex >= len(area.Questions) {
		return questions.LevelOneQuestion{}, errors.Wrap(ErrInvalidTransition, "cursor outside questions",
			slog.Int("questionIndex", s.questionIndex))
	}
	return area.Questions[s.questionIndex], nil
}

// ActiveDeepDive returns the deep dive in progress, or nil.
func (s *Session) ActiveDeepDive() *DeepDiveRound {
	return s.active
}

// SubmitLevelOneRating records the rating pair for the current question and
// decides what happens next: strong ratings advance straight on, weak ones
// trigger a deep-dive offer unless the area already had its deep dive or has
// no deep-dive content.
func (s *Session) SubmitLevelOneRating(skill, confidence int) (Directive, error) {
	if s.state != StateAwaitingLevelOneRating {
		return "", errors.Wrap(ErrInvalidTransition, "expected level one rating", slog.String("state", string(s.state)))
	}
	if err := validateRating(skill); err != nil {
		return "", errors.Wrap(err, "skill rating")
	}
	if err := validateRating(confidence); err != nil {
		return "", errors.Wrap(err, "confidence rating")
	}

	area := s.areas[s.areaIndex]
	question := area.Questions[s.questionIndex]
	s.levelOne[levelOneKey{area: s.areaIndex, question: s.questionIndex}] = LevelOneResponse{
		Area:             area.Name,
		SkillPrompt:      question.Skill,
		ConfidencePrompt: question.Confidence,
		Skill:            skill,
		Confidence:       confidence,
	}

	if skill >= skillCutoff && confidence >= confidenceCutoff {
		return s.advance(), nil
	}
	if s.completedDeepDives[area.Name] {
		// An area is deep-dived at most once per session.
		return s.advance(), nil
	}
	if len(themes.BuildQuestions(area.Name, area.Narrative)) == 0 {
		// No deep-dive content available: treated as an automatic "no".
		return s.advance(), nil
	}

	s.state = StateAwaitingDeepDiveDecision
	return DirectiveOfferDeepDive, nil
}

// ResolveDeepDive answers a pending deep-dive offer.
func (s *Session) ResolveDeepDive(accept bool) (Directive, error) {
	if s.state != StateAwaitingDeepDiveDecision {
		return "", errors.Wrap(ErrInvalidTransition, "no deep dive offered", slog.String("state", string(s.state)))
	}
	if !accept {
		return s.advance(), nil
	}

	area := s.areas[s.areaIndex]
	trigger := s.levelOne[levelOneKey{area: s.areaIndex, question: s.questionIndex}]
	s.active = &DeepDiveRound{
		Area:              area.Name,
		TriggerSkill:      trigger.Skill,
		TriggerConfidence: trigger.Confidence,
		Questions:         themes.BuildQuestions(area.Name, area.Narrative),
		Answers:           map[string]DeepDiveAnswer{},
		Cursor:            0,
	}
	s.state = StateInDeepDive
	return DirectiveEnterDeepDive, nil
}

// SubmitDeepDiveAnswer records an answer for one deep-dive question and moves
// the round cursor to the next unanswered question.
func (s *Session) SubmitDeepDiveAnswer(questionID string, rating int, response, reflection string) error {
	if s.state != StateInDeepDive || s.active == nil {
		return errors.Wrap(ErrInvalidTransition, "no deep dive in progress", slog.String("state", string(s.state)))
	}
	if err := validateRating(rating); err != nil {
		return err
	}
	question, found := s.active.question(questionID)
	if !found {
		return errors.Wrap(ErrUnknownQuestion, "question not part of this deep dive",
			slog.String("questionID", questionID))
	}

	s.active.Answers[questionID] = DeepDiveAnswer{
		Question:   question,
		Rating:     rating,
		Response:   response,
		Reflection: reflection,
	}
	s.active.Cursor = s.active.nextUnanswered()
	return nil
}

// CompleteDeepDive finishes the active round. Every question must carry a
// rating, a non-empty response, and a reflection where required; otherwise
// the submission is rejected and the session stays in the deep dive.
func (s *Session) CompleteDeepDive() (Directive, error) {
	if s.state != StateInDeepDive || s.active == nil {
		return "", errors.Wrap(ErrInvalidTransition, "no deep dive in progress", slog.String("state", string(s.state)))
	}
	for _, question := range s.active.Questions {
		answer, answered := s.active.Answers[question.ID]
		if !answered {
			return "", errors.Wrap(ErrIncompleteDeepDive, "question unanswered", slog.String("questionID", question.ID))
		}
		if answer.Response == "" {
			return "", errors.Wrap(ErrIncompleteDeepDive, "response missing", slog.String("questionID", question.ID))
		}
		if question.RequiresReflection && answer.Reflection == "" {
			return "", errors.Wrap(ErrIncompleteDeepDive, "reflection missing", slog.String("questionID", question.ID))
		}
	}

	s.completedDeepDives[s.active.Area] = true
	s.completedRounds = append(s.completedRounds, s.active)
	s.active = nil
	return s.advance(), nil
}

// Back moves one step backward over the flattened question sequence. Moving
// backward out of a deep dive abandons the round and lands on the last Level
// One question of the previous area; it is a linear undo, not a semantic
// "undo the deep-dive decision".
func (s *Session) Back() {
	switch s.state {
	case StateInDeepDive:
		if s.active != nil && s.active.Cursor > 0 {
			s.active.Cursor--
			return
		}
		s.active = nil
		s.state = StateAwaitingLevelOneRating
		if s.areaIndex > 0 {
			s.areaIndex--
			s.questionIndex = len(s.areas[s.areaIndex].Questions) - 1
		} else {
			s.questionIndex = 0
		}
	case StateAwaitingDeepDiveDecision:
		// The offer sits between two questions; backward returns to the
		// question that triggered it.
		s.state = StateAwaitingLevelOneRating
	case StateComplete:
		s.state = StateAwaitingLevelOneRating
		s.areaIndex = len(s.areas) - 1
		s.questionIndex = len(s.areas[s.areaIndex].Questions) - 1
	case StateAwaitingLevelOneRating:
		if s.questionIndex > 0 {
			s.questionIndex--
		} else if s.areaIndex > 0 {
			s.areaIndex--
			s.questionIndex = len(s.areas[s.areaIndex].Questions) - 1
		}
	}
}

// Progress reports the approximate completion percentage: answered entries
// over the total Level One question count plus the question counts of the
// deep dives entered so far. Deep dives not yet triggered are unknowable and
// excluded, which is why this is an approximation.
func (s *Session) Progress() float64 {
	answered := len(s.levelOne)
	total := 0
	for _, area := range s.areas {
		total += len(area.Questions)
	}
	for _, round := range s.completedRounds {
		answered += len(round.Answers)
		total += len(round.Questions)
	}
	if s.active != nil {
		answered += len(s.active.Answers)
		total += len(s.active.Questions)
	}
	if total == 0 {
		return 0
	}
	return float64(answered) / float64(total) * 100
}

func (s *Session) advance() Directive {
	s.questionIndex++
	if s.questionIndex >= len(s.areas[s.areaIndex].Questions) {
		s.areaIndex++
		s.questionIndex = 0
	}
	if s.areaIndex >= len(s.areas) {
		s.areaIndex = len(s.areas) - 1
		s.questionIndex = len(s.areas[s.areaIndex].Questions) - 1
		s.state = StateComplete
		return DirectiveComplete
	}
	s.state = StateAwaitingLevelOneRating
	return DirectiveAdvance
}

func validateRating(rating int) error {
	if rating < ratingMin || rating > ratingMax {
		return errors.Wrap(ErrRatingOutOfRange, "rating must be 1-5", slog.Int("rating", rating))
	}
	return nil
}

func (r *DeepDiveRound) question(id string) (themes.Question, bool) {
	for _, question := range r.Questions {
		if question.ID == id {
			return question, true
		}
	}
	return themes.Question{}, false
}

func (r *DeepDiveRound) nextUnanswered() int {
	for i, question := range r.Questions {
		if _, answered := r.Answers[question.ID]; !answered {
			return i
		}
	}
	return len(r.Questions) - 1
}

// CurrentDeepDiveQuestion returns the question at the round cursor.
func (r *DeepDiveRound) CurrentDeepDiveQuestion() themes.Question {
	if r.Cursor < 0 || r.Cursor >= len(r.Questions) {
		return themes.Question{}
	}
	return r.Questions[r.Cursor]
}

// Answered reports how many questions of the round have answers.
func (r *DeepDiveRound) Answered() int {
	return len(r.Answers)
}
