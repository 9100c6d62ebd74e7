package main

import (
	"net/http"
	"strconv"

	"github.com/RaheesAhmed/growthcompass/internal/assessment"
	"github.com/RaheesAhmed/growthcompass/internal/errors"
	"github.com/RaheesAhmed/growthcompass/internal/themes"
)

type assessmentTemplateData struct {
	State            string
	RoleName         string
	Area             string
	SkillPrompt      string
	ConfidencePrompt string

	Question            themes.Question
	Response            string
	Reflection          string
	DeepDiveNumber      int
	DeepDiveTotal       int
	DeepDiveAllAnswered bool

	Progress  float64
	Scale     []int
	CanGoBack bool
	Error     string
}

func assessmentData(s *assessment.Session) assessmentTemplateData {
	data := assessmentTemplateData{
		State:    string(s.State()),
		RoleName: s.Role(),
		Progress: s.Progress(),
		Scale:    []int{1, 2, 3, 4, 5},
	}

	switch s.State() {
	case assessment.StateAwaitingLevelOneRating, assessment.StateAwaitingDeepDiveDecision:
		if area, err := s.CurrentArea(); err == nil {
			data.Area = area.Name
		}
		if question, err := s.CurrentQuestion(); err == nil {
			data.SkillPrompt = question.Skill
			data.ConfidencePrompt = question.Confidence
		}
	case assessment.StateInDeepDive:
		round := s.ActiveDeepDive()
		data.Area = round.Area
		data.Question = round.CurrentDeepDiveQuestion()
		data.DeepDiveNumber = round.Cursor + 1
		data.DeepDiveTotal = len(round.Questions)
		data.DeepDiveAllAnswered = round.Answered() == len(round.Questions)
		if answer, answered := round.Answers[data.Question.ID]; answered {
			data.Response = answer.Response
			data.Reflection = answer.Reflection
		}
	case assessment.StateComplete:
	}

	data.CanGoBack = data.Progress > 0 || s.State() != assessment.StateAwaitingLevelOneRating
	return data
}

// currentSessionID fetches the questionnaire session ID from the HTTP
// session. The empty string means the respondent has not been classified yet.
func (app *application) currentSessionID(r *http.Request) string {
	return app.sessionManager.GetString(r.Context(), assessmentSessionKey)
}

func (app *application) assessmentPage(w http.ResponseWriter, r *http.Request) {
	sessionID := app.currentSessionID(r)
	if sessionID == "" {
		http.Redirect(w, r, "/classify", http.StatusSeeOther)
		return
	}

	var data assessmentTemplateData
	err := app.sessions.Do(sessionID, func(s *assessment.Session) error {
		data = assessmentData(s)
		return nil
	})
	if err != nil {
		// The session is gone, e.g. after a server restart. Start over.
		app.sessionManager.Remove(r.Context(), assessmentSessionKey)
		http.Redirect(w, r, "/classify", http.StatusSeeOther)
		return
	}

	app.render(w, r, http.StatusOK, "assessment", data)
}

// submitRating handles the Level One rating pair for the current question.
func (app *application) submitRating(w http.ResponseWriter, r *http.Request) {
	sessionID := app.currentSessionID(r)
	if sessionID == "" {
		http.Redirect(w, r, "/classify", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	skill, skillErr := strconv.Atoi(r.PostForm.Get("skill"))
	confidence, confidenceErr := strconv.Atoi(r.PostForm.Get("confidence"))
	if skillErr != nil || confidenceErr != nil {
		app.clientError(w, r, http.StatusUnprocessableEntity)
		return
	}

	var data assessmentTemplateData
	err := app.sessions.Do(sessionID, func(s *assessment.Session) error {
		if _, err := s.SubmitLevelOneRating(skill, confidence); err != nil {
			data = assessmentData(s)
			return err
		}
		return nil
	})
	switch {
	case err == nil:
		http.Redirect(w, r, "/assessment", http.StatusSeeOther)
	case errors.Is(err, assessment.ErrRatingOutOfRange):
		data.Error = "Ratings go from 1 to 5."
		app.render(w, r, http.StatusUnprocessableEntity, "assessment", data)
	case errors.Is(err, assessment.ErrInvalidTransition):
		// A stale submission, e.g. a double-click. Show the current state.
		http.Redirect(w, r, "/assessment", http.StatusSeeOther)
	default:
		app.serverError(w, r, errors.Wrap(err, "submit rating"))
	}
}

// resolveDeepDive handles the yes/no answer to a deep-dive offer.
func (app *application) resolveDeepDive(w http.ResponseWriter, r *http.Request) {
	sessionID := app.currentSessionID(r)
	if sessionID == "" {
		http.Redirect(w, r, "/classify", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	accept := r.PostForm.Get("accept") == "yes"

	err := app.sessions.Do(sessionID, func(s *assessment.Session) error {
		_, err := s.ResolveDeepDive(accept)
		return err
	})
	if err != nil && !errors.Is(err, assessment.ErrInvalidTransition) {
		app.serverError(w, r, errors.Wrap(err, "resolve deep dive"))
		return
	}
	http.Redirect(w, r, "/assessment", http.StatusSeeOther)
}

func (app *application) submitDeepDiveAnswer(w http.ResponseWriter, r *http.Request) {
	sessionID := app.currentSessionID(r)
	if sessionID == "" {
		http.Redirect(w, r, "/classify", http.StatusSeeOther)
		return
	}
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}
	questionID := r.PostForm.Get("question_id")
	rating, ratingErr := strconv.Atoi(r.PostForm.Get("rating"))
	if ratingErr != nil {
		app.clientError(w, r, http.StatusUnprocessableEntity)
		return
	}
	response := r.PostForm.Get("response")
	reflection := r.PostForm.Get("reflection")

	var data assessmentTemplateData
	err := app.sessions.Do(sessionID, func(s *assessment.Session) error {
		if err := s.SubmitDeepDiveAnswer(questionID, rating, response, reflection); err != nil {
			data = assessmentData(s)
			return err
		}
		return nil
	})
	switch {
	case err == nil:
		http.Redirect(w, r, "/assessment", http.StatusSeeOther)
	case errors.Is(err, assessment.ErrRatingOutOfRange):
		data.Error = "Ratings go from 1 to 5."
		app.render(w, r, http.StatusUnprocessableEntity, "assessment", data)
	case errors.Is(err, assessment.ErrUnknownQuestion), errors.Is(err, assessment.ErrInvalidTransition):
		http.Redirect(w, r, "/assessment", http.StatusSeeOther)
	default:
		app.serverError(w, r, errors.Wrap(err, "submit deep dive answer"))
	}
}

func (app *application) finishDeepDive(w http.ResponseWriter, r *http.Request) {
	sessionID := app.currentSessionID(r)
	if sessionID == "" {
		http.Redirect(w, r, "/classify", http.StatusSeeOther)
		return
	}

	var data assessmentTemplateData
	err := app.sessions.Do(sessionID, func(s *assessment.Session) error {
		if _, err := s.CompleteDeepDive(); err != nil {
			data = assessmentData(s)
			return err
		}
		return nil
	})
	switch {
	case err == nil, errors.Is(err, assessment.ErrInvalidTransition):
		http.Redirect(w, r, "/assessment", http.StatusSeeOther)
	case errors.Is(err, assessment.ErrIncompleteDeepDive):
		data.Error = "Please answer every question before finishing the deep dive."
		app.render(w, r, http.StatusUnprocessableEntity, "assessment", data)
	default:
		app.serverError(w, r, errors.Wrap(err, "finish deep dive"))
	}
}

func (app *application) assessmentBack(w http.ResponseWriter, r *http.Request) {
	sessionID := app.currentSessionID(r)
	if sessionID == "" {
		http.Redirect(w, r, "/classify", http.StatusSeeOther)
		return
	}

	err := app.sessions.Do(sessionID, func(s *assessment.Session) error {
		s.Back()
		return nil
	})
	if err != nil {
		app.sessionManager.Remove(r.Context(), assessmentSessionKey)
		http.Redirect(w, r, "/classify", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/assessment", http.StatusSeeOther)
}
