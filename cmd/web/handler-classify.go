package main

import (
	"net/http"
	"strconv"

	"github.com/RaheesAhmed/growthcompass/internal/assessment"
	"github.com/RaheesAhmed/growthcompass/internal/classifier"
	"github.com/RaheesAhmed/growthcompass/internal/errors"
	"github.com/google/uuid"
)

type jobFunctionOption struct {
	Value string
	Label string
}

func jobFunctionOptions() []jobFunctionOption {
	labels := map[classifier.JobFunction]string{
		classifier.JobFunctionIndividualContributor: "Individual contributor",
		classifier.JobFunctionTeamLead:              "Team lead",
		classifier.JobFunctionDepartmentManager:     "Department manager",
		classifier.JobFunctionSeniorManager:         "Senior manager",
		classifier.JobFunctionDirector:              "Director",
		classifier.JobFunctionExecutive:             "Executive",
		classifier.JobFunctionCLevel:                "C-level",
	}
	options := make([]jobFunctionOption, 0, len(labels))
	for _, jobFunction := range classifier.JobFunctions() {
		options = append(options, jobFunctionOption{
			Value: string(jobFunction),
			Label: labels[jobFunction],
		})
	}
	return options
}

type classifyFormData struct {
	DirectReports       string
	HasIndirectReports  bool
	JobFunction         string
	DecisionScope       string
	LevelsToCEO         string
	BudgetScope         string
	ReportingRoleTitles string
}

type classifyTemplateData struct {
	Form         classifyFormData
	JobFunctions []jobFunctionOption
	Error        string
}

func (app *application) classifyForm(w http.ResponseWriter, r *http.Request) {
	app.render(w, r, http.StatusOK, "classify", classifyTemplateData{
		Form:         classifyFormData{DirectReports: "0", LevelsToCEO: "0"},
		JobFunctions: jobFunctionOptions(),
	})
}

func (app *application) classify(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.clientError(w, r, http.StatusBadRequest)
		return
	}

	form := classifyFormData{
		DirectReports:       r.PostForm.Get("direct_reports"),
		HasIndirectReports:  r.PostForm.Get("has_indirect_reports") != "",
		JobFunction:         r.PostForm.Get("job_function"),
		DecisionScope:       r.PostForm.Get("decision_scope"),
		LevelsToCEO:         r.PostForm.Get("levels_to_ceo"),
		BudgetScope:         r.PostForm.Get("budget_scope"),
		ReportingRoleTitles: r.PostForm.Get("reporting_titles"),
	}

	retry := func(message string) {
		app.render(w, r, http.StatusUnprocessableEntity, "classify", classifyTemplateData{
			Form:         form,
			JobFunctions: jobFunctionOptions(),
			Error:        message,
		})
	}

	directReports, err := strconv.Atoi(form.DirectReports)
	if err != nil {
		retry("Please give the number of direct reports as a whole number.")
		return
	}
	levelsToCEO, err := strconv.Atoi(form.LevelsToCEO)
	if err != nil {
		retry("Please give the number of levels to the CEO as a whole number.")
		return
	}

	input := classifier.Input{
		DirectReportCount:   directReports,
		HasIndirectReports:  form.HasIndirectReports,
		JobFunction:         classifier.JobFunction(form.JobFunction),
		DecisionScope:       classifier.DecisionScope(form.DecisionScope),
		LevelsToCEO:         levelsToCEO,
		BudgetScope:         classifier.BudgetScope(form.BudgetScope),
		ReportingRoleTitles: form.ReportingRoleTitles,
	}

	result, err := classifier.Classify(input)
	if err != nil {
		if errors.Is(err, classifier.ErrInvalidInput) {
			retry("Some answers were not recognized. Please check the form and try again.")
			return
		}
		app.serverError(w, r, errors.Wrap(err, "classify"))
		return
	}

	sessionID := uuid.NewString()
	session, err := assessment.NewSession(sessionID, result, app.bank)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "create assessment session"))
		return
	}
	app.sessions.Put(session)
	app.sessionManager.Put(r.Context(), assessmentSessionKey, sessionID)

	http.Redirect(w, r, "/assessment", http.StatusSeeOther)
}
