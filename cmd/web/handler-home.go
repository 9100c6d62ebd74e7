package main

import (
	"net/http"

	"github.com/RaheesAhmed/growthcompass/internal/errors"
	"github.com/RaheesAhmed/growthcompass/internal/models"
)

type homeTemplateData struct {
	Recent []models.AssessmentSummary
}

func (app *application) home(w http.ResponseWriter, r *http.Request) {
	recent, err := app.assessments.List(r.Context(), 5)
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "list assessments"))
		return
	}

	app.render(w, r, http.StatusOK, "home", homeTemplateData{Recent: recent})
}
