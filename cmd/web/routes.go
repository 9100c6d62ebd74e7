package main

import (
	"io/fs"
	"net/http"

	"github.com/RaheesAhmed/growthcompass/ui"
	"github.com/justinas/alice"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	staticFiles, err := fs.Sub(ui.Files, "static")
	if err != nil {
		panic(err)
	}
	mux.Handle("GET /static/", cacheForeverHeaders(
		http.StripPrefix("/static", http.FileServerFS(staticFiles))))

	mux.HandleFunc("GET /api/healthy", app.healthy)

	dynamic := alice.New(
		app.sessionManager.LoadAndSave,
		noSurf,
		app.commonContext,
		func(h http.Handler) http.Handler { return timeoutHandler(h, defaultTimeout) },
	)

	mux.Handle("GET /{$}", dynamic.ThenFunc(app.home))
	mux.Handle("GET /classify", dynamic.ThenFunc(app.classifyForm))
	mux.Handle("POST /classify", dynamic.ThenFunc(app.classify))
	mux.Handle("GET /assessment", dynamic.ThenFunc(app.assessmentPage))
	mux.Handle("POST /assessment/rate", dynamic.ThenFunc(app.submitRating))
	mux.Handle("POST /assessment/deep-dive", dynamic.ThenFunc(app.resolveDeepDive))
	mux.Handle("POST /assessment/answer", dynamic.ThenFunc(app.submitDeepDiveAnswer))
	mux.Handle("POST /assessment/finish-deep-dive", dynamic.ThenFunc(app.finishDeepDive))
	mux.Handle("POST /assessment/back", dynamic.ThenFunc(app.assessmentBack))
	mux.Handle("POST /plan", dynamic.ThenFunc(app.generatePlan))
	mux.Handle("GET /plan/{assessmentID}", dynamic.ThenFunc(app.planPage))

	// The stream stays open past the handler timeout, and scs's LoadAndSave
	// cannot write its cookie once streaming has started.
	sse := alice.New(app.serverSentEventMiddleware)
	mux.Handle("GET /plan/{assessmentID}/stream", sse.ThenFunc(app.planStream))

	return app.recoverPanic(app.logRequest(secureHeaders(mux)))
}
