package main

// Session keys for the scs session manager. The questionnaire itself lives in
// the in-memory session store; scs only carries the pointer to it.
const (
	assessmentSessionKey = "assessmentSessionID"
	latestAssessmentKey  = "latestAssessmentID"
)
