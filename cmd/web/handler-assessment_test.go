package main

import (
	"context"
	"encoding/json"
	"io"
	neturl "net/url"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/RaheesAhmed/growthcompass/internal/e2etest"
	"github.com/RaheesAhmed/growthcompass/internal/questions"
	"github.com/stretchr/testify/require"
)

func classifyValues() neturl.Values {
	return neturl.Values{
		"direct_reports": {"6"},
		"job_function":   {"department_manager"},
		"decision_scope": {"tactical"},
		"levels_to_ceo":  {"3"},
		"budget_scope":   {"department"},
		"reporting_titles": {
			"Team Leads, Coordinators",
		},
	}
}

func submitRating(
	t *testing.T,
	ctx context.Context,
	client *e2etest.Client,
	skill, confidence string,
) *goquery.Document {
	t.Helper()
	doc, err := client.SubmitForm(ctx, "/assessment", "/assessment/rate", neturl.Values{
		"skill":      {skill},
		"confidence": {confidence},
	})
	require.NoError(t, err)
	return doc
}

func TestHomePage(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	ctx := context.Background()

	doc, err := server.Client().GetDoc(ctx, "/")
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("a.button[href='/classify']").Length())
}

func TestAssessmentRequiresClassification(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	ctx := context.Background()

	// Without a classified session the questionnaire redirects to the form.
	doc, err := server.Client().GetDoc(ctx, "/assessment")
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("form[action='/classify']").Length())
}

func TestFullAssessmentWithHighRatings(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	ctx := context.Background()
	client := server.Client()

	doc, err := client.SubmitForm(ctx, "/classify", "/classify", classifyValues())
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("form[action='/assessment/rate']").Length())
	require.Contains(t, doc.Find(".role").Text(), "Manager")

	// Strong ratings walk straight through every capability area.
	bank, err := questions.Load()
	require.NoError(t, err)
	for range bank.Capabilities() {
		require.Equal(t, 1, doc.Find("form[action='/assessment/rate']").Length(),
			"expected a rating form, got:\n%s", docHTML(t, doc))
		doc = submitRating(t, ctx, client, "5", "4")
	}
	require.Equal(t, 1, doc.Find("form[action='/plan']").Length(),
		"expected the completion page, got:\n%s", docHTML(t, doc))

	// Generating the plan redirects to the plan page which streams the text.
	doc, err = client.SubmitForm(ctx, "/assessment", "/plan", nil)
	require.NoError(t, err)
	assessmentID := extractAssessmentID(t, doc)

	plan := readPlanStream(t, ctx, client, assessmentID)
	require.Contains(t, plan, "90 days")

	// After streaming, the persisted plan renders directly.
	doc, err = client.GetDoc(ctx, "/plan/"+assessmentID)
	require.NoError(t, err)
	require.Contains(t, doc.Find("#plan").Text(), "90 days")

	// The home page lists the finished assessment.
	doc, err = client.GetDoc(ctx, "/")
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("a[href='/plan/"+assessmentID+"']").Length())
}

func TestDeepDiveFlow(t *testing.T) {
	t.Parallel()
	server := startTestServer(t)
	ctx := context.Background()
	client := server.Client()

	doc, err := client.SubmitForm(ctx, "/classify", "/classify", classifyValues())
	require.NoError(t, err)
	firstArea := doc.Find("#assessment h1").Text()
	require.NotEmpty(t, firstArea)

	// Weak ratings trigger the deep-dive offer.
	doc = submitRating(t, ctx, client, "2", "2")
	require.Equal(t, 1, doc.Find("form[action='/assessment/deep-dive']").Length(),
		"expected a deep-dive offer, got:\n%s", docHTML(t, doc))

	// Accepting leads into the themed questions.
	doc, err = client.SubmitForm(ctx, "/assessment", "/assessment/deep-dive", neturl.Values{
		"accept": {"yes"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("form[action='/assessment/answer']").Length())
	require.Contains(t, doc.Find("#assessment h1").Text(), firstArea)

	// Answer every question of the round.
	for i := 0; i < 12; i++ {
		if doc.Find("form[action='/assessment/finish-deep-dive']").Length() == 1 {
			break
		}
		questionID, found := doc.Find("input[name=question_id]").Attr("value")
		require.True(t, found, "question_id missing:\n%s", docHTML(t, doc))
		doc, err = client.SubmitForm(ctx, "/assessment", "/assessment/answer", neturl.Values{
			"question_id": {questionID},
			"rating":      {"3"},
			"response":    {"I have struggled with this in my current role."},
			"reflection":  {"I would ask for feedback earlier."},
		})
		require.NoError(t, err)
	}
	require.Equal(t, 1, doc.Find("form[action='/assessment/finish-deep-dive']").Length(),
		"deep dive did not finish, got:\n%s", docHTML(t, doc))

	// Finishing moves on to the next capability area.
	doc, err = client.SubmitForm(ctx, "/assessment", "/assessment/finish-deep-dive", nil)
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("form[action='/assessment/rate']").Length())
	secondArea := doc.Find("#assessment h1").Text()
	require.NotEqual(t, firstArea, secondArea)

	// Declining an offer advances without a deep dive.
	doc = submitRating(t, ctx, client, "2", "2")
	require.Equal(t, 1, doc.Find("form[action='/assessment/deep-dive']").Length())
	doc, err = client.SubmitForm(ctx, "/assessment", "/assessment/deep-dive", neturl.Values{
		"accept": {"no"},
	})
	require.NoError(t, err)
	require.Equal(t, 1, doc.Find("form[action='/assessment/rate']").Length())
	thirdArea := doc.Find("#assessment h1").Text()
	require.NotEqual(t, secondArea, thirdArea)

	// Back returns to the previous question.
	doc, err = client.SubmitForm(ctx, "/assessment", "/assessment/back", nil)
	require.NoError(t, err)
	require.Equal(t, secondArea, doc.Find("#assessment h1").Text())
}

func docHTML(t *testing.T, doc *goquery.Document) string {
	t.Helper()
	html, err := doc.Html()
	require.NoError(t, err)
	return html
}

var planStreamPattern = regexp.MustCompile(`/plan/([0-9a-f-]+)/stream`)

// extractAssessmentID digs the assessment ID out of the plan page's stream
// script.
func extractAssessmentID(t *testing.T, doc *goquery.Document) string {
	t.Helper()
	match := planStreamPattern.FindStringSubmatch(doc.Find("script").Text())
	require.Len(t, match, 2, "stream URL not found in:\n%s", docHTML(t, doc))
	return match[1]
}

// readPlanStream consumes the SSE endpoint until the done event and returns
// the concatenated plan text.
func readPlanStream(t *testing.T, ctx context.Context, client *e2etest.Client, assessmentID string) string {
	t.Helper()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	resp, err := client.Get(ctx, "/plan/"+assessmentID+"/stream")
	require.NoError(t, err)
	defer func() {
		_ = resp.Body.Close()
	}()
	require.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Contains(t, string(body), "event: done")

	var plan strings.Builder
	for _, line := range strings.Split(string(body), "\n") {
		data, found := strings.CutPrefix(line, "data: ")
		if !found || data == `""` {
			continue
		}
		var chunk string
		require.NoError(t, json.Unmarshal([]byte(data), &chunk))
		plan.WriteString(chunk)
	}
	return plan.String()
}
