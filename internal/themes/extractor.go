// Package themes parses the "themes or focus areas" narrative block of a
// capability into discrete deep-dive question topics.
package themes

import (
	"fmt"
	"strings"
)

// markerPhrase starts the themes section of a capability narrative. Text
// before the marker line is ignored.
const markerPhrase = "themes or focus areas"

// legacyApostrophes maps byte sequences left behind by older content
// pipelines to a plain apostrophe.
var legacyApostrophes = strings.NewReplacer(
	"â€™", "'", // UTF-8 bytes of ’ decoded as Latin-1
	"’", "'",
)

// Extract parses the narrative block into an ordered list of theme strings.
//
// After the marker line, a line starting with a bullet ("a.", "1.", "-", or
// "•") begins a new theme; other lines continue the current one. A theme is
// also cut whenever its accumulated text ends with "." or "?". If no marker
// line is found, Extract returns nil, which downstream means "no deep-dive
// questions available".
func Extract(narrative string) []string {
	var (
		themes    []string
		buffer    strings.Builder
		inSection bool
	)

	flush := func() {
		theme := strings.TrimSpace(legacyApostrophes.Replace(buffer.String()))
		buffer.Reset()
		if theme != "" {
			themes = append(themes, theme)
		}
	}

	for _, line := range strings.Split(narrative, "\n") {
		line = strings.TrimSpace(line)
		if !inSection {
			if strings.Contains(strings.ToLower(line), markerPhrase) {
				inSection = true
			}
			continue
		}
		if line == "" {
			continue
		}

		if remainder, ok := stripBullet(line); ok {
			flush()
			buffer.WriteString(remainder)
		} else {
			if buffer.Len() > 0 {
				buffer.WriteString(" ")
			}
			buffer.WriteString(line)
		}

		if text := buffer.String(); strings.HasSuffix(text, ".") || strings.HasSuffix(text, "?") {
			flush()
		}
	}
	flush()

	return themes
}

// stripBullet reports whether the line starts a new theme and returns the
// line without its bullet marker.
func stripBullet(line string) (string, bool) {
	if strings.HasPrefix(line, "-") {
		return strings.TrimSpace(line[1:]), true
	}
	if strings.HasPrefix(line, "•") {
		return strings.TrimSpace(strings.TrimPrefix(line, "•")), true
	}
	// Ordered markers: a lowercase letter or digits followed by a period,
	// e.g. "a." or "12.".
	dot := strings.Index(line, ".")
	if dot <= 0 {
		return "", false
	}
	marker := line[:dot]
	if isLowerLetter(marker) || isDigits(marker) {
		return strings.TrimSpace(line[dot+1:]), true
	}
	return "", false
}

func isLowerLetter(s string) bool {
	return len(s) == 1 && s[0] >= 'a' && s[0] <= 'z'
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// Question is one synthesized deep-dive question derived from a theme.
type Question struct {
	// ID is synthetic and stable within a session: {capability-slug}-l2-{n}.
	ID string
	// Theme is the parsed focus-area string the question is about.
	Theme string
	// Prompt is the full question text presented to the respondent.
	Prompt string
	// RequiresReflection marks questions that need a written reflection in
	// addition to the rating and response. Always true in the current content.
	RequiresReflection bool
}

// BuildQuestions turns a capability's narrative block into deep-dive
// questions, one per extracted theme. An empty result means the capability
// has no deep-dive content at this level.
func BuildQuestions(capability, narrative string) []Question {
	extracted := Extract(narrative)
	if len(extracted) == 0 {
		return nil
	}
	slug := Slug(capability)
	questions := make([]Question, len(extracted))
	for i, theme := range extracted {
		questions[i] = Question{
			ID:                 fmt.Sprintf("%s-l2-%d", slug, i+1),
			Theme:              theme,
			Prompt:             fmt.Sprintf(`Regarding "%s", please describe your specific challenges and experiences:`, theme),
			RequiresReflection: true,
		}
	}
	return questions
}

// Slug lowercases a capability name and replaces spaces with hyphens for use
// in identifiers.
func Slug(capability string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(capability)), " ", "-")
}
