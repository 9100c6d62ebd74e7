package themes_test

import (
	"testing"

	"github.com/RaheesAhmed/growthcompass/internal/themes"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		narrative string
		want      []string
	}{
		{
			name:      "lettered bullets",
			narrative: "Themes or Focus Areas\na. Operational Team Management.\nb. Work Allocation.\n",
			want:      []string{"Operational Team Management.", "Work Allocation."},
		},
		{
			name:      "numbered and dashed bullets",
			narrative: "Themes or Focus Areas:\n1. Coaching conversations.\n- Feedback culture.\n• Succession planning.\n",
			want:      []string{"Coaching conversations.", "Feedback culture.", "Succession planning."},
		},
		{
			name: "continuation lines join with a space",
			narrative: "Some introduction text that is skipped.\n" +
				"THEMES OR FOCUS AREAS\n" +
				"a. Building trust across\n" +
				"distributed teams.\n" +
				"b. Running effective staff meetings?\n",
			want: []string{"Building trust across distributed teams.", "Running effective staff meetings?"},
		},
		{
			name: "terminator cuts a theme even without a following bullet",
			narrative: "Themes or focus areas\n" +
				"a. Delegation habits.\n" +
				"What to stop doing yourself?\n" +
				"trailing fragment without terminator",
			want: []string{"Delegation habits.", "What to stop doing yourself?", "trailing fragment without terminator"},
		},
		{
			name:      "legacy apostrophes are normalized",
			narrative: "Themes or Focus Areas\na. Understanding your teamâ€™s needs.\nb. Owning the team’s outcomes.\n",
			want:      []string{"Understanding your team's needs.", "Owning the team's outcomes."},
		},
		{
			name:      "no marker yields no themes",
			narrative: "a. Looks like a bullet.\nb. But no marker line.\n",
			want:      nil,
		},
		{
			name:      "empty input",
			narrative: "",
			want:      nil,
		},
		{
			name:      "marker with only blank lines",
			narrative: "Themes or Focus Areas\n\n   \n",
			want:      nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, themes.Extract(tt.narrative))
		})
	}
}

func TestExtractIsIdempotent(t *testing.T) {
	t.Parallel()
	narrative := "Themes or Focus Areas\na. One.\nb. Two.\nc. Three.\n"
	first := themes.Extract(narrative)
	second := themes.Extract(narrative)
	require.Equal(t, first, second)
}

func TestBuildQuestions(t *testing.T) {
	t.Parallel()
	narrative := "Themes or Focus Areas\na. Operational Team Management.\nb. Work Allocation.\n"
	questions := themes.BuildQuestions("Building a Team", narrative)
	require.Len(t, questions, 2)

	require.Equal(t, "building-a-team-l2-1", questions[0].ID)
	require.Equal(t, "Operational Team Management.", questions[0].Theme)
	require.Equal(t,
		`Regarding "Operational Team Management.", please describe your specific challenges and experiences:`,
		questions[0].Prompt)
	require.True(t, questions[0].RequiresReflection)

	require.Equal(t, "building-a-team-l2-2", questions[1].ID)

	require.Nil(t, themes.BuildQuestions("Building a Team", "no marker here"))
}
