package service

import (
	"testing"

	"go_5_algo_keep/internal/model"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderSubject(t *testing.T) {
	assert.Equal(t, "🔔 1 Problem Due for Revision", ReminderSubject(1))
	assert.Equal(t, "🔔 3 Problems Due for Revision", ReminderSubject(3))
}

func TestProblemURL(t *testing.T) {
	assert.Equal(t, "https://algo.example.com/problems/abc", ProblemURL("https://algo.example.com/", "abc"))
	assert.Equal(t, "https://algo.example.com/problems/abc", ProblemURL("https://algo.example.com", "abc"))
}

func TestBuildReminderMail_Golden(t *testing.T) {
	appURL := "https://algo.example.com/"
	first := uuid.MustParse("11111111-1111-1111-1111-111111111111")
	second := uuid.MustParse("22222222-2222-2222-2222-222222222222")
	problems := []model.DueProblem{
		{ProblemID: first, Title: "Two Sum", Difficulty: "easy", URL: ProblemURL(appURL, first.String())},
		{ProblemID: second, Title: "Merge Intervals", URL: ProblemURL(appURL, second.String())},
	}

	msg, err := BuildReminderMail(appURL, &model.User{Name: "Alice", Email: "alice@example.com"}, problems)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", msg.To)
	assert.Equal(t, "🔔 2 Problems Due for Revision", msg.Subject)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "reminder_text", []byte(msg.Text))
	g.Assert(t, "reminder_html", []byte(msg.HTML))
}

func TestBuildReminderMail_EscapesTitle(t *testing.T) {
	id := uuid.New()
	msg, err := BuildReminderMail("https://algo.example.com", &model.User{Email: "x@example.com"}, []model.DueProblem{
		{ProblemID: id, Title: "<script>alert(1)</script>", URL: ProblemURL("https://algo.example.com", id.String())},
	})
	require.NoError(t, err)
	assert.NotContains(t, msg.HTML, "<script>")
	assert.Contains(t, msg.HTML, "Time to revise, there!")
	assert.Contains(t, msg.Text, "You have 1 problem due")
}
