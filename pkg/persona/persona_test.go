package persona

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryIntegrity(t *testing.T) {
	all := All()
	require.Len(t, all, 7)

	seen := map[string]bool{}
	for _, p := range all {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Title)
		assert.NotEmpty(t, p.Tagline)
		assert.NotEmpty(t, p.Goals, "persona %s has no goals", p.ID)
		assert.NotEmpty(t, p.CareerStages, "persona %s has no career stages", p.ID)
		assert.GreaterOrEqual(t, len(p.OpeningQuestions), 3, "persona %s needs opening questions", p.ID)
		assert.False(t, seen[p.ID], "duplicate persona id %s", p.ID)
		seen[p.ID] = true
	}

	for _, id := range defaultTrio {
		_, ok := Get(id)
		assert.True(t, ok, "default trio references unknown persona %s", id)
	}
}

func TestAllReturnsCopy(t *testing.T) {
	a := All()
	a[0].ID = "clobbered"
	b := All()
	assert.NotEqual(t, "clobbered", b[0].ID)
}

func TestGet(t *testing.T) {
	p, ok := Get("story-coach")
	require.True(t, ok)
	assert.Equal(t, "Elena Vasquez", p.Name)

	// separator and case variants resolve to the same persona
	for _, id := range []string{"story_coach", "Story Coach", " STORY-COACH "} {
		q, ok := Get(id)
		require.True(t, ok, "lookup %q", id)
		assert.Equal(t, p.ID, q.ID)
	}

	_, ok = Get("nonexistent")
	assert.False(t, ok)
}

func TestDefault(t *testing.T) {
	p := Default()
	assert.Equal(t, DefaultID, p.ID)
	assert.NotEmpty(t, p.OpeningQuestions)
}

func TestRecommendGoalMatchesRankFirst(t *testing.T) {
	got := Recommend(GoalInterviewPrep, StageExecutive)
	require.NotEmpty(t, got)

	// story-coach and interview-coach both serve interview_prep and sit
	// ahead of any stage-only match for executive.
	require.Len(t, got, 3)
	assert.Equal(t, "story-coach", got[0].ID)
	assert.Equal(t, "interview-coach", got[1].ID)
	assert.Equal(t, "executive-coach", got[2].ID)
}

func TestRecommendDeduplicates(t *testing.T) {
	// career-strategist matches both the goal and the stage; it must
	// appear exactly once.
	got := Recommend(GoalJobSearch, StageMidCareer)
	require.NotEmpty(t, got)

	counts := map[string]int{}
	for _, p := range got {
		counts[p.ID]++
	}
	for id, n := range counts {
		assert.Equal(t, 1, n, "persona %s recommended %d times", id, n)
	}
	assert.LessOrEqual(t, len(got), 3)
}

func TestRecommendCapsAtThree(t *testing.T) {
	// more personas serve job_search and mid_career than the cap allows
	got := Recommend(GoalJobSearch, StageMidCareer)
	assert.Len(t, got, 3)
}

func TestRecommendStageOnly(t *testing.T) {
	got := Recommend("", StageStudent)
	require.NotEmpty(t, got)
	assert.Equal(t, "first-role-mentor", got[0].ID)
}

func TestRecommendUnknownFallsBack(t *testing.T) {
	got := Recommend("underwater-basket-weaving", "time-traveler")
	require.Len(t, got, len(defaultTrio))
	for i, id := range defaultTrio {
		assert.Equal(t, id, got[i].ID)
	}

	// empty inputs behave the same way
	got = Recommend("", "")
	require.Len(t, got, len(defaultTrio))
}

func TestRecommendNormalizesInput(t *testing.T) {
	a := Recommend("Interview Prep", "Early Career")
	b := Recommend(GoalInterviewPrep, StageEarlyCareer)
	require.Equal(t, len(b), len(a))
	for i := range a {
		assert.Equal(t, b[i].ID, a[i].ID)
	}
}

func TestProfileRoundTrip(t *testing.T) {
	p, ok := Get("comp-strategist")
	require.True(t, ok)

	profile, err := p.Profile()
	require.NoError(t, err)
	assert.Equal(t, p.ID, profile.ID)
	assert.Equal(t, p.Name, profile.Name)

	var questions []string
	require.NoError(t, json.Unmarshal(profile.OpeningQuestions, &questions))
	assert.Equal(t, p.OpeningQuestions, questions)

	var style Style
	require.NoError(t, json.Unmarshal(profile.ConversationStyle, &style))
	assert.Equal(t, p.Style, style)
}
