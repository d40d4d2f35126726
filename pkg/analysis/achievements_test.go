package analysis

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMineAchievements(t *testing.T) {
	text := `- Led the migration of 14 services to Kubernetes
- Responsible for the deployment pipeline
- Reduced build times by 60% across the org
Some filler text without any verb or number here`

	got := MineAchievements(text)
	require.Len(t, got, 2)

	assert.Equal(t, "led", got[0].Verb)
	assert.True(t, got[0].Quantified)
	assert.Contains(t, got[0].Text, "migration")

	assert.Equal(t, "reduced", got[1].Verb)
	assert.Equal(t, "60%", got[1].Metric)
	assert.True(t, got[1].Quantified)
}

func TestMineAchievementsUnquantified(t *testing.T) {
	got := MineAchievements("Built the onboarding flow for new customers")
	require.Len(t, got, 1)
	assert.Equal(t, "built", got[0].Verb)
	assert.False(t, got[0].Quantified)
	assert.Empty(t, got[0].Metric)
}

func TestMineAchievementsSplitsSentences(t *testing.T) {
	text := "I joined as the second engineer. Built the billing system from scratch. Grew the team to 12 people over two years."

	got := MineAchievements(text)
	require.Len(t, got, 2)
	assert.Equal(t, "built", got[0].Verb)
	assert.Equal(t, "grew", got[1].Verb)
	assert.True(t, got[1].Quantified)
}

func TestMineAchievementsVerbNotLeading(t *testing.T) {
	got := MineAchievements("Last year I launched the partner portal ahead of schedule")
	require.Len(t, got, 1)
	assert.Equal(t, "launched", got[0].Verb)
}

func TestMineAchievementsKeepsInputOrder(t *testing.T) {
	text := `- Shipped the v2 API to all customers
- Automated the nightly reporting job completely
- Won the internal platform award twice`

	got := MineAchievements(text)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"shipped", "automated", "won"}, []string{got[0].Verb, got[1].Verb, got[2].Verb})
}

func TestMineAchievementsDecimalNotSentenceBreak(t *testing.T) {
	got := MineAchievements("Improved throughput 2.5x by batching writes")
	require.Len(t, got, 1)
	assert.Equal(t, "2.5x", got[0].Metric)
}

func TestMineAchievementsCap(t *testing.T) {
	text := ""
	for i := 0; i < 30; i++ {
		text += fmt.Sprintf("- Shipped feature number %d to production\n", i)
	}
	got := MineAchievements(text)
	assert.Len(t, got, maxAchievements)
}

func TestMineAchievementsEmpty(t *testing.T) {
	assert.Empty(t, MineAchievements(""))
	assert.Empty(t, MineAchievements("short text"))
}

func TestQuantifiedFilter(t *testing.T) {
	achievements := []Achievement{
		{Text: "a", Quantified: true},
		{Text: "b", Quantified: false},
		{Text: "c", Quantified: true},
	}
	got := Quantified(achievements)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].Text)
	assert.Equal(t, "c", got[1].Text)
}
