package quiz

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionsShape(t *testing.T) {
	for i, q := range Questions {
		assert.NotEmpty(t, q.Text, "question %d", i)
		require.NotEmpty(t, q.Options, "question %d", i)
		for _, o := range q.Options {
			assert.NotEmpty(t, o.Label)
			assert.NotEmpty(t, o.Answer)
		}
	}
}

func TestLastRuleIsCatchAll(t *testing.T) {
	last := Rules[len(Rules)-1]
	assert.True(t, last.Match(Answers{}))
	assert.True(t, last.Match(Answers{Energy: EnergyHigh, Mood: MoodCalm, Time: TimeLong}))
}

func TestRecommendFirstMatchWins(t *testing.T) {
	tests := []struct {
		name string
		in   Answers
		rule string
	}{
		{
			name: "low energy wins over everything",
			in:   Answers{Energy: EnergyLow, Mood: MoodAnxious, Time: TimeShort},
			rule: "restore",
		},
		{
			name: "anxious mood when energy is fine",
			in:   Answers{Energy: EnergyMid, Mood: MoodAnxious, Time: TimeShort},
			rule: "calm",
		},
		{
			name: "short on time only",
			in:   Answers{Energy: EnergyHigh, Mood: MoodCalm, Time: TimeShort},
			rule: "micro",
		},
		{
			name: "nothing special falls through to default",
			in:   Answers{Energy: EnergyHigh, Mood: MoodCalm, Time: TimeLong},
			rule: "full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var want string
			for _, r := range Rules {
				if r.Name == tt.rule {
					want = r.Recommend
				}
			}
			require.NotEmpty(t, want, "rule %s must exist", tt.rule)
			assert.Equal(t, want, Recommend(tt.in))
		})
	}
}

func TestEveryRuleRecommendsSomething(t *testing.T) {
	for _, r := range Rules {
		assert.NotEmpty(t, r.Recommend, "rule %s", r.Name)
	}
}
