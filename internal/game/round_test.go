package game_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/victornm/thinkfast/internal/domain"
	"github.com/victornm/thinkfast/internal/game"
)

func twoQuestionCatalog() []domain.Question {
	return []domain.Question{
		{QuestionID: "q-1", Question: "What is the capital of France?", Options: []string{"Paris", "London"}, Answer: "Paris"},
		{QuestionID: "q-2", Question: "What is the answer to everything?", Options: []string{"42", "7"}, Answer: "42"},
	}
}

func TestRound_Advance(t *testing.T) {
	r := game.NewRound(twoQuestionCatalog())

	cur := r.Current()
	assert.Equal(t, "q-1", cur.Question.QuestionID)
	assert.Equal(t, r.RoundID(), cur.RoundID)

	next, changed := r.Advance()
	assert.Equal(t, "q-2", next.Question.QuestionID)
	assert.False(t, changed)
	assert.Equal(t, cur.RoundID, next.RoundID)
}

func TestRound_Wraparound(t *testing.T) {
	r := game.NewRound(twoQuestionCatalog())
	firstRound := r.RoundID()

	r.Advance()
	next, changed := r.Advance()

	assert.True(t, changed, "wrapping back to the first question starts a new round")
	assert.Equal(t, "q-1", next.Question.QuestionID)
	assert.NotEqual(t, firstRound, next.RoundID)
	assert.Equal(t, next.RoundID, r.RoundID())
}

func TestRound_ConcurrentAdvance(t *testing.T) {
	const goroutines = 100

	catalog := twoQuestionCatalog()
	r := game.NewRound(catalog)

	var (
		wg           sync.WaitGroup
		mu           sync.Mutex
		roundChanges int
		seen         = make(map[string]int)
	)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			next, changed := r.Advance()
			mu.Lock()
			if changed {
				roundChanges++
			}
			seen[next.RoundID]++
			mu.Unlock()
		}()
	}
	wg.Wait()

	// 100 advances over a 2-question catalog wrap exactly 50 times, each
	// wrap minting a fresh round id. Losing an advance to a race would skew
	// both counts.
	require.Equal(t, goroutines/len(catalog), roundChanges)
	assert.Len(t, seen, roundChanges+1)
	assert.Equal(t, "q-1", r.Current().Question.QuestionID)
}
