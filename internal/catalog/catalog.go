// Package catalog loads the static question catalog the game cycles through.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/victornm/thinkfast/internal/domain"
)

//go:embed sample_questions.json
var sampleData []byte

// Load reads the catalog from file, or falls back to the embedded sample
// catalog when file is empty. The returned slice preserves file order,
// which is also the play order.
func Load(file string) ([]domain.Question, error) {
	data := sampleData
	if file != "" {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", file, err)
		}
		data = b
	}

	var questions []domain.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("catalog: parse: %w", err)
	}

	if err := validate(questions); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	return questions, nil
}

func validate(questions []domain.Question) error {
	if len(questions) == 0 {
		return fmt.Errorf("empty catalog")
	}

	seen := make(map[string]bool, len(questions))
	for i, q := range questions {
		if q.QuestionID == "" {
			return fmt.Errorf("question %d: missing question_id", i)
		}
		if seen[q.QuestionID] {
			return fmt.Errorf("question %d: duplicate question_id %q", i, q.QuestionID)
		}
		seen[q.QuestionID] = true

		if q.Question == "" {
			return fmt.Errorf("question %s: missing prompt", q.QuestionID)
		}
		if len(q.Options) < 2 {
			return fmt.Errorf("question %s: needs at least 2 options", q.QuestionID)
		}

		found := false
		for _, o := range q.Options {
			if o == q.Answer {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("question %s: answer %q not among options", q.QuestionID, q.Answer)
		}
	}

	return nil
}
