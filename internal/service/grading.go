package service

import (
	"math"
	"shikkha_backend/internal/model"
	"strings"
)

// Tally is the deterministic grading summary for one submission.
type Tally struct {
	Correct    int  `json:"correct"`
	Wrong      int  `json:"wrong"`
	Skipped    int  `json:"skipped"`
	Total      int  `json:"total"`
	Percent    int  `json:"percent"`
	Degenerate bool `json:"degenerate,omitempty"` // true when the exam had no questions
}

var optionKeys = map[string]bool{"a": true, "b": true, "c": true, "d": true}

// IsCorrectSelection reports whether the selected option key matches the
// question's correct-answer marker. The marker is stored inconsistently:
// either an option key ("a".."d", any case) or the literal text of the
// correct option. A marker that lowercases to a canonical key is always
// treated as a key; otherwise the selected option's text is compared
// against the marker verbatim.
func IsCorrectSelection(q *model.ExamQuestion, selectedKey string) bool {
	marker := strings.ToLower(q.CorrectAnswer)
	if optionKeys[marker] {
		return selectedKey == marker
	}
	return q.OptionText(selectedKey) == q.CorrectAnswer
}

// GradeExam tallies a final answer map (question ID -> selected option key)
// against the question set. Binary per-question scoring, no partial credit.
func GradeExam(questions []model.ExamQuestion, answers map[uint]string) Tally {
	tally := Tally{Total: len(questions)}

	for i := range questions {
		q := &questions[i]
		selected, ok := answers[q.ID]
		if !ok || selected == "" {
			tally.Skipped++
			continue
		}
		if IsCorrectSelection(q, selected) {
			tally.Correct++
		} else {
			tally.Wrong++
		}
	}

	if tally.Total == 0 {
		tally.Degenerate = true
		return tally
	}

	tally.Percent = int(math.Round(float64(tally.Correct) / float64(tally.Total) * 100))
	return tally
}
