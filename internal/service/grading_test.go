package service

import (
	"shikkha_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func question(id uint, correct string) model.ExamQuestion {
	return model.ExamQuestion{
		BaseModel:     model.BaseModel{ID: id},
		Question:      "q",
		OptionA:       "Option A text",
		OptionB:       "Option B text",
		OptionC:       "Option C text",
		OptionD:       "Option D text",
		CorrectAnswer: correct,
	}
}

func TestIsCorrectSelectionKeyMarker(t *testing.T) {
	q := question(1, "B")

	assert.True(t, IsCorrectSelection(&q, "b"))
	assert.False(t, IsCorrectSelection(&q, "a"))
	assert.False(t, IsCorrectSelection(&q, "d"))
}

func TestIsCorrectSelectionLiteralTextMarker(t *testing.T) {
	q := question(1, "Option C text")

	assert.True(t, IsCorrectSelection(&q, "c"))
	assert.False(t, IsCorrectSelection(&q, "a"))
	assert.False(t, IsCorrectSelection(&q, ""))
}

func TestIsCorrectSelectionMarkerCollidingWithKey(t *testing.T) {
	// A marker that lowercases to a key letter is always treated as a key,
	// even when an option's literal text is that same letter.
	q := question(1, "A")
	q.OptionB = "a"

	assert.True(t, IsCorrectSelection(&q, "a"))
	assert.False(t, IsCorrectSelection(&q, "b"))
}

func TestGradeExamMixed(t *testing.T) {
	questions := []model.ExamQuestion{
		question(1, "a"),
		question(2, "b"),
		question(3, "c"),
		question(4, "d"),
	}
	answers := map[uint]string{
		1: "a", // correct
		2: "d", // wrong
		3: "c", // correct
		// 4 skipped
	}

	tally := GradeExam(questions, answers)

	assert.Equal(t, 2, tally.Correct)
	assert.Equal(t, 1, tally.Wrong)
	assert.Equal(t, 1, tally.Skipped)
	assert.Equal(t, 4, tally.Total)
	assert.Equal(t, 50, tally.Percent)
	assert.False(t, tally.Degenerate)
}

func TestGradeExamEmptySelectionCountsAsSkipped(t *testing.T) {
	questions := []model.ExamQuestion{question(1, "a")}

	tally := GradeExam(questions, map[uint]string{1: ""})

	assert.Equal(t, 0, tally.Correct)
	assert.Equal(t, 0, tally.Wrong)
	assert.Equal(t, 1, tally.Skipped)
}

func TestGradeExamPercentRounding(t *testing.T) {
	questions := []model.ExamQuestion{
		question(1, "a"),
		question(2, "a"),
		question(3, "a"),
	}

	oneRight := GradeExam(questions, map[uint]string{1: "a"})
	assert.Equal(t, 33, oneRight.Percent)

	twoRight := GradeExam(questions, map[uint]string{1: "a", 2: "a"})
	assert.Equal(t, 67, twoRight.Percent)
}

func TestGradeExamDegenerate(t *testing.T) {
	tally := GradeExam(nil, map[uint]string{1: "a"})

	assert.True(t, tally.Degenerate)
	assert.Equal(t, 0, tally.Total)
	assert.Equal(t, 0, tally.Percent)
}
