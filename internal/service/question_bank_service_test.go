package service

import (
	"shikkha_backend/internal/model"
	"shikkha_backend/internal/repository"
	"shikkha_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBankService(t *testing.T) (*QuestionBankService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewQuestionBankService(repository.NewQuestionBankRepository(db)), db
}

func seedBankItem(t *testing.T, db *gorm.DB, marker string) *model.QuestionBankItem {
	t.Helper()

	uni := &model.University{Name: "Dhaka University"}
	require.NoError(t, db.Create(uni).Error)
	year := &model.Year{Value: "2023"}
	require.NoError(t, db.Create(year).Error)

	item := &model.QuestionBankItem{
		UniversityID:  uni.ID,
		YearID:        year.ID,
		Question:      "What is the unit of force?",
		OptionA:       "Newton",
		OptionB:       "Joule",
		OptionC:       "Watt",
		OptionD:       "Pascal",
		CorrectAnswer: marker,
		Solution:      "Force is measured in newtons.",
	}
	require.NoError(t, db.Create(item).Error)
	return item
}

func TestBankListHidesAnswers(t *testing.T) {
	svc, db := newBankService(t)
	seedBankItem(t, db, "a")

	questions, total, err := svc.List(0, 0, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, questions, 1)

	q := questions[0]
	assert.Equal(t, "What is the unit of force?", q.Question)
	assert.Equal(t, "Dhaka University", q.University)
	assert.Equal(t, "2023", q.Year)
}

func TestBankListFilters(t *testing.T) {
	svc, db := newBankService(t)
	item := seedBankItem(t, db, "a")

	questions, total, err := svc.List(item.UniversityID, item.YearID, 1, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, questions, 1)

	_, total, err = svc.List(item.UniversityID+100, 0, 1, 20)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestBankCheck(t *testing.T) {
	svc, db := newBankService(t)
	item := seedBankItem(t, db, "a")

	result, err := svc.Check(item.ID, "a")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, "a", result.CorrectAnswer)
	assert.Equal(t, "Force is measured in newtons.", result.Solution)

	result, err = svc.Check(item.ID, "b")
	require.NoError(t, err)
	assert.False(t, result.Correct)
}

func TestBankCheckLiteralMarker(t *testing.T) {
	svc, db := newBankService(t)
	item := seedBankItem(t, db, "Newton")

	result, err := svc.Check(item.ID, "a")
	require.NoError(t, err)
	assert.True(t, result.Correct)
}

func TestBankCheckUnknownQuestion(t *testing.T) {
	svc, _ := newBankService(t)

	_, err := svc.Check(12345, "a")
	assert.ErrorIs(t, err, util.ErrQuestionNotFound)
}
