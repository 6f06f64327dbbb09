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

func newExamService(t *testing.T) (*ExamService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewExamService(repository.NewExamRepository(db), repository.NewAttemptRepository(db)), db
}

func seedExam(t *testing.T, db *gorm.DB, markers ...string) (*model.Exam, []model.ExamQuestion) {
	t.Helper()

	exam := &model.Exam{CourseID: 1, Title: "Model Test 1", Duration: 30}
	require.NoError(t, db.Create(exam).Error)

	questions := make([]model.ExamQuestion, 0, len(markers))
	for _, marker := range markers {
		q := question(0, marker)
		q.ExamID = exam.ID
		require.NoError(t, db.Create(&q).Error)
		questions = append(questions, q)
	}
	return exam, questions
}

func TestRecordAttemptTwoStepPersistence(t *testing.T) {
	svc, db := newExamService(t)
	exam, questions := seedExam(t, db, "a", "b", "c")

	answers := map[uint]string{
		questions[0].ID: "a", // correct
		questions[1].ID: "c", // wrong
		// third skipped
	}
	tally := GradeExam(questions, answers)

	attemptID, answersSaved, err := svc.RecordAttempt(7, exam.ID, questions, answers, tally)
	require.NoError(t, err)
	assert.NotEmpty(t, attemptID)
	assert.True(t, answersSaved)

	var attempt model.ExamAttempt
	require.NoError(t, db.First(&attempt, "id = ?", attemptID).Error)
	assert.Equal(t, uint(7), attempt.StudentID)
	assert.Equal(t, exam.ID, attempt.ExamID)
	assert.Equal(t, 33, attempt.Score)
	assert.False(t, attempt.SubmittedAt.IsZero())

	rows, err := svc.AttemptRepo.ListAnswers(attemptID)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byQuestion := make(map[uint]model.AttemptAnswer, len(rows))
	for _, r := range rows {
		byQuestion[r.QuestionID] = r
	}

	first := byQuestion[questions[0].ID]
	require.NotNil(t, first.SelectedOption)
	assert.Equal(t, "a", *first.SelectedOption)
	assert.True(t, first.IsCorrect)

	second := byQuestion[questions[1].ID]
	require.NotNil(t, second.SelectedOption)
	assert.False(t, second.IsCorrect)

	third := byQuestion[questions[2].ID]
	assert.Nil(t, third.SelectedOption)
	assert.False(t, third.IsCorrect)
}

func TestRecordAttemptRequiresStudent(t *testing.T) {
	svc, db := newExamService(t)
	exam, questions := seedExam(t, db, "a")

	_, _, err := svc.RecordAttempt(0, exam.ID, questions, nil, GradeExam(questions, nil))
	assert.ErrorIs(t, err, util.ErrAuthRequired)

	var count int64
	db.Model(&model.ExamAttempt{}).Count(&count)
	assert.Zero(t, count)
}

func TestRecordAttemptAnswerBatchFailureIsNotFatal(t *testing.T) {
	svc, db := newExamService(t)
	exam, questions := seedExam(t, db, "a")

	// 模拟第二步写入失败
	require.NoError(t, db.Migrator().DropTable(&model.AttemptAnswer{}))

	attemptID, answersSaved, err := svc.RecordAttempt(7, exam.ID, questions, map[uint]string{questions[0].ID: "a"}, GradeExam(questions, map[uint]string{questions[0].ID: "a"}))
	require.NoError(t, err)
	assert.NotEmpty(t, attemptID)
	assert.False(t, answersSaved)

	// 第一步的成绩摘要仍然保留
	var attempt model.ExamAttempt
	require.NoError(t, db.First(&attempt, "id = ?", attemptID).Error)
	assert.Equal(t, 100, attempt.Score)
}

func TestGetAttemptReviewRoundTrip(t *testing.T) {
	svc, db := newExamService(t)
	exam, questions := seedExam(t, db, "b", "Option C text")
	questions[0].Solution = "See chapter 4"
	require.NoError(t, db.Save(&questions[0]).Error)

	answers := map[uint]string{
		questions[0].ID: "b",
		questions[1].ID: "a",
	}
	tally := GradeExam(questions, answers)
	attemptID, saved, err := svc.RecordAttempt(7, exam.ID, questions, answers, tally)
	require.NoError(t, err)
	require.True(t, saved)

	review, err := svc.GetAttemptReview(attemptID)
	require.NoError(t, err)

	assert.Equal(t, attemptID, review.AttemptID)
	assert.Equal(t, uint(7), review.StudentID)
	assert.Equal(t, exam.ID, review.ExamID)
	assert.Equal(t, "Model Test 1", review.ExamTitle)
	assert.Equal(t, 50, review.Score)
	require.Len(t, review.Questions, 2)

	byID := make(map[uint]ReviewQuestion, len(review.Questions))
	for _, rq := range review.Questions {
		byID[rq.QuestionID] = rq
	}

	first := byID[questions[0].ID]
	assert.True(t, first.IsCorrect)
	assert.False(t, first.Skipped)
	assert.Equal(t, "See chapter 4", first.Solution)
	require.Len(t, first.Options, 4)
	for _, opt := range first.Options {
		assert.Equal(t, opt.Key == "b", opt.Selected, "option %s", opt.Key)
		assert.Equal(t, opt.Key == "b", opt.Correct, "option %s", opt.Key)
	}

	// 正确答案存的是选项原文，复盘时按原文比对
	second := byID[questions[1].ID]
	assert.False(t, second.IsCorrect)
	for _, opt := range second.Options {
		assert.Equal(t, opt.Key == "c", opt.Correct, "option %s", opt.Key)
		assert.Equal(t, opt.Key == "a", opt.Selected, "option %s", opt.Key)
	}
}

func TestGetAttemptReviewSurvivesDeletedQuestion(t *testing.T) {
	svc, db := newExamService(t)
	exam, questions := seedExam(t, db, "a", "b")

	answers := map[uint]string{questions[0].ID: "a"}
	tally := GradeExam(questions, answers)
	attemptID, _, err := svc.RecordAttempt(7, exam.ID, questions, answers, tally)
	require.NoError(t, err)

	require.NoError(t, svc.ExamRepo.DeleteQuestion(questions[1].ID))

	review, err := svc.GetAttemptReview(attemptID)
	require.NoError(t, err)
	require.Len(t, review.Questions, 2)

	var missing *ReviewQuestion
	for i := range review.Questions {
		if review.Questions[i].QuestionID == questions[1].ID {
			missing = &review.Questions[i]
		}
	}
	require.NotNil(t, missing)
	assert.True(t, missing.Missing)
	assert.Empty(t, missing.Question)
	assert.Empty(t, missing.Options)
	assert.True(t, missing.Skipped)
}

func TestGetAttemptReviewNotFound(t *testing.T) {
	svc, _ := newExamService(t)

	_, err := svc.GetAttemptReview("no-such-attempt")
	assert.ErrorIs(t, err, util.ErrAttemptNotFound)
}
