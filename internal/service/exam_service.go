package service

import (
	"errors"
	"shikkha_backend/internal/model"
	"shikkha_backend/internal/repository"
	"shikkha_backend/internal/util"
	"shikkha_backend/pkg/logger"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ExamService struct {
	ExamRepo    *repository.ExamRepository
	AttemptRepo *repository.AttemptRepository
}

func NewExamService(examRepo *repository.ExamRepository, attemptRepo *repository.AttemptRepository) *ExamService {
	return &ExamService{
		ExamRepo:    examRepo,
		AttemptRepo: attemptRepo,
	}
}

func (s *ExamService) GetExam(examID uint) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(examID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrExamNotFound
	}
	return exam, err
}

// LoadQuestions fetches the exam's question set. A store failure is logged
// and surfaced as an empty set plus the error so the caller can present a
// "could not load" state instead of crashing.
func (s *ExamService) LoadQuestions(examID uint) ([]model.ExamQuestion, error) {
	qs, err := s.ExamRepo.ListQuestions(examID)
	if err != nil {
		logger.Log.Error("failed to load exam questions",
			zap.Uint("exam_id", examID),
			zap.Error(err))
		return nil, err
	}
	return qs, nil
}

func (s *ExamService) ListExamsByCourse(courseID uint) ([]model.Exam, error) {
	return s.ExamRepo.ListByCourse(courseID)
}

// RecordAttempt runs the two-step persistence sequence: first the attempt
// summary, then the per-question answer batch referencing the generated
// attempt ID. The store offers no multi-record transaction across the two
// tables, so a failure after step 1 leaves an attempt without answers;
// that partial state is logged and reported through answersSaved rather
// than rolled back.
func (s *ExamService) RecordAttempt(studentID uint, examID uint, questions []model.ExamQuestion, answers map[uint]string, tally Tally) (attemptID string, answersSaved bool, err error) {
	if studentID == 0 {
		return "", false, util.ErrAuthRequired
	}

	attempt := &model.ExamAttempt{
		ExamID:      examID,
		StudentID:   studentID,
		SubmittedAt: time.Now(),
		Score:       tally.Percent,
	}

	if err := s.AttemptRepo.CreateAttempt(attempt); err != nil {
		logger.Log.Error("failed to save exam attempt",
			zap.Uint("exam_id", examID),
			zap.Uint("student_id", studentID),
			zap.Error(err))
		return "", false, err
	}

	rows := make([]model.AttemptAnswer, 0, len(questions))
	for i := range questions {
		q := &questions[i]

		var selected *string
		isCorrect := false
		if key, ok := answers[q.ID]; ok && key != "" {
			k := key
			selected = &k
			isCorrect = IsCorrectSelection(q, key)
		}

		rows = append(rows, model.AttemptAnswer{
			AttemptID:      attempt.ID,
			QuestionID:     q.ID,
			SelectedOption: selected,
			IsCorrect:      isCorrect,
		})
	}

	if err := s.AttemptRepo.CreateAnswers(rows); err != nil {
		logger.Log.Warn("attempt saved but answer batch failed; review will be incomplete",
			zap.String("attempt_id", attempt.ID),
			zap.Uint("exam_id", examID),
			zap.Error(err))
		return attempt.ID, false, nil
	}

	return attempt.ID, true, nil
}

func (s *ExamService) ListAttemptsByStudent(studentID uint) ([]model.ExamAttempt, error) {
	return s.AttemptRepo.ListByStudent(studentID)
}

func (s *ExamService) ListAttemptsByExam(examID uint, page, limit int) ([]model.ExamAttempt, int64, error) {
	return s.AttemptRepo.ListByExam(examID, page, limit)
}

// ReviewOption is one rendered choice in an attempt review.
type ReviewOption struct {
	Key      string `json:"key"`
	Text     string `json:"text"`
	Selected bool   `json:"selected"`
	Correct  bool   `json:"correct"`
}

// ReviewQuestion pairs one answer record with its question content. When
// the question has been deleted since the attempt, Question stays empty
// and Missing is set; the rest of the review still renders.
type ReviewQuestion struct {
	QuestionID     uint           `json:"questionId"`
	Question       string         `json:"question"`
	Options        []ReviewOption `json:"options"`
	SelectedOption *string        `json:"selectedOption"`
	IsCorrect      bool           `json:"isCorrect"`
	Skipped        bool           `json:"skipped"`
	Solution       string         `json:"solution,omitempty"`
	Missing        bool           `json:"missing,omitempty"`
}

// AttemptReview is the read-only reconstruction of a past attempt.
type AttemptReview struct {
	AttemptID   string           `json:"attemptId"`
	StudentID   uint             `json:"-"`
	ExamID      uint             `json:"examId"`
	ExamTitle   string           `json:"examTitle"`
	Score       int              `json:"score"`
	SubmittedAt time.Time        `json:"submittedAt"`
	Questions   []ReviewQuestion `json:"questions"`
}

// GetAttemptReview reloads an attempt with its answer log and re-joins it
// with the question content, using the same correct-answer reconciliation
// as grading so the highlighted option always matches what was scored.
func (s *ExamService) GetAttemptReview(attemptID string) (*AttemptReview, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrAttemptNotFound
	}
	if err != nil {
		return nil, err
	}

	answers, err := s.AttemptRepo.ListAnswers(attemptID)
	if err != nil {
		return nil, err
	}

	questionIDs := make([]uint, 0, len(answers))
	for _, a := range answers {
		questionIDs = append(questionIDs, a.QuestionID)
	}
	questions, err := s.AttemptRepo.FindQuestions(questionIDs)
	if err != nil {
		return nil, err
	}

	review := &AttemptReview{
		AttemptID:   attempt.ID,
		StudentID:   attempt.StudentID,
		ExamID:      attempt.ExamID,
		Score:       attempt.Score,
		SubmittedAt: attempt.SubmittedAt,
		Questions:   make([]ReviewQuestion, 0, len(answers)),
	}
	if attempt.Exam != nil {
		review.ExamTitle = attempt.Exam.Title
	}

	for _, a := range answers {
		rq := ReviewQuestion{
			QuestionID:     a.QuestionID,
			SelectedOption: a.SelectedOption,
			IsCorrect:      a.IsCorrect,
			Skipped:        a.SelectedOption == nil,
		}

		q, ok := questions[a.QuestionID]
		if !ok {
			rq.Missing = true
			review.Questions = append(review.Questions, rq)
			continue
		}

		rq.Question = q.Question
		rq.Solution = q.Solution

		for _, key := range []string{"a", "b", "c", "d"} {
			text := q.OptionText(key)
			if text == "" {
				continue
			}
			rq.Options = append(rq.Options, ReviewOption{
				Key:      key,
				Text:     text,
				Selected: a.SelectedOption != nil && *a.SelectedOption == key,
				Correct:  IsCorrectSelection(&q, key),
			})
		}

		review.Questions = append(review.Questions, rq)
	}

	return review, nil
}
