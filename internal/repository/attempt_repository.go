package repository

import (
	"shikkha_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// CreateAttempt inserts the attempt summary row. The generated identifier
// is available on attempt.ID afterwards.
func (r *AttemptRepository) CreateAttempt(attempt *model.ExamAttempt) error {
	return r.DB.Create(attempt).Error
}

// CreateAnswers batch-inserts the per-question answer log. Callers must
// have persisted the parent attempt first.
func (r *AttemptRepository) CreateAnswers(answers []model.AttemptAnswer) error {
	if len(answers) == 0 {
		return nil
	}
	return r.DB.Create(&answers).Error
}

func (r *AttemptRepository) FindByID(id string) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.DB.Preload("Exam").First(&attempt, "id = ?", id).Error
	return &attempt, err
}

func (r *AttemptRepository) ListAnswers(attemptID string) ([]model.AttemptAnswer, error) {
	var answers []model.AttemptAnswer
	err := r.DB.Where("attempt_id = ?", attemptID).Order("created_at asc").Find(&answers).Error
	return answers, err
}

func (r *AttemptRepository) ListByStudent(studentID uint) ([]model.ExamAttempt, error) {
	var attempts []model.ExamAttempt
	err := r.DB.Preload("Exam").
		Where("student_id = ?", studentID).
		Order("submitted_at desc").
		Find(&attempts).Error
	return attempts, err
}

func (r *AttemptRepository) ListByExam(examID uint, page, limit int) ([]model.ExamAttempt, int64, error) {
	query := r.DB.Model(&model.ExamAttempt{}).Where("exam_id = ?", examID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var attempts []model.ExamAttempt
	offset := (page - 1) * limit
	err := query.Order("submitted_at desc").Offset(offset).Limit(limit).Find(&attempts).Error
	return attempts, total, err
}

// FindQuestions loads the questions referenced by a set of answers in one
// query, keyed by question ID. Missing questions are simply absent from
// the map; review rendering tolerates that.
func (r *AttemptRepository) FindQuestions(questionIDs []uint) (map[uint]model.ExamQuestion, error) {
	result := make(map[uint]model.ExamQuestion, len(questionIDs))
	if len(questionIDs) == 0 {
		return result, nil
	}

	var qs []model.ExamQuestion
	if err := r.DB.Where("id IN ?", questionIDs).Find(&qs).Error; err != nil {
		return nil, err
	}
	for _, q := range qs {
		result[q.ID] = q
	}
	return result, nil
}
