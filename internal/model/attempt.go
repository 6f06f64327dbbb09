package model

import "time"

// ExamAttempt is one finalized submission by one student. The score is
// computed once at submit time and never recomputed.
type ExamAttempt struct {
	UUIDBase
	ExamID      uint      `gorm:"index;type:bigint unsigned" json:"examId"`
	Exam        *Exam     `gorm:"foreignKey:ExamID" json:"exam,omitempty"`
	StudentID   uint      `gorm:"index;type:bigint unsigned" json:"studentId"`
	SubmittedAt time.Time `json:"submittedAt"`
	Score       int       `gorm:"default:0" json:"score"` // Percent, 0..100
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}

// AttemptAnswer is the per-question outcome of one attempt. SelectedOption
// is nil when the question was skipped.
type AttemptAnswer struct {
	UUIDBase
	AttemptID      string  `gorm:"index;type:varchar(36)" json:"attemptId"`
	QuestionID     uint    `gorm:"index;type:bigint unsigned" json:"questionId"`
	SelectedOption *string `gorm:"size:10" json:"selectedOption"`
	IsCorrect      bool    `gorm:"default:false" json:"isCorrect"`
}

func (AttemptAnswer) TableName() string {
	return "attempt_answers"
}
