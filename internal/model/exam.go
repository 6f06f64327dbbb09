package model

import "time"

// swagger:model Exam
type Exam struct {
	BaseModel
	CourseID  uint       `gorm:"index;type:bigint unsigned" json:"courseId"`
	Title     string     `gorm:"size:255;not null" json:"title"`
	Duration  int        `gorm:"default:0" json:"duration"` // Minutes; 0 means derive from StartTime/EndTime
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

// ExamQuestion is a four-option multiple choice question. CorrectAnswer
// holds either an option key ("a".."d") or the literal text of the correct
// option; both forms occur in imported data.
type ExamQuestion struct {
	BaseModel
	ExamID        uint   `gorm:"index;type:bigint unsigned" json:"examId"`
	Question      string `gorm:"type:text;not null" json:"question"`
	OptionA       string `gorm:"type:text" json:"optionA"`
	OptionB       string `gorm:"type:text" json:"optionB"`
	OptionC       string `gorm:"type:text" json:"optionC"`
	OptionD       string `gorm:"type:text" json:"optionD"`
	CorrectAnswer string `gorm:"type:text" json:"correctAnswer"`
	Solution      string `gorm:"type:text" json:"solution"`
}

func (ExamQuestion) TableName() string {
	return "exam_questions"
}

// Options returns the non-empty options keyed "a".."d".
func (q *ExamQuestion) Options() map[string]string {
	opts := make(map[string]string, 4)
	for key, text := range map[string]string{
		"a": q.OptionA,
		"b": q.OptionB,
		"c": q.OptionC,
		"d": q.OptionD,
	} {
		if text != "" {
			opts[key] = text
		}
	}
	return opts
}

// OptionText returns the option text for a key, or "" for an unknown key.
func (q *ExamQuestion) OptionText(key string) string {
	switch key {
	case "a":
		return q.OptionA
	case "b":
		return q.OptionB
	case "c":
		return q.OptionC
	case "d":
		return q.OptionD
	}
	return ""
}
