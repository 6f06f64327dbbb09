package model

// University is a lookup table for question bank filtering.
type University struct {
	BaseModel
	Name string `gorm:"size:255;unique;not null" json:"name"`
}

func (University) TableName() string {
	return "universities"
}

type Year struct {
	BaseModel
	Value string `gorm:"size:20;unique;not null" json:"value"`
}

func (Year) TableName() string {
	return "years"
}

// QuestionBankItem is a practice question. Same option/marker shape as
// ExamQuestion but not tied to any exam; practice answers are never persisted.
type QuestionBankItem struct {
	BaseModel
	UniversityID  uint        `gorm:"index;type:bigint unsigned" json:"universityId"`
	University    *University `gorm:"foreignKey:UniversityID" json:"university,omitempty"`
	YearID        uint        `gorm:"index;type:bigint unsigned" json:"yearId"`
	Year          *Year       `gorm:"foreignKey:YearID" json:"year,omitempty"`
	Question      string      `gorm:"type:text;not null" json:"question"`
	OptionA       string      `gorm:"type:text" json:"optionA"`
	OptionB       string      `gorm:"type:text" json:"optionB"`
	OptionC       string      `gorm:"type:text" json:"optionC"`
	OptionD       string      `gorm:"type:text" json:"optionD"`
	CorrectAnswer string      `gorm:"type:text" json:"correctAnswer"`
	Solution      string      `gorm:"type:text" json:"solution"`
}

func (QuestionBankItem) TableName() string {
	return "question_bank"
}

// AsExamQuestion adapts a bank item to the grading helpers, which operate
// on ExamQuestion.
func (i *QuestionBankItem) AsExamQuestion() *ExamQuestion {
	return &ExamQuestion{
		BaseModel:     i.BaseModel,
		Question:      i.Question,
		OptionA:       i.OptionA,
		OptionB:       i.OptionB,
		OptionC:       i.OptionC,
		OptionD:       i.OptionD,
		CorrectAnswer: i.CorrectAnswer,
		Solution:      i.Solution,
	}
}
