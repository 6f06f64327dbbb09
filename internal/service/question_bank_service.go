package service

import (
	"errors"
	"shikkha_backend/internal/model"
	"shikkha_backend/internal/repository"
	"shikkha_backend/internal/util"

	"gorm.io/gorm"
)

type QuestionBankService struct {
	Repo *repository.QuestionBankRepository
}

func NewQuestionBankService(repo *repository.QuestionBankRepository) *QuestionBankService {
	return &QuestionBankService{Repo: repo}
}

// BankQuestion is the student-facing view: no correct answer, no solution.
type BankQuestion struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	OptionA    string `json:"optionA"`
	OptionB    string `json:"optionB"`
	OptionC    string `json:"optionC"`
	OptionD    string `json:"optionD"`
	University string `json:"university,omitempty"`
	Year       string `json:"year,omitempty"`
}

func (s *QuestionBankService) List(universityID, yearID uint, page, limit int) ([]BankQuestion, int64, error) {
	items, total, err := s.Repo.List(universityID, yearID, page, limit)
	if err != nil {
		return nil, 0, err
	}

	questions := make([]BankQuestion, len(items))
	for i, item := range items {
		q := BankQuestion{
			ID:       item.ID,
			Question: item.Question,
			OptionA:  item.OptionA,
			OptionB:  item.OptionB,
			OptionC:  item.OptionC,
			OptionD:  item.OptionD,
		}
		if item.University != nil {
			q.University = item.University.Name
		}
		if item.Year != nil {
			q.Year = item.Year.Value
		}
		questions[i] = q
	}
	return questions, total, nil
}

// CheckResult is the outcome of a practice answer check. Nothing is
// persisted for practice questions.
type CheckResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Solution      string `json:"solution,omitempty"`
}

// Check grades one practice selection with the same reconciliation rule
// the exam grader uses.
func (s *QuestionBankService) Check(questionID uint, selectedKey string) (*CheckResult, error) {
	item, err := s.Repo.FindByID(questionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &CheckResult{
		Correct:       IsCorrectSelection(item.AsExamQuestion(), selectedKey),
		CorrectAnswer: item.CorrectAnswer,
		Solution:      item.Solution,
	}, nil
}

func (s *QuestionBankService) CreateItem(item *model.QuestionBankItem) error {
	return s.Repo.Create(item)
}

func (s *QuestionBankService) UpdateItem(item *model.QuestionBankItem) error {
	return s.Repo.Update(item)
}

func (s *QuestionBankService) DeleteItem(id uint) error {
	return s.Repo.Delete(id)
}

func (s *QuestionBankService) GetItem(id uint) (*model.QuestionBankItem, error) {
	item, err := s.Repo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrQuestionNotFound
	}
	return item, err
}

func (s *QuestionBankService) ListUniversities() ([]model.University, error) {
	return s.Repo.ListUniversities()
}

func (s *QuestionBankService) CreateUniversity(u *model.University) error {
	return s.Repo.CreateUniversity(u)
}

func (s *QuestionBankService) DeleteUniversity(id uint) error {
	return s.Repo.DeleteUniversity(id)
}

func (s *QuestionBankService) ListYears() ([]model.Year, error) {
	return s.Repo.ListYears()
}

func (s *QuestionBankService) CreateYear(y *model.Year) error {
	return s.Repo.CreateYear(y)
}

func (s *QuestionBankService) DeleteYear(id uint) error {
	return s.Repo.DeleteYear(id)
}
