package repository

import (
	"shikkha_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionBankRepository struct {
	DB *gorm.DB
}

func NewQuestionBankRepository(db *gorm.DB) *QuestionBankRepository {
	return &QuestionBankRepository{DB: db}
}

func (r *QuestionBankRepository) Create(item *model.QuestionBankItem) error {
	return r.DB.Create(item).Error
}

func (r *QuestionBankRepository) FindByID(id uint) (*model.QuestionBankItem, error) {
	var item model.QuestionBankItem
	err := r.DB.First(&item, id).Error
	return &item, err
}

func (r *QuestionBankRepository) Update(item *model.QuestionBankItem) error {
	return r.DB.Save(item).Error
}

func (r *QuestionBankRepository) Delete(id uint) error {
	return r.DB.Delete(&model.QuestionBankItem{}, id).Error
}

func (r *QuestionBankRepository) List(universityID, yearID uint, page, limit int) ([]model.QuestionBankItem, int64, error) {
	query := r.DB.Model(&model.QuestionBankItem{}).Preload("University").Preload("Year")
	if universityID != 0 {
		query = query.Where("university_id = ?", universityID)
	}
	if yearID != 0 {
		query = query.Where("year_id = ?", yearID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []model.QuestionBankItem
	offset := (page - 1) * limit
	err := query.Order("id asc").Offset(offset).Limit(limit).Find(&items).Error
	return items, total, err
}

func (r *QuestionBankRepository) ListUniversities() ([]model.University, error) {
	var universities []model.University
	err := r.DB.Order("name asc").Find(&universities).Error
	return universities, err
}

func (r *QuestionBankRepository) CreateUniversity(u *model.University) error {
	return r.DB.Create(u).Error
}

func (r *QuestionBankRepository) DeleteUniversity(id uint) error {
	return r.DB.Delete(&model.University{}, id).Error
}

func (r *QuestionBankRepository) ListYears() ([]model.Year, error) {
	var years []model.Year
	err := r.DB.Order("value desc").Find(&years).Error
	return years, err
}

func (r *QuestionBankRepository) CreateYear(y *model.Year) error {
	return r.DB.Create(y).Error
}

func (r *QuestionBankRepository) DeleteYear(id uint) error {
	return r.DB.Delete(&model.Year{}, id).Error
}
