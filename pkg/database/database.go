package database

import (
	"fmt"
	"log"
	"shikkha_backend/internal/config"
	"shikkha_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Enrollment{},
		&model.Exam{},
		&model.ExamQuestion{},
		&model.ExamAttempt{},
		&model.AttemptAnswer{},
		&model.University{},
		&model.Year{},
		&model.QuestionBankItem{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// 默认的题库筛选项
	var uniCount int64
	db.Model(&model.University{}).Count(&uniCount)
	if uniCount == 0 {
		defaultUniversities := []model.University{
			{Name: "Dhaka University"},
			{Name: "BUET"},
			{Name: "Rajshahi University"},
			{Name: "Chittagong University"},
		}
		for _, u := range defaultUniversities {
			db.Create(&u)
		}
	}

	var yearCount int64
	db.Model(&model.Year{}).Count(&yearCount)
	if yearCount == 0 {
		for y := 2018; y <= 2025; y++ {
			db.Create(&model.Year{Value: fmt.Sprintf("%d", y)})
		}
	}

	return db, nil
}
