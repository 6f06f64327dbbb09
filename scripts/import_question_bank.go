// 题库批量导入脚本
//
// 从 YAML 文件导入题库题目，按名称查找或创建大学和年份条目。
//
// 用法: go run scripts/import_question_bank.go questions.yaml
package main

import (
	"log"
	"os"
	"shikkha_backend/internal/config"
	"shikkha_backend/internal/model"
	"shikkha_backend/pkg/database"
	"shikkha_backend/pkg/logger"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

type importedQuestion struct {
	University    string `yaml:"university"`
	Year          string `yaml:"year"`
	Question      string `yaml:"question"`
	OptionA       string `yaml:"optionA"`
	OptionB       string `yaml:"optionB"`
	OptionC       string `yaml:"optionC"`
	OptionD       string `yaml:"optionD"`
	CorrectAnswer string `yaml:"correctAnswer"`
	Solution      string `yaml:"solution"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("用法: go run scripts/import_question_bank.go <questions.yaml>")
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	logger.InitLogger(cfg)

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	data, err := os.ReadFile(os.Args[1])
	if err != nil {
		log.Fatalf("无法读取题目文件: %v", err)
	}

	var questions []importedQuestion
	if err := yaml.Unmarshal(data, &questions); err != nil {
		log.Fatalf("解析题目文件失败: %v", err)
	}

	imported := 0
	for _, q := range questions {
		if q.Question == "" || q.CorrectAnswer == "" {
			log.Printf("跳过缺少题干或答案的条目")
			continue
		}

		item := model.QuestionBankItem{
			UniversityID:  findOrCreateUniversity(db, q.University),
			YearID:        findOrCreateYear(db, q.Year),
			Question:      q.Question,
			OptionA:       q.OptionA,
			OptionB:       q.OptionB,
			OptionC:       q.OptionC,
			OptionD:       q.OptionD,
			CorrectAnswer: q.CorrectAnswer,
			Solution:      q.Solution,
		}
		if err := db.Create(&item).Error; err != nil {
			log.Printf("题目写入失败: %v", err)
			continue
		}
		imported++
	}

	log.Printf("导入完成: %d/%d", imported, len(questions))
}

func findOrCreateUniversity(db *gorm.DB, name string) uint {
	if name == "" {
		return 0
	}
	var u model.University
	if err := db.Where("name = ?", name).First(&u).Error; err != nil {
		u = model.University{Name: name}
		db.Create(&u)
	}
	return u.ID
}

func findOrCreateYear(db *gorm.DB, value string) uint {
	if value == "" {
		return 0
	}
	var y model.Year
	if err := db.Where("value = ?", value).First(&y).Error; err != nil {
		y = model.Year{Value: value}
		db.Create(&y)
	}
	return y.ID
}
