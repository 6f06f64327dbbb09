package service

import (
	"context"
	"encoding/json"
	"errors"
	"shikkha_backend/internal/model"
	"shikkha_backend/internal/repository"
	"shikkha_backend/internal/util"
	"shikkha_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	courseCatalogKey = "courses:catalog"
	courseCacheTTL   = 5 * time.Minute
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	ExamRepo   *repository.ExamRepository
	Redis      *redis.Client
}

func NewCourseService(courseRepo *repository.CourseRepository, examRepo *repository.ExamRepository, rdb *redis.Client) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		ExamRepo:   examRepo,
		Redis:      rdb,
	}
}

// ListCatalog returns the published course list, served from redis when
// the cache is warm. Cache failures fall through to the database.
func (s *CourseService) ListCatalog(ctx context.Context) ([]model.Course, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, courseCatalogKey).Result()
		if err == nil {
			var cached []model.Course
			if jsonErr := json.Unmarshal([]byte(val), &cached); jsonErr == nil {
				return cached, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("course catalog cache read failed", zap.Error(err))
		}
	}

	courses, err := s.CourseRepo.ListPublished()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(courses); err == nil {
			if err := s.Redis.Set(ctx, courseCatalogKey, data, courseCacheTTL).Err(); err != nil {
				logger.Log.Warn("course catalog cache write failed", zap.Error(err))
			}
		}
	}

	return courses, nil
}

func (s *CourseService) invalidateCatalog(ctx context.Context) {
	if s.Redis != nil {
		s.Redis.Del(ctx, courseCatalogKey)
	}
}

type ExamStatus string

const (
	ExamUpcoming ExamStatus = "upcoming"
	ExamLive     ExamStatus = "live"
	ExamPast     ExamStatus = "past"
)

type CourseExam struct {
	model.Exam
	Status ExamStatus `json:"status"`
}

type CourseDetail struct {
	Course *model.Course `json:"course"`
	Exams  []CourseExam  `json:"exams"`
}

// GetDetail loads one course with its exams, each annotated as upcoming,
// live or past based on the start/end window. Exams without a window
// count as live.
func (s *CourseService) GetDetail(courseID uint) (*CourseDetail, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}

	exams, err := s.ExamRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	courseExams := make([]CourseExam, len(exams))
	for i, exam := range exams {
		status := ExamLive
		if exam.StartTime != nil && now.Before(*exam.StartTime) {
			status = ExamUpcoming
		} else if exam.EndTime != nil && now.After(*exam.EndTime) {
			status = ExamPast
		}
		courseExams[i] = CourseExam{Exam: exam, Status: status}
	}

	return &CourseDetail{Course: course, Exams: courseExams}, nil
}

func (s *CourseService) CreateCourse(ctx context.Context, course *model.Course) error {
	if err := s.CourseRepo.Create(course); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *CourseService) UpdateCourse(ctx context.Context, course *model.Course) error {
	if err := s.CourseRepo.Update(course); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *CourseService) DeleteCourse(ctx context.Context, id uint) error {
	if err := s.CourseRepo.Delete(id); err != nil {
		return err
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrCourseNotFound
	}
	return course, err
}

func (s *CourseService) ListAll(page, limit int) ([]model.Course, int64, error) {
	return s.CourseRepo.ListAll(page, limit)
}
