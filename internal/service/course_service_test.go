package service

import (
	"context"
	"shikkha_backend/internal/model"
	"shikkha_backend/internal/repository"
	"shikkha_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCourseService(t *testing.T) (*CourseService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewCourseService(repository.NewCourseRepository(db), repository.NewExamRepository(db), nil), db
}

func TestListCatalogOnlyPublished(t *testing.T) {
	svc, db := newCourseService(t)

	require.NoError(t, db.Create(&model.Course{Title: "Physics", IsPublished: true}).Error)

	draft := &model.Course{Title: "Draft", IsPublished: false}
	require.NoError(t, db.Create(draft).Error)

	var stored model.Course
	require.NoError(t, db.First(&stored, draft.ID).Error)
	assert.False(t, stored.IsPublished)

	courses, err := svc.ListCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, "Physics", courses[0].Title)
}

func TestGetDetailExamStatuses(t *testing.T) {
	svc, db := newCourseService(t)

	course := &model.Course{Title: "Physics", IsPublished: true}
	require.NoError(t, db.Create(course).Error)

	now := time.Now()
	past := now.Add(-2 * time.Hour)
	pastEnd := now.Add(-1 * time.Hour)
	future := now.Add(1 * time.Hour)
	futureEnd := now.Add(2 * time.Hour)

	require.NoError(t, db.Create(&model.Exam{CourseID: course.ID, Title: "Past", StartTime: &past, EndTime: &pastEnd}).Error)
	require.NoError(t, db.Create(&model.Exam{CourseID: course.ID, Title: "Upcoming", StartTime: &future, EndTime: &futureEnd}).Error)
	require.NoError(t, db.Create(&model.Exam{CourseID: course.ID, Title: "Anytime", Duration: 30}).Error)

	detail, err := svc.GetDetail(course.ID)
	require.NoError(t, err)
	require.Len(t, detail.Exams, 3)

	byTitle := make(map[string]ExamStatus, 3)
	for _, e := range detail.Exams {
		byTitle[e.Title] = e.Status
	}
	assert.Equal(t, ExamPast, byTitle["Past"])
	assert.Equal(t, ExamUpcoming, byTitle["Upcoming"])
	assert.Equal(t, ExamLive, byTitle["Anytime"])
}

func TestGetDetailUnknownCourse(t *testing.T) {
	svc, _ := newCourseService(t)

	_, err := svc.GetDetail(404)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}
