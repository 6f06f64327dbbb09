package service

import (
	"shikkha_backend/internal/model"
	"shikkha_backend/internal/repository"
	"shikkha_backend/internal/util"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEnrollmentService(t *testing.T) (*EnrollmentService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	return NewEnrollmentService(repository.NewEnrollmentRepository(db), repository.NewCourseRepository(db)), db
}

func TestEnrollIsIdempotent(t *testing.T) {
	svc, db := newEnrollmentService(t)

	course := &model.Course{Title: "Physics", IsPublished: true}
	require.NoError(t, db.Create(course).Error)

	enrollment, err := svc.Enroll(7, course.ID)
	require.NoError(t, err)
	require.NotNil(t, enrollment)

	// 重复选课不报错也不重复建档
	again, err := svc.Enroll(7, course.ID)
	require.NoError(t, err)
	assert.Nil(t, again)

	var count int64
	db.Model(&model.Enrollment{}).Count(&count)
	assert.EqualValues(t, 1, count)

	enrolled, err := svc.IsEnrolled(7, course.ID)
	require.NoError(t, err)
	assert.True(t, enrolled)

	enrolled, err = svc.IsEnrolled(8, course.ID)
	require.NoError(t, err)
	assert.False(t, enrolled)
}

func TestEnrollUnknownCourse(t *testing.T) {
	svc, _ := newEnrollmentService(t)

	_, err := svc.Enroll(7, 999)
	assert.ErrorIs(t, err, util.ErrCourseNotFound)
}

func TestMyCoursesPreloadsCourse(t *testing.T) {
	svc, db := newEnrollmentService(t)

	course := &model.Course{Title: "Physics", IsPublished: true}
	require.NoError(t, db.Create(course).Error)
	_, err := svc.Enroll(7, course.ID)
	require.NoError(t, err)

	mine, err := svc.MyCourses(7)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.NotNil(t, mine[0].Course)
	assert.Equal(t, "Physics", mine[0].Course.Title)
}
