package service

import (
	"shikkha_backend/internal/model"
	"shikkha_backend/internal/repository"
	"shikkha_backend/internal/util"
	"shikkha_backend/pkg/monitoring"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSessionManager(t *testing.T) (*SessionManager, *gorm.DB) {
	t.Helper()
	svc, db := newExamService(t)
	return NewSessionManager(svc, nil), db
}

func TestDurationSeconds(t *testing.T) {
	assert.Equal(t, 1800, durationSeconds(&model.Exam{Duration: 30}))

	start := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)
	assert.Equal(t, 5400, durationSeconds(&model.Exam{StartTime: &start, EndTime: &end}))

	// 显式时长优先于时间窗口
	assert.Equal(t, 600, durationSeconds(&model.Exam{Duration: 10, StartTime: &start, EndTime: &end}))

	assert.Equal(t, 0, durationSeconds(&model.Exam{}))
	assert.Equal(t, 0, durationSeconds(&model.Exam{StartTime: &end, EndTime: &start}))
}

func TestStartRejectsExamWithoutQuestions(t *testing.T) {
	m, db := newSessionManager(t)

	exam := &model.Exam{CourseID: 1, Title: "Empty", Duration: 10}
	require.NoError(t, db.Create(exam).Error)

	_, err := m.Start(7, exam.ID)
	assert.ErrorIs(t, err, util.ErrExamHasNoQuestions)
}

func TestStartUnknownExam(t *testing.T) {
	m, _ := newSessionManager(t)

	_, err := m.Start(7, 9999)
	assert.ErrorIs(t, err, util.ErrExamNotFound)
}

func TestStartRequiresEnrollment(t *testing.T) {
	svc, db := newExamService(t)
	enrollmentSvc := NewEnrollmentService(repository.NewEnrollmentRepository(db), repository.NewCourseRepository(db))
	m := NewSessionManager(svc, enrollmentSvc)

	course := &model.Course{Title: "Physics"}
	require.NoError(t, db.Create(course).Error)

	exam := &model.Exam{CourseID: course.ID, Title: "Physics Final", Duration: 10}
	require.NoError(t, db.Create(exam).Error)
	q := question(0, "a")
	q.ExamID = exam.ID
	require.NoError(t, db.Create(&q).Error)

	_, err := m.Start(7, exam.ID)
	assert.ErrorIs(t, err, util.ErrNotEnrolled)

	require.NoError(t, db.Create(&model.Enrollment{StudentID: 7, CourseID: course.ID}).Error)

	session, err := m.Start(7, exam.ID)
	require.NoError(t, err)
	assert.Equal(t, SessionInProgress, session.State())
	assert.Equal(t, 600, session.Remaining())
}

func TestSelectAfterSubmitRejected(t *testing.T) {
	m, db := newSessionManager(t)
	exam, questions := seedExam(t, db, "a")
	exam.Duration = 0 // 无时钟，仅手动交卷
	require.NoError(t, db.Save(exam).Error)

	session, err := m.Start(7, exam.ID)
	require.NoError(t, err)

	require.NoError(t, session.Select(questions[0].ID, "a"))
	// 重选覆盖旧选择
	require.NoError(t, session.Select(questions[0].ID, "b"))

	_, err = m.Submit(session.ID, TriggerManual)
	require.NoError(t, err)

	assert.ErrorIs(t, session.Select(questions[0].ID, "c"), util.ErrAlreadySubmitted)
}

func TestSubmitOnceOnly(t *testing.T) {
	m, db := newSessionManager(t)
	exam, questions := seedExam(t, db, "a", "b")

	session, err := m.Start(7, exam.ID)
	require.NoError(t, err)
	require.NoError(t, session.Select(questions[0].ID, "a"))

	result, err := m.Submit(session.ID, TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Correct)
	assert.Equal(t, 1, result.Skipped)
	assert.Equal(t, 50, result.Percent)
	assert.True(t, result.AnswersSaved)
	assert.NotEmpty(t, result.AttemptID)

	// 交卷后会话即销毁，第二次提交不再写库
	_, err = m.Submit(session.ID, TriggerManual)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	var count int64
	db.Model(&model.ExamAttempt{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSubmitKeepsSessionOnPersistFailure(t *testing.T) {
	m, db := newSessionManager(t)
	exam, questions := seedExam(t, db, "a")

	session, err := m.Start(7, exam.ID)
	require.NoError(t, err)
	require.NoError(t, session.Select(questions[0].ID, "a"))

	// 模拟第一步写入失败
	require.NoError(t, db.Migrator().DropTable(&model.ExamAttempt{}))

	_, err = m.Submit(session.ID, TriggerManual)
	require.Error(t, err)

	// 会话保持打开，可以重试
	assert.Equal(t, SessionInProgress, session.State())
	got, err := m.Get(session.ID)
	require.NoError(t, err)
	assert.Same(t, session, got)

	require.NoError(t, db.Migrator().CreateTable(&model.ExamAttempt{}))

	result, err := m.Submit(session.ID, TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Percent)
}

func TestAbandonDiscardsEverything(t *testing.T) {
	m, db := newSessionManager(t)
	exam, questions := seedExam(t, db, "a")

	session, err := m.Start(7, exam.ID)
	require.NoError(t, err)
	require.NoError(t, session.Select(questions[0].ID, "a"))

	require.NoError(t, m.Abandon(session.ID))

	_, err = m.Get(session.ID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	var count int64
	db.Model(&model.ExamAttempt{}).Count(&count)
	assert.Zero(t, count)
}

func TestAbandonTwiceDoesNotPanic(t *testing.T) {
	m, db := newSessionManager(t)
	exam, _ := seedExam(t, db, "a")

	session, err := m.Start(7, exam.ID)
	require.NoError(t, err)

	require.NoError(t, m.Abandon(session.ID))
	assert.Equal(t, SessionAbandoned, session.State())

	// 模拟两个并发放弃都先查到了会话、再依次进入临界区
	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	require.NotPanics(t, func() {
		require.NoError(t, m.Abandon(session.ID))
	})

	_, err = m.Get(session.ID)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	// 已放弃的会话不能再被判分入库
	_, err = m.Submit(session.ID, TriggerManual)
	assert.ErrorIs(t, err, util.ErrSessionNotFound)

	var count int64
	db.Model(&model.ExamAttempt{}).Count(&count)
	assert.Zero(t, count)
}

func TestActiveSessionGaugeStaysBalanced(t *testing.T) {
	m, db := newSessionManager(t)
	exam, questions := seedExam(t, db, "a")

	base := testutil.ToFloat64(monitoring.ActiveExamSessions)

	first, err := m.Start(7, exam.ID)
	require.NoError(t, err)
	second, err := m.Start(8, exam.ID)
	require.NoError(t, err)
	assert.Equal(t, base+2, testutil.ToFloat64(monitoring.ActiveExamSessions))

	require.NoError(t, m.Abandon(first.ID))
	require.NoError(t, second.Select(questions[0].ID, "a"))
	_, err = m.Submit(second.ID, TriggerManual)
	require.NoError(t, err)
	assert.Equal(t, base, testutil.ToFloat64(monitoring.ActiveExamSessions))

	// 重复放弃已销毁的会话不会把计数减成负数
	assert.ErrorIs(t, m.Abandon(first.ID), util.ErrSessionNotFound)
	assert.Equal(t, base, testutil.ToFloat64(monitoring.ActiveExamSessions))
}

func TestTimerAutoSubmits(t *testing.T) {
	if testing.Short() {
		t.Skip("timer test sleeps for a few seconds")
	}

	m, db := newSessionManager(t)
	exam, questions := seedExam(t, db, "a")

	// 两秒的时间窗口
	start := time.Now()
	end := start.Add(2 * time.Second)
	exam.Duration = 0
	exam.StartTime = &start
	exam.EndTime = &end
	require.NoError(t, db.Save(exam).Error)

	session, err := m.Start(7, exam.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, session.Remaining())
	require.NoError(t, session.Select(questions[0].ID, "a"))

	require.Eventually(t, func() bool {
		_, err := m.Get(session.ID)
		return err != nil
	}, 5*time.Second, 100*time.Millisecond, "timer should auto-submit and close the session")

	assert.Equal(t, SessionSubmitted, session.State())

	var attempt model.ExamAttempt
	require.NoError(t, db.First(&attempt, "exam_id = ?", exam.ID).Error)
	assert.Equal(t, 100, attempt.Score)
}
