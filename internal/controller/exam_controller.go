package controller

import (
	"errors"
	"shikkha_backend/internal/model"
	"shikkha_backend/internal/service"
	"shikkha_backend/internal/util"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
	Sessions    *service.SessionManager
}

func NewExamController(examService *service.ExamService, sessions *service.SessionManager) *ExamController {
	return &ExamController{
		ExamService: examService,
		Sessions:    sessions,
	}
}

// StudentQuestion is the in-exam view of a question: no correct-answer
// marker, no solution.
type StudentQuestion struct {
	ID       uint   `json:"id"`
	Question string `json:"question"`
	OptionA  string `json:"optionA"`
	OptionB  string `json:"optionB"`
	OptionC  string `json:"optionC"`
	OptionD  string `json:"optionD"`
}

type StartExamResponse struct {
	SessionID     string            `json:"sessionId"`
	ExamID        uint              `json:"examId"`
	Title         string            `json:"title"`
	RemainingTime int               `json:"remainingTime"` // Seconds
	Questions     []StudentQuestion `json:"questions"`
}

// @Summary Start a timed exam session
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam ID"
// @Success 201 {object} util.Response
// @Router /api/exams/{id}/start [post]
func (c *ExamController) StartExam(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	examID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	session, err := c.Sessions.Start(user.UserID, uint(examID))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrExamNotFound):
			util.NotFound(ctx)
		case errors.Is(err, util.ErrNotEnrolled):
			util.Forbidden(ctx)
		case errors.Is(err, util.ErrExamHasNoQuestions):
			util.BadRequest(ctx, "cannot load exam")
		default:
			util.Error(ctx, 503, "cannot load exam, please try again")
		}
		return
	}

	questions := make([]StudentQuestion, len(session.Questions))
	for i, q := range session.Questions {
		questions[i] = StudentQuestion{
			ID:       q.ID,
			Question: q.Question,
			OptionA:  q.OptionA,
			OptionB:  q.OptionB,
			OptionC:  q.OptionC,
			OptionD:  q.OptionD,
		}
	}

	util.Created(ctx, StartExamResponse{
		SessionID:     session.ID,
		ExamID:        session.Exam.ID,
		Title:         session.Exam.Title,
		RemainingTime: session.Remaining(),
		Questions:     questions,
	})
}

// sessionForUser resolves the session and rejects access by anyone other
// than the student who started it.
func (c *ExamController) sessionForUser(ctx *gin.Context) (*service.ExamSession, *util.Claims, bool) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return nil, nil, false
	}

	session, err := c.Sessions.Get(ctx.Param("sid"))
	if err != nil {
		util.NotFound(ctx)
		return nil, nil, false
	}
	if session.StudentID != user.UserID {
		util.Forbidden(ctx)
		return nil, nil, false
	}
	return session, user, true
}

type SelectAnswerRequest struct {
	QuestionID uint   `json:"questionId" binding:"required"`
	OptionKey  string `json:"optionKey" binding:"required"`
}

// @Summary Record an answer selection
// @Tags exams
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param sid path string true "session ID"
// @Param body body SelectAnswerRequest true "selection"
// @Success 200 {object} util.Response
// @Router /api/exam-sessions/{sid}/answers [post]
func (c *ExamController) SelectAnswer(ctx *gin.Context) {
	session, _, ok := c.sessionForUser(ctx)
	if !ok {
		return
	}

	var req SelectAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := session.Select(req.QuestionID, req.OptionKey); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	util.Success(ctx, gin.H{"remainingTime": session.Remaining()})
}

// @Summary Submit the exam session
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Param sid path string true "session ID"
// @Success 200 {object} util.Response
// @Router /api/exam-sessions/{sid}/submit [post]
func (c *ExamController) SubmitExam(ctx *gin.Context) {
	if _, _, ok := c.sessionForUser(ctx); !ok {
		return
	}

	result, err := c.Sessions.Submit(ctx.Param("sid"), service.TriggerManual)
	if err != nil {
		if errors.Is(err, util.ErrAlreadySubmitted) || errors.Is(err, util.ErrSessionNotFound) {
			// The timer beat us to it; the attempt exists, nothing to redo.
			util.Success(ctx, gin.H{"submitted": true})
			return
		}
		if errors.Is(err, util.ErrAuthRequired) {
			util.Unauthorized(ctx)
			return
		}
		// Step-1 write failure: session stays open, the student may retry.
		util.Error(ctx, 503, "could not save your attempt, please try submitting again")
		return
	}

	util.Success(ctx, result)
}

// @Summary Abandon an unsubmitted session
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Param sid path string true "session ID"
// @Success 200 {object} util.Response
// @Router /api/exam-sessions/{sid} [delete]
func (c *ExamController) AbandonSession(ctx *gin.Context) {
	_, _, ok := c.sessionForUser(ctx)
	if !ok {
		return
	}

	if err := c.Sessions.Abandon(ctx.Param("sid")); err != nil {
		util.NotFound(ctx)
		return
	}
	util.Success(ctx, gin.H{"abandoned": true})
}

// @Summary Exam history of the current student
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/attempts [get]
func (c *ExamController) ListMyAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	attempts, err := c.ExamService.ListAttemptsByStudent(user.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// @Summary Read-only review of a past attempt
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Param id path string true "attempt ID"
// @Success 200 {object} util.Response
// @Router /api/attempts/{id}/review [get]
func (c *ExamController) GetAttemptReview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	review, err := c.ExamService.GetAttemptReview(ctx.Param("id"))
	if err != nil {
		if errors.Is(err, util.ErrAttemptNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}

	if review.StudentID != user.UserID && user.Role != model.Admin {
		util.Forbidden(ctx)
		return
	}
	util.Success(ctx, review)
}

// @Summary Exams of a course
// @Tags exams
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "course ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/exams [get]
func (c *ExamController) ListCourseExams(ctx *gin.Context) {
	courseID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	exams, err := c.ExamService.ListExamsByCourse(uint(courseID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

type ExamRequest struct {
	CourseID  uint       `json:"courseId" binding:"required"`
	Title     string     `json:"title" binding:"required"`
	Duration  int        `json:"duration"`
	StartTime *time.Time `json:"startTime"`
	EndTime   *time.Time `json:"endTime"`
}

// @Summary Create an exam
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body ExamRequest true "exam info"
// @Success 201 {object} util.Response
// @Router /api/admin/exams [post]
func (c *ExamController) CreateExam(ctx *gin.Context) {
	var req ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam := &model.Exam{
		CourseID:  req.CourseID,
		Title:     req.Title,
		Duration:  req.Duration,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if err := c.ExamService.ExamRepo.Create(exam); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

// @Summary Update an exam
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam ID"
// @Param body body ExamRequest true "exam info"
// @Success 200 {object} util.Response
// @Router /api/admin/exams/{id} [put]
func (c *ExamController) UpdateExam(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	exam, err := c.ExamService.GetExam(uint(id))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	var req ExamRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam.CourseID = req.CourseID
	exam.Title = req.Title
	exam.Duration = req.Duration
	exam.StartTime = req.StartTime
	exam.EndTime = req.EndTime

	if err := c.ExamService.ExamRepo.Update(exam); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// @Summary Delete an exam and its questions
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam ID"
// @Success 200 {object} util.Response
// @Router /api/admin/exams/{id} [delete]
func (c *ExamController) DeleteExam(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	if err := c.ExamService.ExamRepo.Delete(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

type ExamQuestionRequest struct {
	Question      string `json:"question" binding:"required"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer" binding:"required"`
	Solution      string `json:"solution"`
}

// @Summary Add a question to an exam
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam ID"
// @Param body body ExamQuestionRequest true "question"
// @Success 201 {object} util.Response
// @Router /api/admin/exams/{id}/questions [post]
func (c *ExamController) CreateQuestion(ctx *gin.Context) {
	examID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	var req ExamQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q := &model.ExamQuestion{
		ExamID:        uint(examID),
		Question:      req.Question,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: req.CorrectAnswer,
		Solution:      req.Solution,
	}
	if err := c.ExamService.ExamRepo.CreateQuestion(q); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// @Summary Update an exam question
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param qid path int true "question ID"
// @Param body body ExamQuestionRequest true "question"
// @Success 200 {object} util.Response
// @Router /api/admin/exam-questions/{qid} [put]
func (c *ExamController) UpdateQuestion(ctx *gin.Context) {
	qid, err := strconv.ParseUint(ctx.Param("qid"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	q, err := c.ExamService.ExamRepo.FindQuestionByID(uint(qid))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	var req ExamQuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	q.Question = req.Question
	q.OptionA = req.OptionA
	q.OptionB = req.OptionB
	q.OptionC = req.OptionC
	q.OptionD = req.OptionD
	q.CorrectAnswer = req.CorrectAnswer
	q.Solution = req.Solution

	if err := c.ExamService.ExamRepo.UpdateQuestion(q); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// @Summary Delete an exam question
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param qid path int true "question ID"
// @Success 200 {object} util.Response
// @Router /api/admin/exam-questions/{qid} [delete]
func (c *ExamController) DeleteQuestion(ctx *gin.Context) {
	qid, err := strconv.ParseUint(ctx.Param("qid"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	if err := c.ExamService.ExamRepo.DeleteQuestion(uint(qid)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": qid})
}

// @Summary All questions of an exam, including answers
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam ID"
// @Success 200 {object} util.Response
// @Router /api/admin/exams/{id}/questions [get]
func (c *ExamController) ListQuestionsAdmin(ctx *gin.Context) {
	examID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	qs, err := c.ExamService.ExamRepo.ListQuestions(uint(examID))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, qs)
}

// @Summary Attempts of one exam
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "exam ID"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response
// @Router /api/admin/exams/{id}/attempts [get]
func (c *ExamController) ListExamAttempts(ctx *gin.Context) {
	examID, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	attempts, total, err := c.ExamService.ListAttemptsByExam(uint(examID), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": attempts, "total": total})
}
