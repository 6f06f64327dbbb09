package controller

import (
	"errors"
	"shikkha_backend/internal/model"
	"shikkha_backend/internal/service"
	"shikkha_backend/internal/util"
	"strconv"

	"github.com/gin-gonic/gin"
)

type QuestionBankController struct {
	BankService *service.QuestionBankService
}

func NewQuestionBankController(bankService *service.QuestionBankService) *QuestionBankController {
	return &QuestionBankController{BankService: bankService}
}

// @Summary Browse practice questions
// @Tags question-bank
// @Produce json
// @Security ApiKeyAuth
// @Param universityId query int false "filter by university"
// @Param yearId query int false "filter by year"
// @Param page query int false "page" default(1)
// @Param limit query int false "page size" default(20)
// @Success 200 {object} util.Response
// @Router /api/question-bank [get]
func (c *QuestionBankController) ListQuestions(ctx *gin.Context) {
	universityID, _ := strconv.ParseUint(ctx.Query("universityId"), 10, 64)
	yearID, _ := strconv.ParseUint(ctx.Query("yearId"), 10, 64)
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	items, total, err := c.BankService.List(uint(universityID), uint(yearID), page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"items": items, "total": total})
}

type CheckAnswerRequest struct {
	OptionKey string `json:"optionKey" binding:"required"`
}

// @Summary Check a practice answer
// @Tags question-bank
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question ID"
// @Param body body CheckAnswerRequest true "selection"
// @Success 200 {object} util.Response
// @Router /api/question-bank/{id}/check [post]
func (c *QuestionBankController) CheckAnswer(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	var req CheckAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.BankService.Check(uint(id), req.OptionKey)
	if err != nil {
		if errors.Is(err, util.ErrQuestionNotFound) {
			util.NotFound(ctx)
			return
		}
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary Universities available for filtering
// @Tags question-bank
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/question-bank/universities [get]
func (c *QuestionBankController) ListUniversities(ctx *gin.Context) {
	universities, err := c.BankService.ListUniversities()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, universities)
}

// @Summary Years available for filtering
// @Tags question-bank
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/question-bank/years [get]
func (c *QuestionBankController) ListYears(ctx *gin.Context) {
	years, err := c.BankService.ListYears()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, years)
}

type BankItemRequest struct {
	UniversityID  uint   `json:"universityId" binding:"required"`
	YearID        uint   `json:"yearId" binding:"required"`
	Question      string `json:"question" binding:"required"`
	OptionA       string `json:"optionA"`
	OptionB       string `json:"optionB"`
	OptionC       string `json:"optionC"`
	OptionD       string `json:"optionD"`
	CorrectAnswer string `json:"correctAnswer" binding:"required"`
	Solution      string `json:"solution"`
}

// @Summary Create a practice question
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body BankItemRequest true "question"
// @Success 201 {object} util.Response
// @Router /api/admin/question-bank [post]
func (c *QuestionBankController) CreateQuestion(ctx *gin.Context) {
	var req BankItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	item := &model.QuestionBankItem{
		UniversityID:  req.UniversityID,
		YearID:        req.YearID,
		Question:      req.Question,
		OptionA:       req.OptionA,
		OptionB:       req.OptionB,
		OptionC:       req.OptionC,
		OptionD:       req.OptionD,
		CorrectAnswer: req.CorrectAnswer,
		Solution:      req.Solution,
	}
	if err := c.BankService.CreateItem(item); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, item)
}

// @Summary Update a practice question
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question ID"
// @Param body body BankItemRequest true "question"
// @Success 200 {object} util.Response
// @Router /api/admin/question-bank/{id} [put]
func (c *QuestionBankController) UpdateQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	item, err := c.BankService.GetItem(uint(id))
	if err != nil {
		util.NotFound(ctx)
		return
	}

	var req BankItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	item.UniversityID = req.UniversityID
	item.YearID = req.YearID
	item.Question = req.Question
	item.OptionA = req.OptionA
	item.OptionB = req.OptionB
	item.OptionC = req.OptionC
	item.OptionD = req.OptionD
	item.CorrectAnswer = req.CorrectAnswer
	item.Solution = req.Solution

	if err := c.BankService.UpdateItem(item); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, item)
}

// @Summary Delete a practice question
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "question ID"
// @Success 200 {object} util.Response
// @Router /api/admin/question-bank/{id} [delete]
func (c *QuestionBankController) DeleteQuestion(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid question id")
		return
	}

	if err := c.BankService.DeleteItem(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

type UniversityRequest struct {
	Name string `json:"name" binding:"required"`
}

// @Summary Create a university
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body UniversityRequest true "university"
// @Success 201 {object} util.Response
// @Router /api/admin/universities [post]
func (c *QuestionBankController) CreateUniversity(ctx *gin.Context) {
	var req UniversityRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	u := &model.University{Name: req.Name}
	if err := c.BankService.CreateUniversity(u); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, u)
}

// @Summary Delete a university
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "university ID"
// @Success 200 {object} util.Response
// @Router /api/admin/universities/{id} [delete]
func (c *QuestionBankController) DeleteUniversity(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid university id")
		return
	}

	if err := c.BankService.DeleteUniversity(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

type YearRequest struct {
	Value string `json:"value" binding:"required"`
}

// @Summary Create a year
// @Tags admin
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body YearRequest true "year"
// @Success 201 {object} util.Response
// @Router /api/admin/years [post]
func (c *QuestionBankController) CreateYear(ctx *gin.Context) {
	var req YearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	y := &model.Year{Value: req.Value}
	if err := c.BankService.CreateYear(y); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, y)
}

// @Summary Delete a year
// @Tags admin
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "year ID"
// @Success 200 {object} util.Response
// @Router /api/admin/years/{id} [delete]
func (c *QuestionBankController) DeleteYear(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "invalid year id")
		return
	}

	if err := c.BankService.DeleteYear(uint(id)); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}
