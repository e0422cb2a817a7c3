package controller

import (
	"strconv"

	"gridiron_backend/internal/repository"
	"gridiron_backend/internal/service"
	"gridiron_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	QuizService *service.QuizService
}

func NewQuizController(quizService *service.QuizService) *QuizController {
	return &QuizController{QuizService: quizService}
}

func parseID(ctx *gin.Context, name string) (uint, bool) {
	id := util.MustParseUint(ctx.Param(name))
	if id == 0 {
		util.BadRequest(ctx, "invalid "+name)
		return 0, false
	}
	return id, true
}

// @Summary 测验列表
// @Tags Football IQ
// @Security BearerAuth
// @Produce json
// @Param position query string false "位置"
// @Param difficulty query string false "难度"
// @Param category query string false "分类"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(20)
// @Success 200 {object} util.Response
// @Router /api/football-iq/quizzes [get]
func (c *QuizController) ListQuizzes(ctx *gin.Context) {
	filter := repository.QuizFilter{
		Position:   ctx.Query("position"),
		Difficulty: ctx.Query("difficulty"),
		Category:   ctx.Query("category"),
		ActiveOnly: true,
		Page:       1,
		Limit:      20,
	}
	if p := ctx.Query("page"); p != "" {
		if v, err := strconv.Atoi(p); err == nil && v > 0 {
			filter.Page = v
		}
	}
	if l := ctx.Query("limit"); l != "" {
		if v, err := strconv.Atoi(l); err == nil && v > 0 && v <= 100 {
			filter.Limit = v
		}
	}
	// 教练可查看未上架的测验
	if ctx.Query("includeInactive") == "true" {
		if user := util.GetUserFromContext(ctx); user != nil && canManageQuizzes(user) {
			filter.ActiveOnly = false
		}
	}

	quizzes, total, err := c.QuizService.ListQuizzes(ctx.Request.Context(), filter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.PageResponse{List: quizzes, Total: total, Page: filter.Page, Limit: filter.Limit})
}

// @Summary 测验详情（含题目）
// @Tags Football IQ
// @Security BearerAuth
// @Produce json
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/football-iq/quizzes/{id} [get]
func (c *QuizController) GetQuiz(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	quiz, err := c.QuizService.GetQuiz(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	// 运动员作答前不返回正确答案
	if user := util.GetUserFromContext(ctx); user == nil || !canManageQuizzes(user) {
		for i := range quiz.Questions {
			quiz.Questions[i].CorrectOptionID = ""
			quiz.Questions[i].Explanation = ""
		}
	}
	util.Success(ctx, quiz)
}

// @Summary 创建测验
// @Tags Football IQ
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param quiz body service.QuizRequest true "测验信息"
// @Success 201 {object} util.Response
// @Router /api/football-iq/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	quiz, err := c.QuizService.CreateQuiz(ctx.Request.Context(), user.UserID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, quiz)
}

// @Summary 更新测验
// @Tags Football IQ
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Param quiz body service.QuizRequest true "测验信息"
// @Success 200 {object} util.Response
// @Router /api/football-iq/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req service.QuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	quiz, err := c.QuizService.UpdateQuiz(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, quiz)
}

// @Summary 删除测验（级联删除题目和作答记录）
// @Tags Football IQ
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/football-iq/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.QuizService.DeleteQuiz(ctx.Request.Context(), id); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": id})
}

// @Summary 题目列表
// @Tags Football IQ
// @Security BearerAuth
// @Produce json
// @Param id path int true "测验ID"
// @Success 200 {object} util.Response
// @Router /api/football-iq/quizzes/{id}/questions [get]
func (c *QuizController) ListQuestions(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	questions, err := c.QuizService.ListQuestions(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	if user := util.GetUserFromContext(ctx); user == nil || !canManageQuizzes(user) {
		for i := range questions {
			questions[i].CorrectOptionID = ""
			questions[i].Explanation = ""
		}
	}
	util.Success(ctx, questions)
}

// @Summary 添加题目
// @Tags Football IQ
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Param question body service.QuestionRequest true "题目"
// @Success 201 {object} util.Response
// @Router /api/football-iq/quizzes/{id}/questions [post]
func (c *QuizController) AddQuestion(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q, err := c.QuizService.AddQuestion(ctx.Request.Context(), id, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// @Summary 更新题目
// @Tags Football IQ
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Param questionId path int true "题目ID"
// @Param question body service.QuestionRequest true "题目"
// @Success 200 {object} util.Response
// @Router /api/football-iq/quizzes/{id}/questions/{questionId} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	questionID, ok := parseID(ctx, "questionId")
	if !ok {
		return
	}
	var req service.QuestionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q, err := c.QuizService.UpdateQuestion(ctx.Request.Context(), id, questionID, req)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// @Summary 删除题目
// @Tags Football IQ
// @Security BearerAuth
// @Param id path int true "测验ID"
// @Param questionId path int true "题目ID"
// @Success 200 {object} util.Response
// @Router /api/football-iq/quizzes/{id}/questions/{questionId} [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	questionID, ok := parseID(ctx, "questionId")
	if !ok {
		return
	}
	if err := c.QuizService.DeleteQuestion(ctx.Request.Context(), id, questionID); err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"deleted": questionID})
}
