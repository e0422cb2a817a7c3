package controller

import (
	"strconv"

	"gridiron_backend/internal/middleware"
	"gridiron_backend/internal/model"
	"gridiron_backend/internal/service"
	"gridiron_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FootballIQController struct {
	FootballIQService *service.FootballIQService
	LeaderboardSize   int64
}

func NewFootballIQController(footballIQService *service.FootballIQService, leaderboardSize int64) *FootballIQController {
	return &FootballIQController{
		FootballIQService: footballIQService,
		LeaderboardSize:   leaderboardSize,
	}
}

// CompleteAttemptRequest 提交作答
type CompleteAttemptRequest struct {
	Answers   []model.AttemptAnswer `json:"answers"`
	TimeSpent int                   `json:"timeSpent"`
}

func canManageQuizzes(user *util.Claims) bool {
	return middleware.HasRole(user, model.Coach)
}

// resolveAthleteID 运动员只能查看自己的数据；教练、家长、管理员需通过 athleteId 指定
func resolveAthleteID(ctx *gin.Context, user *util.Claims) (uint, bool) {
	raw := ctx.Query("athleteId")
	if user.Role == model.Athlete {
		if raw != "" && util.MustParseUint(raw) != user.UserID {
			util.Forbidden(ctx)
			return 0, false
		}
		return user.UserID, true
	}
	id := util.MustParseUint(raw)
	if id == 0 {
		util.BadRequest(ctx, "athleteId is required")
		return 0, false
	}
	return id, true
}

// @Summary 开始测验
// @Tags Football IQ
// @Security BearerAuth
// @Produce json
// @Param id path int true "测验ID"
// @Success 201 {object} util.Response
// @Router /api/football-iq/quizzes/{id}/attempts [post]
func (c *FootballIQController) StartAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	quizID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	attempt, err := c.FootballIQService.StartAttempt(ctx.Request.Context(), user.UserID, quizID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Created(ctx, attempt)
}

// @Summary 提交作答
// @Description 计算得分与等级，并更新该位置的 Football IQ 进度
// @Tags Football IQ
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "作答ID"
// @Param body body CompleteAttemptRequest true "作答内容"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/football-iq/attempts/{id}/complete [post]
func (c *FootballIQController) CompleteAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	attemptID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	var req CompleteAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if req.Answers == nil {
		req.Answers = []model.AttemptAnswer{}
	}

	attempt, err := c.FootballIQService.GetAttempt(ctx.Request.Context(), attemptID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	if attempt.AthleteID != user.UserID && user.Role != model.Admin {
		util.Forbidden(ctx)
		return
	}

	completed, err := c.FootballIQService.CompleteAttempt(ctx.Request.Context(), attemptID, req.Answers, req.TimeSpent)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	util.Success(ctx, completed)
}

// @Summary 作答详情
// @Tags Football IQ
// @Security BearerAuth
// @Produce json
// @Param id path int true "作答ID"
// @Success 200 {object} util.Response
// @Router /api/football-iq/attempts/{id} [get]
func (c *FootballIQController) GetAttempt(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	attemptID, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	attempt, err := c.FootballIQService.GetAttempt(ctx.Request.Context(), attemptID)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	if attempt.AthleteID != user.UserID && !middleware.HasRole(user, model.Coach) {
		util.Forbidden(ctx)
		return
	}
	util.Success(ctx, attempt)
}

// @Summary 作答记录
// @Tags Football IQ
// @Security BearerAuth
// @Produce json
// @Param quizId query int false "测验ID"
// @Param athleteId query int false "运动员ID（教练/家长）"
// @Success 200 {object} util.Response
// @Router /api/football-iq/attempts [get]
func (c *FootballIQController) ListAttempts(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	athleteID, ok := resolveAthleteID(ctx, user)
	if !ok {
		return
	}

	attempts, err := c.FootballIQService.ListAttempts(ctx.Request.Context(), athleteID, util.MustParseUint(ctx.Query("quizId")))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, attempts)
}

// @Summary Football IQ 进度
// @Tags Football IQ
// @Security BearerAuth
// @Produce json
// @Param position query string false "位置，为空时返回所有位置"
// @Param athleteId query int false "运动员ID（教练/家长）"
// @Success 200 {object} util.Response
// @Router /api/football-iq/progress [get]
func (c *FootballIQController) GetProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	position := ctx.Query("position")
	if position != "" && !util.IsValidPosition(position) {
		util.BadRequest(ctx, "unknown position")
		return
	}
	athleteID, ok := resolveAthleteID(ctx, user)
	if !ok {
		return
	}

	progress, err := c.FootballIQService.GetProgress(ctx.Request.Context(), athleteID, position)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 进度详情
// @Tags Football IQ
// @Security BearerAuth
// @Produce json
// @Param id path int true "进度ID"
// @Success 200 {object} util.Response
// @Router /api/football-iq/progress/{id} [get]
func (c *FootballIQController) GetProgressByID(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}

	progress, err := c.FootballIQService.GetProgressByID(ctx.Request.Context(), id)
	if err != nil {
		util.HandleServiceError(ctx, err)
		return
	}
	if progress.AthleteID != user.UserID && !middleware.HasRole(user, model.Coach, model.Parent) {
		util.Forbidden(ctx)
		return
	}
	util.Success(ctx, progress)
}

// @Summary 位置排行榜
// @Tags Football IQ
// @Security BearerAuth
// @Produce json
// @Param position path string true "位置"
// @Param limit query int false "数量"
// @Success 200 {object} util.Response
// @Router /api/football-iq/leaderboard/{position} [get]
func (c *FootballIQController) GetLeaderboard(ctx *gin.Context) {
	position := ctx.Param("position")
	if !util.IsValidPosition(position) {
		util.BadRequest(ctx, "unknown position")
		return
	}
	limit := c.LeaderboardSize
	if l := ctx.Query("limit"); l != "" {
		if v, err := strconv.ParseInt(l, 10, 64); err == nil && v > 0 && v < limit {
			limit = v
		}
	}

	entries, err := c.FootballIQService.GetLeaderboard(ctx.Request.Context(), position, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}
