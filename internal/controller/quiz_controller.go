package controller

import (
	"errors"
	"strconv"

	"venus_handbook_backend/internal/model"
	"venus_handbook_backend/internal/quiz"
	"venus_handbook_backend/internal/service"
	"venus_handbook_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizController struct {
	Service *service.QuizService
}

func NewQuizController(svc *service.QuizService) *QuizController {
	return &QuizController{Service: svc}
}

// SessionState 会话状态快照，轮询接口的响应体
type SessionState struct {
	Phase             string                 `json:"phase"`
	CurrentIndex      int                    `json:"currentIndex"`
	TotalQuestions    int                    `json:"totalQuestions"`
	Question          *quiz.Question         `json:"question,omitempty"`
	QuizRemaining     int                    `json:"quizRemaining"`
	QuestionRemaining int                    `json:"questionRemaining"`
	CanSubmit         bool                   `json:"canSubmit"`
	Bookmarked        []string               `json:"bookmarked,omitempty"`
	Events            []service.SessionEvent `json:"events,omitempty"`
}

func snapshot(s *quiz.Session, total int) *SessionState {
	return &SessionState{
		Phase:             s.Phase().String(),
		CurrentIndex:      s.CurrentIndex(),
		TotalQuestions:    total,
		Question:          s.CurrentQuestion(),
		QuizRemaining:     s.QuizRemaining(),
		QuestionRemaining: s.QuestionRemaining(),
		CanSubmit:         s.CanSubmit(),
		Bookmarked:        s.Bookmarked(),
	}
}

// List godoc
// @Summary 测验列表
// @Description 已发布测验，支持按难度/标签筛选
// @Tags 测验
// @Produce json
// @Param category query string false "难度 easy/normal/hard"
// @Param flags query string false "布尔筛选键，如 timed"
// @Param page query int false "页码"
// @Param limit query int false "每页条数，上限 100"
// @Success 200 {object} util.Response{data=util.ListResponse}
// @Router /api/quizzes [get]
func (c *QuizController) List(ctx *gin.Context) {
	st, page := ParseFilterState(ctx)
	filtered, pg, err := c.Service.List(st, page, PerPage(ctx))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, util.NewListResponse(filtered, pg, st))
}

// Filters godoc
// @Summary 测验筛选项
// @Tags 测验
// @Produce json
// @Success 200 {object} util.Response{data=filter.ResolvedConfig}
// @Router /api/quizzes/filters [get]
func (c *QuizController) Filters(ctx *gin.Context) {
	rc, err := c.Service.Filters(ctx.Request.Context())
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, rc)
}

// Start godoc
// @Summary 开始答题
// @Description 创建一次答题会话并进入第一题；同一测验的旧会话会被顶替
// @Tags 测验
// @Produce json
// @Param id path string true "测验 ID"
// @Success 201 {object} util.Response{data=object} "会话令牌与测验定义（不含答案）"
// @Failure 404 {object} util.Response "测验不存在或未发布"
// @Router /api/quizzes/{id}/start [post]
func (c *QuizController) Start(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	token, def, err := c.Service.StartSession(ctx.Param("id"), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrQuizNotFound), errors.Is(err, util.ErrQuizNotPublished):
			util.NotFound(ctx)
		case errors.Is(err, quiz.ErrNoQuestions):
			util.BadRequest(ctx, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	// Definition 序列化时自动隐去答案字段
	util.Created(ctx, gin.H{"token": token, "quiz": def})
}

// State godoc
// @Summary 会话状态
// @Description 当前题目、剩余时间与累积事件；事件取走即清
// @Tags 测验
// @Produce json
// @Param token path string true "会话令牌"
// @Success 200 {object} util.Response{data=SessionState}
// @Failure 404 {object} util.Response "会话不存在或已过期"
// @Router /api/quiz-sessions/{token} [get]
func (c *QuizController) State(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	token := ctx.Param("token")

	var state *SessionState
	err := c.Service.Sessions.With(token, claims.UserID, func(s *quiz.Session) error {
		state = snapshot(s, s.TotalQuestions())
		return nil
	})
	if err != nil {
		util.NotFound(ctx)
		return
	}

	state.Events, _ = c.Service.Sessions.DrainEvents(token, claims.UserID)
	util.Success(ctx, state)
}

// SelectRequest 选择题作答请求
type SelectRequest struct {
	OptionID string `json:"optionId" binding:"required"`
}

// Select godoc
// @Summary 选择选项
// @Description 单选题替换已选项，多选题翻转选中状态
// @Tags 测验
// @Accept json
// @Produce json
// @Param token path string true "会话令牌"
// @Param body body SelectRequest true "选项 ID"
// @Success 200 {object} util.Response{data=SessionState}
// @Failure 409 {object} util.Response "当前不可作答"
// @Router /api/quiz-sessions/{token}/select [post]
func (c *QuizController) Select(ctx *gin.Context) {
	var req SelectRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.sessionOp(ctx, func(s *quiz.Session) error { return s.Select(req.OptionID) })
}

// TextRequest 文本题作答请求
type TextRequest struct {
	Text string `json:"text"`
}

// SetText godoc
// @Summary 填写文本答案
// @Tags 测验
// @Accept json
// @Produce json
// @Param token path string true "会话令牌"
// @Param body body TextRequest true "答案文本"
// @Success 200 {object} util.Response{data=SessionState}
// @Failure 409 {object} util.Response "当前不可作答"
// @Router /api/quiz-sessions/{token}/text [post]
func (c *QuizController) SetText(ctx *gin.Context) {
	var req TextRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	c.sessionOp(ctx, func(s *quiz.Session) error { return s.SetText(req.Text) })
}

// Submit godoc
// @Summary 提交本题
// @Description 判分并进入结果展示；答案不完整时返回 409
// @Tags 测验
// @Produce json
// @Param token path string true "会话令牌"
// @Success 200 {object} util.Response{data=object} "判分记录与题目解析"
// @Failure 409 {object} util.Response "答案不完整或当前不可提交"
// @Router /api/quiz-sessions/{token}/submit [post]
func (c *QuizController) Submit(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	var record *quiz.AnswerRecord
	var state *SessionState
	err := c.Service.Sessions.With(ctx.Param("token"), claims.UserID, func(s *quiz.Session) error {
		r, err := s.Submit()
		if err != nil {
			return err
		}
		record = r
		state = snapshot(s, s.TotalQuestions())
		return nil
	})
	if err != nil {
		c.sessionError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"record": record, "state": state})
}

// Skip godoc
// @Summary 跳过本题
// @Description 记为未作答并立即进入下一题，不走结果展示停留
// @Tags 测验
// @Produce json
// @Param token path string true "会话令牌"
// @Success 200 {object} util.Response{data=SessionState}
// @Router /api/quiz-sessions/{token}/skip [post]
func (c *QuizController) Skip(ctx *gin.Context) {
	c.sessionOp(ctx, func(s *quiz.Session) error { return s.Skip() })
}

// Bookmark godoc
// @Summary 收藏/取消收藏当前题
// @Tags 测验
// @Produce json
// @Param token path string true "会话令牌"
// @Success 200 {object} util.Response{data=SessionState}
// @Router /api/quiz-sessions/{token}/bookmark [post]
func (c *QuizController) Bookmark(ctx *gin.Context) {
	c.sessionOp(ctx, func(s *quiz.Session) error { return s.ToggleBookmark() })
}

// Finish godoc
// @Summary 提前交卷
// @Description 未答题目记为未作答，会话立即完成
// @Tags 测验
// @Produce json
// @Param token path string true "会话令牌"
// @Success 200 {object} util.Response{data=SessionState}
// @Router /api/quiz-sessions/{token}/finish [post]
func (c *QuizController) Finish(ctx *gin.Context) {
	c.sessionOp(ctx, func(s *quiz.Session) error { return s.Finish() })
}

// Result godoc
// @Summary 会话结果
// @Description 会话完成后取结果；取走后会话即被移除
// @Tags 测验
// @Produce json
// @Param token path string true "会话令牌"
// @Success 200 {object} util.Response{data=quiz.Result}
// @Failure 409 {object} util.Response "会话尚未完成"
// @Router /api/quiz-sessions/{token}/result [get]
func (c *QuizController) Result(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	token := ctx.Param("token")

	var result *quiz.Result
	err := c.Service.Sessions.With(token, claims.UserID, func(s *quiz.Session) error {
		result = s.Result()
		return nil
	})
	if err != nil {
		util.NotFound(ctx)
		return
	}
	if result == nil {
		util.Error(ctx, 409, "quiz session is not completed yet")
		return
	}

	c.Service.Sessions.End(token, claims.UserID)
	util.Success(ctx, result)
}

// History godoc
// @Summary 历史成绩
// @Description 当前用户的答题历史，按完成时间倒序
// @Tags 测验
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页条数"
// @Success 200 {object} util.Response{data=object}
// @Router /api/quizzes/results [get]
func (c *QuizController) History(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	results, total, err := c.Service.ListResults(claims.UserID, page, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"results": results, "total": total})
}

// sessionOp 会话操作的公共骨架：执行操作并返回最新快照
func (c *QuizController) sessionOp(ctx *gin.Context, op func(*quiz.Session) error) {
	claims := util.GetUserFromContext(ctx)

	var state *SessionState
	err := c.Service.Sessions.With(ctx.Param("token"), claims.UserID, func(s *quiz.Session) error {
		if err := op(s); err != nil {
			return err
		}
		state = snapshot(s, s.TotalQuestions())
		return nil
	})
	if err != nil {
		c.sessionError(ctx, err)
		return
	}
	util.Success(ctx, state)
}

func (c *QuizController) sessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx)
	case errors.Is(err, quiz.ErrNotAnswering), errors.Is(err, quiz.ErrIncompleteAnswer):
		util.Error(ctx, 409, err.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}

// --- 后台管理 ---

// CreateQuiz godoc
// @Summary 新建测验
// @Tags 测验
// @Accept json
// @Produce json
// @Param body body model.Quiz true "测验信息"
// @Success 201 {object} util.Response{data=model.Quiz}
// @Router /api/admin/quizzes [post]
func (c *QuizController) CreateQuiz(ctx *gin.Context) {
	var q model.Quiz
	if err := ctx.ShouldBindJSON(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if err := c.Service.CreateQuiz(ctx.Request.Context(), &q); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// UpdateQuiz godoc
// @Summary 更新测验
// @Tags 测验
// @Accept json
// @Produce json
// @Param id path string true "测验 ID"
// @Param body body model.Quiz true "测验信息"
// @Success 200 {object} util.Response{data=model.Quiz}
// @Router /api/admin/quizzes/{id} [put]
func (c *QuizController) UpdateQuiz(ctx *gin.Context) {
	var q model.Quiz
	if err := ctx.ShouldBindJSON(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q.ID = ctx.Param("id")
	if err := c.Service.UpdateQuiz(ctx.Request.Context(), &q); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// DeleteQuiz godoc
// @Summary 删除测验
// @Tags 测验
// @Produce json
// @Param id path string true "测验 ID"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id} [delete]
func (c *QuizController) DeleteQuiz(ctx *gin.Context) {
	if err := c.Service.DeleteQuiz(ctx.Request.Context(), ctx.Param("id")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}

// ListQuestions godoc
// @Summary 题目列表
// @Tags 测验
// @Produce json
// @Param id path string true "测验 ID"
// @Success 200 {object} util.Response{data=object}
// @Router /api/admin/quizzes/{id}/questions [get]
func (c *QuizController) ListQuestions(ctx *gin.Context) {
	questions, err := c.Service.ListQuestions(ctx.Param("id"))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"questions": questions})
}

// CreateQuestion godoc
// @Summary 新建题目
// @Tags 测验
// @Accept json
// @Produce json
// @Param id path string true "测验 ID"
// @Param body body model.QuizQuestion true "题目信息，Options 为含 isCorrect 标记的 JSON 数组"
// @Success 201 {object} util.Response{data=model.QuizQuestion}
// @Router /api/admin/quizzes/{id}/questions [post]
func (c *QuizController) CreateQuestion(ctx *gin.Context) {
	var q model.QuizQuestion
	if err := ctx.ShouldBindJSON(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q.QuizID = ctx.Param("id")
	if err := c.Service.CreateQuestion(&q); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, q)
}

// UpdateQuestion godoc
// @Summary 更新题目
// @Tags 测验
// @Accept json
// @Produce json
// @Param id path string true "测验 ID"
// @Param qid path string true "题目 ID"
// @Param body body model.QuizQuestion true "题目信息"
// @Success 200 {object} util.Response{data=model.QuizQuestion}
// @Router /api/admin/quizzes/{id}/questions/{qid} [put]
func (c *QuizController) UpdateQuestion(ctx *gin.Context) {
	var q model.QuizQuestion
	if err := ctx.ShouldBindJSON(&q); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	q.ID = ctx.Param("qid")
	q.QuizID = ctx.Param("id")
	if err := c.Service.UpdateQuestion(&q); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, q)
}

// DeleteQuestion godoc
// @Summary 删除题目
// @Tags 测验
// @Produce json
// @Param id path string true "测验 ID"
// @Param qid path string true "题目 ID"
// @Success 200 {object} util.Response
// @Router /api/admin/quizzes/{id}/questions/{qid} [delete]
func (c *QuizController) DeleteQuestion(ctx *gin.Context) {
	if err := c.Service.DeleteQuestion(ctx.Param("qid")); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, nil)
}
