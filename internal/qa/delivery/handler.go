package delivery

import (
	"errors"
	"net/http"

	authdelivery "campusbuddy-backend/internal/auth/delivery"
	qadomain "campusbuddy-backend/internal/qa/domain"
	qadto "campusbuddy-backend/internal/qa/dto"
	"campusbuddy-backend/internal/qa/usecase"
	"campusbuddy-backend/pkg/paging"

	"github.com/gin-gonic/gin"
)

// QAHandler handles question and answer HTTP requests.
type QAHandler struct {
	qaUsecase usecase.QAUsecase
}

func NewQAHandler(qaUsecase usecase.QAUsecase) *QAHandler {
	return &QAHandler{qaUsecase: qaUsecase}
}

// ListQuestions returns questions, newest first.
// GET /api/qa/questions?tag=databases&status=open&q=index
func (h *QAHandler) ListQuestions(c *gin.Context) {
	page := paging.Normalize(c.Query("page"), c.Query("limit"))
	filter := qadomain.Filter{
		Tag:    c.Query("tag"),
		Status: c.Query("status"),
		Search: c.Query("q"),
	}

	questions, total, err := h.qaUsecase.ListQuestions(c.Request.Context(), filter, page)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}

	if questions == nil {
		questions = []*qadomain.Question{}
	}
	c.JSON(http.StatusOK, gin.H{
		"questions": questions,
		"total":     total,
		"page":      page.Page,
		"limit":     page.Limit,
	})
}

// GetQuestion returns one question with its answers, accepted first.
// GET /api/qa/questions/:id
func (h *QAHandler) GetQuestion(c *gin.Context) {
	question, answers, err := h.qaUsecase.GetQuestion(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if answers == nil {
		answers = []*qadomain.Answer{}
	}
	c.JSON(http.StatusOK, gin.H{
		"question": question,
		"answers":  answers,
	})
}

// CreateQuestion posts a new question.
// POST /api/qa/questions
func (h *QAHandler) CreateQuestion(c *gin.Context) {
	var req qadto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.qaUsecase.CreateQuestion(c.Request.Context(), authdelivery.CurrentUser(c), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
		return
	}
	c.JSON(http.StatusCreated, question)
}

// UpdateQuestion edits a question. Author or admin only.
// PUT /api/qa/questions/:id
func (h *QAHandler) UpdateQuestion(c *gin.Context) {
	var req qadto.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.qaUsecase.UpdateQuestion(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// SetQuestionStatus closes or reopens a question. Author or admin only.
// PATCH /api/qa/questions/:id/status
func (h *QAHandler) SetQuestionStatus(c *gin.Context) {
	var req qadto.QuestionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.qaUsecase.SetQuestionStatus(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion removes a question and its answers. Author or admin only.
// DELETE /api/qa/questions/:id
func (h *QAHandler) DeleteQuestion(c *gin.Context) {
	if err := h.qaUsecase.DeleteQuestion(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "question deleted"})
}

// VoteQuestion toggles or switches the requester's vote.
// POST /api/qa/questions/:id/vote
func (h *QAHandler) VoteQuestion(c *gin.Context) {
	var req qadto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.qaUsecase.VoteQuestion(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"), req.Direction)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vote_count": question.VoteCount})
}

// ListAnswers returns a question's answers. The id is the question's.
// GET /api/qa/answers/:id
func (h *QAHandler) ListAnswers(c *gin.Context) {
	answers, err := h.qaUsecase.ListAnswers(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	if answers == nil {
		answers = []*qadomain.Answer{}
	}
	c.JSON(http.StatusOK, gin.H{"answers": answers})
}

// CreateAnswer posts an answer under a question. The id is the question's.
// POST /api/qa/answers/:id
func (h *QAHandler) CreateAnswer(c *gin.Context) {
	var req qadto.CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.qaUsecase.CreateAnswer(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, answer)
}

// UpdateAnswer edits an answer. Author or admin only.
// PUT /api/qa/answers/:id
func (h *QAHandler) UpdateAnswer(c *gin.Context) {
	var req qadto.UpdateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.qaUsecase.UpdateAnswer(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"), &req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// DeleteAnswer removes an answer. Author or admin only.
// DELETE /api/qa/answers/:id
func (h *QAHandler) DeleteAnswer(c *gin.Context) {
	if err := h.qaUsecase.DeleteAnswer(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "answer deleted"})
}

// AcceptAnswer marks an answer as the solution. Question author or admin only.
// POST /api/qa/answers/:id/accept
func (h *QAHandler) AcceptAnswer(c *gin.Context) {
	answer, err := h.qaUsecase.AcceptAnswer(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// VoteAnswer toggles or switches the requester's vote.
// POST /api/qa/answers/:id/vote
func (h *QAHandler) VoteAnswer(c *gin.Context) {
	var req qadto.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	answer, err := h.qaUsecase.VoteAnswer(c.Request.Context(), authdelivery.CurrentUser(c), c.Param("id"), req.Direction)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"vote_count": answer.VoteCount})
}

func (h *QAHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, qadomain.ErrQuestionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
	case errors.Is(err, qadomain.ErrAnswerNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "answer not found"})
	case errors.Is(err, qadomain.ErrBadStatus), errors.Is(err, qadomain.ErrBadVoteDirection):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server error"})
	}
}
