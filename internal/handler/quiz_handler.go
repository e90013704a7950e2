package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/quizdash/quizdash-backend/internal/model"
	"github.com/quizdash/quizdash-backend/internal/response"
	"github.com/quizdash/quizdash-backend/internal/service"
	"github.com/quizdash/quizdash-backend/internal/validator"
)

// QuizHandler handles quiz catalog CRUD.
type QuizHandler struct {
	quizService *service.QuizService
}

// NewQuizHandler creates a new QuizHandler.
func NewQuizHandler(quizService *service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// List godoc
// GET /api/v1/quizzes
func (h *QuizHandler) List(c *gin.Context) {
	quizzes, err := h.quizService.List(c.Request.Context())
	if err != nil {
		failGame(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quizzes": quizzes})
}

// Get godoc
// GET /api/v1/quizzes/:quiz_id
func (h *QuizHandler) Get(c *gin.Context) {
	quiz, err := h.quizService.Get(c.Request.Context(), c.Param("quiz_id"))
	if err != nil {
		failGame(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}

// Create godoc
// POST /api/v1/quizzes
func (h *QuizHandler) Create(c *gin.Context) {
	var req model.CreateQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz, err := h.quizService.Create(c.Request.Context(), &req)
	if err != nil {
		failGame(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"quiz": quiz})
}

// Update godoc
// PUT /api/v1/quizzes/:quiz_id
func (h *QuizHandler) Update(c *gin.Context) {
	var req model.CreateQuizRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	quiz, err := h.quizService.Update(c.Request.Context(), c.Param("quiz_id"), &req)
	if err != nil {
		failGame(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quiz": quiz})
}

// Delete godoc
// DELETE /api/v1/quizzes/:quiz_id
func (h *QuizHandler) Delete(c *gin.Context) {
	if err := h.quizService.Delete(c.Request.Context(), c.Param("quiz_id")); err != nil {
		failGame(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}
