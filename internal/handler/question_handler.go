package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/handler/dto"
	apperrors "github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/pkg/errors"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/service"
)

// QuestionHandler обрабатывает запросы, связанные с бонусными вопросами
type QuestionHandler struct {
	questionService *service.QuestionService
}

// NewQuestionHandler создает новый обработчик бонусных вопросов
func NewQuestionHandler(questionService *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// AddQuestionsRequest представляет запрос на добавление бонусных вопросов
type AddQuestionsRequest struct {
	Questions []struct {
		Text         string `json:"text" binding:"required,min=3,max=500"`
		QuestionType string `json:"question_type" binding:"required"`
		PointsValue  int    `json:"points_value" binding:"omitempty,min=1,max=100"`
		SortOrder    int    `json:"sort_order,omitempty"`
	} `json:"questions" binding:"required,min=1"`
}

// AddQuestions добавляет бонусные вопросы в пул.
// Правильные ответы при создании не принимаются: они раскрываются
// отдельной операцией, когда исход сезона известен.
func (h *QuestionHandler) AddQuestions(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint) // Получаем из контекста

	var req AddQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Преобразуем данные в формат для сервиса
	questions := make([]entity.BonusQuestion, 0, len(req.Questions))
	for _, q := range req.Questions {
		questions = append(questions, entity.BonusQuestion{
			Text:         q.Text,
			QuestionType: entity.QuestionType(q.QuestionType),
			PointsValue:  q.PointsValue,
			SortOrder:    q.SortOrder,
		})
	}

	created, err := h.questionService.AddQuestions(poolID, questions)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewListQuestionResponse(created))
}

// ListQuestions возвращает бонусные вопросы пула.
// Правильные ответы нераскрытых вопросов скрыты.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint)

	questions, err := h.questionService.ListQuestions(poolID, false)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListQuestionResponse(questions))
}

// ListQuestionsAdmin возвращает вопросы пула с правильными ответами
// GET /api/admin/pools/:id/questions
func (h *QuestionHandler) ListQuestionsAdmin(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint)

	questions, err := h.questionService.ListQuestions(poolID, true)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListQuestionResponse(questions))
}

// RevealAnswerRequest представляет запрос на раскрытие правильного ответа
type RevealAnswerRequest struct {
	CorrectAnswer string `json:"correct_answer" binding:"required"`
}

// RevealAnswer раскрывает правильный ответ на вопрос. Операция одноразовая:
// повторное раскрытие возвращает конфликт.
// PUT /api/admin/questions/:id/reveal
func (h *QuestionHandler) RevealAnswer(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	var req RevealAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.RevealAnswer(questionID, req.CorrectAnswer)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// UpdateQuestionRequest представляет запрос на изменение вопроса
type UpdateQuestionRequest struct {
	Text        string `json:"text" binding:"required,min=3,max=500"`
	PointsValue int    `json:"points_value" binding:"required,min=1,max=100"`
	SortOrder   int    `json:"sort_order,omitempty"`
}

// UpdateQuestion изменяет текст, стоимость и порядок вопроса.
// Вопрос с раскрытым ответом неизменяем.
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.UpdateQuestion(questionID, req.Text, req.PointsValue, req.SortOrder)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question))
}

// DeleteQuestion удаляет вопрос. Вопрос с раскрытым ответом удалить нельзя.
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint)

	if err := h.questionService.DeleteQuestion(questionID); err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}

// handleQuestionError обрабатывает ошибки от сервиса вопросов и отправляет соответствующий HTTP ответ
func (h *QuestionHandler) handleQuestionError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in QuestionHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
