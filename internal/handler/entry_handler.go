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

// EntryHandler обрабатывает запросы, связанные с заявками команд
type EntryHandler struct {
	entryService *service.EntryService
}

// NewEntryHandler создает новый обработчик заявок
func NewEntryHandler(entryService *service.EntryService) *EntryHandler {
	return &EntryHandler{entryService: entryService}
}

// SubmitEntryRequest представляет запрос на подачу заявки
type SubmitEntryRequest struct {
	ParticipantName string          `json:"participant_name" binding:"required,min=2,max=100"`
	TeamName        string          `json:"team_name" binding:"required,min=2,max=100"`
	Picks           []string        `json:"picks" binding:"required,min=1"`
	BonusAnswers    map[uint]string `json:"bonus_answers"`
}

// SubmitEntry обрабатывает подачу заявки в пул.
// Оплата и очки при подаче всегда сбрасываются сервисом: заявка
// начинает с payment_confirmed=false и total_points=0.
func (h *EntryHandler) SubmitEntry(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint) // Получаем из контекста

	var req SubmitEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entry := &entity.TeamEntry{
		PoolID:          poolID,
		ParticipantName: req.ParticipantName,
		TeamName:        req.TeamName,
		Picks:           entity.StringArray(req.Picks),
		BonusAnswers:    entity.AnswerMap(req.BonusAnswers),
	}

	created, err := h.entryService.SubmitEntry(entry)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewEntryResponse(created, true))
}

// ListEntries возвращает заявки пула в порядке регистрации.
// Ответы на бонусные вопросы в публичном списке не раскрываются.
func (h *EntryHandler) ListEntries(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint)

	entries, err := h.entryService.ListEntries(poolID)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListEntryResponse(entries, false))
}

// ListEntriesAdmin возвращает заявки пула вместе с бонусными ответами
// GET /api/admin/pools/:id/entries
func (h *EntryHandler) ListEntriesAdmin(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint)

	entries, err := h.entryService.ListEntries(poolID)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListEntryResponse(entries, true))
}

// GetEntry возвращает одну заявку с ответами
func (h *EntryHandler) GetEntry(c *gin.Context) {
	entryID := c.MustGet("entryID").(uint)

	entry, err := h.entryService.GetEntryByID(entryID)
	if err != nil {
		h.handleEntryError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewEntryResponse(entry, true))
}

// ConfirmPaymentRequest представляет запрос на отметку оплаты
type ConfirmPaymentRequest struct {
	Confirmed *bool `json:"confirmed" binding:"required"`
}

// ConfirmPayment отмечает заявку оплаченной (или снимает отметку)
// PUT /api/admin/entries/:id/payment
func (h *EntryHandler) ConfirmPayment(c *gin.Context) {
	entryID := c.MustGet("entryID").(uint)

	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.entryService.ConfirmPayment(entryID, *req.Confirmed); err != nil {
		h.handleEntryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment status updated", "confirmed": *req.Confirmed})
}

// DeleteEntry удаляет заявку. Заявки завершенного пула удалить нельзя.
func (h *EntryHandler) DeleteEntry(c *gin.Context) {
	entryID := c.MustGet("entryID").(uint)

	if err := h.entryService.DeleteEntry(entryID); err != nil {
		h.handleEntryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}

// handleEntryError обрабатывает ошибки от сервиса заявок и отправляет соответствующий HTTP ответ
func (h *EntryHandler) handleEntryError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in EntryHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
