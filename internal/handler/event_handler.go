package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/handler/dto"
	apperrors "github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/pkg/errors"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/service"
)

// EventHandler обрабатывает запросы, связанные с недельными событиями
type EventHandler struct {
	eventService *service.EventService
}

// NewEventHandler создает новый обработчик событий
func NewEventHandler(eventService *service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// RecordEventRequest представляет запрос на запись недельного события
type RecordEventRequest struct {
	HouseguestID   uint   `json:"houseguest_id" binding:"required"`
	Week           int    `json:"week" binding:"required,min=1"`
	EventType      string `json:"event_type" binding:"required"`
	PointsOverride *int   `json:"points_override,omitempty"`
	Note           string `json:"note" binding:"omitempty,max=255"`
}

// RecordEvent записывает исход недели для участника дома.
// Очки берутся из таблицы правил по event_type; points_override
// позволяет администратору задать свое значение (например, для special).
// POST /api/admin/pools/:id/events
func (h *EventHandler) RecordEvent(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint) // Получаем из контекста

	var req RecordEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	event, err := h.eventService.RecordEvent(poolID, req.HouseguestID, req.Week, req.EventType, req.PointsOverride, req.Note)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewEventResponse(event))
}

// ListEvents возвращает все события пула. Параметр ?week=N фильтрует по неделе.
func (h *EventHandler) ListEvents(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint)

	if weekStr := c.Query("week"); weekStr != "" {
		week, err := strconv.Atoi(weekStr)
		if err != nil || week < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid week"})
			return
		}

		events, err := h.eventService.ListWeekEvents(poolID, week)
		if err != nil {
			h.handleEventError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewListEventResponse(events))
		return
	}

	events, err := h.eventService.ListEvents(poolID)
	if err != nil {
		h.handleEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListEventResponse(events))
}

// DeleteEvent удаляет событие (например, записанное по ошибке).
// Удаление события eviction возвращает участника дома в статус active.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	eventID := c.MustGet("eventID").(uint)

	if err := h.eventService.DeleteEvent(eventID); err != nil {
		h.handleEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Event deleted"})
}

// ListScoringRules возвращает таблицу правил начисления очков
// GET /api/scoring-rules
func (h *EventHandler) ListScoringRules(c *gin.Context) {
	rules, err := h.eventService.ListScoringRules()
	if err != nil {
		log.Printf("[EventHandler] Ошибка при получении правил начисления: %v", err)
		h.handleEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListScoringRuleResponse(rules))
}

// UpdateHouseguestStatusRequest представляет запрос на смену статуса участника дома
type UpdateHouseguestStatusRequest struct {
	Status      string `json:"status" binding:"required"`
	EvictedWeek *int   `json:"evicted_week,omitempty"`
}

// UpdateHouseguestStatus меняет статус участника дома вручную
// (active / evicted / jury / winner)
// PUT /api/admin/houseguests/:id/status
func (h *EventHandler) UpdateHouseguestStatus(c *gin.Context) {
	houseguestID := c.MustGet("houseguestID").(uint)

	var req UpdateHouseguestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.eventService.UpdateHouseguestStatus(houseguestID, req.Status, req.EvictedWeek); err != nil {
		h.handleEventError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Houseguest status updated", "status": req.Status})
}

// handleEventError обрабатывает ошибки от сервиса событий и отправляет соответствующий HTTP ответ
func (h *EventHandler) handleEventError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in EventHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
