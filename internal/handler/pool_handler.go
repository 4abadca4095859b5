package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/handler/dto"
	apperrors "github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/pkg/errors"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/service"
)

// PoolHandler обрабатывает запросы, связанные с пулами
type PoolHandler struct {
	poolService      *service.PoolService
	standingsService *service.StandingsService
}

// NewPoolHandler создает новый обработчик пулов
func NewPoolHandler(poolService *service.PoolService, standingsService *service.StandingsService) *PoolHandler {
	return &PoolHandler{
		poolService:      poolService,
		standingsService: standingsService,
	}
}

// CreatePoolRequest представляет запрос на создание пула
type CreatePoolRequest struct {
	Name             string     `json:"name" binding:"required,min=3,max=100"`
	Season           string     `json:"season" binding:"omitempty,max=50"`
	PicksPerTeam     int        `json:"picks_per_team" binding:"omitempty,min=1,max=20"`
	HasBuyIn         bool       `json:"has_buy_in"`
	EntryFeeAmount   string     `json:"entry_fee_amount,omitempty"` // Десятичная строка, например "25.00"
	EntryFeeCurrency string     `json:"entry_fee_currency" binding:"omitempty,len=3"`
	DraftDeadline    *time.Time `json:"draft_deadline,omitempty"`
}

// CreatePool обрабатывает запрос на создание пула
func (h *PoolHandler) CreatePool(c *gin.Context) {
	var req CreatePoolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	entryFee := decimal.Zero
	if req.EntryFeeAmount != "" {
		parsed, err := decimal.NewFromString(req.EntryFeeAmount)
		if err != nil || parsed.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid entry_fee_amount"})
			return
		}
		entryFee = parsed
	}

	pool := &entity.Pool{
		Name:             req.Name,
		Season:           req.Season,
		PicksPerTeam:     req.PicksPerTeam,
		HasBuyIn:         req.HasBuyIn,
		EntryFeeAmount:   entryFee,
		EntryFeeCurrency: req.EntryFeeCurrency,
		DraftDeadline:    req.DraftDeadline,
	}

	created, err := h.poolService.CreatePool(pool)
	if err != nil {
		h.handlePoolError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewPoolResponse(created))
}

// GetPool возвращает информацию о пуле
func (h *PoolHandler) GetPool(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint) // Получаем из контекста

	pool, err := h.poolService.GetPoolByID(poolID)
	if err != nil {
		h.handlePoolError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPoolResponse(pool))
}

// GetPoolByInviteCode возвращает пул по коду приглашения
// GET /api/pools/code/:code
func (h *PoolHandler) GetPoolByInviteCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invite code is required"})
		return
	}

	pool, err := h.poolService.GetPoolByInviteCode(code)
	if err != nil {
		h.handlePoolError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPoolResponse(pool))
}

// ListPools возвращает список пулов с пагинацией
func (h *PoolHandler) ListPools(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("per_page", "10"))

	pools, total, err := h.poolService.ListPools(page, pageSize)
	if err != nil {
		log.Printf("[PoolHandler] Ошибка при получении списка пулов: %v", err)
		h.handlePoolError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPaginatedPoolResponse(pools, total, page, pageSize))
}

// UpdatePoolStatusRequest представляет запрос на смену статуса пула
type UpdatePoolStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdatePoolStatus переводит пул между статусами draft_open и active.
// Завершение сезона идет отдельной операцией CompleteSeason.
func (h *PoolHandler) UpdatePoolStatus(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint)

	var req UpdatePoolStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.poolService.UpdateStatus(poolID, req.Status); err != nil {
		h.handlePoolError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pool status updated", "status": req.Status})
}

// CompleteSeason завершает сезон: финальный пересчет очков, присвоение мест
// и призов, перевод пула в статус completed
// POST /api/admin/pools/:id/complete
func (h *PoolHandler) CompleteSeason(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint)

	rows, err := h.poolService.CompleteSeason(poolID)
	if err != nil {
		h.handlePoolError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStandingsResponse(poolID, rows))
}

// AddHouseguestsRequest представляет запрос на добавление участников дома
type AddHouseguestsRequest struct {
	Names []string `json:"names" binding:"required,min=1,max=30"`
}

// AddHouseguests добавляет участников дома в пул
func (h *PoolHandler) AddHouseguests(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint)

	var req AddHouseguestsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	houseguests, err := h.poolService.AddHouseguests(poolID, req.Names)
	if err != nil {
		h.handlePoolError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewListHouseguestResponse(houseguests))
}

// ListHouseguests возвращает участников дома пула
func (h *PoolHandler) ListHouseguests(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint)

	houseguests, err := h.poolService.ListHouseguests(poolID)
	if err != nil {
		h.handlePoolError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListHouseguestResponse(houseguests))
}

// PrizeConfigurationRequest представляет запрос на сохранение призовой конфигурации
type PrizeConfigurationRequest struct {
	Mode   string `json:"mode" binding:"required,oneof=percentage fixed"`
	Places []struct {
		Place       int    `json:"place" binding:"required,min=1"`
		Value       string `json:"value" binding:"required"` // Десятичная строка
		Description string `json:"description,omitempty"`
	} `json:"places" binding:"required,min=1"`
	PlatformFeePercent string `json:"platform_fee_percent,omitempty"`
}

// SavePrizeConfiguration сохраняет (создает или заменяет) призовую конфигурацию пула
// PUT /api/admin/pools/:id/prize-config
func (h *PoolHandler) SavePrizeConfiguration(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint)

	var req PrizeConfigurationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	places := make(entity.PrizePlaceList, 0, len(req.Places))
	for _, p := range req.Places {
		value, err := decimal.NewFromString(p.Value)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prize value for place " + strconv.Itoa(p.Place)})
			return
		}
		places = append(places, entity.PrizePlace{
			Place:       p.Place,
			Value:       value,
			Description: p.Description,
		})
	}

	platformFee := decimal.Zero
	if req.PlatformFeePercent != "" {
		parsed, err := decimal.NewFromString(req.PlatformFeePercent)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid platform_fee_percent"})
			return
		}
		platformFee = parsed
	}

	cfg := &entity.PrizeConfiguration{
		Mode:               req.Mode,
		Places:             places,
		PlatformFeePercent: platformFee,
	}

	if err := h.poolService.SavePrizeConfiguration(poolID, cfg); err != nil {
		h.handlePoolError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prize configuration saved"})
}

// GetPrizeBreakdown возвращает расчет призового фонда по текущему числу заявок.
// Пул без бай-ина, без заявок или без конфигурации дает пустой список призов,
// а не ошибку.
func (h *PoolHandler) GetPrizeBreakdown(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint)

	breakdown, err := h.poolService.GetPrizeBreakdown(poolID)
	if err != nil {
		h.handlePoolError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPrizeBreakdownResponse(breakdown))
}

// handlePoolError обрабатывает ошибки от сервисов пулов и отправляет соответствующий HTTP ответ
func (h *PoolHandler) handlePoolError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in PoolHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
