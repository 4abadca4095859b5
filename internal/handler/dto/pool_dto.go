package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/service/scoring"
)

// PoolResponse представляет пул в формате для ответа клиенту
type PoolResponse struct {
	ID               uint            `json:"id"`
	Name             string          `json:"name"`
	Season           string          `json:"season,omitempty"`
	Status           string          `json:"status"`
	PicksPerTeam     int             `json:"picks_per_team"`
	HasBuyIn         bool            `json:"has_buy_in"`
	EntryFeeAmount   decimal.Decimal `json:"entry_fee_amount"`
	EntryFeeCurrency string          `json:"entry_fee_currency"`
	InviteCode       string          `json:"invite_code"`
	DraftDeadline    *time.Time      `json:"draft_deadline,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NewPoolResponse создает DTO для пула
func NewPoolResponse(pool *entity.Pool) *PoolResponse {
	return &PoolResponse{
		ID:               pool.ID,
		Name:             pool.Name,
		Season:           pool.Season,
		Status:           pool.Status,
		PicksPerTeam:     pool.PicksPerTeam,
		HasBuyIn:         pool.HasBuyIn,
		EntryFeeAmount:   pool.EntryFeeAmount,
		EntryFeeCurrency: pool.EntryFeeCurrency,
		InviteCode:       pool.InviteCode,
		DraftDeadline:    pool.DraftDeadline,
		CreatedAt:        pool.CreatedAt,
		UpdatedAt:        pool.UpdatedAt,
	}
}

// PaginatedPoolResponse представляет пагинированный список пулов
type PaginatedPoolResponse struct {
	Pools   []*PoolResponse `json:"pools"`
	Total   int64           `json:"total"`
	Page    int             `json:"page"`
	PerPage int             `json:"per_page"`
}

// NewPaginatedPoolResponse создает DTO для списка пулов
func NewPaginatedPoolResponse(pools []entity.Pool, total int64, page, perPage int) *PaginatedPoolResponse {
	items := make([]*PoolResponse, 0, len(pools))
	for i := range pools {
		items = append(items, NewPoolResponse(&pools[i]))
	}
	return &PaginatedPoolResponse{
		Pools:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
}

// HouseguestResponse представляет участника дома в формате для ответа клиенту
type HouseguestResponse struct {
	ID          uint   `json:"id"`
	PoolID      uint   `json:"pool_id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	EvictedWeek *int   `json:"evicted_week,omitempty"`
}

// NewHouseguestResponse создает DTO для участника дома
func NewHouseguestResponse(hg *entity.Houseguest) *HouseguestResponse {
	return &HouseguestResponse{
		ID:          hg.ID,
		PoolID:      hg.PoolID,
		Name:        hg.Name,
		Status:      hg.Status,
		EvictedWeek: hg.EvictedWeek,
	}
}

// NewListHouseguestResponse создает DTO для списка участников
func NewListHouseguestResponse(hgs []entity.Houseguest) []*HouseguestResponse {
	items := make([]*HouseguestResponse, 0, len(hgs))
	for i := range hgs {
		items = append(items, NewHouseguestResponse(&hgs[i]))
	}
	return items
}

// PrizeBreakdownResponse представляет распределение призового фонда
type PrizeBreakdownResponse struct {
	Mode               string          `json:"mode,omitempty"`
	Currency           string          `json:"currency"`
	TotalPrizePool     decimal.Decimal `json:"total_prize_pool"`
	AvailablePrizePool decimal.Decimal `json:"available_prize_pool"`
	Prizes             []PrizeResponse `json:"prizes"`
}

// PrizeResponse представляет выплату за одно место
type PrizeResponse struct {
	Place       int             `json:"place"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// NewPrizeBreakdownResponse создает DTO для распределения призов
func NewPrizeBreakdownResponse(b *scoring.Breakdown) *PrizeBreakdownResponse {
	prizes := make([]PrizeResponse, 0, len(b.Prizes))
	for _, p := range b.Prizes {
		prizes = append(prizes, PrizeResponse{
			Place:       p.Place,
			Amount:      p.Amount,
			Description: p.Description,
		})
	}
	return &PrizeBreakdownResponse{
		Mode:               b.Mode,
		Currency:           b.Currency,
		TotalPrizePool:     b.TotalPrizePool,
		AvailablePrizePool: b.AvailablePrizePool,
		Prizes:             prizes,
	}
}
