package dto

import (
	"time"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/service"
)

// StandingsResponse представляет таблицу результатов пула.
// Строки несут и пересчитанные, и закешированные очки вместе с флагом drift.
type StandingsResponse struct {
	PoolID      uint                   `json:"pool_id"`
	GeneratedAt time.Time              `json:"generated_at"`
	Rows        []service.StandingsRow `json:"rows"`
}

// NewStandingsResponse создает DTO для таблицы результатов
func NewStandingsResponse(poolID uint, rows []service.StandingsRow) *StandingsResponse {
	return &StandingsResponse{
		PoolID:      poolID,
		GeneratedAt: time.Now().UTC(),
		Rows:        rows,
	}
}
