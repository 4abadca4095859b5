package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
)

// EntryResponse представляет команду-участника в формате для ответа клиенту
type EntryResponse struct {
	ID               uint            `json:"id"`
	PoolID           uint            `json:"pool_id"`
	ParticipantName  string          `json:"participant_name"`
	TeamName         string          `json:"team_name"`
	Picks            []string        `json:"picks"`
	BonusAnswers     map[uint]string `json:"bonus_answers,omitempty"`
	PaymentConfirmed bool            `json:"payment_confirmed"`
	TotalPoints      int             `json:"total_points"`
	Place            int             `json:"place,omitempty"`
	IsWinner         bool            `json:"is_winner"`
	PrizeAmount      decimal.Decimal `json:"prize_amount"`
	CreatedAt        time.Time       `json:"created_at"`
}

// NewEntryResponse создает DTO для команды.
// includeAnswers управляет видимостью бонусных ответов: в публичных списках
// до закрытия драфта ответы скрываются, чтобы их нельзя было списать.
func NewEntryResponse(entry *entity.TeamEntry, includeAnswers bool) *EntryResponse {
	resp := &EntryResponse{
		ID:               entry.ID,
		PoolID:           entry.PoolID,
		ParticipantName:  entry.ParticipantName,
		TeamName:         entry.TeamName,
		Picks:            entry.Picks,
		PaymentConfirmed: entry.PaymentConfirmed,
		TotalPoints:      entry.TotalPoints,
		Place:            entry.Place,
		IsWinner:         entry.IsWinner,
		PrizeAmount:      entry.PrizeAmount,
		CreatedAt:        entry.CreatedAt,
	}
	if includeAnswers {
		resp.BonusAnswers = entry.BonusAnswers
	}
	return resp
}

// NewListEntryResponse создает DTO для списка команд
func NewListEntryResponse(entries []entity.TeamEntry, includeAnswers bool) []*EntryResponse {
	items := make([]*EntryResponse, 0, len(entries))
	for i := range entries {
		items = append(items, NewEntryResponse(&entries[i], includeAnswers))
	}
	return items
}
