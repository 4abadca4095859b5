package scoring

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
)

// PoolStake описывает финансовые параметры пула, нужные для расчета призов.
type PoolStake struct {
	HasBuyIn bool
	EntryFee decimal.Decimal
	Currency string
}

// PlacePayout — выплата за одно призовое место.
type PlacePayout struct {
	Place       int             `json:"place"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// Breakdown — итоговое распределение призового фонда пула.
type Breakdown struct {
	Mode               string          `json:"mode"`
	Currency           string          `json:"currency"`
	TotalPrizePool     decimal.Decimal `json:"total_prize_pool"`
	AvailablePrizePool decimal.Decimal `json:"available_prize_pool"`
	Prizes             []PlacePayout   `json:"prizes"`
}

var oneHundred = decimal.NewFromInt(100)

// CalculatePrizes рассчитывает таблицу выплат по местам.
//
// Пул без взносов, без оплаченных команд или без конфигурации призов дает
// пустой список Prizes — это штатное состояние, а не ошибка.
// totalPrizePool = entryCount × entry_fee_amount. В процентном режиме суммы
// округляются до целых единиц валюты; в фиксированном режиме суммы берутся
// как есть и не масштабируются от числа участников (превышение фонда не
// блокируется — это административный вопрос, не вычислительная ошибка).
// Результат всегда отсортирован по возрастанию места.
func CalculatePrizes(stake PoolStake, cfg *entity.PrizeConfiguration, entryCount int) Breakdown {
	empty := Breakdown{
		Currency:           stake.Currency,
		TotalPrizePool:     decimal.Zero,
		AvailablePrizePool: decimal.Zero,
		Prizes:             []PlacePayout{},
	}
	if cfg != nil {
		empty.Mode = cfg.Mode
	}

	if !stake.HasBuyIn || entryCount <= 0 || cfg == nil || len(cfg.Places) == 0 {
		return empty
	}

	total := stake.EntryFee.Mul(decimal.NewFromInt(int64(entryCount)))

	prizes := make([]PlacePayout, 0, len(cfg.Places))
	available := total

	switch cfg.Mode {
	case entity.PrizeModePercentage:
		for _, place := range cfg.Places {
			amount := total.Mul(place.Value).Div(oneHundred).Round(0)
			prizes = append(prizes, PlacePayout{
				Place:       place.Place,
				Amount:      amount,
				Description: place.Description,
			})
		}
		if cfg.PlatformFeePercent.IsPositive() {
			fee := total.Mul(cfg.PlatformFeePercent).Div(oneHundred).Round(0)
			available = total.Sub(fee)
		}
	case entity.PrizeModeFixed:
		for _, place := range cfg.Places {
			prizes = append(prizes, PlacePayout{
				Place:       place.Place,
				Amount:      place.Value,
				Description: place.Description,
			})
		}
	default:
		return empty
	}

	sort.Slice(prizes, func(i, j int) bool {
		return prizes[i].Place < prizes[j].Place
	})

	return Breakdown{
		Mode:               cfg.Mode,
		Currency:           stake.Currency,
		TotalPrizePool:     total,
		AvailablePrizePool: available,
		Prizes:             prizes,
	}
}
