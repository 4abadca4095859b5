package scoring

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
)

func percentageConfig() *entity.PrizeConfiguration {
	return &entity.PrizeConfiguration{
		Mode: entity.PrizeModePercentage,
		Places: entity.PrizePlaceList{
			{Place: 1, Value: decimal.NewFromInt(50)},
			{Place: 2, Value: decimal.NewFromInt(30)},
			{Place: 3, Value: decimal.NewFromInt(20)},
		},
	}
}

func TestCalculatePrizes_EndToEndPercentage(t *testing.T) {
	// Arrange: взнос 20, 10 оплаченных команд, проценты {1:50, 2:30, 3:20}
	stake := PoolStake{
		HasBuyIn: true,
		EntryFee: decimal.NewFromInt(20),
		Currency: "USD",
	}

	// Act
	breakdown := CalculatePrizes(stake, percentageConfig(), 10)

	// Assert
	assert.True(t, decimal.NewFromInt(200).Equal(breakdown.TotalPrizePool),
		"Фонд = 10 команд × 20")
	require.Len(t, breakdown.Prizes, 3)
	assert.Equal(t, 1, breakdown.Prizes[0].Place)
	assert.True(t, decimal.NewFromInt(100).Equal(breakdown.Prizes[0].Amount), "1-е место: 50 процентов от 200")
	assert.Equal(t, 2, breakdown.Prizes[1].Place)
	assert.True(t, decimal.NewFromInt(60).Equal(breakdown.Prizes[1].Amount), "2-е место: 30 процентов от 200")
	assert.Equal(t, 3, breakdown.Prizes[2].Place)
	assert.True(t, decimal.NewFromInt(40).Equal(breakdown.Prizes[2].Amount), "3-е место: 20 процентов от 200")
	assert.True(t, breakdown.TotalPrizePool.Equal(breakdown.AvailablePrizePool),
		"Без комиссии платформы доступный фонд равен полному")
}

func TestCalculatePrizes_ZeroEntries(t *testing.T) {
	stake := PoolStake{HasBuyIn: true, EntryFee: decimal.NewFromInt(20), Currency: "USD"}

	breakdown := CalculatePrizes(stake, percentageConfig(), 0)

	assert.Empty(t, breakdown.Prizes, "Без оплаченных команд призов нет")
	assert.True(t, breakdown.TotalPrizePool.IsZero())
}

func TestCalculatePrizes_NoBuyIn(t *testing.T) {
	stake := PoolStake{HasBuyIn: false, EntryFee: decimal.NewFromInt(20), Currency: "USD"}

	breakdown := CalculatePrizes(stake, percentageConfig(), 10)

	assert.Empty(t, breakdown.Prizes, "Пул без взносов не имеет призового фонда")
}

func TestCalculatePrizes_NoConfiguration(t *testing.T) {
	stake := PoolStake{HasBuyIn: true, EntryFee: decimal.NewFromInt(20), Currency: "USD"}

	assert.Empty(t, CalculatePrizes(stake, nil, 10).Prizes,
		"Отсутствие конфигурации — штатное пустое состояние")
	assert.Empty(t, CalculatePrizes(stake, &entity.PrizeConfiguration{Mode: entity.PrizeModePercentage}, 10).Prizes,
		"Конфигурация без мест — штатное пустое состояние")
}

func TestCalculatePrizes_RoundingTolerance(t *testing.T) {
	// Arrange: нечетный фонд, проценты дают дробные суммы
	stake := PoolStake{HasBuyIn: true, EntryFee: decimal.NewFromFloat(7.5), Currency: "USD"}
	cfg := &entity.PrizeConfiguration{
		Mode: entity.PrizeModePercentage,
		Places: entity.PrizePlaceList{
			{Place: 1, Value: decimal.NewFromInt(55)},
			{Place: 2, Value: decimal.NewFromInt(33)},
			{Place: 3, Value: decimal.NewFromInt(12)},
		},
	}

	// Act
	breakdown := CalculatePrizes(stake, cfg, 7) // фонд 52.5

	// Assert: сумма выплат в пределах ±1 единицы на место от точного значения
	sum := decimal.Zero
	for _, p := range breakdown.Prizes {
		assert.True(t, p.Amount.Equal(p.Amount.Round(0)),
			"Каждая выплата округлена до целых единиц валюты")
		sum = sum.Add(p.Amount)
	}
	exact := breakdown.TotalPrizePool // Σ(percentages) = 100
	tolerance := decimal.NewFromInt(int64(len(breakdown.Prizes)))
	assert.True(t, sum.Sub(exact).Abs().LessThanOrEqual(tolerance),
		"Сумма выплат %s должна быть в пределах ±%s от точной %s", sum, tolerance, exact)
}

func TestCalculatePrizes_PlatformFee(t *testing.T) {
	stake := PoolStake{HasBuyIn: true, EntryFee: decimal.NewFromInt(10), Currency: "USD"}
	cfg := percentageConfig()
	cfg.PlatformFeePercent = decimal.NewFromInt(10)

	breakdown := CalculatePrizes(stake, cfg, 10) // фонд 100, комиссия 10

	assert.True(t, decimal.NewFromInt(100).Equal(breakdown.TotalPrizePool))
	assert.True(t, decimal.NewFromInt(90).Equal(breakdown.AvailablePrizePool),
		"Доступный фонд = полный минус комиссия платформы")
}

func TestCalculatePrizes_FixedMode(t *testing.T) {
	// Arrange: фиксированные суммы не масштабируются от числа команд
	stake := PoolStake{HasBuyIn: true, EntryFee: decimal.NewFromInt(5), Currency: "USD"}
	cfg := &entity.PrizeConfiguration{
		Mode: entity.PrizeModeFixed,
		Places: entity.PrizePlaceList{
			{Place: 2, Value: decimal.NewFromInt(30)},
			{Place: 1, Value: decimal.NewFromInt(100), Description: "Grand prize"},
		},
	}

	// Act
	breakdown := CalculatePrizes(stake, cfg, 3) // фонд всего 15

	// Assert: превышение фонда не блокируется, суммы как есть
	require.Len(t, breakdown.Prizes, 2)
	assert.Equal(t, 1, breakdown.Prizes[0].Place, "Список отсортирован по возрастанию места")
	assert.True(t, decimal.NewFromInt(100).Equal(breakdown.Prizes[0].Amount))
	assert.Equal(t, "Grand prize", breakdown.Prizes[0].Description)
	assert.Equal(t, 2, breakdown.Prizes[1].Place)
	assert.True(t, decimal.NewFromInt(15).Equal(breakdown.TotalPrizePool),
		"Информационный полный фонд считается от числа команд")
}

func TestCalculatePrizes_SortedAscendingByPlace(t *testing.T) {
	stake := PoolStake{HasBuyIn: true, EntryFee: decimal.NewFromInt(10), Currency: "USD"}
	cfg := &entity.PrizeConfiguration{
		Mode: entity.PrizeModePercentage,
		Places: entity.PrizePlaceList{
			{Place: 3, Value: decimal.NewFromInt(20)},
			{Place: 1, Value: decimal.NewFromInt(50)},
			{Place: 2, Value: decimal.NewFromInt(30)},
		},
	}

	breakdown := CalculatePrizes(stake, cfg, 4)

	require.Len(t, breakdown.Prizes, 3)
	for i, p := range breakdown.Prizes {
		assert.Equal(t, i+1, p.Place, "Призы отсортированы по возрастанию места")
	}
}
