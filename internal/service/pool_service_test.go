package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
	apperrors "github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/pkg/errors"
)

func newTestPoolService(
	poolRepo *MockPoolRepository,
	entryRepo *MockEntryRepository,
	houseguestRepo *MockHouseguestRepository,
) *PoolService {
	standings := newTestStandings(entryRepo, new(MockQuestionRepository), new(MockEventRepository), poolRepo)
	return NewPoolService(poolRepo, entryRepo, houseguestRepo, standings, nil)
}

func TestPoolService_CreatePool_Success(t *testing.T) {
	// Arrange
	poolRepo := new(MockPoolRepository)
	poolRepo.On("Create", mock.AnythingOfType("*entity.Pool")).Return(nil)

	svc := newTestPoolService(poolRepo, new(MockEntryRepository), new(MockHouseguestRepository))

	// Act
	pool, err := svc.CreatePool(&entity.Pool{Name: "Season 27 Pool", HasBuyIn: true,
		EntryFeeAmount: decimal.NewFromInt(20)})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, entity.PoolStatusDraftOpen, pool.Status, "Новый пул открыт для драфта")
	assert.Equal(t, entity.DefaultPicksPerTeam, pool.PicksPerTeam)
	assert.Len(t, pool.InviteCode, 8, "Код приглашения — 8 символов")
	assert.Equal(t, "USD", pool.EntryFeeCurrency, "Валюта по умолчанию")
	poolRepo.AssertExpectations(t)
}

func TestPoolService_CreatePool_EmptyName(t *testing.T) {
	poolRepo := new(MockPoolRepository)
	svc := newTestPoolService(poolRepo, new(MockEntryRepository), new(MockHouseguestRepository))

	_, err := svc.CreatePool(&entity.Pool{Name: "   "})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	poolRepo.AssertNotCalled(t, "Create")
}

func TestPoolService_UpdateStatus_CompletedIsImmutable(t *testing.T) {
	poolRepo := new(MockPoolRepository)
	poolRepo.On("GetByID", uint(1)).Return(&entity.Pool{ID: 1, Status: entity.PoolStatusCompleted}, nil)

	svc := newTestPoolService(poolRepo, new(MockEntryRepository), new(MockHouseguestRepository))

	err := svc.UpdateStatus(1, entity.PoolStatusActive)

	assert.ErrorIs(t, err, apperrors.ErrConflict, "Завершенный сезон не переоткрывается")
	poolRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestPoolService_UpdateStatus_RejectsCompletedViaStatus(t *testing.T) {
	// Завершение сезона идет только через CompleteSeason
	poolRepo := new(MockPoolRepository)
	svc := newTestPoolService(poolRepo, new(MockEntryRepository), new(MockHouseguestRepository))

	err := svc.UpdateStatus(1, entity.PoolStatusCompleted)

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	poolRepo.AssertNotCalled(t, "UpdateStatus")
}

func TestPoolService_AddHouseguests_DuplicateName(t *testing.T) {
	poolRepo := new(MockPoolRepository)
	houseguestRepo := new(MockHouseguestRepository)
	poolRepo.On("GetByID", uint(1)).Return(draftOpenPool(), nil)

	svc := newTestPoolService(poolRepo, new(MockEntryRepository), houseguestRepo)

	_, err := svc.AddHouseguests(1, []string{"Alice", "Alice"})

	assert.ErrorIs(t, err, apperrors.ErrValidation)
	houseguestRepo.AssertNotCalled(t, "CreateBatch")
}

func TestPoolService_GetPrizeBreakdown_NoConfiguration(t *testing.T) {
	// Arrange: конфигурации нет — штатное пустое состояние, не ошибка
	poolRepo := new(MockPoolRepository)
	entryRepo := new(MockEntryRepository)

	poolRepo.On("GetByID", uint(1)).Return(&entity.Pool{
		ID: 1, HasBuyIn: true,
		EntryFeeAmount:   decimal.NewFromInt(20),
		EntryFeeCurrency: "USD",
	}, nil)
	poolRepo.On("GetPrizeConfiguration", uint(1)).Return(nil, apperrors.ErrNotFound)
	entryRepo.On("CountPaidByPoolID", uint(1)).Return(int64(10), nil)

	svc := newTestPoolService(poolRepo, entryRepo, new(MockHouseguestRepository))

	// Act
	breakdown, err := svc.GetPrizeBreakdown(1)

	// Assert
	require.NoError(t, err)
	assert.Empty(t, breakdown.Prizes)
}

func TestPoolService_GetPrizeBreakdown_EndToEnd(t *testing.T) {
	// Arrange: взнос 20, 10 оплаченных команд, проценты {1:50, 2:30, 3:20}
	poolRepo := new(MockPoolRepository)
	entryRepo := new(MockEntryRepository)

	poolRepo.On("GetByID", uint(1)).Return(&entity.Pool{
		ID: 1, HasBuyIn: true,
		EntryFeeAmount:   decimal.NewFromInt(20),
		EntryFeeCurrency: "USD",
	}, nil)
	poolRepo.On("GetPrizeConfiguration", uint(1)).Return(&entity.PrizeConfiguration{
		PoolID: 1,
		Mode:   entity.PrizeModePercentage,
		Places: entity.PrizePlaceList{
			{Place: 1, Value: decimal.NewFromInt(50)},
			{Place: 2, Value: decimal.NewFromInt(30)},
			{Place: 3, Value: decimal.NewFromInt(20)},
		},
	}, nil)
	entryRepo.On("CountPaidByPoolID", uint(1)).Return(int64(10), nil)

	svc := newTestPoolService(poolRepo, entryRepo, new(MockHouseguestRepository))

	// Act
	breakdown, err := svc.GetPrizeBreakdown(1)

	// Assert
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(breakdown.TotalPrizePool))
	require.Len(t, breakdown.Prizes, 3)
	assert.True(t, decimal.NewFromInt(100).Equal(breakdown.Prizes[0].Amount))
	assert.True(t, decimal.NewFromInt(60).Equal(breakdown.Prizes[1].Amount))
	assert.True(t, decimal.NewFromInt(40).Equal(breakdown.Prizes[2].Amount))
}

func TestPoolService_SavePrizeConfiguration_Validation(t *testing.T) {
	poolRepo := new(MockPoolRepository)
	poolRepo.On("GetByID", uint(1)).Return(draftOpenPool(), nil)

	svc := newTestPoolService(poolRepo, new(MockEntryRepository), new(MockHouseguestRepository))

	// Неизвестный режим
	err := svc.SavePrizeConfiguration(1, &entity.PrizeConfiguration{Mode: "lottery"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	// Дубликат места
	err = svc.SavePrizeConfiguration(1, &entity.PrizeConfiguration{
		Mode: entity.PrizeModeFixed,
		Places: entity.PrizePlaceList{
			{Place: 1, Value: decimal.NewFromInt(100)},
			{Place: 1, Value: decimal.NewFromInt(50)},
		},
	})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	poolRepo.AssertNotCalled(t, "SavePrizeConfiguration")
}

func TestPoolService_CompleteSeason_AlreadyCompleted(t *testing.T) {
	poolRepo := new(MockPoolRepository)
	poolRepo.On("GetByID", uint(1)).Return(&entity.Pool{ID: 1, Status: entity.PoolStatusCompleted}, nil)

	svc := newTestPoolService(poolRepo, new(MockEntryRepository), new(MockHouseguestRepository))

	_, err := svc.CompleteSeason(1)

	assert.ErrorIs(t, err, apperrors.ErrConflict, "Повторное завершение сезона отклоняется")
}
