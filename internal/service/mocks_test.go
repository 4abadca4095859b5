package service

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
)

// ============================================================================
// Моки репозиториев для тестов сервисов. Реализуют интерфейсы из
// internal/domain/repository на базе testify/mock.
// ============================================================================

// MockPoolRepository реализует repository.PoolRepository
type MockPoolRepository struct {
	mock.Mock
}

func (m *MockPoolRepository) Create(pool *entity.Pool) error {
	args := m.Called(pool)
	return args.Error(0)
}

func (m *MockPoolRepository) GetByID(id uint) (*entity.Pool, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Pool), args.Error(1)
}

func (m *MockPoolRepository) GetByInviteCode(code string) (*entity.Pool, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Pool), args.Error(1)
}

func (m *MockPoolRepository) List(limit, offset int) ([]entity.Pool, int64, error) {
	args := m.Called(limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]entity.Pool), args.Get(1).(int64), args.Error(2)
}

func (m *MockPoolRepository) GetByStatus(status string) ([]entity.Pool, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Pool), args.Error(1)
}

func (m *MockPoolRepository) UpdateStatus(poolID uint, status string) error {
	args := m.Called(poolID, status)
	return args.Error(0)
}

func (m *MockPoolRepository) Update(pool *entity.Pool) error {
	args := m.Called(pool)
	return args.Error(0)
}

func (m *MockPoolRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockPoolRepository) GetPrizeConfiguration(poolID uint) (*entity.PrizeConfiguration, error) {
	args := m.Called(poolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.PrizeConfiguration), args.Error(1)
}

func (m *MockPoolRepository) SavePrizeConfiguration(cfg *entity.PrizeConfiguration) error {
	args := m.Called(cfg)
	return args.Error(0)
}

// MockEntryRepository реализует repository.EntryRepository
type MockEntryRepository struct {
	mock.Mock
}

func (m *MockEntryRepository) Create(entry *entity.TeamEntry) error {
	args := m.Called(entry)
	return args.Error(0)
}

func (m *MockEntryRepository) GetByID(id uint) (*entity.TeamEntry, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TeamEntry), args.Error(1)
}

func (m *MockEntryRepository) GetByPoolID(poolID uint) ([]entity.TeamEntry, error) {
	args := m.Called(poolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.TeamEntry), args.Error(1)
}

func (m *MockEntryRepository) CountByPoolID(poolID uint) (int64, error) {
	args := m.Called(poolID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) CountPaidByPoolID(poolID uint) (int64, error) {
	args := m.Called(poolID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockEntryRepository) SetPaymentConfirmed(entryID uint, confirmed bool) error {
	args := m.Called(entryID, confirmed)
	return args.Error(0)
}

func (m *MockEntryRepository) UpdateTotalPoints(entryID uint, totalPoints int) error {
	args := m.Called(entryID, totalPoints)
	return args.Error(0)
}

func (m *MockEntryRepository) AssignPlacement(tx *gorm.DB, entryID uint, place int, isWinner bool, prizeAmount decimal.Decimal) error {
	args := m.Called(tx, entryID, place, isWinner, prizeAmount)
	return args.Error(0)
}

func (m *MockEntryRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(question *entity.BonusQuestion) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) CreateBatch(questions []entity.BonusQuestion) error {
	args := m.Called(questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(id uint) (*entity.BonusQuestion, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.BonusQuestion), args.Error(1)
}

func (m *MockQuestionRepository) GetByPoolID(poolID uint) ([]entity.BonusQuestion, error) {
	args := m.Called(poolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.BonusQuestion), args.Error(1)
}

func (m *MockQuestionRepository) GetRevealedByPoolID(poolID uint) ([]entity.BonusQuestion, error) {
	args := m.Called(poolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.BonusQuestion), args.Error(1)
}

func (m *MockQuestionRepository) RevealAnswer(questionID uint, correctAnswer string) error {
	args := m.Called(questionID, correctAnswer)
	return args.Error(0)
}

func (m *MockQuestionRepository) Update(question *entity.BonusQuestion) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockHouseguestRepository реализует repository.HouseguestRepository
type MockHouseguestRepository struct {
	mock.Mock
}

func (m *MockHouseguestRepository) Create(houseguest *entity.Houseguest) error {
	args := m.Called(houseguest)
	return args.Error(0)
}

func (m *MockHouseguestRepository) CreateBatch(houseguests []entity.Houseguest) error {
	args := m.Called(houseguests)
	return args.Error(0)
}

func (m *MockHouseguestRepository) GetByID(id uint) (*entity.Houseguest, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Houseguest), args.Error(1)
}

func (m *MockHouseguestRepository) GetByPoolID(poolID uint) ([]entity.Houseguest, error) {
	args := m.Called(poolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Houseguest), args.Error(1)
}

func (m *MockHouseguestRepository) UpdateStatus(houseguestID uint, status string, evictedWeek *int) error {
	args := m.Called(houseguestID, status, evictedWeek)
	return args.Error(0)
}

func (m *MockHouseguestRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockEventRepository реализует repository.EventRepository
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(event *entity.WeeklyEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockEventRepository) GetByID(id uint) (*entity.WeeklyEvent, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.WeeklyEvent), args.Error(1)
}

func (m *MockEventRepository) GetByPoolID(poolID uint) ([]entity.WeeklyEvent, error) {
	args := m.Called(poolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.WeeklyEvent), args.Error(1)
}

func (m *MockEventRepository) GetByPoolAndWeek(poolID uint, week int) ([]entity.WeeklyEvent, error) {
	args := m.Called(poolID, week)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.WeeklyEvent), args.Error(1)
}

func (m *MockEventRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockEventRepository) SumPointsByHouseguest(poolID uint) (map[string]int, error) {
	args := m.Called(poolID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int), args.Error(1)
}

func (m *MockEventRepository) GetScoringRules() ([]entity.ScoringRule, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.ScoringRule), args.Error(1)
}

func (m *MockEventRepository) GetRuleByCode(code string) (*entity.ScoringRule, error) {
	args := m.Called(code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.ScoringRule), args.Error(1)
}

// MockCacheRepository реализует repository.CacheRepository
type MockCacheRepository struct {
	mock.Mock
}

func (m *MockCacheRepository) Set(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) Get(key string) (string, error) {
	args := m.Called(key)
	return args.String(0), args.Error(1)
}

func (m *MockCacheRepository) Delete(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func (m *MockCacheRepository) SetJSON(key string, value interface{}, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCacheRepository) GetJSON(key string, dest interface{}) error {
	args := m.Called(key, dest)
	return args.Error(0)
}

func (m *MockCacheRepository) Exists(key string) (bool, error) {
	args := m.Called(key)
	return args.Bool(0), args.Error(1)
}
