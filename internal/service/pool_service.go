package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/repository"
	apperrors "github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/pkg/errors"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/service/scoring"
)

// PoolService предоставляет методы для работы с пулами
type PoolService struct {
	poolRepo       repository.PoolRepository
	entryRepo      repository.EntryRepository
	houseguestRepo repository.HouseguestRepository
	standings      *StandingsService
	db             *gorm.DB
}

// NewPoolService создает новый сервис пулов
func NewPoolService(
	poolRepo repository.PoolRepository,
	entryRepo repository.EntryRepository,
	houseguestRepo repository.HouseguestRepository,
	standings *StandingsService,
	db *gorm.DB,
) *PoolService {
	return &PoolService{
		poolRepo:       poolRepo,
		entryRepo:      entryRepo,
		houseguestRepo: houseguestRepo,
		standings:      standings,
		db:             db,
	}
}

// CreatePool создает новый пул с уникальным кодом приглашения
func (s *PoolService) CreatePool(pool *entity.Pool) (*entity.Pool, error) {
	if strings.TrimSpace(pool.Name) == "" {
		return nil, fmt.Errorf("%w: pool name is required", apperrors.ErrValidation)
	}
	if pool.PicksPerTeam <= 0 {
		pool.PicksPerTeam = entity.DefaultPicksPerTeam
	}
	if pool.HasBuyIn && pool.EntryFeeAmount.IsNegative() {
		return nil, fmt.Errorf("%w: entry fee cannot be negative", apperrors.ErrValidation)
	}
	if pool.HasBuyIn && pool.EntryFeeCurrency == "" {
		pool.EntryFeeCurrency = "USD"
	}

	pool.Status = entity.PoolStatusDraftOpen
	// Короткий код приглашения на основе UUID: 8 hex-символов достаточно
	// уникальны для пулов друзей, проверка коллизии — unique index в БД
	pool.InviteCode = strings.ToUpper(uuid.New().String()[:8])

	if err := s.poolRepo.Create(pool); err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	log.Printf("[PoolService] Создан пул ID=%d (%s), код приглашения %s", pool.ID, pool.Name, pool.InviteCode)
	return pool, nil
}

// GetPoolByID возвращает пул по ID
func (s *PoolService) GetPoolByID(poolID uint) (*entity.Pool, error) {
	return s.poolRepo.GetByID(poolID)
}

// GetPoolByInviteCode возвращает пул по коду приглашения
func (s *PoolService) GetPoolByInviteCode(code string) (*entity.Pool, error) {
	return s.poolRepo.GetByInviteCode(strings.ToUpper(strings.TrimSpace(code)))
}

// ListPools возвращает список пулов с пагинацией
func (s *PoolService) ListPools(page, pageSize int) ([]entity.Pool, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize
	return s.poolRepo.List(pageSize, offset)
}

// UpdateStatus переключает статус пула (открытие/закрытие драфта).
// Завершение сезона идет через CompleteSeason, а не через этот метод.
func (s *PoolService) UpdateStatus(poolID uint, status string) error {
	if status != entity.PoolStatusDraftOpen && status != entity.PoolStatusActive {
		return fmt.Errorf("%w: status must be %q or %q", apperrors.ErrValidation,
			entity.PoolStatusDraftOpen, entity.PoolStatusActive)
	}

	pool, err := s.poolRepo.GetByID(poolID)
	if err != nil {
		return err
	}
	if pool.IsCompleted() {
		return fmt.Errorf("%w: season already completed", apperrors.ErrConflict)
	}

	if err := s.poolRepo.UpdateStatus(poolID, status); err != nil {
		return err
	}
	s.standings.Invalidate(poolID)
	return nil
}

// AddHouseguests добавляет участников шоу в пул
func (s *PoolService) AddHouseguests(poolID uint, names []string) ([]entity.Houseguest, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no houseguest names provided", apperrors.ErrValidation)
	}

	if _, err := s.poolRepo.GetByID(poolID); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(names))
	hgs := make([]entity.Houseguest, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: empty houseguest name", apperrors.ErrValidation)
		}
		if seen[name] {
			return nil, fmt.Errorf("%w: duplicate houseguest name %q", apperrors.ErrValidation, name)
		}
		seen[name] = true
		hgs = append(hgs, entity.Houseguest{
			PoolID: poolID,
			Name:   name,
			Status: entity.HouseguestStatusActive,
		})
	}

	if err := s.houseguestRepo.CreateBatch(hgs); err != nil {
		return nil, err
	}
	return hgs, nil
}

// ListHouseguests возвращает участников пула
func (s *PoolService) ListHouseguests(poolID uint) ([]entity.Houseguest, error) {
	if _, err := s.poolRepo.GetByID(poolID); err != nil {
		return nil, err
	}
	return s.houseguestRepo.GetByPoolID(poolID)
}

// SavePrizeConfiguration сохраняет конфигурацию призов пула
func (s *PoolService) SavePrizeConfiguration(poolID uint, cfg *entity.PrizeConfiguration) error {
	pool, err := s.poolRepo.GetByID(poolID)
	if err != nil {
		return err
	}
	if pool.IsCompleted() {
		return fmt.Errorf("%w: cannot change prizes of a completed season", apperrors.ErrConflict)
	}

	if cfg.Mode != entity.PrizeModePercentage && cfg.Mode != entity.PrizeModeFixed {
		return fmt.Errorf("%w: prize mode must be %q or %q", apperrors.ErrValidation,
			entity.PrizeModePercentage, entity.PrizeModeFixed)
	}
	seen := make(map[int]bool, len(cfg.Places))
	for _, place := range cfg.Places {
		if place.Place <= 0 {
			return fmt.Errorf("%w: place must be positive", apperrors.ErrValidation)
		}
		if seen[place.Place] {
			return fmt.Errorf("%w: duplicate place %d", apperrors.ErrValidation, place.Place)
		}
		seen[place.Place] = true
		if place.Value.IsNegative() {
			return fmt.Errorf("%w: prize value for place %d cannot be negative", apperrors.ErrValidation, place.Place)
		}
	}

	cfg.PoolID = poolID
	return s.poolRepo.SavePrizeConfiguration(cfg)
}

// GetPrizeBreakdown рассчитывает текущее распределение призового фонда.
// Отсутствие конфигурации или оплаченных команд дает пустой список призов.
func (s *PoolService) GetPrizeBreakdown(poolID uint) (*scoring.Breakdown, error) {
	pool, err := s.poolRepo.GetByID(poolID)
	if err != nil {
		return nil, err
	}

	cfg, err := s.poolRepo.GetPrizeConfiguration(poolID)
	if err != nil && !isNotFound(err) {
		return nil, err
	}

	paidCount, err := s.entryRepo.CountPaidByPoolID(poolID)
	if err != nil {
		return nil, err
	}

	breakdown := scoring.CalculatePrizes(poolStake(pool), cfg, int(paidCount))
	return &breakdown, nil
}

// CompleteSeason завершает сезон: в ОДНОЙ транзакции пересчитывает итоговую
// таблицу, записывает каждой команде место, помечает призеров с их выплатами
// и переводит пул в статус completed. Повторное завершение отклоняется.
func (s *PoolService) CompleteSeason(poolID uint) ([]StandingsRow, error) {
	pool, err := s.poolRepo.GetByID(poolID)
	if err != nil {
		return nil, err
	}
	if pool.IsCompleted() {
		return nil, fmt.Errorf("%w: season already completed", apperrors.ErrConflict)
	}

	// Итоговая таблица считается из исходных данных, минуя кеш
	rows, err := s.standings.ComputeStandings(pool)
	if err != nil {
		return nil, fmt.Errorf("failed to compute final standings: %w", err)
	}

	breakdown, err := s.GetPrizeBreakdown(poolID)
	if err != nil {
		return nil, err
	}

	// Выплата по месту: prizes отсортированы по возрастанию места
	prizeByPlace := make(map[int]decimal.Decimal, len(breakdown.Prizes))
	for _, p := range breakdown.Prizes {
		prizeByPlace[p.Place] = p.Amount
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()
	if tx.Error != nil {
		return nil, tx.Error
	}

	for i := range rows {
		row := &rows[i]
		prize, isWinner := prizeByPlace[row.Place]
		if !isWinner {
			prize = decimal.Zero
		}
		row.IsWinner = isWinner
		row.PrizeAmount = prize

		if err := s.entryRepo.AssignPlacement(tx, row.EntryID, row.Place, isWinner, prize); err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to assign place %d to entry %d: %w", row.Place, row.EntryID, err)
		}
		// Сохраненная сумма очков синхронизируется с итоговым пересчетом
		if err := tx.Model(&entity.TeamEntry{}).
			Where("id = ?", row.EntryID).
			Update("total_points", row.TotalPoints).Error; err != nil {
			tx.Rollback()
			return nil, fmt.Errorf("failed to sync total points for entry %d: %w", row.EntryID, err)
		}
	}

	if err := tx.Model(&entity.Pool{}).
		Where("id = ?", poolID).
		Update("status", entity.PoolStatusCompleted).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to complete pool: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	s.standings.Invalidate(poolID)
	log.Printf("[PoolService] Сезон пула ID=%d завершен: %d команд, %d призовых мест",
		poolID, len(rows), len(breakdown.Prizes))
	return rows, nil
}

// poolStake извлекает финансовые параметры пула для расчета призов
func poolStake(pool *entity.Pool) scoring.PoolStake {
	return scoring.PoolStake{
		HasBuyIn: pool.HasBuyIn,
		EntryFee: pool.EntryFeeAmount,
		Currency: pool.EntryFeeCurrency,
	}
}

// isNotFound сокращение для проверки apperrors.ErrNotFound
func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
