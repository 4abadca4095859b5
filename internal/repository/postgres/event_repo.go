package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
	apperrors "github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/pkg/errors"
)

// EventRepo реализует repository.EventRepository
type EventRepo struct {
	db *gorm.DB
}

// NewEventRepo создает новый репозиторий недельных событий
func NewEventRepo(db *gorm.DB) *EventRepo {
	return &EventRepo{db: db}
}

// Create записывает новое событие
func (r *EventRepo) Create(event *entity.WeeklyEvent) error {
	return r.db.Create(event).Error
}

// GetByID возвращает событие по ID
func (r *EventRepo) GetByID(id uint) (*entity.WeeklyEvent, error) {
	var event entity.WeeklyEvent
	err := r.db.First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &event, nil
}

// GetByPoolID возвращает все события пула в хронологическом порядке
func (r *EventRepo) GetByPoolID(poolID uint) ([]entity.WeeklyEvent, error) {
	var events []entity.WeeklyEvent
	err := r.db.Where("pool_id = ?", poolID).
		Order("week ASC, id ASC").
		Find(&events).Error
	return events, err
}

// GetByPoolAndWeek возвращает события пула за конкретную неделю
func (r *EventRepo) GetByPoolAndWeek(poolID uint, week int) ([]entity.WeeklyEvent, error) {
	var events []entity.WeeklyEvent
	err := r.db.Where("pool_id = ? AND week = ?", poolID, week).
		Order("id ASC").
		Find(&events).Error
	return events, err
}

// Delete удаляет событие
func (r *EventRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.WeeklyEvent{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// SumPointsByHouseguest агрегирует очки всех событий пула по имени участника.
// Используем сырой SQL с JOIN для эффективности: одна выборка вместо N запросов.
func (r *EventRepo) SumPointsByHouseguest(poolID uint) (map[string]int, error) {
	type row struct {
		Name   string
		Points int
	}
	var rows []row

	sql := `
	SELECT h.name AS name, COALESCE(SUM(e.points), 0) AS points
	FROM weekly_events e
	JOIN houseguests h ON h.id = e.houseguest_id
	WHERE e.pool_id = ?
	GROUP BY h.name`

	if err := r.db.Raw(sql, poolID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make(map[string]int, len(rows))
	for _, rw := range rows {
		totals[rw.Name] = rw.Points
	}
	return totals, nil
}

// GetScoringRules возвращает справочник правил начисления очков
func (r *EventRepo) GetScoringRules() ([]entity.ScoringRule, error) {
	var rules []entity.ScoringRule
	err := r.db.Order("id ASC").Find(&rules).Error
	return rules, err
}

// GetRuleByCode возвращает правило начисления по коду
func (r *EventRepo) GetRuleByCode(code string) (*entity.ScoringRule, error) {
	var rule entity.ScoringRule
	err := r.db.Where("code = ?", code).First(&rule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &rule, nil
}
