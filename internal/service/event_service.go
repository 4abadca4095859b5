package service

import (
	"fmt"
	"log"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/repository"
	apperrors "github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/pkg/errors"
)

// EventService предоставляет методы для записи недельных событий сезона
type EventService struct {
	eventRepo      repository.EventRepository
	poolRepo       repository.PoolRepository
	houseguestRepo repository.HouseguestRepository
	standings      *StandingsService
}

// NewEventService создает новый сервис событий
func NewEventService(
	eventRepo repository.EventRepository,
	poolRepo repository.PoolRepository,
	houseguestRepo repository.HouseguestRepository,
	standings *StandingsService,
) *EventService {
	return &EventService{
		eventRepo:      eventRepo,
		poolRepo:       poolRepo,
		houseguestRepo: houseguestRepo,
		standings:      standings,
	}
}

// RecordEvent записывает событие недели. Очки берутся из справочника правил
// по коду события; pointsOverride != nil заменяет их (для спец-событий).
// Снимок очков хранится в самом событии: позднейшая правка справочника не
// меняет уже записанную историю. Событие eviction дополнительно помечает
// участника выбывшим.
func (s *EventService) RecordEvent(poolID uint, houseguestID uint, week int, eventType string, pointsOverride *int, note string) (*entity.WeeklyEvent, error) {
	pool, err := s.poolRepo.GetByID(poolID)
	if err != nil {
		return nil, err
	}
	if pool.IsCompleted() {
		return nil, fmt.Errorf("%w: season already completed", apperrors.ErrConflict)
	}
	if week <= 0 {
		return nil, fmt.Errorf("%w: week must be positive", apperrors.ErrValidation)
	}

	hg, err := s.houseguestRepo.GetByID(houseguestID)
	if err != nil {
		return nil, err
	}
	if hg.PoolID != poolID {
		return nil, fmt.Errorf("%w: houseguest %d belongs to another pool", apperrors.ErrValidation, houseguestID)
	}

	points := 0
	if pointsOverride != nil {
		points = *pointsOverride
	} else {
		rule, err := s.eventRepo.GetRuleByCode(eventType)
		if err != nil {
			if isNotFound(err) {
				return nil, fmt.Errorf("%w: unknown event type %q", apperrors.ErrValidation, eventType)
			}
			return nil, err
		}
		points = rule.Points
	}

	event := &entity.WeeklyEvent{
		PoolID:       poolID,
		HouseguestID: houseguestID,
		Week:         week,
		EventType:    eventType,
		Points:       points,
		Note:         note,
	}
	if err := s.eventRepo.Create(event); err != nil {
		return nil, err
	}

	if eventType == entity.RuleEvicted {
		weekCopy := week
		if err := s.houseguestRepo.UpdateStatus(houseguestID, entity.HouseguestStatusEvicted, &weekCopy); err != nil {
			log.Printf("[EventService] Не удалось пометить участника %d выбывшим: %v", houseguestID, err)
		}
	}

	s.standings.Invalidate(poolID)
	log.Printf("[EventService] Пул %d, неделя %d: событие %q для участника %d (+%d очков)",
		poolID, week, eventType, houseguestID, points)
	return event, nil
}

// ListEvents возвращает все события пула
func (s *EventService) ListEvents(poolID uint) ([]entity.WeeklyEvent, error) {
	if _, err := s.poolRepo.GetByID(poolID); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByPoolID(poolID)
}

// ListWeekEvents возвращает события пула за неделю
func (s *EventService) ListWeekEvents(poolID uint, week int) ([]entity.WeeklyEvent, error) {
	if _, err := s.poolRepo.GetByID(poolID); err != nil {
		return nil, err
	}
	return s.eventRepo.GetByPoolAndWeek(poolID, week)
}

// DeleteEvent отменяет ошибочно записанное событие
func (s *EventService) DeleteEvent(eventID uint) error {
	event, err := s.eventRepo.GetByID(eventID)
	if err != nil {
		return err
	}

	pool, err := s.poolRepo.GetByID(event.PoolID)
	if err != nil {
		return err
	}
	if pool.IsCompleted() {
		return fmt.Errorf("%w: season already completed", apperrors.ErrConflict)
	}

	if err := s.eventRepo.Delete(eventID); err != nil {
		return err
	}

	// Отмена eviction возвращает участника в игру
	if event.EventType == entity.RuleEvicted {
		if err := s.houseguestRepo.UpdateStatus(event.HouseguestID, entity.HouseguestStatusActive, nil); err != nil {
			log.Printf("[EventService] Не удалось вернуть участника %d в игру: %v", event.HouseguestID, err)
		}
	}

	s.standings.Invalidate(event.PoolID)
	return nil
}

// ListScoringRules возвращает справочник правил начисления очков
func (s *EventService) ListScoringRules() ([]entity.ScoringRule, error) {
	return s.eventRepo.GetScoringRules()
}

// UpdateHouseguestStatus вручную обновляет статус участника (jury, winner)
func (s *EventService) UpdateHouseguestStatus(houseguestID uint, status string, evictedWeek *int) error {
	switch status {
	case entity.HouseguestStatusActive, entity.HouseguestStatusEvicted,
		entity.HouseguestStatusJury, entity.HouseguestStatusWinner:
	default:
		return fmt.Errorf("%w: unknown houseguest status %q", apperrors.ErrValidation, status)
	}

	hg, err := s.houseguestRepo.GetByID(houseguestID)
	if err != nil {
		return err
	}

	if err := s.houseguestRepo.UpdateStatus(houseguestID, status, evictedWeek); err != nil {
		return err
	}
	s.standings.Invalidate(hg.PoolID)
	return nil
}
