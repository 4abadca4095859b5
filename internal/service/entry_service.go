package service

import (
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/repository"
	apperrors "github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/pkg/errors"
)

// EntryService предоставляет методы для работы с командами-участниками
type EntryService struct {
	entryRepo      repository.EntryRepository
	poolRepo       repository.PoolRepository
	houseguestRepo repository.HouseguestRepository
	questionRepo   repository.QuestionRepository
	standings      *StandingsService
}

// NewEntryService создает новый сервис команд
func NewEntryService(
	entryRepo repository.EntryRepository,
	poolRepo repository.PoolRepository,
	houseguestRepo repository.HouseguestRepository,
	questionRepo repository.QuestionRepository,
	standings *StandingsService,
) *EntryService {
	return &EntryService{
		entryRepo:      entryRepo,
		poolRepo:       poolRepo,
		houseguestRepo: houseguestRepo,
		questionRepo:   questionRepo,
		standings:      standings,
	}
}

// SubmitEntry принимает драфт команды. Проверяет, что драфт пула открыт,
// число пиков равно picks_per_team, пики не повторяются и все выбранные
// участники существуют в пуле, а бонусные ответы подходят типам вопросов.
func (s *EntryService) SubmitEntry(entry *entity.TeamEntry) (*entity.TeamEntry, error) {
	pool, err := s.poolRepo.GetByID(entry.PoolID)
	if err != nil {
		return nil, err
	}

	if !pool.IsDraftOpen() {
		return nil, fmt.Errorf("%w: draft is closed", apperrors.ErrForbidden)
	}
	if pool.DraftDeadline != nil && time.Now().After(*pool.DraftDeadline) {
		return nil, fmt.Errorf("%w: draft deadline has passed", apperrors.ErrForbidden)
	}

	if strings.TrimSpace(entry.ParticipantName) == "" {
		return nil, fmt.Errorf("%w: participant name is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(entry.TeamName) == "" {
		return nil, fmt.Errorf("%w: team name is required", apperrors.ErrValidation)
	}

	if len(entry.Picks) != pool.PicksPerTeam {
		return nil, fmt.Errorf("%w: expected %d picks, got %d",
			apperrors.ErrValidation, pool.PicksPerTeam, len(entry.Picks))
	}

	// Пики должны быть существующими участниками пула, без повторов
	hgs, err := s.houseguestRepo.GetByPoolID(entry.PoolID)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(hgs))
	for _, hg := range hgs {
		known[hg.Name] = true
	}
	seen := make(map[string]bool, len(entry.Picks))
	for _, pick := range entry.Picks {
		if !known[pick] {
			return nil, fmt.Errorf("%w: unknown houseguest %q", apperrors.ErrValidation, pick)
		}
		if seen[pick] {
			return nil, fmt.Errorf("%w: duplicate pick %q", apperrors.ErrValidation, pick)
		}
		seen[pick] = true
	}

	if err := s.validateBonusAnswers(entry); err != nil {
		return nil, err
	}

	// Оплата подтверждается администратором отдельно
	entry.PaymentConfirmed = false
	entry.TotalPoints = 0
	entry.Place = 0
	entry.IsWinner = false

	if err := s.entryRepo.Create(entry); err != nil {
		return nil, err
	}

	s.standings.Invalidate(entry.PoolID)
	log.Printf("[EntryService] Команда %q (ID=%d) зарегистрирована в пуле %d",
		entry.TeamName, entry.ID, entry.PoolID)
	return entry, nil
}

// validateBonusAnswers проверяет форму каждого бонусного ответа против типа
// вопроса. Отсутствующий ответ допустим (даст 0 очков), мусорный — нет.
func (s *EntryService) validateBonusAnswers(entry *entity.TeamEntry) error {
	if len(entry.BonusAnswers) == 0 {
		return nil
	}

	questions, err := s.questionRepo.GetByPoolID(entry.PoolID)
	if err != nil {
		return err
	}
	byID := make(map[uint]*entity.BonusQuestion, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	for questionID, answer := range entry.BonusAnswers {
		q, ok := byID[questionID]
		if !ok {
			return fmt.Errorf("%w: answer references unknown question %d", apperrors.ErrValidation, questionID)
		}
		if err := validateAnswerShape(answer, q.QuestionType); err != nil {
			return fmt.Errorf("%w: question %d: %v", apperrors.ErrValidation, questionID, err)
		}
	}
	return nil
}

// validateAnswerShape проверяет, что значение подходит типу вопроса
func validateAnswerShape(answer string, questionType entity.QuestionType) error {
	switch questionType {
	case entity.QuestionTypePlayerSelect:
		if strings.TrimSpace(answer) == "" {
			return fmt.Errorf("houseguest name cannot be empty")
		}
	case entity.QuestionTypeDualPlayerSelect:
		var pair struct {
			Player1 string `json:"player1"`
			Player2 string `json:"player2"`
		}
		if err := json.Unmarshal([]byte(answer), &pair); err != nil {
			return fmt.Errorf("expected a {player1, player2} object")
		}
		if pair.Player1 == "" || pair.Player2 == "" {
			return fmt.Errorf("both players of the pair are required")
		}
	case entity.QuestionTypeYesNo:
		if answer != "yes" && answer != "no" {
			return fmt.Errorf("expected \"yes\" or \"no\"")
		}
	case entity.QuestionTypeNumber:
		if _, err := strconv.ParseFloat(strings.TrimSpace(answer), 64); err != nil {
			return fmt.Errorf("expected a number")
		}
	default:
		return fmt.Errorf("unknown question type %q", questionType)
	}
	return nil
}

// GetEntryByID возвращает команду по ID
func (s *EntryService) GetEntryByID(entryID uint) (*entity.TeamEntry, error) {
	return s.entryRepo.GetByID(entryID)
}

// ListEntries возвращает команды пула в порядке регистрации
func (s *EntryService) ListEntries(poolID uint) ([]entity.TeamEntry, error) {
	if _, err := s.poolRepo.GetByID(poolID); err != nil {
		return nil, err
	}
	return s.entryRepo.GetByPoolID(poolID)
}

// ConfirmPayment подтверждает (или снимает подтверждение) оплату взноса.
// Влияет на размер призового фонда, поэтому сбрасывает кеш таблицы.
func (s *EntryService) ConfirmPayment(entryID uint, confirmed bool) error {
	entry, err := s.entryRepo.GetByID(entryID)
	if err != nil {
		return err
	}

	if err := s.entryRepo.SetPaymentConfirmed(entryID, confirmed); err != nil {
		return err
	}

	s.standings.Invalidate(entry.PoolID)
	log.Printf("[EntryService] Оплата команды ID=%d: confirmed=%t", entryID, confirmed)
	return nil
}

// DeleteEntry удаляет команду (только пока сезон не завершен)
func (s *EntryService) DeleteEntry(entryID uint) error {
	entry, err := s.entryRepo.GetByID(entryID)
	if err != nil {
		return err
	}

	pool, err := s.poolRepo.GetByID(entry.PoolID)
	if err != nil {
		return err
	}
	if pool.IsCompleted() {
		return fmt.Errorf("%w: cannot remove entries from a completed season", apperrors.ErrConflict)
	}

	if err := s.entryRepo.Delete(entryID); err != nil {
		return err
	}
	s.standings.Invalidate(entry.PoolID)
	return nil
}
