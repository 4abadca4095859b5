package service

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/entity"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/domain/repository"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/service/scoring"
)

// StandingsRow — одна строка таблицы результатов пула.
// TotalPoints всегда пересчитан из исходных событий; CachedPoints —
// сохраненное в БД значение. Drift сигнализирует об их расхождении:
// оно показывается администратору, а не скрывается.
type StandingsRow struct {
	Place            int             `json:"place"`
	EntryID          uint            `json:"entry_id"`
	TeamName         string          `json:"team_name"`
	ParticipantName  string          `json:"participant_name"`
	WeeklyPoints     int             `json:"weekly_points"`
	BonusPoints      int             `json:"bonus_points"`
	TotalPoints      int             `json:"total_points"`
	CachedPoints     int             `json:"cached_points"`
	Drift            bool            `json:"drift"`
	PaymentConfirmed bool            `json:"payment_confirmed"`
	IsWinner         bool            `json:"is_winner"`
	PrizeAmount      decimal.Decimal `json:"prize_amount"`
	CreatedAt        time.Time       `json:"created_at"`
}

// AnswerCell — ответ одной команды на один бонусный вопрос в матрице ответов
type AnswerCell struct {
	QuestionID uint   `json:"question_id"`
	Answer     string `json:"answer"`
	// Status: "correct", "incorrect" или "pending" (ответ не раскрыт)
	Status string `json:"status"`
}

// AnswerMatrixRow — строка матрицы ответов: команда и ее ответы по вопросам
type AnswerMatrixRow struct {
	EntryID  uint         `json:"entry_id"`
	TeamName string       `json:"team_name"`
	Answers  []AnswerCell `json:"answers"`
}

// AnswerMatrix — вопросы пула с раскрытыми ответами и сетка ответов команд
type AnswerMatrix struct {
	Questions []AnswerMatrixQuestion `json:"questions"`
	Rows      []AnswerMatrixRow      `json:"rows"`
}

// AnswerMatrixQuestion — заголовок колонки матрицы ответов
type AnswerMatrixQuestion struct {
	ID            uint   `json:"id"`
	Text          string `json:"text"`
	PointsValue   int    `json:"points_value"`
	CorrectAnswer string `json:"correct_answer"`
	Revealed      bool   `json:"revealed"`
}

// StandingsService — путь чтения таблицы результатов: пересчет очков из
// исходных данных, ранжирование, кеширование в Redis и фоновое обновление
// денормализованной колонки total_points.
type StandingsService struct {
	entryRepo    repository.EntryRepository
	questionRepo repository.QuestionRepository
	eventRepo    repository.EventRepository
	poolRepo     repository.PoolRepository
	cacheRepo    repository.CacheRepository
	cacheTTL     time.Duration
}

// NewStandingsService создает новый сервис таблицы результатов
func NewStandingsService(
	entryRepo repository.EntryRepository,
	questionRepo repository.QuestionRepository,
	eventRepo repository.EventRepository,
	poolRepo repository.PoolRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *StandingsService {
	if cacheTTL <= 0 {
		cacheTTL = 60 * time.Second
	}
	return &StandingsService{
		entryRepo:    entryRepo,
		questionRepo: questionRepo,
		eventRepo:    eventRepo,
		poolRepo:     poolRepo,
		cacheRepo:    cacheRepo,
		cacheTTL:     cacheTTL,
	}
}

// standingsCacheKey — ключ кеша таблицы в Redis
func standingsCacheKey(poolID uint) string {
	return fmt.Sprintf("standings:pool:%d", poolID)
}

// GetStandings возвращает таблицу результатов пула, из кеша при наличии
func (s *StandingsService) GetStandings(poolID uint) ([]StandingsRow, error) {
	key := standingsCacheKey(poolID)

	var cached []StandingsRow
	if err := s.cacheRepo.GetJSON(key, &cached); err == nil {
		return cached, nil
	}

	pool, err := s.poolRepo.GetByID(poolID)
	if err != nil {
		return nil, err
	}

	rows, err := s.ComputeStandings(pool)
	if err != nil {
		return nil, err
	}

	if err := s.cacheRepo.SetJSON(key, rows, s.cacheTTL); err != nil {
		// Кеш не критичен: таблица уже посчитана
		log.Printf("[StandingsService] Не удалось закешировать таблицу пула %d: %v", poolID, err)
	}
	return rows, nil
}

// Invalidate сбрасывает кеш таблицы пула. Вызывается всеми сервисами,
// меняющими события, заявки или раскрытые ответы.
func (s *StandingsService) Invalidate(poolID uint) {
	if err := s.cacheRepo.Delete(standingsCacheKey(poolID)); err != nil {
		log.Printf("[StandingsService] Не удалось сбросить кеш таблицы пула %d: %v", poolID, err)
	}
}

// ComputeStandings строит таблицу из исходных данных, минуя кеш:
// индекс очков из событий, раскрытые вопросы, пересчет каждой команды через
// пакет scoring, ранжирование по очкам (ничьи — по времени регистрации,
// ранняя заявка выше). Места последовательные: 1, 2, 3...
func (s *StandingsService) ComputeStandings(pool *entity.Pool) ([]StandingsRow, error) {
	pointsIndex, err := s.eventRepo.SumPointsByHouseguest(pool.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to build points index: %w", err)
	}

	questions, err := s.questionRepo.GetRevealedByPoolID(pool.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load revealed questions: %w", err)
	}

	entries, err := s.entryRepo.GetByPoolID(pool.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}

	rows := make([]StandingsRow, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		weekly := scoring.WeeklyPoints(entry, pointsIndex, pool.PicksPerTeam)
		bonus := scoring.BonusPoints(entry, questions)
		total := weekly + bonus

		rows = append(rows, StandingsRow{
			EntryID:          entry.ID,
			TeamName:         entry.TeamName,
			ParticipantName:  entry.ParticipantName,
			WeeklyPoints:     weekly,
			BonusPoints:      bonus,
			TotalPoints:      total,
			CachedPoints:     entry.TotalPoints,
			Drift:            total != entry.TotalPoints,
			PaymentConfirmed: entry.PaymentConfirmed,
			IsWinner:         entry.IsWinner,
			PrizeAmount:      entry.PrizeAmount,
			CreatedAt:        entry.CreatedAt,
		})
	}

	// entries уже отсортированы по created_at ASC, стабильная сортировка
	// по очкам сохраняет этот порядок для ничьих
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].TotalPoints > rows[j].TotalPoints
	})
	for i := range rows {
		rows[i].Place = i + 1
	}
	return rows, nil
}

// BuildAnswerMatrix строит сетку бонусных ответов пула: для каждой команды
// отформатированный ответ и его статус (correct / incorrect / pending).
// Форматирование идет через пакет scoring, так что UI не делает null-проверок.
func (s *StandingsService) BuildAnswerMatrix(poolID uint) (*AnswerMatrix, error) {
	if _, err := s.poolRepo.GetByID(poolID); err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.GetByPoolID(poolID)
	if err != nil {
		return nil, err
	}
	entries, err := s.entryRepo.GetByPoolID(poolID)
	if err != nil {
		return nil, err
	}

	matrix := &AnswerMatrix{
		Questions: make([]AnswerMatrixQuestion, 0, len(questions)),
		Rows:      make([]AnswerMatrixRow, 0, len(entries)),
	}

	for i := range questions {
		q := &questions[i]
		matrix.Questions = append(matrix.Questions, AnswerMatrixQuestion{
			ID:            q.ID,
			Text:          q.Text,
			PointsValue:   q.PointsValue,
			CorrectAnswer: scoring.FormatCorrectAnswer(q.CorrectAnswerValue(), q.QuestionType),
			Revealed:      q.AnswerRevealed,
		})
	}

	for i := range entries {
		entry := &entries[i]
		row := AnswerMatrixRow{
			EntryID:  entry.ID,
			TeamName: entry.TeamName,
			Answers:  make([]AnswerCell, 0, len(questions)),
		}
		for j := range questions {
			q := &questions[j]
			submitted := entry.AnswerFor(q.ID)

			status := "pending"
			if !q.IsPending() {
				if submitted != "" && scoring.Evaluate(submitted, q.CorrectAnswerValue(), q.QuestionType) {
					status = "correct"
				} else {
					status = "incorrect"
				}
			}

			row.Answers = append(row.Answers, AnswerCell{
				QuestionID: q.ID,
				Answer:     scoring.FormatAnswer(submitted, q.QuestionType),
				Status:     status,
			})
		}
		matrix.Rows = append(matrix.Rows, row)
	}
	return matrix, nil
}

// RefreshPersistedTotals пересчитывает и сохраняет total_points всех команд
// незавершенных пулов. Запускается тикером из main: денормализованная колонка
// остается близкой к истине без пересчета на каждой записи.
func (s *StandingsService) RefreshPersistedTotals() {
	for _, status := range []string{entity.PoolStatusDraftOpen, entity.PoolStatusActive} {
		pools, err := s.poolRepo.GetByStatus(status)
		if err != nil {
			log.Printf("[StandingsService] Ошибка получения пулов со статусом %q: %v", status, err)
			continue
		}

		for i := range pools {
			pool := &pools[i]
			rows, err := s.ComputeStandings(pool)
			if err != nil {
				log.Printf("[StandingsService] Ошибка пересчета пула %d: %v", pool.ID, err)
				continue
			}

			updated := 0
			for _, row := range rows {
				if !row.Drift {
					continue
				}
				if err := s.entryRepo.UpdateTotalPoints(row.EntryID, row.TotalPoints); err != nil {
					log.Printf("[StandingsService] Ошибка обновления total_points команды %d: %v", row.EntryID, err)
					continue
				}
				updated++
			}
			if updated > 0 {
				log.Printf("[StandingsService] Пул %d: синхронизировано total_points у %d команд", pool.ID, updated)
				s.Invalidate(pool.ID)
			}
		}
	}
}
