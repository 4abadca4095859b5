package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	// Обработка пустого массива байтов
	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if o == nil || len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// AnswerMap - JSONB-карта "ID бонусного вопроса -> сырой ответ участника".
// Значение хранится в той же типозависимой кодировке, что и CorrectAnswer
// у BonusQuestion (для dual_player_select — JSON-объект пары).
type AnswerMap map[uint]string

// Scan реализует интерфейс sql.Scanner для AnswerMap
func (m *AnswerMap) Scan(value interface{}) error {
	if value == nil {
		*m = AnswerMap{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*m = AnswerMap{}
		return nil
	}

	return json.Unmarshal(bytes, m)
}

// Value реализует интерфейс driver.Valuer для AnswerMap
func (m AnswerMap) Value() (driver.Value, error) {
	if m == nil || len(m) == 0 {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// TeamEntry представляет заявку участника пула: имя, название команды,
// задрафченные участники дома и ответы на бонусные вопросы.
//
// TotalPoints — денормализованный кеш для сортировки. Источник истины —
// пересчет из weekly_events и bonus_questions на чтении (пакет scoring);
// расхождение кеша с пересчетом показывается администратору, а не
// скрывается.
type TeamEntry struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	PoolID           uint            `gorm:"not null;index;uniqueIndex:idx_pool_team" json:"pool_id"`
	ParticipantName  string          `gorm:"size:100;not null" json:"participant_name"`
	TeamName         string          `gorm:"size:100;not null;uniqueIndex:idx_pool_team" json:"team_name"`
	Picks            StringArray     `gorm:"type:jsonb;not null" json:"picks"`
	BonusAnswers     AnswerMap       `gorm:"type:jsonb;not null" json:"bonus_answers"`
	PaymentConfirmed bool            `gorm:"not null;default:false" json:"payment_confirmed"`
	TotalPoints      int             `gorm:"not null;default:0;index" json:"total_points"`
	Place            int             `gorm:"not null;default:0" json:"place"`
	IsWinner         bool            `gorm:"not null;default:false" json:"is_winner"`
	PrizeAmount      decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"prize_amount"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (TeamEntry) TableName() string {
	return "team_entries"
}

// AnswerFor возвращает сырой ответ команды на вопрос (пустая строка = нет ответа)
func (e *TeamEntry) AnswerFor(questionID uint) string {
	if e.BonusAnswers == nil {
		return ""
	}
	return e.BonusAnswers[questionID]
}
