package entity

import (
	"time"
)

// QuestionType — тип бонусного вопроса. Множество значений закрыто:
// добавление нового типа требует расширения единственного evaluator'а
// в пакете scoring (там стоит исчерпывающий switch).
type QuestionType string

// Допустимые типы бонусных вопросов
const (
	QuestionTypePlayerSelect     QuestionType = "player_select"
	QuestionTypeDualPlayerSelect QuestionType = "dual_player_select"
	QuestionTypeYesNo            QuestionType = "yes_no"
	QuestionTypeNumber           QuestionType = "number"
)

// Valid проверяет, что тип принадлежит закрытому множеству
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionTypePlayerSelect, QuestionTypeDualPlayerSelect, QuestionTypeYesNo, QuestionTypeNumber:
		return true
	}
	return false
}

// BonusQuestion представляет вопрос-прогноз, на который участники отвечают
// при подаче драфта. Правильный ответ проставляется администратором постфактум,
// когда реальный исход сезона известен.
//
// CorrectAnswer хранит типозависимую кодировку:
//   - player_select: имя участника дома;
//   - dual_player_select: JSON-объект {"player1":..,"player2":..} ЛИБО
//     JSON-массив таких объектов (несколько засчитываемых комбинаций);
//   - yes_no: строка "yes" или "no";
//   - number: число в строковом виде.
type BonusQuestion struct {
	ID             uint         `gorm:"primaryKey" json:"id"`
	PoolID         uint         `gorm:"not null;index" json:"pool_id"`
	Text           string       `gorm:"size:500;not null" json:"text"`
	QuestionType   QuestionType `gorm:"size:30;not null" json:"question_type"`
	PointsValue    int          `gorm:"not null;default:5" json:"points_value"`
	CorrectAnswer  *string      `gorm:"size:1000" json:"correct_answer,omitempty"`
	AnswerRevealed bool         `gorm:"not null;default:false" json:"answer_revealed"`
	SortOrder      int          `gorm:"not null;default:0" json:"sort_order"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (BonusQuestion) TableName() string {
	return "bonus_questions"
}

// IsPending проверяет, что вопрос еще не подлежит оценке: ответ не раскрыт
// или правильное значение не задано. Такие вопросы отображаются как "TBD"
// и дают 0 очков независимо от ответа команды.
func (q *BonusQuestion) IsPending() bool {
	return !q.AnswerRevealed || q.CorrectAnswer == nil || *q.CorrectAnswer == ""
}

// CorrectAnswerValue возвращает правильный ответ или пустую строку, если он не задан
func (q *BonusQuestion) CorrectAnswerValue() string {
	if q.CorrectAnswer == nil {
		return ""
	}
	return *q.CorrectAnswer
}
