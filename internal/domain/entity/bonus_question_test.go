package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestQuestionType_Valid(t *testing.T) {
	// Arrange
	testCases := []struct {
		name     string
		qt       QuestionType
		expected bool
	}{
		{"player_select валиден", QuestionTypePlayerSelect, true},
		{"dual_player_select валиден", QuestionTypeDualPlayerSelect, true},
		{"yes_no валиден", QuestionTypeYesNo, true},
		{"number валиден", QuestionTypeNumber, true},
		{"неизвестный тип невалиден", QuestionType("multi_select"), false},
		{"пустой тип невалиден", QuestionType(""), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.qt.Valid())
		})
	}
}

func TestBonusQuestion_IsPending(t *testing.T) {
	// Arrange & Act & Assert
	notRevealed := &BonusQuestion{AnswerRevealed: false, CorrectAnswer: strPtr("Alice")}
	assert.True(t, notRevealed.IsPending(), "Нераскрытый вопрос должен быть pending")

	noAnswer := &BonusQuestion{AnswerRevealed: true, CorrectAnswer: nil}
	assert.True(t, noAnswer.IsPending(), "Вопрос без правильного ответа должен быть pending")

	emptyAnswer := &BonusQuestion{AnswerRevealed: true, CorrectAnswer: strPtr("")}
	assert.True(t, emptyAnswer.IsPending(), "Вопрос с пустым правильным ответом должен быть pending")

	revealed := &BonusQuestion{AnswerRevealed: true, CorrectAnswer: strPtr("Alice")}
	assert.False(t, revealed.IsPending(), "Раскрытый вопрос с ответом не должен быть pending")
}

func TestBonusQuestion_CorrectAnswerValue(t *testing.T) {
	q := &BonusQuestion{CorrectAnswer: nil}
	assert.Equal(t, "", q.CorrectAnswerValue(), "nil должен давать пустую строку")

	q.CorrectAnswer = strPtr("yes")
	assert.Equal(t, "yes", q.CorrectAnswerValue())
}

func TestBonusQuestion_TableName(t *testing.T) {
	q := BonusQuestion{}
	assert.Equal(t, "bonus_questions", q.TableName(), "TableName должен возвращать 'bonus_questions'")
}

// Тесты для AnswerMap (JSONB сериализация)

func TestAnswerMap_Scan_ValidJSON(t *testing.T) {
	// Arrange
	jsonBytes := []byte(`{"1":"Alice","2":"{\"player1\":\"Bob\",\"player2\":\"Carol\"}","3":"yes"}`)
	var m AnswerMap

	// Act
	err := m.Scan(jsonBytes)

	// Assert
	require.NoError(t, err, "Scan не должен возвращать ошибку для валидного JSON")
	assert.Len(t, m, 3, "Должно быть 3 ответа")
	assert.Equal(t, "Alice", m[1])
	assert.Equal(t, "yes", m[3])
}

func TestAnswerMap_Scan_NullValue(t *testing.T) {
	// Arrange
	var m AnswerMap

	// Act
	err := m.Scan(nil)

	// Assert
	require.NoError(t, err, "Scan не должен возвращать ошибку для nil")
	assert.Len(t, m, 0, "Для nil должна вернуться пустая карта")
}

func TestAnswerMap_Scan_InvalidType(t *testing.T) {
	// Arrange
	var m AnswerMap

	// Act: передаём неподдерживаемый тип
	err := m.Scan(12345)

	// Assert
	assert.Error(t, err, "Scan должен возвращать ошибку для неподдерживаемого типа")
}

func TestAnswerMap_Value_Empty(t *testing.T) {
	// Arrange
	var m AnswerMap

	// Act
	val, err := m.Value()

	// Assert
	require.NoError(t, err, "Value не должен возвращать ошибку для nil")

	bytes, ok := val.([]byte)
	require.True(t, ok, "Value должен возвращать []byte")
	assert.Equal(t, "{}", string(bytes), "nil должен сериализоваться в {}")
}

func TestAnswerMap_Value_RoundTrip(t *testing.T) {
	// Arrange
	m := AnswerMap{7: "Alice", 8: "14"}

	// Act
	val, err := m.Value()
	require.NoError(t, err)

	var back AnswerMap
	err = back.Scan(val)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Alice", back[7])
	assert.Equal(t, "14", back[8])
}
