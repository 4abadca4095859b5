package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/handler/dto"
	apperrors "github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/pkg/errors"
	"github.com/jayner52/big-brother-scoreboard-hub-sub002/internal/service"
)

// StandingsHandler обрабатывает запросы таблицы результатов
type StandingsHandler struct {
	standingsService *service.StandingsService
}

// NewStandingsHandler создает новый обработчик таблицы результатов
func NewStandingsHandler(standingsService *service.StandingsService) *StandingsHandler {
	return &StandingsHandler{standingsService: standingsService}
}

// GetStandings возвращает таблицу результатов пула.
// Очки в строках всегда пересчитаны из исходных событий; флаг drift
// показывает расхождение с сохраненной колонкой total_points.
func (h *StandingsHandler) GetStandings(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint) // Получаем из контекста

	rows, err := h.standingsService.GetStandings(poolID)
	if err != nil {
		h.handleStandingsError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewStandingsResponse(poolID, rows))
}

// GetAnswerMatrix возвращает сетку бонусных ответов пула: каждая команда
// против каждого вопроса, с отформатированными ответами и статусами
// GET /api/pools/:id/questions/answers
func (h *StandingsHandler) GetAnswerMatrix(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint)

	matrix, err := h.standingsService.BuildAnswerMatrix(poolID)
	if err != nil {
		h.handleStandingsError(c, err)
		return
	}

	c.JSON(http.StatusOK, matrix)
}

// ExportStandings экспортирует таблицу результатов в CSV или Excel формате
// GET /api/pools/:id/standings/export?format=csv|xlsx
func (h *StandingsHandler) ExportStandings(c *gin.Context) {
	poolID := c.MustGet("poolID").(uint)
	format := c.DefaultQuery("format", "csv")

	rows, err := h.standingsService.GetStandings(poolID)
	if err != nil {
		h.handleStandingsError(c, err)
		return
	}

	filename := fmt.Sprintf("pool_%d_standings_%s", poolID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, rows, filename)
	default:
		h.exportCSV(c, rows, filename)
	}
}

// exportCSV экспортирует таблицу в CSV с правильным экранированием спецсимволов
func (h *StandingsHandler) exportCSV(c *gin.Context, rows []service.StandingsRow, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	// Используем encoding/csv для правильного экранирования запятых/кавычек
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// Заголовки
	writer.Write([]string{"Place", "Team", "Participant", "Weekly Points", "Bonus Points", "Total Points", "Paid", "Winner", "Prize"})

	// Данные
	for _, r := range rows {
		paid := "No"
		if r.PaymentConfirmed {
			paid = "Yes"
		}
		winner := "No"
		if r.IsWinner {
			winner = "Yes"
		}
		prize := ""
		if r.PrizeAmount.IsPositive() {
			prize = r.PrizeAmount.StringFixed(2)
		}

		writer.Write([]string{
			strconv.Itoa(r.Place),
			sanitizeForExcel(r.TeamName),
			sanitizeForExcel(r.ParticipantName),
			strconv.Itoa(r.WeeklyPoints),
			strconv.Itoa(r.BonusPoints),
			strconv.Itoa(r.TotalPoints),
			paid,
			winner,
			prize,
		})
	}
}

// exportXLSX экспортирует таблицу в Excel с использованием StreamWriter
func (h *StandingsHandler) exportXLSX(c *gin.Context, rows []service.StandingsRow, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Standings"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[StandingsHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	// Заголовки
	headers := []interface{}{"Place", "Team", "Participant", "Weekly Points", "Bonus Points", "Total Points", "Paid", "Winner", "Prize"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[StandingsHandler] Ошибка записи заголовков: %v", err)
	}

	// Данные
	for i, r := range rows {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		paid := "No"
		if r.PaymentConfirmed {
			paid = "Yes"
		}
		winner := "No"
		if r.IsWinner {
			winner = "Yes"
		}
		prize := ""
		if r.PrizeAmount.IsPositive() {
			prize = r.PrizeAmount.StringFixed(2)
		}

		row := []interface{}{r.Place, sanitizeForExcel(r.TeamName), sanitizeForExcel(r.ParticipantName), r.WeeklyPoints, r.BonusPoints, r.TotalPoints, paid, winner, prize}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[StandingsHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[StandingsHandler] Ошибка при Flush: %v", err)
	}

	// Записываем в response
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[StandingsHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// handleStandingsError обрабатывает ошибки от сервиса таблицы результатов
func (h *StandingsHandler) handleStandingsError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in StandingsHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
