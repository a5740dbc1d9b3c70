package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/finance-planner/backend/internal/models"
	"example.com/finance-planner/backend/internal/store"
)

const (
	exportTypeItems = "items"
	exportTypeGoals = "goals"
)

type ExportHandler struct {
	Store *store.Store
}

// NewExportHandler создает обработчик выгрузок.
func NewExportHandler(s *store.Store) *ExportHandler {
	return &ExportHandler{Store: s}
}

// JSON выгружает полное состояние планировщика в JSON-файл.
func (h *ExportHandler) JSON(c echo.Context) error {
	state := h.Store.State()

	filename := "planner-" + time.Now().Format("2006-01-02") + ".json"
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.JSON(http.StatusOK, state)
}

// CSV выгружает траты или цели в CSV-файл.
func (h *ExportHandler) CSV(c echo.Context) error {
	exportType := strings.ToLower(strings.TrimSpace(c.QueryParam("type")))
	if exportType == "" {
		exportType = exportTypeItems
	}

	state := h.Store.State()

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	switch exportType {
	case exportTypeItems:
		if err := writeItemsCSV(writer, state.Items); err != nil {
			return serverError(c)
		}
	case exportTypeGoals:
		if err := writeGoalsCSV(writer, state.Goals); err != nil {
			return serverError(c)
		}
	default:
		return badRequest(c, "invalid export type")
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	filename := "planner-" + exportType + "-" + time.Now().Format("2006-01-02") + ".csv"
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\""+filename+"\"")
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func writeItemsCSV(writer *csv.Writer, items []models.SpendingItem) error {
	header := []string{"id", "name", "category", "monthly_amount", "need_or_want", "is_temporary", "end_date"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, item := range items {
		record := []string{
			item.ID.String(),
			item.Name,
			item.Category,
			formatAmount(item.MonthlyAmount),
			string(item.NeedOrWant),
			strconv.FormatBool(item.IsTemporary),
			item.EndDate,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func writeGoalsCSV(writer *csv.Writer, goals []models.Goal) error {
	header := []string{"id", "name", "category", "target_amount", "current_amount", "monthly_contribution", "end_date"}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, goal := range goals {
		record := []string{
			goal.ID.String(),
			goal.Name,
			goal.Category,
			formatAmount(goal.TargetAmount),
			formatAmount(goal.CurrentAmount),
			formatAmount(goal.MonthlyContribution),
			goal.EndDate,
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	return nil
}

func formatAmount(a models.Amount) string {
	return strconv.FormatFloat(a.Float64(), 'f', -1, 64)
}
