package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/finance-planner/backend/internal/models"
	"example.com/finance-planner/backend/internal/planner"
	"example.com/finance-planner/backend/internal/store"
)

type ItemHandler struct {
	Store *store.Store
}

// NewItemHandler создает обработчик трат.
func NewItemHandler(s *store.Store) *ItemHandler {
	return &ItemHandler{Store: s}
}

type ItemRequest struct {
	Name          string        `json:"name" validate:"required,max=200"`
	Category      string        `json:"category" validate:"max=100"`
	MonthlyAmount models.Amount `json:"monthly_amount"`
	NeedOrWant    string        `json:"need_or_want" validate:"omitempty,oneof=need want"`
	IsTemporary   bool          `json:"is_temporary"`
	EndDate       string        `json:"end_date"`
}

type ItemListResponse struct {
	Items               []models.SpendingItem `json:"items"`
	TotalMonthlyOngoing float64               `json:"total_monthly_ongoing"`
	TotalMonthlyAll     float64               `json:"total_monthly_all"`
}

// List возвращает траты вместе с месячными итогами.
func (h *ItemHandler) List(c echo.Context) error {
	state := h.Store.State()

	return c.JSON(http.StatusOK, ItemListResponse{
		Items:               state.Items,
		TotalMonthlyOngoing: planner.TotalMonthlySpendOngoing(state.Items),
		TotalMonthlyAll:     planner.TotalMonthlySpendAll(state.Items),
	})
}

// Create добавляет трату.
func (h *ItemHandler) Create(c echo.Context) error {
	item, ok, err := h.bindItem(c)
	if !ok {
		return err
	}

	created, err := h.Store.AddItem(c.Request().Context(), item)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, created)
}

// Update изменяет трату.
func (h *ItemHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return badRequest(c, "invalid item id")
	}

	item, ok, bindErr := h.bindItem(c)
	if !ok {
		return bindErr
	}

	updated, err := h.Store.UpdateItem(c.Request().Context(), id, item)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "item not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, updated)
}

// Delete удаляет трату.
func (h *ItemHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		return badRequest(c, "invalid item id")
	}

	if err := h.Store.DeleteItem(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "item not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// bindItem разбирает и проверяет тело запроса. Дата окончания не
// валидируется жестко: битая строка просто означает отсутствие дедлайна.
func (h *ItemHandler) bindItem(c echo.Context) (models.SpendingItem, bool, error) {
	var req ItemRequest
	if err := c.Bind(&req); err != nil {
		return models.SpendingItem{}, false, badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return models.SpendingItem{}, false, badRequest(c, "validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.SpendingItem{}, false, badRequest(c, "name is required")
	}

	return models.SpendingItem{
		Name:          name,
		Category:      strings.TrimSpace(req.Category),
		MonthlyAmount: req.MonthlyAmount,
		NeedOrWant:    models.NeedOrWant(req.NeedOrWant),
		IsTemporary:   req.IsTemporary,
		EndDate:       strings.TrimSpace(req.EndDate),
	}, true, nil
}
