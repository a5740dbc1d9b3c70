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

type ProfileHandler struct {
	Store *store.Store
}

// NewProfileHandler создает обработчик профиля и источников дохода.
func NewProfileHandler(s *store.Store) *ProfileHandler {
	return &ProfileHandler{Store: s}
}

type UpdateProfileRequest struct {
	Age          int    `json:"age" validate:"min=0,max=150"`
	Location     string `json:"location" validate:"max=200"`
	Relationship string `json:"relationship" validate:"max=100"`
	KidsCount    int    `json:"kids_count" validate:"min=0"`
	PetsCount    int    `json:"pets_count" validate:"min=0"`
}

type IncomeSourceRequest struct {
	Name          string        `json:"name" validate:"required,max=200"`
	MonthlyAmount models.Amount `json:"monthly_amount"`
}

type ProfileResponse struct {
	Profile            models.Profile `json:"profile"`
	TotalMonthlyIncome float64        `json:"total_monthly_income"`
}

// Get возвращает профиль вместе с суммарным месячным доходом.
func (h *ProfileHandler) Get(c echo.Context) error {
	state := h.Store.State()

	return c.JSON(http.StatusOK, ProfileResponse{
		Profile:            state.Profile,
		TotalMonthlyIncome: planner.TotalMonthlyIncome(state.Profile),
	})
}

// Update обновляет анкетные поля профиля.
func (h *ProfileHandler) Update(c echo.Context) error {
	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	profile, err := h.Store.UpdateProfile(c.Request().Context(), models.Profile{
		Age:          req.Age,
		Location:     strings.TrimSpace(req.Location),
		Relationship: strings.TrimSpace(req.Relationship),
		KidsCount:    req.KidsCount,
		PetsCount:    req.PetsCount,
	})
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, ProfileResponse{
		Profile:            profile,
		TotalMonthlyIncome: planner.TotalMonthlyIncome(profile),
	})
}

// CreateIncomeSource добавляет источник дохода.
func (h *ProfileHandler) CreateIncomeSource(c echo.Context) error {
	var req IncomeSourceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest(c, "name is required")
	}

	source, err := h.Store.AddIncomeSource(c.Request().Context(), name, req.MonthlyAmount)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, source)
}

// UpdateIncomeSource изменяет источник дохода.
func (h *ProfileHandler) UpdateIncomeSource(c echo.Context) error {
	id, err := uuid.Parse(c.Param("sourceId"))
	if err != nil {
		return badRequest(c, "invalid source id")
	}

	var req IncomeSourceRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return badRequest(c, "validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return badRequest(c, "name is required")
	}

	source, err := h.Store.UpdateIncomeSource(c.Request().Context(), id, name, req.MonthlyAmount)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "income source not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, source)
}

// DeleteIncomeSource удаляет источник дохода.
func (h *ProfileHandler) DeleteIncomeSource(c echo.Context) error {
	id, err := uuid.Parse(c.Param("sourceId"))
	if err != nil {
		return badRequest(c, "invalid source id")
	}

	if err := h.Store.DeleteIncomeSource(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "income source not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}
