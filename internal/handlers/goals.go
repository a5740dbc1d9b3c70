package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"example.com/finance-planner/backend/internal/models"
	"example.com/finance-planner/backend/internal/planner"
	"example.com/finance-planner/backend/internal/store"
)

type GoalHandler struct {
	Store         *store.Store
	HorizonMonths int
}

// NewGoalHandler создает обработчик целей накопления.
func NewGoalHandler(s *store.Store, horizonMonths int) *GoalHandler {
	return &GoalHandler{Store: s, HorizonMonths: horizonMonths}
}

type GoalRequest struct {
	Name                string        `json:"name" validate:"required,max=200"`
	Category            string        `json:"category" validate:"max=100"`
	TargetAmount        models.Amount `json:"target_amount"`
	CurrentAmount       models.Amount `json:"current_amount"`
	MonthlyContribution models.Amount `json:"monthly_contribution"`
	EndDate             string        `json:"end_date"`
}

type GoalResponse struct {
	models.Goal
	Progress planner.GoalProgress `json:"progress"`
}

type GoalListResponse struct {
	Goals []GoalResponse `json:"goals"`
}

// List возвращает цели вместе с прогрессом на текущий момент.
func (h *GoalHandler) List(c echo.Context) error {
	state := h.Store.State()
	now := time.Now()

	goals := make([]GoalResponse, 0, len(state.Goals))
	for _, goal := range state.Goals {
		goals = append(goals, h.toResponse(goal, now))
	}

	return c.JSON(http.StatusOK, GoalListResponse{Goals: goals})
}

// Create добавляет цель.
func (h *GoalHandler) Create(c echo.Context) error {
	goal, ok, err := h.bindGoal(c)
	if !ok {
		return err
	}

	created, err := h.Store.AddGoal(c.Request().Context(), goal)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusCreated, h.toResponse(created, time.Now()))
}

// Update изменяет цель.
func (h *GoalHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("goalId"))
	if err != nil {
		return badRequest(c, "invalid goal id")
	}

	goal, ok, bindErr := h.bindGoal(c)
	if !ok {
		return bindErr
	}

	updated, err := h.Store.UpdateGoal(c.Request().Context(), id, goal)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "goal not found")
		}
		return serverError(c)
	}

	return c.JSON(http.StatusOK, h.toResponse(updated, time.Now()))
}

// Delete удаляет цель.
func (h *GoalHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("goalId"))
	if err != nil {
		return badRequest(c, "invalid goal id")
	}

	if err := h.Store.DeleteGoal(c.Request().Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return notFound(c, "goal not found")
		}
		return serverError(c)
	}

	return c.NoContent(http.StatusNoContent)
}

// Progress возвращает прогресс одной цели.
func (h *GoalHandler) Progress(c echo.Context) error {
	id, err := uuid.Parse(c.Param("goalId"))
	if err != nil {
		return badRequest(c, "invalid goal id")
	}

	state := h.Store.State()
	for _, goal := range state.Goals {
		if goal.ID == id {
			return c.JSON(http.StatusOK, planner.EvaluateGoal(goal, time.Now(), h.HorizonMonths))
		}
	}

	return notFound(c, "goal not found")
}

func (h *GoalHandler) bindGoal(c echo.Context) (models.Goal, bool, error) {
	var req GoalRequest
	if err := c.Bind(&req); err != nil {
		return models.Goal{}, false, badRequest(c, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return models.Goal{}, false, badRequest(c, "validation failed")
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		return models.Goal{}, false, badRequest(c, "name is required")
	}

	return models.Goal{
		Name:                name,
		Category:            strings.TrimSpace(req.Category),
		TargetAmount:        req.TargetAmount,
		CurrentAmount:       req.CurrentAmount,
		MonthlyContribution: req.MonthlyContribution,
		EndDate:             strings.TrimSpace(req.EndDate),
	}, true, nil
}

func (h *GoalHandler) toResponse(goal models.Goal, now time.Time) GoalResponse {
	return GoalResponse{
		Goal:     goal,
		Progress: planner.EvaluateGoal(goal, now, h.HorizonMonths),
	}
}
