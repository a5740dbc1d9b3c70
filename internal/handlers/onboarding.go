package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/finance-planner/backend/internal/store"
)

type OnboardingHandler struct {
	Store *store.Store
}

// NewOnboardingHandler создает обработчик мастера первичной настройки.
func NewOnboardingHandler(s *store.Store) *OnboardingHandler {
	return &OnboardingHandler{Store: s}
}

type OnboardingResponse struct {
	Done bool `json:"done"`
}

// Status возвращает, пройден ли мастер.
func (h *OnboardingHandler) Status(c echo.Context) error {
	state := h.Store.State()
	return c.JSON(http.StatusOK, OnboardingResponse{Done: state.OnboardingDone})
}

// Complete помечает мастер пройденным.
func (h *OnboardingHandler) Complete(c echo.Context) error {
	if err := h.Store.CompleteOnboarding(c.Request().Context()); err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, OnboardingResponse{Done: true})
}
