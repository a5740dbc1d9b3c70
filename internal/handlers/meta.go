package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"example.com/finance-planner/backend/internal/config"
)

type MetaHandler struct {
	Planner config.PlannerConfig
}

// NewMetaHandler создает обработчик справочников для форм UI.
func NewMetaHandler(planner config.PlannerConfig) *MetaHandler {
	return &MetaHandler{Planner: planner}
}

type MetaResponse struct {
	SpendingCategories []string `json:"spending_categories"`
	GoalCategories     []string `json:"goal_categories"`
	AssetTypes         []string `json:"asset_types"`
	NeedOrWant         []string `json:"need_or_want"`
	WithdrawalRate     float64  `json:"withdrawal_rate"`
	HistoryLimit       int      `json:"history_limit"`
}

// Get возвращает настроенные перечисления категорий и типов.
func (h *MetaHandler) Get(c echo.Context) error {
	return c.JSON(http.StatusOK, MetaResponse{
		SpendingCategories: h.Planner.SpendingCategories,
		GoalCategories:     h.Planner.GoalCategories,
		AssetTypes:         h.Planner.AssetTypes,
		NeedOrWant:         []string{"need", "want"},
		WithdrawalRate:     h.Planner.WithdrawalRate,
		HistoryLimit:       h.Planner.HistoryLimit,
	})
}
