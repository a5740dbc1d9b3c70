package handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"example.com/finance-planner/backend/internal/planner"
	"example.com/finance-planner/backend/internal/store"
)

const (
	retirementViewOngoing = "ongoing"
	retirementViewAll     = "all"
)

type StatsHandler struct {
	Store          *store.Store
	WithdrawalRate float64
}

// NewStatsHandler создает обработчик сводных метрик.
func NewStatsHandler(s *store.Store, withdrawalRate float64) *StatsHandler {
	return &StatsHandler{Store: s, WithdrawalRate: withdrawalRate}
}

type OverviewResponse struct {
	TotalMonthlyIncome  float64 `json:"total_monthly_income"`
	TotalMonthlyOngoing float64 `json:"total_monthly_ongoing"`
	TotalMonthlyAll     float64 `json:"total_monthly_all"`
	LeftoverMonthly     float64 `json:"leftover_monthly"`
	SavingsRate         float64 `json:"savings_rate"`
	NetWorth            float64 `json:"net_worth"`
	GoalsCount          int     `json:"goals_count"`
}

type BreakdownResponse struct {
	Rows []planner.BucketTotal `json:"rows"`
}

type RetirementResponse struct {
	View           string  `json:"view"`
	MonthlySpend   float64 `json:"monthly_spend"`
	WithdrawalRate float64 `json:"withdrawal_rate"`
	TargetAmount   float64 `json:"target_amount"`
}

// Overview возвращает сводку дашборда: доход, траты, остаток, норму
// сбережений и чистый капитал.
func (h *StatsHandler) Overview(c echo.Context) error {
	state := h.Store.State()

	income := planner.TotalMonthlyIncome(state.Profile)
	spendAll := planner.TotalMonthlySpendAll(state.Items)
	leftover := planner.LeftoverMonthly(income, spendAll)

	return c.JSON(http.StatusOK, OverviewResponse{
		TotalMonthlyIncome:  income,
		TotalMonthlyOngoing: planner.TotalMonthlySpendOngoing(state.Items),
		TotalMonthlyAll:     spendAll,
		LeftoverMonthly:     leftover,
		SavingsRate:         planner.SavingsRate(leftover, income),
		NetWorth:            planner.NetWorth(state.Assets, state.Liabilities),
		GoalsCount:          len(state.Goals),
	})
}

// SpendingByCategory возвращает траты, сгруппированные по категориям.
func (h *StatsHandler) SpendingByCategory(c echo.Context) error {
	state := h.Store.State()
	return c.JSON(http.StatusOK, BreakdownResponse{Rows: planner.SpendByCategory(state.Items)})
}

// NeedWant возвращает разбивку трат на необходимое и желаемое.
func (h *StatsHandler) NeedWant(c echo.Context) error {
	state := h.Store.State()
	return c.JSON(http.StatusOK, BreakdownResponse{Rows: planner.SpendByNeedOrWant(state.Items)})
}

// Retirement возвращает целевой пенсионный капитал. Переключатель view
// выбирает базу: только постоянные траты или все вместе с временными.
func (h *StatsHandler) Retirement(c echo.Context) error {
	view := strings.ToLower(strings.TrimSpace(c.QueryParam("view")))
	if view == "" {
		view = retirementViewOngoing
	}

	state := h.Store.State()

	var monthlySpend float64
	switch view {
	case retirementViewOngoing:
		monthlySpend = planner.TotalMonthlySpendOngoing(state.Items)
	case retirementViewAll:
		monthlySpend = planner.TotalMonthlySpendAll(state.Items)
	default:
		return badRequest(c, "invalid view")
	}

	return c.JSON(http.StatusOK, RetirementResponse{
		View:           view,
		MonthlySpend:   monthlySpend,
		WithdrawalRate: h.WithdrawalRate,
		TargetAmount:   planner.RetirementTarget(monthlySpend, h.WithdrawalRate),
	})
}
