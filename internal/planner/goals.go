package planner

import (
	"math"
	"time"

	"example.com/finance-planner/backend/internal/models"
)

// DefaultHorizonMonths — горизонт линейной проекции цели без дедлайна.
const DefaultHorizonMonths = 12

type GoalStatus string

const (
	GoalStatusOnTrack GoalStatus = "on_track"
	GoalStatusBehind  GoalStatus = "behind"
)

// GoalProgress — производные метрики одной цели на момент "сейчас".
type GoalProgress struct {
	MonthsRemaining *int       `json:"months_remaining,omitempty"`
	ProgressRatio   float64    `json:"progress_ratio"`
	ProjectedRatio  float64    `json:"projected_ratio"`
	RequiredMonthly float64    `json:"required_monthly,omitempty"`
	Status          GoalStatus `json:"status,omitempty"`
	MonthsToGoal    *int       `json:"months_to_goal,omitempty"`
}

// EvaluateGoal считает прогресс цели. Проекция линейная, без сложного
// процента: это план откладывания, а не доходность портфеля.
func EvaluateGoal(goal models.Goal, now time.Time, horizonMonths int) GoalProgress {
	if horizonMonths <= 0 {
		horizonMonths = DefaultHorizonMonths
	}

	target := SafeNumber(goal.TargetAmount.Float64())
	current := SafeNumber(goal.CurrentAmount.Float64())
	contribution := SafeNumber(goal.MonthlyContribution.Float64())

	progress := GoalProgress{
		ProgressRatio: progressRatio(current, target),
	}

	horizon := horizonMonths
	if end := ParseDate(goal.EndDate); end != nil {
		remaining := monthsUntil(now, *end)
		progress.MonthsRemaining = &remaining
		horizon = remaining

		if remaining > 0 {
			required := math.Max(0, target-current) / float64(remaining)
			progress.RequiredMonthly = required
			if contribution >= required {
				progress.Status = GoalStatusOnTrack
			} else {
				progress.Status = GoalStatusBehind
			}
		}
	}

	if target > 0 {
		progress.ProjectedRatio = ClampUnit((current + contribution*float64(horizon)) / target)
	}

	progress.MonthsToGoal = MonthsToGoal(goal)

	return progress
}

// MonthsToGoal оценивает срок достижения цели при текущем темпе взносов.
// Возвращает nil, когда цель нулевая или взносов нет: оценка невозможна.
func MonthsToGoal(goal models.Goal) *int {
	target := SafeNumber(goal.TargetAmount.Float64())
	current := SafeNumber(goal.CurrentAmount.Float64())
	contribution := SafeNumber(goal.MonthlyContribution.Float64())

	if target <= 0 || contribution <= 0 {
		return nil
	}

	months := int(math.Ceil(math.Max(0, target-current) / contribution))
	return &months
}

func progressRatio(current, target float64) float64 {
	if target <= 0 {
		return 0
	}
	return ClampUnit(current / target)
}

// monthsUntil считает целые календарные месяцы от now до end, не меньше 0.
func monthsUntil(now, end time.Time) int {
	months := (end.Year()-now.Year())*12 + int(end.Month()) - int(now.Month())
	if months < 0 {
		return 0
	}
	return months
}
