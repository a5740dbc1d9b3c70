package planner

import (
	"testing"
	"time"

	"example.com/finance-planner/backend/internal/models"
)

var goalNow = time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

// TestEvaluateGoalOnTrack проверяет цель с дедлайном и достаточным взносом.
func TestEvaluateGoalOnTrack(t *testing.T) {
	goal := models.Goal{
		TargetAmount:        1000,
		CurrentAmount:       200,
		MonthlyContribution: 100,
		EndDate:             "2024-11-10",
	}

	progress := EvaluateGoal(goal, goalNow, DefaultHorizonMonths)

	if progress.MonthsRemaining == nil || *progress.MonthsRemaining != 8 {
		t.Fatalf("expected 8 months remaining, got %v", progress.MonthsRemaining)
	}
	if progress.ProgressRatio != 0.2 {
		t.Fatalf("expected progress 0.2, got %v", progress.ProgressRatio)
	}
	if progress.RequiredMonthly != 100 {
		t.Fatalf("expected required 100, got %v", progress.RequiredMonthly)
	}
	if progress.Status != GoalStatusOnTrack {
		t.Fatalf("expected on_track, got %s", progress.Status)
	}
}

// TestEvaluateGoalBehind проверяет цель с недостаточным взносом.
func TestEvaluateGoalBehind(t *testing.T) {
	goal := models.Goal{
		TargetAmount:        1000,
		CurrentAmount:       200,
		MonthlyContribution: 50,
		EndDate:             "2024-11-10",
	}

	progress := EvaluateGoal(goal, goalNow, DefaultHorizonMonths)

	if progress.RequiredMonthly != 100 {
		t.Fatalf("expected required 100, got %v", progress.RequiredMonthly)
	}
	if progress.Status != GoalStatusBehind {
		t.Fatalf("expected behind, got %s", progress.Status)
	}
}

// TestEvaluateGoalNoDeadline проверяет проекцию с горизонтом по умолчанию.
func TestEvaluateGoalNoDeadline(t *testing.T) {
	goal := models.Goal{
		TargetAmount:        1200,
		CurrentAmount:       0,
		MonthlyContribution: 100,
	}

	progress := EvaluateGoal(goal, goalNow, DefaultHorizonMonths)

	if progress.MonthsRemaining != nil {
		t.Fatalf("expected nil months remaining, got %v", *progress.MonthsRemaining)
	}
	if progress.Status != "" {
		t.Fatalf("expected empty status, got %s", progress.Status)
	}
	if progress.ProjectedRatio != 1.0 {
		t.Fatalf("expected projected 1.0, got %v", progress.ProjectedRatio)
	}
	if progress.MonthsToGoal == nil || *progress.MonthsToGoal != 12 {
		t.Fatalf("expected 12 months to goal, got %v", progress.MonthsToGoal)
	}
}

// TestEvaluateGoalPastDeadline проверяет, что прошедшая дата дает 0 месяцев.
func TestEvaluateGoalPastDeadline(t *testing.T) {
	goal := models.Goal{
		TargetAmount:        1000,
		CurrentAmount:       500,
		MonthlyContribution: 100,
		EndDate:             "2023-01-01",
	}

	progress := EvaluateGoal(goal, goalNow, DefaultHorizonMonths)

	if progress.MonthsRemaining == nil || *progress.MonthsRemaining != 0 {
		t.Fatalf("expected 0 months remaining, got %v", progress.MonthsRemaining)
	}
	if progress.Status != "" {
		t.Fatalf("expected no status past deadline, got %s", progress.Status)
	}
	if progress.ProjectedRatio != 0.5 {
		t.Fatalf("expected projected 0.5, got %v", progress.ProjectedRatio)
	}
}

// TestEvaluateGoalZeroTarget проверяет, что нулевая цель не дает прогресса.
func TestEvaluateGoalZeroTarget(t *testing.T) {
	goal := models.Goal{CurrentAmount: 500, MonthlyContribution: 100}

	progress := EvaluateGoal(goal, goalNow, DefaultHorizonMonths)

	if progress.ProgressRatio != 0 || progress.ProjectedRatio != 0 {
		t.Fatalf("expected zero ratios, got %+v", progress)
	}
	if progress.MonthsToGoal != nil {
		t.Fatalf("expected nil ETA for zero target, got %v", *progress.MonthsToGoal)
	}
}

// TestMonthsToGoal проверяет оценку срока при текущем темпе.
func TestMonthsToGoal(t *testing.T) {
	goal := models.Goal{TargetAmount: 1000, CurrentAmount: 250, MonthlyContribution: 100}
	if got := MonthsToGoal(goal); got == nil || *got != 8 {
		t.Fatalf("expected 8, got %v", got)
	}

	goal.MonthlyContribution = 0
	if got := MonthsToGoal(goal); got != nil {
		t.Fatalf("expected nil without contribution, got %v", *got)
	}

	goal = models.Goal{TargetAmount: 1000, CurrentAmount: 2000, MonthlyContribution: 100}
	if got := MonthsToGoal(goal); got == nil || *got != 0 {
		t.Fatalf("expected 0 for reached goal, got %v", got)
	}
}
