package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
)

// TestGoalCreateWithProgress проверяет, что ответ содержит прогресс.
func TestGoalCreateWithProgress(t *testing.T) {
	h := NewGoalHandler(newTestStore(t), 12)

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/goals",
		`{"name":"Emergency","category":"Emergency","target_amount":1000,"current_amount":200,"monthly_contribution":100}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp GoalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Progress.ProgressRatio != 0.2 {
		t.Fatalf("expected progress 0.2, got %v", resp.Progress.ProgressRatio)
	}
	if resp.Progress.MonthsToGoal == nil || *resp.Progress.MonthsToGoal != 8 {
		t.Fatalf("expected 8 months to goal, got %v", resp.Progress.MonthsToGoal)
	}
}

// TestGoalCreateClampsNegative проверяет зажим отрицательной цели в ноль.
func TestGoalCreateClampsNegative(t *testing.T) {
	h := NewGoalHandler(newTestStore(t), 12)

	c, rec := newTestContext(t, http.MethodPost, "/api/v1/goals",
		`{"name":"Broken","target_amount":-500,"current_amount":"junk"}`)

	if err := h.Create(c); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp GoalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.TargetAmount != 0 || resp.CurrentAmount != 0 {
		t.Fatalf("expected clamped amounts, got %+v", resp.Goal)
	}
	if resp.Progress.ProgressRatio != 0 {
		t.Fatalf("expected zero progress for zero target, got %v", resp.Progress.ProgressRatio)
	}
}

// TestGoalProgressNotFound проверяет 404 для чужого id.
func TestGoalProgressNotFound(t *testing.T) {
	h := NewGoalHandler(newTestStore(t), 12)

	c, rec := newTestContext(t, http.MethodGet, "/api/v1/goals/"+uuid.NewString()+"/progress", "")
	c.SetParamNames("goalId")
	c.SetParamValues(uuid.NewString())

	if err := h.Progress(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
