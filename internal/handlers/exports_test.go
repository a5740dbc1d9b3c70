package handlers

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"example.com/finance-planner/backend/internal/models"
)

// TestExportCSVItems проверяет заголовок и строки выгрузки трат.
func TestExportCSVItems(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.AddItem(context.Background(), models.SpendingItem{
		Name:          "Rent",
		Category:      "Housing",
		MonthlyAmount: 1200,
		NeedOrWant:    models.NeedOrWantNeed,
	}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	h := NewExportHandler(s)
	c, rec := newTestContext(t, http.MethodGet, "/api/v1/export/csv?type=items", "")

	if err := h.CSV(c); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,name,category") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.Contains(lines[1], "Rent") || !strings.Contains(lines[1], "1200") {
		t.Fatalf("unexpected row: %s", lines[1])
	}
}

// TestExportCSVUnknownType проверяет отклонение неизвестного типа выгрузки.
func TestExportCSVUnknownType(t *testing.T) {
	h := NewExportHandler(newTestStore(t))
	c, rec := newTestContext(t, http.MethodGet, "/api/v1/export/csv?type=notes", "")

	if err := h.CSV(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
