package planner

import (
	"testing"

	"example.com/finance-planner/backend/internal/models"
)

// TestTotalMonthlyIncome проверяет сумму по источникам дохода.
func TestTotalMonthlyIncome(t *testing.T) {
	profile := models.Profile{
		IncomeSources: []models.IncomeSource{
			{Name: "Salary", MonthlyAmount: 3000},
			{Name: "Side gig", MonthlyAmount: 500},
		},
	}

	if got := TotalMonthlyIncome(profile); got != 3500 {
		t.Fatalf("expected 3500, got %v", got)
	}

	if got := TotalMonthlyIncome(models.Profile{}); got != 0 {
		t.Fatalf("expected 0 for empty profile, got %v", got)
	}
}

// TestTotalMonthlySpend проверяет суммы с учетом и без учета временных трат.
func TestTotalMonthlySpend(t *testing.T) {
	items := []models.SpendingItem{
		{Name: "Rent", MonthlyAmount: 1200},
		{Name: "Gym", MonthlyAmount: 50, IsTemporary: true},
		{Name: "Food", MonthlyAmount: 400},
	}

	if got := TotalMonthlySpendOngoing(items); got != 1600 {
		t.Fatalf("expected ongoing 1600, got %v", got)
	}
	if got := TotalMonthlySpendAll(items); got != 1650 {
		t.Fatalf("expected all 1650, got %v", got)
	}
}

// TestLeftoverMonthly проверяет, что перерасход схлопывается в ноль.
func TestLeftoverMonthly(t *testing.T) {
	if got := LeftoverMonthly(3000, 5000); got != 0 {
		t.Fatalf("expected 0 leftover on overspend, got %v", got)
	}
	if got := LeftoverMonthly(3000, 1800); got != 1200 {
		t.Fatalf("expected 1200, got %v", got)
	}
}

// TestSavingsRate проверяет норму сбережений и защиту от деления на ноль.
func TestSavingsRate(t *testing.T) {
	if got := SavingsRate(1200, 3000); got != 0.4 {
		t.Fatalf("expected 0.4, got %v", got)
	}
	if got := SavingsRate(0, 0); got != 0 {
		t.Fatalf("expected 0 for zero income, got %v", got)
	}
	if got := SavingsRate(LeftoverMonthly(3000, 5000), 3000); got != 0 {
		t.Fatalf("expected 0 rate on overspend, got %v", got)
	}
}

// TestSpendByCategory проверяет группировку и сортировку по убыванию суммы.
func TestSpendByCategory(t *testing.T) {
	items := []models.SpendingItem{
		{Category: "Food & Drink", MonthlyAmount: 100},
		{Category: "Food & Drink", MonthlyAmount: 50},
		{Category: "Housing", MonthlyAmount: 1000},
	}

	rows := SpendByCategory(items)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Label != "Housing" || rows[0].Total != 1000 {
		t.Fatalf("unexpected first row: %+v", rows[0])
	}
	if rows[1].Label != "Food & Drink" || rows[1].Total != 150 {
		t.Fatalf("unexpected second row: %+v", rows[1])
	}
}

// TestSpendByCategoryFallback проверяет, что пустая категория уходит в Other.
func TestSpendByCategoryFallback(t *testing.T) {
	rows := SpendByCategory([]models.SpendingItem{{MonthlyAmount: 10}})
	if len(rows) != 1 || rows[0].Label != "Other" {
		t.Fatalf("expected single Other row, got %+v", rows)
	}
}

// TestSpendByNeedOrWant проверяет, что пустое ведро опускается.
func TestSpendByNeedOrWant(t *testing.T) {
	items := []models.SpendingItem{
		{NeedOrWant: models.NeedOrWantWant, MonthlyAmount: 80},
		{NeedOrWant: models.NeedOrWantWant, MonthlyAmount: 20},
	}

	rows := SpendByNeedOrWant(items)
	if len(rows) != 1 {
		t.Fatalf("expected single bucket, got %+v", rows)
	}
	if rows[0].Label != "Want" || rows[0].Total != 100 {
		t.Fatalf("unexpected bucket: %+v", rows[0])
	}

	items = append(items, models.SpendingItem{NeedOrWant: models.NeedOrWantNeed, MonthlyAmount: 300})
	rows = SpendByNeedOrWant(items)
	if len(rows) != 2 || rows[0].Label != "Need" || rows[0].Total != 300 {
		t.Fatalf("unexpected buckets: %+v", rows)
	}
}

// TestNetWorth проверяет, что чистый капитал может быть отрицательным.
func TestNetWorth(t *testing.T) {
	assets := []models.Asset{
		{Type: models.AssetTypeCash, Value: 5000},
		{Type: models.AssetTypeInvestment, Value: 20000},
	}
	liabilities := []models.Liability{{Balance: 30000}}

	if got := NetWorth(assets, liabilities); got != -5000 {
		t.Fatalf("expected -5000, got %v", got)
	}
}

// TestRetirementTarget проверяет правило безопасной ставки изъятия.
func TestRetirementTarget(t *testing.T) {
	if got := RetirementTarget(2000, 0.04); got != 600000 {
		t.Fatalf("expected 600000, got %v", got)
	}
	if got := RetirementTarget(2000, 0); got != 0 {
		t.Fatalf("expected 0 for zero rate, got %v", got)
	}
}
