package planner

import (
	"sort"

	"example.com/finance-planner/backend/internal/models"
)

// BucketTotal — строка разбивки трат: метка и месячная сумма.
type BucketTotal struct {
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// TotalMonthlyIncome суммирует месячный доход по всем источникам профиля.
func TotalMonthlyIncome(profile models.Profile) float64 {
	var total float64
	for _, source := range profile.IncomeSources {
		total += SafeNumber(source.MonthlyAmount.Float64())
	}
	return total
}

// TotalMonthlySpendOngoing суммирует только постоянные траты.
func TotalMonthlySpendOngoing(items []models.SpendingItem) float64 {
	var total float64
	for _, item := range items {
		if item.IsTemporary {
			continue
		}
		total += SafeNumber(item.MonthlyAmount.Float64())
	}
	return total
}

// TotalMonthlySpendAll суммирует все траты, включая временные.
func TotalMonthlySpendAll(items []models.SpendingItem) float64 {
	var total float64
	for _, item := range items {
		total += SafeNumber(item.MonthlyAmount.Float64())
	}
	return total
}

// LeftoverMonthly возвращает свободный остаток месяца. Перерасход
// схлопывается в 0, знак дефицита не сохраняется.
func LeftoverMonthly(income, spendAll float64) float64 {
	leftover := income - spendAll
	if leftover < 0 {
		return 0
	}
	return leftover
}

// SavingsRate возвращает норму сбережений в [0,1]. Нулевой доход дает 0.
func SavingsRate(leftover, income float64) float64 {
	if income <= 0 {
		return 0
	}
	return ClampUnit(leftover / income)
}

// SpendByCategory группирует траты по категориям. Строки отсортированы по
// убыванию суммы, при равенстве сохраняется порядок первого появления.
// Категории без единой траты в результат не попадают.
func SpendByCategory(items []models.SpendingItem) []BucketTotal {
	totals := make(map[string]float64)
	order := make(map[string]int)
	labels := make([]string, 0)

	for _, item := range items {
		label := item.Category
		if label == "" {
			label = "Other"
		}
		if _, seen := totals[label]; !seen {
			order[label] = len(labels)
			labels = append(labels, label)
		}
		totals[label] += SafeNumber(item.MonthlyAmount.Float64())
	}

	rows := make([]BucketTotal, 0, len(labels))
	for _, label := range labels {
		rows = append(rows, BucketTotal{Label: label, Total: totals[label]})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}
		return order[rows[i].Label] < order[rows[j].Label]
	})

	return rows
}

// SpendByNeedOrWant делит траты на два ведра. Пустое ведро опускается,
// поэтому портфель из одних want даст одну строку, а не нулевую пару.
func SpendByNeedOrWant(items []models.SpendingItem) []BucketTotal {
	var need, want float64
	for _, item := range items {
		amount := SafeNumber(item.MonthlyAmount.Float64())
		if item.NeedOrWant == models.NeedOrWantWant {
			want += amount
		} else {
			need += amount
		}
	}

	rows := make([]BucketTotal, 0, 2)
	if need > 0 {
		rows = append(rows, BucketTotal{Label: "Need", Total: need})
	}
	if want > 0 {
		rows = append(rows, BucketTotal{Label: "Want", Total: want})
	}
	return rows
}

// TotalAssets суммирует стоимость всех активов.
func TotalAssets(assets []models.Asset) float64 {
	var total float64
	for _, asset := range assets {
		total += SafeNumber(asset.Value.Float64())
	}
	return total
}

// TotalLiabilities суммирует остатки по всем обязательствам.
func TotalLiabilities(liabilities []models.Liability) float64 {
	var total float64
	for _, liability := range liabilities {
		total += SafeNumber(liability.Balance.Float64())
	}
	return total
}

// NetWorth возвращает чистый капитал. Может быть отрицательным.
func NetWorth(assets []models.Asset, liabilities []models.Liability) float64 {
	return TotalAssets(assets) - TotalLiabilities(liabilities)
}

// RetirementTarget считает целевой капитал по правилу безопасной ставки
// изъятия: годовые траты, деленные на ставку. Нулевая ставка дает 0.
func RetirementTarget(monthlySpend, withdrawalRate float64) float64 {
	if withdrawalRate <= 0 {
		return 0
	}
	return (monthlySpend * 12) / withdrawalRate
}
