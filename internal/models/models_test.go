package models

import (
	"encoding/json"
	"testing"
)

// TestAmountUnmarshalGarbage проверяет тихую коэрцию мусора в ноль.
func TestAmountUnmarshalGarbage(t *testing.T) {
	cases := map[string]Amount{
		`""`:      0,
		`"abc"`:   0,
		`null`:    0,
		`true`:    0,
		`{}`:      0,
		`"  "`:    0,
		`1500`:    1500,
		`"1500"`:  1500,
		`" 12.5"`: 12.5,
		`-42`:     -42,
	}

	for raw, want := range cases {
		var got Amount
		if err := json.Unmarshal([]byte(raw), &got); err != nil {
			t.Fatalf("Unmarshal(%s): unexpected error %v", raw, err)
		}
		if got != want {
			t.Fatalf("Unmarshal(%s): expected %v, got %v", raw, want, got)
		}
	}
}

// TestAmountMarshal проверяет, что сумма сериализуется числом.
func TestAmountMarshal(t *testing.T) {
	data, err := json.Marshal(Amount(1200.5))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != "1200.5" {
		t.Fatalf("expected 1200.5, got %s", data)
	}
}

// TestCloneIndependence проверяет, что копия не делит слайсы с оригиналом.
func TestCloneIndependence(t *testing.T) {
	original := PlannerState{
		Items: []SpendingItem{{Name: "Rent", MonthlyAmount: 1200}},
		Profile: Profile{
			IncomeSources: []IncomeSource{{Name: "Salary", MonthlyAmount: 3000}},
		},
	}

	clone := original.Clone()
	clone.Items[0].Name = "Changed"
	clone.Profile.IncomeSources[0].MonthlyAmount = 1

	if original.Items[0].Name != "Rent" {
		t.Fatalf("clone mutated original items: %+v", original.Items)
	}
	if original.Profile.IncomeSources[0].MonthlyAmount != 3000 {
		t.Fatalf("clone mutated original profile: %+v", original.Profile)
	}
}
