package models

import (
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

type NeedOrWant string

type AssetType string

const (
	NeedOrWantNeed NeedOrWant = "need"
	NeedOrWantWant NeedOrWant = "want"

	AssetTypeInvestment AssetType = "Investment"
	AssetTypeRealEstate AssetType = "Real Estate"
	AssetTypeCash       AssetType = "Cash"
	AssetTypeVehicle    AssetType = "Vehicle"
	AssetTypeOther      AssetType = "Other"
)

// Amount хранит денежную сумму. Любой мусор на входе (пустая строка, null,
// нечисло) превращается в 0, ошибок разбора наружу не бывает.
type Amount float64

// UnmarshalJSON принимает число, числовую строку, null или мусор.
func (a *Amount) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	raw = strings.Trim(raw, `"`)
	raw = strings.TrimSpace(raw)

	if raw == "" || raw == "null" {
		*a = 0
		return nil
	}

	parsed, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		*a = 0
		return nil
	}

	*a = Amount(parsed)
	return nil
}

// Float64 возвращает сумму как float64.
func (a Amount) Float64() float64 {
	return float64(a)
}

type IncomeSource struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	MonthlyAmount Amount    `json:"monthly_amount"`
}

type Profile struct {
	Age           int            `json:"age"`
	Location      string         `json:"location"`
	Relationship  string         `json:"relationship"`
	KidsCount     int            `json:"kids_count"`
	PetsCount     int            `json:"pets_count"`
	IncomeSources []IncomeSource `json:"income_sources"`
}

type SpendingItem struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	MonthlyAmount Amount     `json:"monthly_amount"`
	NeedOrWant    NeedOrWant `json:"need_or_want"`
	IsTemporary   bool       `json:"is_temporary"`
	EndDate       string     `json:"end_date,omitempty"`
}

type Goal struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Category            string    `json:"category"`
	TargetAmount        Amount    `json:"target_amount"`
	CurrentAmount       Amount    `json:"current_amount"`
	MonthlyContribution Amount    `json:"monthly_contribution"`
	EndDate             string    `json:"end_date,omitempty"`
}

type Asset struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Type  AssetType `json:"type"`
	Value Amount    `json:"value"`
}

type Liability struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Balance Amount    `json:"balance"`
}

// NetWorthSnapshot — точка временного ряда, не больше одной на календарный месяц.
type NetWorthSnapshot struct {
	Period string  `json:"period"`
	Value  float64 `json:"value"`
}

// PlannerState — полное состояние планировщика, единый сохраняемый слот.
type PlannerState struct {
	Profile         Profile            `json:"profile"`
	Items           []SpendingItem     `json:"items"`
	Goals           []Goal             `json:"goals"`
	Assets          []Asset            `json:"assets"`
	Liabilities     []Liability        `json:"liabilities"`
	NetWorthHistory []NetWorthSnapshot `json:"net_worth_history"`
	OnboardingDone  bool               `json:"onboarding_done"`
}

// Clone возвращает глубокую копию состояния.
func (s PlannerState) Clone() PlannerState {
	out := s
	out.Profile.IncomeSources = append([]IncomeSource(nil), s.Profile.IncomeSources...)
	out.Items = append([]SpendingItem(nil), s.Items...)
	out.Goals = append([]Goal(nil), s.Goals...)
	out.Assets = append([]Asset(nil), s.Assets...)
	out.Liabilities = append([]Liability(nil), s.Liabilities...)
	out.NetWorthHistory = append([]NetWorthSnapshot(nil), s.NetWorthHistory...)
	return out
}
