package planner

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	dateLayout   = "2006-01-02"
	periodLayout = "2006-01"
)

// SafeNumber приводит значение к конечному числу: NaN и Inf становятся 0.
func SafeNumber(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseAmount разбирает строку из формы. Мусор и пустые строки дают 0.
func ParseAmount(raw string) float64 {
	parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0
	}
	return SafeNumber(parsed)
}

// ClampUnit ограничивает долю отрезком [0,1].
func ClampUnit(x float64) float64 {
	if math.IsNaN(x) || x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// PeriodKey возвращает ключ календарного месяца вида "2024-03".
func PeriodKey(t time.Time) string {
	return t.Format(periodLayout)
}

// ParseDate разбирает ISO-дату из формы. Пустая или битая строка дает nil.
func ParseDate(raw string) *time.Time {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil
	}

	parsed, err := time.Parse(dateLayout, trimmed)
	if err != nil {
		return nil
	}

	return &parsed
}
