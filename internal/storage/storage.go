package storage

import (
	"context"
	"encoding/json"

	"example.com/finance-planner/backend/internal/models"
)

// StateStore — адаптер персистентности: один именованный слот, в котором
// целиком лежит сериализованное состояние планировщика.
type StateStore interface {
	// Load читает слот. Второй результат false, если слот еще не записан.
	Load(ctx context.Context) (models.PlannerState, bool, error)
	// Save перезаписывает слот целиком.
	Save(ctx context.Context, state models.PlannerState) error
	// Close освобождает ресурсы бэкенда.
	Close()
}

// decodeState разбирает сохраненный блоб по полям. Каждое поле
// независимо: битое или отсутствующее поле остается значением по
// умолчанию, ошибок наружу нет.
func decodeState(data []byte) models.PlannerState {
	var state models.PlannerState

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return state
	}

	decodeField(raw, "profile", &state.Profile)
	decodeField(raw, "items", &state.Items)
	decodeField(raw, "goals", &state.Goals)
	decodeField(raw, "assets", &state.Assets)
	decodeField(raw, "liabilities", &state.Liabilities)
	decodeField(raw, "net_worth_history", &state.NetWorthHistory)
	decodeField(raw, "onboarding_done", &state.OnboardingDone)

	return state
}

func decodeField[T any](raw map[string]json.RawMessage, key string, dst *T) {
	field, ok := raw[key]
	if !ok {
		return
	}

	var value T
	if err := json.Unmarshal(field, &value); err != nil {
		return
	}

	*dst = value
}
