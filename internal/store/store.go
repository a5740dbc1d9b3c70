package store

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"example.com/finance-planner/backend/internal/models"
	"example.com/finance-planner/backend/internal/notifications"
	"example.com/finance-planner/backend/internal/planner"
	"example.com/finance-planner/backend/internal/storage"
)

var ErrNotFound = errors.New("not found")

// Store — единственный владелец состояния планировщика. Мутации проходят
// под мьютексом, после каждой состояние целиком уходит в персистентность
// (best effort) и подписчикам хаба улетает событие. Снимок чистого
// капитала обновляется автоматически: не больше одного на календарный
// месяц, история ограничена скользящим окном.
type Store struct {
	mu        sync.RWMutex
	state     models.PlannerState
	persister storage.StateStore
	hub       *notifications.Hub
	logger    *slog.Logger

	now          func() time.Time
	historyLimit int
}

// New создает хранилище поверх адаптера персистентности.
func New(persister storage.StateStore, hub *notifications.Hub, logger *slog.Logger, historyLimit int) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	if historyLimit <= 0 {
		historyLimit = 24
	}

	return &Store{
		persister:    persister,
		hub:          hub,
		logger:       logger,
		now:          time.Now,
		historyLimit: historyLimit,
	}
}

// Load читает сохраненное состояние. Вызывается один раз на старте.
func (s *Store) Load(ctx context.Context) error {
	state, found, err := s.persister.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if found {
		s.state = state
	}

	return nil
}

// State возвращает глубокую копию текущего состояния.
func (s *Store) State() models.PlannerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// UpdateProfile обновляет анкетные поля профиля, не трогая источники дохода.
func (s *Store) UpdateProfile(ctx context.Context, profile models.Profile) (models.Profile, error) {
	var updated models.Profile

	err := s.mutate(ctx, "profile", func(state *models.PlannerState) error {
		profile.IncomeSources = state.Profile.IncomeSources
		state.Profile = profile
		updated = profile
		return nil
	})

	return updated, err
}

// AddIncomeSource добавляет источник дохода в конец списка.
func (s *Store) AddIncomeSource(ctx context.Context, name string, amount models.Amount) (models.IncomeSource, error) {
	source := models.IncomeSource{
		ID:            uuid.New(),
		Name:          name,
		MonthlyAmount: sanitizeAmount(amount),
	}

	err := s.mutate(ctx, "profile", func(state *models.PlannerState) error {
		state.Profile.IncomeSources = append(state.Profile.IncomeSources, source)
		return nil
	})

	return source, err
}

// UpdateIncomeSource изменяет источник дохода по id.
func (s *Store) UpdateIncomeSource(ctx context.Context, id uuid.UUID, name string, amount models.Amount) (models.IncomeSource, error) {
	var updated models.IncomeSource

	err := s.mutate(ctx, "profile", func(state *models.PlannerState) error {
		for i := range state.Profile.IncomeSources {
			if state.Profile.IncomeSources[i].ID != id {
				continue
			}
			state.Profile.IncomeSources[i].Name = name
			state.Profile.IncomeSources[i].MonthlyAmount = sanitizeAmount(amount)
			updated = state.Profile.IncomeSources[i]
			return nil
		}
		return ErrNotFound
	})

	return updated, err
}

// DeleteIncomeSource удаляет источник дохода по id.
func (s *Store) DeleteIncomeSource(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, "profile", func(state *models.PlannerState) error {
		for i := range state.Profile.IncomeSources {
			if state.Profile.IncomeSources[i].ID == id {
				state.Profile.IncomeSources = append(state.Profile.IncomeSources[:i], state.Profile.IncomeSources[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// AddItem добавляет трату. Новые траты встают в начало списка.
func (s *Store) AddItem(ctx context.Context, item models.SpendingItem) (models.SpendingItem, error) {
	item.ID = uuid.New()
	sanitizeItem(&item)

	err := s.mutate(ctx, "items", func(state *models.PlannerState) error {
		state.Items = append([]models.SpendingItem{item}, state.Items...)
		return nil
	})

	return item, err
}

// UpdateItem изменяет трату по id, сохраняя ее позицию в списке.
func (s *Store) UpdateItem(ctx context.Context, id uuid.UUID, item models.SpendingItem) (models.SpendingItem, error) {
	item.ID = id
	sanitizeItem(&item)

	err := s.mutate(ctx, "items", func(state *models.PlannerState) error {
		for i := range state.Items {
			if state.Items[i].ID == id {
				state.Items[i] = item
				return nil
			}
		}
		return ErrNotFound
	})

	return item, err
}

// DeleteItem удаляет трату по id.
func (s *Store) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, "items", func(state *models.PlannerState) error {
		for i := range state.Items {
			if state.Items[i].ID == id {
				state.Items = append(state.Items[:i], state.Items[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// AddGoal добавляет цель накопления.
func (s *Store) AddGoal(ctx context.Context, goal models.Goal) (models.Goal, error) {
	goal.ID = uuid.New()
	sanitizeGoal(&goal)

	err := s.mutate(ctx, "goals", func(state *models.PlannerState) error {
		state.Goals = append(state.Goals, goal)
		return nil
	})

	return goal, err
}

// UpdateGoal изменяет цель по id.
func (s *Store) UpdateGoal(ctx context.Context, id uuid.UUID, goal models.Goal) (models.Goal, error) {
	goal.ID = id
	sanitizeGoal(&goal)

	err := s.mutate(ctx, "goals", func(state *models.PlannerState) error {
		for i := range state.Goals {
			if state.Goals[i].ID == id {
				state.Goals[i] = goal
				return nil
			}
		}
		return ErrNotFound
	})

	return goal, err
}

// DeleteGoal удаляет цель по id.
func (s *Store) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, "goals", func(state *models.PlannerState) error {
		for i := range state.Goals {
			if state.Goals[i].ID == id {
				state.Goals = append(state.Goals[:i], state.Goals[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// AddAsset добавляет актив.
func (s *Store) AddAsset(ctx context.Context, asset models.Asset) (models.Asset, error) {
	asset.ID = uuid.New()
	asset.Value = sanitizeAmount(asset.Value)

	err := s.mutate(ctx, "net_worth", func(state *models.PlannerState) error {
		state.Assets = append(state.Assets, asset)
		return nil
	})

	return asset, err
}

// UpdateAsset изменяет актив по id.
func (s *Store) UpdateAsset(ctx context.Context, id uuid.UUID, asset models.Asset) (models.Asset, error) {
	asset.ID = id
	asset.Value = sanitizeAmount(asset.Value)

	err := s.mutate(ctx, "net_worth", func(state *models.PlannerState) error {
		for i := range state.Assets {
			if state.Assets[i].ID == id {
				state.Assets[i] = asset
				return nil
			}
		}
		return ErrNotFound
	})

	return asset, err
}

// DeleteAsset удаляет актив по id.
func (s *Store) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, "net_worth", func(state *models.PlannerState) error {
		for i := range state.Assets {
			if state.Assets[i].ID == id {
				state.Assets = append(state.Assets[:i], state.Assets[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// AddLiability добавляет обязательство.
func (s *Store) AddLiability(ctx context.Context, liability models.Liability) (models.Liability, error) {
	liability.ID = uuid.New()
	liability.Balance = sanitizeAmount(liability.Balance)

	err := s.mutate(ctx, "net_worth", func(state *models.PlannerState) error {
		state.Liabilities = append(state.Liabilities, liability)
		return nil
	})

	return liability, err
}

// UpdateLiability изменяет обязательство по id.
func (s *Store) UpdateLiability(ctx context.Context, id uuid.UUID, liability models.Liability) (models.Liability, error) {
	liability.ID = id
	liability.Balance = sanitizeAmount(liability.Balance)

	err := s.mutate(ctx, "net_worth", func(state *models.PlannerState) error {
		for i := range state.Liabilities {
			if state.Liabilities[i].ID == id {
				state.Liabilities[i] = liability
				return nil
			}
		}
		return ErrNotFound
	})

	return liability, err
}

// DeleteLiability удаляет обязательство по id.
func (s *Store) DeleteLiability(ctx context.Context, id uuid.UUID) error {
	return s.mutate(ctx, "net_worth", func(state *models.PlannerState) error {
		for i := range state.Liabilities {
			if state.Liabilities[i].ID == id {
				state.Liabilities = append(state.Liabilities[:i], state.Liabilities[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}

// CompleteOnboarding помечает мастер первичной настройки пройденным.
func (s *Store) CompleteOnboarding(ctx context.Context) error {
	return s.mutate(ctx, "onboarding", func(state *models.PlannerState) error {
		state.OnboardingDone = true
		return nil
	})
}

// RecordNetWorth — ручной триггер снимка. Правило то же, что и у
// автоматического: перезапись в текущем месяце, добавление в новом.
func (s *Store) RecordNetWorth(ctx context.Context) (models.NetWorthSnapshot, error) {
	var snapshot models.NetWorthSnapshot

	err := s.mutate(ctx, "net_worth", func(state *models.PlannerState) error {
		return nil
	})
	if err != nil {
		return snapshot, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if n := len(s.state.NetWorthHistory); n > 0 {
		snapshot = s.state.NetWorthHistory[n-1]
	}

	return snapshot, nil
}

// mutate применяет изменение под мьютексом, обновляет снимок чистого
// капитала и, уже без блокировки, сохраняет состояние и публикует событие.
// Ошибка сохранения не прерывает мутацию: пишем warn и живем дальше.
func (s *Store) mutate(ctx context.Context, section string, fn func(*models.PlannerState) error) error {
	s.mu.Lock()

	if err := fn(&s.state); err != nil {
		s.mu.Unlock()
		return err
	}

	s.refreshSnapshotLocked()
	snapshot := s.state.Clone()
	s.mu.Unlock()

	if err := s.persister.Save(ctx, snapshot); err != nil {
		s.logger.Warn("state save failed", slog.String("section", section), slog.String("error", err.Error()))
	}

	if s.hub != nil {
		s.hub.Publish(notifications.Event{
			Type: "state_updated",
			Data: map[string]interface{}{"section": section},
		})
	}

	return nil
}

// refreshSnapshotLocked пересчитывает чистый капитал и обновляет историю:
// в пределах одного периода значение перезаписывается, новый период
// добавляет запись, окно усечено до historyLimit последних.
func (s *Store) refreshSnapshotLocked() {
	value := planner.NetWorth(s.state.Assets, s.state.Liabilities)
	period := planner.PeriodKey(s.now())

	history := s.state.NetWorthHistory
	if n := len(history); n > 0 && history[n-1].Period == period {
		history[n-1].Value = value
	} else {
		history = append(history, models.NetWorthSnapshot{Period: period, Value: value})
	}

	if len(history) > s.historyLimit {
		history = history[len(history)-s.historyLimit:]
	}

	s.state.NetWorthHistory = history
}

func sanitizeAmount(a models.Amount) models.Amount {
	return models.Amount(planner.SafeNumber(a.Float64()))
}

func sanitizeItem(item *models.SpendingItem) {
	item.MonthlyAmount = sanitizeAmount(item.MonthlyAmount)
	if item.NeedOrWant != models.NeedOrWantWant {
		item.NeedOrWant = models.NeedOrWantNeed
	}
	if !item.IsTemporary {
		item.EndDate = ""
	}
}

// sanitizeGoal зажимает суммы цели снизу нулем: отрицательные значения
// не имеют смысла для прогресса и проекции.
func sanitizeGoal(goal *models.Goal) {
	goal.TargetAmount = clampNonNegative(goal.TargetAmount)
	goal.CurrentAmount = clampNonNegative(goal.CurrentAmount)
	goal.MonthlyContribution = clampNonNegative(goal.MonthlyContribution)
}

func clampNonNegative(a models.Amount) models.Amount {
	return models.Amount(math.Max(0, planner.SafeNumber(a.Float64())))
}
