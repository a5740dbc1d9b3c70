package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/finance-planner/backend/internal/config"
	"example.com/finance-planner/backend/internal/models"
)

// PostgresStore хранит состояние в одной строке таблицы planner_state:
// слот — первичный ключ, данные — JSONB-блоб целиком.
type PostgresStore struct {
	pool *pgxpool.Pool
	slot string
}

// OpenPostgres открывает пул подключений с ретраями и готовит таблицу слота.
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig, slot string) (*PostgresStore, error) {
	poolConfig, cfgErr := pgxpool.ParseConfig(cfg.DSN())
	if cfgErr != nil {
		return nil, fmt.Errorf("parse database config: %w", cfgErr)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	// MaxIdleConns maps closest to MinConns in pgxpool.
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnIdleTime = cfg.ConnMaxIdleTime
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime

	var pool *pgxpool.Pool
	var err error

	retries := 5
	backoff := time.Second * 1

	for i := 0; i < retries; i++ {
		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err == nil {
			pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			err = pool.Ping(pingCtx)
			cancel()

			if err == nil {
				store := &PostgresStore{pool: pool, slot: slot}
				if err := store.ensureSchema(ctx); err != nil {
					pool.Close()
					return nil, err
				}
				return store, nil
			}
		}

		if pool != nil {
			pool.Close()
		}

		log.Printf("Попытка подключения %d/%d не удалась: %v. Повтор через %v", i+1, retries, err, backoff)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(backoff):
			backoff *= 2
		}
	}

	return nil, fmt.Errorf("не удалось подключиться к БД после %d попыток: %w", retries, err)
}

func (s *PostgresStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS planner_state (
			slot TEXT PRIMARY KEY,
			data JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		 )`,
	)
	if err != nil {
		return fmt.Errorf("ensure planner_state table: %w", err)
	}

	return nil
}

// Load читает слот состояния. Отсутствующая строка — не ошибка.
func (s *PostgresStore) Load(ctx context.Context) (models.PlannerState, bool, error) {
	var data []byte

	err := s.pool.QueryRow(ctx,
		`SELECT data FROM planner_state WHERE slot = $1`,
		s.slot,
	).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.PlannerState{}, false, nil
		}
		return models.PlannerState{}, false, err
	}

	return decodeState(data), true, nil
}

// Save перезаписывает слот состояния целиком.
func (s *PostgresStore) Save(ctx context.Context, state models.PlannerState) error {
	data, err := json.Marshal(state)
	if err != nil {
		return err
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO planner_state (slot, data, updated_at)
		 VALUES ($1, $2, NOW())
		 ON CONFLICT (slot) DO UPDATE
		 SET data = EXCLUDED.data,
		     updated_at = NOW()`,
		s.slot, data,
	)

	return err
}

// Close закрывает пул подключений.
func (s *PostgresStore) Close() {
	s.pool.Close()
}
