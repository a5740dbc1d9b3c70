package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"example.com/finance-planner/backend/internal/models"
)

// FileStore хранит состояние в локальном JSON-файле — прямой аналог
// браузерного key-value слота из исходного приложения.
type FileStore struct {
	path string
}

// NewFileStore создает файловый бэкенд по указанному пути.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Load читает файл состояния. Отсутствующий файл — не ошибка.
func (s *FileStore) Load(_ context.Context) (models.PlannerState, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return models.PlannerState{}, false, nil
		}
		return models.PlannerState{}, false, err
	}

	return decodeState(data), true, nil
}

// Save атомарно перезаписывает файл: временный файл рядом, затем rename.
func (s *FileStore) Save(_ context.Context, state models.PlannerState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp state file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return nil
}

// Close для файлового бэкенда ничего не делает.
func (s *FileStore) Close() {}
