package localstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/barberflow/barberflow-server/internal/models"
)

// Store é o cache de fallback: um arquivo JSON com o array inteiro de
// agendamentos, análogo ao localStorage do navegador. Só este processo
// escreve nele; o mutex serializa leitores e escritores concorrentes.
type Store struct {
	path string
	mu   sync.Mutex
}

func New(path string) *Store {
	return &Store{path: path}
}

func (s *Store) ReadAll() ([]models.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.Appointment{}, nil
		}
		return nil, err
	}

	if len(data) == 0 {
		return []models.Appointment{}, nil
	}

	var apps []models.Appointment
	if err := json.Unmarshal(data, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (s *Store) WriteAll(apps []models.Appointment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if apps == nil {
		apps = []models.Appointment{}
	}

	data, err := json.Marshal(apps)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
