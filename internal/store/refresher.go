package store

import (
	"context"
	"time"
)

// Refresher aproxima o frescor multi-dispositivo por polling: re-busca o
// snapshot num intervalo fixo enquanto o contexto do servidor viver. É
// polling, não push: pode correr junto com uma escrita em voo (last write
// wins no backend).
type Refresher struct {
	store    *Store
	interval time.Duration
}

func NewRefresher(s *Store, interval time.Duration) *Refresher {
	return &Refresher{
		store:    s,
		interval: interval,
	}
}

func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.store.Refresh(ctx)
		}
	}
}
