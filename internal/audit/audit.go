// Package audit records a best-effort trail of mutations. A failed
// audit write is logged and counted but never fails the request that
// triggered it.
package audit

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"gachastore/internal/domain"
	"gachastore/internal/pkg/metrics"
)

type Store interface {
	Create(ctx context.Context, entry *domain.AuditLog) error
}

type Recorder struct {
	store Store
}

func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

func (r *Recorder) Record(ctx context.Context, action, entityType, entityID string, actorID *string, changes map[string]any) {
	entry := &domain.AuditLog{
		ID:         uuid.NewString(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		ActorID:    actorID,
		Changes:    changes,
		CreatedAt:  time.Now(),
	}
	if err := r.store.Create(ctx, entry); err != nil {
		metrics.SideEffectFailures.WithLabelValues("audit").Inc()
		log.Printf("audit write failed: action=%s entity=%s/%s: %v", action, entityType, entityID, err)
	}
}
