// Package audit regroupe les effets de bord non bloquants des cas d'usage :
// journal d'activité et diffusion temps réel. Tout y est best-effort, un
// échec est journalisé et n'interrompt jamais l'opération métier.
package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/danmaket/marketplace-api/internal/domain/entity"
	"github.com/danmaket/marketplace-api/internal/domain/repository"
	"github.com/danmaket/marketplace-api/pkg/logger"
)

// Publisher diffuse un événement de changement {table, op, id}.
// Implémenté par realtime.Feed.
type Publisher interface {
	Publish(ctx context.Context, table, op, id string)
}

// NopPublisher implémentation vide pour les tests et le mode dégradé.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, string) {}

// Recorder écrit le journal d'activité.
type Recorder struct {
	logs repository.ActivityLogRepository
	log  *logger.Logger
}

// NewRecorder construit le recorder.
func NewRecorder(logs repository.ActivityLogRepository, log *logger.Logger) *Recorder {
	return &Recorder{logs: logs, log: log}
}

// Entry une entrée à journaliser. Metadata est sérialisé en JSONB.
type Entry struct {
	UserID      string
	UserEmail   string
	ActionType  string
	Description string
	IPAddress   string
	Metadata    map[string]any
}

// Record persiste l'entrée. Les erreurs sont avalées après journalisation.
func (r *Recorder) Record(ctx context.Context, e Entry) {
	var meta json.RawMessage
	if len(e.Metadata) > 0 {
		b, err := json.Marshal(e.Metadata)
		if err != nil {
			r.log.Warn().Err(err).Str("action", e.ActionType).Msg("audit: marshal metadata")
		} else {
			meta = b
		}
	}
	if meta == nil {
		meta = json.RawMessage(`{}`)
	}

	entry := &entity.ActivityLog{
		ID:          uuid.New().String(),
		UserID:      e.UserID,
		UserEmail:   e.UserEmail,
		ActionType:  e.ActionType,
		Description: e.Description,
		IPAddress:   e.IPAddress,
		Metadata:    meta,
		CreatedAt:   time.Now(),
	}
	if err := r.logs.Insert(ctx, entry); err != nil {
		r.log.Warn().Err(err).Str("action", e.ActionType).Msg("audit: insert activity log")
	}
}
