package realtime

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/danmaket/marketplace-api/pkg/config"
	"github.com/danmaket/marketplace-api/pkg/logger"
)

// Op type d'opération d'un événement de changement.
const (
	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// Event événement de changement diffusé aux clients abonnés.
// Table identifie la collection concernée (produits, commandes, banners...).
type Event struct {
	Table string `json:"table"`
	Op    string `json:"op"`
	ID    string `json:"id"`
}

// Feed diffuse les changements de données via Redis pub/sub. Chaque table a
// son propre canal, préfixé par changes:.
type Feed struct {
	client *redis.Client
	log    *logger.Logger
}

// NewFeed construit le flux à partir de la configuration Redis.
func NewFeed(cfg config.RedisConfig, log *logger.Logger) *Feed {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Feed{client: client, log: log}
}

// Ping vérifie la connexion Redis.
func (f *Feed) Ping(ctx context.Context) error {
	if err := f.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}

// Close ferme la connexion Redis.
func (f *Feed) Close() error {
	return f.client.Close()
}

func channelFor(table string) string {
	return "changes:" + table
}

// Publish diffuse un événement de changement. Les erreurs sont journalisées et
// avalées : la diffusion temps réel ne doit jamais faire échouer l'écriture.
func (f *Feed) Publish(ctx context.Context, table, op, id string) {
	payload, err := json.Marshal(Event{Table: table, Op: op, ID: id})
	if err != nil {
		f.log.Error().Err(err).Str("table", table).Msg("realtime: marshal event")
		return
	}
	if err := f.client.Publish(ctx, channelFor(table), payload).Err(); err != nil {
		f.log.Warn().Err(err).Str("table", table).Str("op", op).Msg("realtime: publish")
	}
}

// Subscribe s'abonne aux changements des tables données et pousse les
// événements décodés sur le canal retourné. Le canal est fermé quand ctx
// expire ou que la souscription tombe.
func (f *Feed) Subscribe(ctx context.Context, tables ...string) (<-chan Event, error) {
	channels := make([]string, 0, len(tables))
	for _, t := range tables {
		channels = append(channels, channelFor(t))
	}

	sub := f.client.Subscribe(ctx, channels...)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("subscribe redis: %w", err)
	}

	out := make(chan Event, 16)
	go func() {
		defer close(out)
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var ev Event
				if err := json.Unmarshal([]byte(msg.Payload), &ev); err != nil {
					f.log.Warn().Err(err).Msg("realtime: payload invalide")
					continue
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out, nil
}
