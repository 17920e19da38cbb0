package http

import (
	"bufio"
	"context"
	"encoding/json"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/danmaket/marketplace-api/internal/infrastructure/realtime"
	"github.com/danmaket/marketplace-api/pkg/logger"
)

// Tables exposées au flux d'événements. Tout le reste est refusé : le flux
// est un canal public, il ne doit porter que les collections de la vitrine.
var streamableTables = map[string]bool{
	"produits":          true,
	"commandes":         true,
	"vendeur_commandes": true,
	"produits_vedettes": true,
	"banners":           true,
}

// EventsHandler flux SSE des changements de données. Diffusion au mieux :
// les clients gardent le polling en secours, un doublon de fetch est idempotent.
type EventsHandler struct {
	feed *realtime.Feed
	log  *logger.Logger
}

// NewEventsHandler construit le handler.
func NewEventsHandler(feed *realtime.Feed, log *logger.Logger) *EventsHandler {
	return &EventsHandler{feed: feed, log: log}
}

// Stream godoc
// @Summary      Flux SSE des changements d'une table
// @Tags         events
// @Produce      text/event-stream
// @Param        table  path  string  true  "Table suivie (produits, commandes, ...)"
// @Success      200
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/events/{table} [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	table := c.Params("table")
	if !streamableTables[table] {
		return badRequest(c, "UNKNOWN_TABLE", "table non diffusée")
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	feed, log := h.feed, h.log
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		events, err := feed.Subscribe(ctx, table)
		if err != nil {
			log.Warn().Err(err).Str("table", table).Msg("sse: subscribe")
			return
		}

		// Keep-alive : un commentaire SSE toutes les 30s pour garder la
		// connexion ouverte à travers les proxys.
		keepalive := time.NewTicker(30 * time.Second)
		defer keepalive.Stop()

		for {
			select {
			case ev, ok := <-events:
				if !ok {
					return
				}
				payload, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				if _, err := w.WriteString("data: " + string(payload) + "\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepalive.C:
				if _, err := w.WriteString(": keepalive\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}
