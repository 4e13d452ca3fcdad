package handler

import (
	"context"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/librarium/library-api/internal/api/metrics"
	"github.com/librarium/library-api/internal/core/ports"
)

// HeaderIdempotencyKey lets clients retry a create request without producing
// a second record.
const HeaderIdempotencyKey = "Idempotency-Key"

const msgIdempotencyInFlight = "A request with this Idempotency-Key is still in progress"

// idempotency wraps the optional key store. Store errors are logged and never
// fail the request.
type idempotency struct {
	store ports.IdempotencyStore
	log   zerolog.Logger
}

// claim is the outcome of reserving a key for one create request.
type claim struct {
	entity   string
	key      string
	owned    bool
	busy     bool
	replayID string
}

func idempotencyKey(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get(HeaderIdempotencyKey))
}

// begin reserves key before the record is created, so concurrent retries
// cannot both create one.
func (i idempotency) begin(ctx context.Context, entity, key string) claim {
	cl := claim{entity: entity, key: key}
	if i.store == nil || key == "" {
		return cl
	}
	id, reserved, err := i.store.Reserve(ctx, entity, key)
	switch {
	case err != nil:
		i.log.Warn().Err(err).Str("entity", entity).Msg("idempotency reserve failed, creating anyway")
	case reserved:
		cl.owned = true
	case id == "":
		cl.busy = true
	default:
		cl.replayID = id
		metrics.IdempotentReplaysTotal.WithLabelValues(entity).Inc()
	}
	return cl
}

func (i idempotency) complete(ctx context.Context, cl claim, id string) {
	if !cl.owned {
		return
	}
	if err := i.store.Complete(ctx, cl.entity, cl.key, id); err != nil {
		i.log.Warn().Err(err).Str("entity", cl.entity).Str("id", id).Msg("failed to store idempotency key")
	}
}

func (i idempotency) release(ctx context.Context, cl claim) {
	if !cl.owned {
		return
	}
	if err := i.store.Release(ctx, cl.entity, cl.key); err != nil {
		i.log.Warn().Err(err).Str("entity", cl.entity).Msg("failed to release idempotency key")
	}
}
