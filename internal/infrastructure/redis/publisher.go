package redis

import (
	"context"
	"encoding/json"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/phonestock-api/internal/application/events"
	"github.com/jhoicas/phonestock-api/pkg/logger"
)

// ChangePublisher publica los cambios en un canal Redis.
type ChangePublisher struct {
	rdb     *goredis.Client
	channel string
}

var _ events.Publisher = (*ChangePublisher)(nil)

// NewChangePublisher construye el publicador.
func NewChangePublisher(rdb *goredis.Client, channel string) *ChangePublisher {
	return &ChangePublisher{rdb: rdb, channel: channel}
}

// Publish serializa el cambio como JSON y lo publica.
func (p *ChangePublisher) Publish(ctx context.Context, change events.Change) error {
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}
	if err := p.rdb.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", p.channel, err)
	}
	return nil
}

// ChangeRelay reenvía al bus local todo lo publicado en el canal, incluidos los cambios
// de esta misma instancia.
type ChangeRelay struct {
	rdb     *goredis.Client
	channel string
	local   events.Publisher
	log     *logger.Logger
}

// NewChangeRelay construye el relay.
func NewChangeRelay(rdb *goredis.Client, channel string, local events.Publisher, log *logger.Logger) *ChangeRelay {
	return &ChangeRelay{rdb: rdb, channel: channel, local: local, log: log.Named("relay")}
}

// Run se suscribe y reenvía hasta que ctx se cancela.
func (r *ChangeRelay) Run(ctx context.Context) error {
	sub := r.rdb.Subscribe(ctx, r.channel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe %s: %w", r.channel, err)
	}
	r.log.Info().Str("channel", r.channel).Msg("relay de cambios activo")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			var change events.Change
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				r.log.Warn().Err(err).Msg("evento de cambio inválido")
				continue
			}
			_ = r.local.Publish(ctx, change)
		}
	}
}
