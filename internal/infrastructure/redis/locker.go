package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/pkg/logger"
)

const lockRetryInterval = 50 * time.Millisecond

// Locker candados distribuidos por clave: serializa ventas sobre un mismo ítem entre instancias.
type Locker struct {
	client *redislock.Client
	ttl    time.Duration
	log    *logger.Logger
}

// NewLocker ttl es la vida máxima del candado y también el tiempo máximo de espera.
func NewLocker(rdb *goredis.Client, ttl time.Duration, log *logger.Logger) *Locker {
	return &Locker{client: redislock.New(rdb), ttl: ttl, log: log.Named("redislock")}
}

// Lock obtiene "lock:<key>" reintentando hasta ttl.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	retries := int(l.ttl / lockRetryInterval)
	lock, err := l.client.Obtain(ctx, "lock:"+key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(lockRetryInterval), retries),
	})
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, fmt.Errorf("%w: %s", domain.ErrLockNotObtained, key)
	}
	if err != nil {
		return nil, fmt.Errorf("obtener candado %s: %w", key, err)
	}
	return func() {
		// Contexto propio: el del request puede estar cancelado al liberar.
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			l.log.Warn().Err(err).Str("key", key).Msg("no se pudo liberar el candado")
		}
	}, nil
}
