package redis_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/phonestock-api/internal/application/events"
	"github.com/jhoicas/phonestock-api/internal/domain"
	"github.com/jhoicas/phonestock-api/internal/infrastructure/redis"
	"github.com/jhoicas/phonestock-api/pkg/config"
	"github.com/jhoicas/phonestock-api/pkg/logger"
)

func testConfig(t *testing.T) config.RedisConfig {
	t.Helper()
	addr := os.Getenv("PHONESTOCK_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("PHONESTOCK_TEST_REDIS_ADDR no definido")
	}
	return config.RedisConfig{Addr: addr, Channel: "phonestock:test:" + t.Name()}
}

func TestLocker_SegundoIntentoEspiraSinCandado(t *testing.T) {
	cfg := testConfig(t)
	ctx := context.Background()
	rdb, err := redis.NewClient(ctx, cfg)
	require.NoError(t, err)
	defer rdb.Close()

	l := redis.NewLocker(rdb, 200*time.Millisecond, logger.Nop())
	release, err := l.Lock(ctx, "phones_stock:test")
	require.NoError(t, err)

	_, err = l.Lock(ctx, "phones_stock:test")
	assert.ErrorIs(t, err, domain.ErrLockNotObtained)

	release()
	again, err := l.Lock(ctx, "phones_stock:test")
	require.NoError(t, err)
	again()
}

func TestRelay_ReenviaAlBusLocal(t *testing.T) {
	cfg := testConfig(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	rdb, err := redis.NewClient(ctx, cfg)
	require.NoError(t, err)
	defer rdb.Close()

	bus := events.NewBus()
	ch, unsubscribe := bus.Subscribe(1)
	defer unsubscribe()

	go func() { _ = redis.NewChangeRelay(rdb, cfg.Channel, bus, logger.Nop()).Run(ctx) }()

	pub := redis.NewChangePublisher(rdb, cfg.Channel)
	deadline := time.After(3 * time.Second)
	for {
		// Reintenta hasta que la suscripción del relay esté activa.
		require.NoError(t, pub.Publish(ctx, events.Change{Collections: []string{events.CollectionSales}, Action: events.ActionCreated, ID: "s-1"}))
		select {
		case change := <-ch:
			assert.Equal(t, "s-1", change.ID)
			return
		case <-time.After(100 * time.Millisecond):
		case <-deadline:
			t.Fatal("el relay no reenvió el cambio")
		}
	}
}
