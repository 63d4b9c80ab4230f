package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/phonestock-api/internal/domain"
)

func TestLocker_SerializaPorClave(t *testing.T) {
	l := NewLocker(0)
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Lock(ctx, "phones_stock:p-1")
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
			release()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Zero(t, l.held(), "las claves liberadas se eliminan")
}

func TestLocker_EsperaVencida(t *testing.T) {
	l := NewLocker(20 * time.Millisecond)
	ctx := context.Background()

	release, err := l.Lock(ctx, "k")
	require.NoError(t, err)
	defer release()

	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, domain.ErrLockNotObtained)

	other, err := l.Lock(ctx, "otra")
	require.NoError(t, err, "claves distintas no se bloquean entre sí")
	other()
}

func TestLocker_ReleaseIdempotente(t *testing.T) {
	l := NewLocker(0)
	release, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	release()
	release()
	assert.Zero(t, l.held())
}
