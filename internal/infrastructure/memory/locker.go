package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/phonestock-api/internal/domain"
)

// Locker candados por clave dentro del proceso (cuando no hay Redis configurado).
type Locker struct {
	wait  time.Duration
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

// NewLocker crea el locker. wait > 0 limita cuánto se espera por un candado ocupado.
func NewLocker(wait time.Duration) *Locker {
	return &Locker{wait: wait, locks: make(map[string]*keyLock)}
}

// Lock bloquea key hasta obtenerla, vencer wait o cancelarse ctx.
func (l *Locker) Lock(ctx context.Context, key string) (func(), error) {
	if l.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.wait)
		defer cancel()
	}

	l.mu.Lock()
	k, ok := l.locks[key]
	if !ok {
		k = &keyLock{ch: make(chan struct{}, 1)}
		l.locks[key] = k
	}
	k.refs++
	l.mu.Unlock()

	select {
	case k.ch <- struct{}{}:
	case <-ctx.Done():
		l.unref(key, k)
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrLockNotObtained, key, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-k.ch
			l.unref(key, k)
		})
	}, nil
}

func (l *Locker) unref(key string, k *keyLock) {
	l.mu.Lock()
	defer l.mu.Unlock()
	k.refs--
	if k.refs == 0 {
		delete(l.locks, key)
	}
}

// held cantidad de claves con candado tomado o en espera.
func (l *Locker) held() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
