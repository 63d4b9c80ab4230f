// Package events publica "colección modificada" tras cada mutación para que los
// suscriptores (stream SSE, otras instancias vía Redis) refresquen su vista.
package events

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/phonestock-api/pkg/logger"
)

// Colecciones del store.
const (
	CollectionStock       = "phones_stock"
	CollectionSales       = "sales"
	CollectionAccounts    = "account_balances"
	CollectionReceivables = "balances_to_receive"
	CollectionExpenses    = "expenses"
)

// Acciones.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Change evento de colección modificada.
type Change struct {
	Collections []string  `json:"collections"`
	Action      string    `json:"action"`
	ID          string    `json:"id"`
	At          time.Time `json:"at"`
}

// Publisher destino de los eventos (bus local o Redis).
type Publisher interface {
	Publish(ctx context.Context, change Change) error
}

// Notify publica el cambio y solo registra el error: un evento perdido no revierte la mutación.
func Notify(ctx context.Context, pub Publisher, log *logger.Logger, action, id string, collections ...string) {
	if pub == nil {
		return
	}
	change := Change{Collections: collections, Action: action, ID: id, At: time.Now().UTC()}
	if err := pub.Publish(ctx, change); err != nil {
		log.Warn().Err(err).Strs("collections", collections).Str("id", id).Msg("no se pudo publicar el cambio")
	}
}

// Bus reparte eventos a suscriptores en proceso. Un suscriptor lento pierde eventos
// en lugar de bloquear al publicador.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan Change
	nextID int
}

var _ Publisher = (*Bus)(nil)

// NewBus construye un bus vacío.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan Change)}
}

// Publish entrega change a cada suscriptor con espacio en su buffer.
func (b *Bus) Publish(_ context.Context, change Change) error {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subs {
		select {
		case ch <- change:
		default:
		}
	}
	return nil
}

// Subscribe registra un suscriptor. cancel cierra el canal y lo da de baja; es idempotente.
func (b *Bus) Subscribe(buffer int) (<-chan Change, func()) {
	if buffer < 1 {
		buffer = 1
	}
	ch := make(chan Change, buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}

// Subscribers cantidad de suscriptores activos.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
