package http

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/phonestock-api/internal/application/events"
)

// EventsHandler expone los cambios de colecciones como Server-Sent Events.
type EventsHandler struct {
	bus  *events.Bus
	ping time.Duration
}

// NewEventsHandler ping es el intervalo de comentarios keep-alive.
func NewEventsHandler(bus *events.Bus, ping time.Duration) *EventsHandler {
	return &EventsHandler{bus: bus, ping: ping}
}

// Stream godoc
// @Summary      Stream de cambios (SSE)
// @Description  Emite `event: change` con {collections, action, id, at} tras cada mutación.
// @Tags         events
// @Produce      text/event-stream
// @Router       /api/events [get]
func (h *EventsHandler) Stream(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	ch, cancel := h.bus.Subscribe(16)
	c.Context().SetBodyStreamWriter(func(w *bufio.Writer) {
		defer cancel()
		ticker := time.NewTicker(h.ping)
		defer ticker.Stop()

		fmt.Fprint(w, ": conectado\n\n")
		if err := w.Flush(); err != nil {
			return
		}
		for {
			select {
			case change, ok := <-ch:
				if !ok {
					return
				}
				payload, err := json.Marshal(change)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "event: change\ndata: %s\n\n", payload)
			case <-ticker.C:
				fmt.Fprint(w, ": ping\n\n")
			}
			// Flush falla cuando el cliente se desconecta.
			if err := w.Flush(); err != nil {
				return
			}
		}
	})
	return nil
}
