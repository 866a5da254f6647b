package sse

import (
	"net/http"
	"strings"
	"time"

	"github.com/osse101/idlefarm/internal/logger"
)

// Handler streams hub events. Clients may pass ?types=harvested,progress to
// filter; snapshot, when set, is sent right after the connected event.
func Handler(hub *Hub, snapshot func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, ErrMsgStreamingUnsupported, http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("Access-Control-Allow-Origin", "*")

		var eventTypes []string
		if filter := r.URL.Query().Get(TypesQueryParam); filter != "" {
			eventTypes = strings.Split(filter, ",")
		}

		ctx := r.Context()
		log := logger.FromContext(ctx)

		client := hub.Register(eventTypes)
		log.Info(LogMsgClientConnected, "client_id", client.ID, "filters", eventTypes)
		defer func() {
			hub.Unregister(client.ID)
			log.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		write := func(evt Event) bool {
			msg, err := FormatSSEMessage(evt)
			if err != nil {
				log.Error(LogMsgWriteError, "error", err)
				return true
			}
			if _, err := w.Write(msg); err != nil {
				log.Debug(LogMsgWriteError, "error", err)
				return false
			}
			flusher.Flush()
			return true
		}

		if !write(hub.newEvent(EventTypeConnected, ConnectedPayload{ClientID: client.ID, Filters: eventTypes})) {
			return
		}
		if snapshot != nil && client.wants(EventTypeProgress) {
			if !write(hub.newEvent(EventTypeProgress, snapshot())) {
				return
			}
		}

		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return

			case evt, ok := <-client.Events:
				if !ok {
					return
				}
				if !write(evt) {
					return
				}

			case <-ticker.C:
				if !write(Event{Type: EventTypeKeepalive, Timestamp: hub.now().UnixMilli()}) {
					return
				}
			}
		}
	}
}
