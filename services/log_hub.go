package services

import (
	"fmt"
	"sync"

	"nutrilog/models"
)

// LogHub fans updated DailyLog aggregates out to subscribers of one
// (user, day) key. It is deliberately transport-agnostic: the websocket
// layer is just one consumer. Slow consumers drop updates instead of
// blocking writers.
type LogHub struct {
	mu   sync.RWMutex
	subs map[string]map[chan *models.DailyLog]struct{}
}

func NewLogHub() *LogHub {
	return &LogHub{subs: make(map[string]map[chan *models.DailyLog]struct{})}
}

func hubKey(userID uint, day string) string {
	return fmt.Sprintf("%d/%s", userID, day)
}

// Subscribe returns a stream of aggregates for one user-day and a cancel
// function. Cancel is idempotent.
func (h *LogHub) Subscribe(userID uint, day string) (<-chan *models.DailyLog, func()) {
	ch := make(chan *models.DailyLog, 8)
	k := hubKey(userID, day)

	h.mu.Lock()
	if h.subs[k] == nil {
		h.subs[k] = make(map[chan *models.DailyLog]struct{})
	}
	h.subs[k][ch] = struct{}{}
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if set := h.subs[k]; set != nil {
			if _, ok := set[ch]; ok {
				delete(set, ch)
				close(ch)
			}
			if len(set) == 0 {
				delete(h.subs, k)
			}
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

func (h *LogHub) Publish(userID uint, day string, dl *models.DailyLog) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for ch := range h.subs[hubKey(userID, day)] {
		select {
		case ch <- dl:
		default:
		}
	}
}
