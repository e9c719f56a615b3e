// Package events fans recorded webhook deliveries out to live subscribers.
package events

import (
	"bytes"
	"encoding/json"
	"sync"
	"time"
)

// Delivery is one recorded webhook event as seen by feed subscribers.
type Delivery struct {
	Seq     int64           `json:"seq"`
	Kind    string          `json:"kind"`
	Label   string          `json:"label"`
	EventID string          `json:"eventId"`
	At      time.Time       `json:"at"`
	Payload json.RawMessage `json:"payload"`
}

// Hub is an in-memory pub/sub with a small ring buffer for late subscribers.
type Hub struct {
	now func() time.Time

	mu      sync.Mutex
	nextSeq int64
	ring    []Delivery
	start   int
	size    int

	subs      map[int]chan Delivery
	nextSubID int
}

func NewHub(capacity int) *Hub {
	if capacity <= 0 {
		capacity = 100
	}
	return &Hub{
		now:  time.Now,
		ring: make([]Delivery, capacity),
		subs: make(map[int]chan Delivery),
	}
}

// Publish buffers a delivery and hands it to every subscriber. The payload
// is compacted onto one line; a payload that is not JSON becomes null.
func (h *Hub) Publish(kind, label, eventID string, payload []byte) Delivery {
	var buf bytes.Buffer
	if err := json.Compact(&buf, payload); err != nil {
		buf.Reset()
		buf.WriteString("null")
	}

	d := Delivery{
		Kind:    kind,
		Label:   label,
		EventID: eventID,
		At:      h.now().UTC(),
		Payload: buf.Bytes(),
	}

	// Seq is assigned under the lock so ring and subscriber order follow it.
	h.mu.Lock()
	h.nextSeq++
	d.Seq = h.nextSeq
	h.pushLocked(d)
	for _, ch := range h.subs {
		// Slow subscribers miss deliveries rather than block the receiver.
		select {
		case ch <- d:
		default:
		}
	}
	h.mu.Unlock()
	return d
}

// Subscribe registers a subscriber. The returned func unregisters it and
// closes the channel.
func (h *Hub) Subscribe() (<-chan Delivery, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextSubID
	h.nextSubID++
	ch := make(chan Delivery, 64)
	h.subs[id] = ch

	cancel := func() {
		h.mu.Lock()
		if c, ok := h.subs[id]; ok {
			delete(h.subs, id)
			close(c)
		}
		h.mu.Unlock()
	}
	return ch, cancel
}

// Since returns buffered deliveries with Seq > seq, oldest first.
func (h *Hub) Since(seq int64) []Delivery {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Delivery, 0, h.size)
	for i := 0; i < h.size; i++ {
		d := h.ring[(h.start+i)%len(h.ring)]
		if d.Seq > seq {
			out = append(out, d)
		}
	}
	return out
}

func (h *Hub) pushLocked(d Delivery) {
	capacity := len(h.ring)
	if h.size < capacity {
		h.ring[(h.start+h.size)%capacity] = d
		h.size++
		return
	}
	// Overwrite oldest.
	h.ring[h.start] = d
	h.start = (h.start + 1) % capacity
}
