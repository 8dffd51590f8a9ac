package storage

import (
	"encoding/json"

	"daybook/cmd/internal/domain/entity"
	"github.com/labstack/gommon/log"
)

const (
	// appointmentsKey is the single durable entry holding the whole
	// collection as one JSON array.
	appointmentsKey = "appointments"
	probeKey        = "__probe__"
)

// KeyValue is the durable key-value store the gateway writes through.
type KeyValue interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// Gateway owns serialization of the appointment collection. It never
// returns errors: an unavailable or corrupted store degrades to a
// memory-only session, which is logged and otherwise invisible to
// callers.
type Gateway struct {
	kv KeyValue
}

func NewGateway(kv KeyValue) *Gateway {
	return &Gateway{kv: kv}
}

// available probes the store with a throwaway write before every load
// and save. A failed probe switches the session to memory-only.
func (g *Gateway) available() bool {
	if err := g.kv.Set(probeKey, "ok"); err != nil {
		log.Errorf("storage unavailable: %v", err)
		return false
	}
	if err := g.kv.Remove(probeKey); err != nil {
		log.Errorf("storage unavailable: %v", err)
		return false
	}
	return true
}

// Load reads the stored collection. An absent key, an unavailable
// store, or a value that fails to parse all yield an empty collection.
func (g *Gateway) Load() []entity.Appointment {
	if !g.available() {
		return nil
	}

	raw, ok, err := g.kv.Get(appointmentsKey)
	if err != nil {
		log.Errorf("failed to read stored appointments: %v", err)
		return nil
	}
	if !ok {
		return nil
	}

	var appointments []entity.Appointment
	if err := json.Unmarshal([]byte(raw), &appointments); err != nil {
		log.Warnf("stored appointments are malformed, starting empty: %v", err)
		return nil
	}
	return appointments
}

// Save overwrites the durable entry with the full collection. Failures
// are logged and swallowed; the in-memory state stays authoritative.
func (g *Gateway) Save(appointments []entity.Appointment) {
	if !g.available() {
		return
	}

	data, err := json.Marshal(appointments)
	if err != nil {
		log.Errorf("failed to serialize appointments: %v", err)
		return
	}
	if err := g.kv.Set(appointmentsKey, string(data)); err != nil {
		log.Errorf("failed to persist appointments: %v", err)
	}
}
