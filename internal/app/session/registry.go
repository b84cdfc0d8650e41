// Package session guarda el estado de torneo de cada guild. Es el único lugar
// donde se decide si un room está corriendo o no.
package session

import (
	"sort"
	"sync"
)

type Status int

const (
	Idle Status = iota
	Running
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	default:
		return "idle"
	}
}

func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type RoomSession struct {
	RoomID            string `json:"room_id"`
	Status            Status `json:"status"`
	TeardownRequested bool   `json:"teardown_requested"`
}

// Registry vive todo el proceso; las sesiones se crean al primer acceso y no se borran.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]*RoomSession
}

func NewRegistry() *Registry {
	return &Registry{rooms: map[string]*RoomSession{}}
}

// room asume r.mu tomado.
func (r *Registry) room(roomID string) *RoomSession {
	s, ok := r.rooms[roomID]
	if !ok {
		s = &RoomSession{RoomID: roomID, Status: Idle}
		r.rooms[roomID] = s
	}
	return s
}

// Get devuelve una copia.
func (r *Registry) Get(roomID string) RoomSession {
	r.mu.Lock()
	defer r.mu.Unlock()
	return *r.room(roomID)
}

// TrySetRunning pasa Idle→Running; false si ya estaba corriendo.
func (r *Registry) TrySetRunning(roomID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.room(roomID)
	if s.Status == Running {
		return false
	}
	s.Status = Running
	s.TeardownRequested = false
	return true
}

// RequestTeardown marca el fin pedido; false si el room no está corriendo.
func (r *Registry) RequestTeardown(roomID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.room(roomID)
	if s.Status != Running {
		return false
	}
	s.TeardownRequested = true
	return true
}

func (r *Registry) Clear(roomID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := r.room(roomID)
	s.Status = Idle
	s.TeardownRequested = false
}

// Running lista los rooms activos, ordenados.
func (r *Registry) Running() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for id, s := range r.rooms {
		if s.Status == Running {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
