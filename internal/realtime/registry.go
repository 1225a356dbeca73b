package realtime

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/pulseapp/pulse/domain"
)

// Registry is the in-memory connection registry: one user maps to the set
// of their live connections (multiple tabs/devices). All state is process
// local; see DESIGN.md for the scale-out question.
type Registry struct {
	mu    sync.RWMutex
	conns map[int64]map[domain.Connection]struct{}
}

var _ domain.ConnectionRegistry = (*Registry)(nil)

func NewRegistry() *Registry {
	return &Registry{
		conns: make(map[int64]map[domain.Connection]struct{}),
	}
}

func (r *Registry) Register(userID int64, c domain.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.conns[userID]
	if !ok {
		set = make(map[domain.Connection]struct{})
		r.conns[userID] = set
	}
	set[c] = struct{}{}
}

func (r *Registry) Unregister(userID int64, c domain.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set, ok := r.conns[userID]
	if !ok {
		return
	}
	delete(set, c)
	if len(set) == 0 {
		delete(r.conns, userID)
	}
}

func (r *Registry) IsConnected(userID int64) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns[userID]) > 0
}

func (r *Registry) ConnectedUserIDs() []int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]int64, 0, len(r.conns))
	for id := range r.conns {
		ids = append(ids, id)
	}
	return ids
}

func (r *Registry) SendToUser(userID int64, msg domain.Message) {
	r.SendToUsers([]int64{userID}, msg)
}

// SendToUsers marshals once and hands the payload to every live connection
// of every listed user. Connection.Send never blocks, so one dead client
// cannot stall the rest.
func (r *Registry) SendToUsers(userIDs []int64, msg domain.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		logrus.Errorf("failed to marshal %s message: %v", msg.Type, err)
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, id := range userIDs {
		for c := range r.conns[id] {
			c.Send(data)
		}
	}
}
