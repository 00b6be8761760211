package sse

import (
	"sync"
)

const subscriberBuffer = 10

// Event is a server-sent event addressed to one employee
type Event struct {
	EmployeeID string
	Event      string
	Data       any
}

// Hub fans events out to the open streams of each employee
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a stream for an employee and returns its channel and a cleanup func.
// Cleanup is safe to call more than once.
func (h *Hub) Subscribe(employeeID string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)

	if h.subscribers[employeeID] == nil {
		h.subscribers[employeeID] = make(map[chan Event]struct{})
	}
	h.subscribers[employeeID][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[employeeID], ch)
			close(ch)
			if len(h.subscribers[employeeID]) == 0 {
				delete(h.subscribers, employeeID)
			}
		})
	}

	return ch, cleanup
}

// Publish delivers to every stream of the employee and returns how many
// received it. Full streams are skipped so publishers never block.
func (h *Hub) Publish(employeeID string, event Event) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.EmployeeID = employeeID
	delivered := 0
	for ch := range h.subscribers[employeeID] {
		select {
		case ch <- event:
			delivered++
		default:
		}
	}
	return delivered
}

// PublishToMany sends an event to several employees
func (h *Hub) PublishToMany(employeeIDs []string, event Event) int {
	delivered := 0
	for _, id := range employeeIDs {
		delivered += h.Publish(id, event)
	}
	return delivered
}

// SubscriberCount returns the number of open streams for an employee
func (h *Hub) SubscriberCount(employeeID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers[employeeID])
}
