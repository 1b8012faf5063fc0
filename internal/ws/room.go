package ws

import "sync"

type room struct {
	mu      sync.RWMutex
	clients map[*Conn]struct{} // active subscriber connections
}

func newRoom() *room { return &room{clients: map[*Conn]struct{}{}} }

// join adds a connection to the room
func (r *room) join(c *Conn) {
	r.mu.Lock()
	r.clients[c] = struct{}{}
	r.mu.Unlock()
}

// leave removes a connection from the room
func (r *room) leave(c *Conn) {
	r.mu.Lock()
	delete(r.clients, c)
	r.mu.Unlock()
}

// broadcast sends a frame to all connections without blocking
func (r *room) broadcast(b []byte) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for c := range r.clients {
		select {
		case c.out <- b:
		default: // skip if send buffer is full
		}
	}
}

// closeAll disconnects every subscriber, used when the room is destroyed
func (r *room) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for c := range r.clients {
		_ = c.Close()
		delete(r.clients, c)
	}
}
