// Package inmem provides in-memory implementations of the port and ship
// repositories. Entries keep their insertion order.
package inmem

import (
	"fmt"
	"sync"

	"github.com/Qalifah/portsim/port"
	"github.com/Qalifah/portsim/ship"
)

type portRepository struct {
	mtx   sync.RWMutex
	ports map[port.ID]*port.Port
	order []port.ID
}

func (r *portRepository) Store(p *port.Port) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if _, ok := r.ports[p.ID]; !ok {
		r.order = append(r.order, p.ID)
	}
	r.ports[p.ID] = p
	return nil
}

func (r *portRepository) Find(id port.ID) (*port.Port, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if p, ok := r.ports[id]; ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %d", port.ErrUnknown, id)
}

func (r *portRepository) FindAll() []*port.Port {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	ps := make([]*port.Port, 0, len(r.order))
	for _, id := range r.order {
		ps = append(ps, r.ports[id])
	}
	return ps
}

// NewPortRepository returns a new instance of a in-memory port repository.
func NewPortRepository() port.Repository {
	return &portRepository{
		ports: make(map[port.ID]*port.Port),
	}
}

type shipRepository struct {
	mtx   sync.RWMutex
	ships map[ship.ID]*ship.Ship
	order []ship.ID
}

func (r *shipRepository) Store(s *ship.Ship) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	if _, ok := r.ships[s.ID]; !ok {
		r.order = append(r.order, s.ID)
	}
	r.ships[s.ID] = s
	return nil
}

func (r *shipRepository) Find(id ship.ID) (*ship.Ship, error) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	if s, ok := r.ships[id]; ok {
		return s, nil
	}
	return nil, fmt.Errorf("%w: %d", ship.ErrUnknown, id)
}

func (r *shipRepository) FindAll() []*ship.Ship {
	r.mtx.RLock()
	defer r.mtx.RUnlock()
	ss := make([]*ship.Ship, 0, len(r.order))
	for _, id := range r.order {
		ss = append(ss, r.ships[id])
	}
	return ss
}

// NewShipRepository returns a new instance of a in-memory ship repository.
func NewShipRepository() ship.Repository {
	return &shipRepository{
		ships: make(map[ship.ID]*ship.Ship),
	}
}
