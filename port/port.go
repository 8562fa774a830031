package port

import (
	"errors"
	"math"

	"github.com/Qalifah/portsim/container"
)

// ID uniquely identifies a port
type ID int

// Port is a location ships dock at. Ships are tracked by id; docked holds the
// ships currently present and departed every ship that has ever left.
type Port struct {
	ID        ID
	Latitude  float64
	Longitude float64

	docked     []int
	departed   []int
	containers []container.Container
}

// New creates a port with no ships and no containers
func New(id ID, latitude, longitude float64) *Port {
	return &Port{ID: id, Latitude: latitude, Longitude: longitude}
}

var (
	// ErrUnknown is used when a port can't be found
	ErrUnknown = errors.New("unknown port")

	// ErrNotDocked is used when a ship leaves a port it is not docked at
	ErrNotDocked = errors.New("ship not docked at port")

	// ErrNoContainer is used when a container is not resident at the port
	ErrNoContainer = errors.New("container not at port")

	// ErrDuplicateContainer is used when a container id is already resident at the port
	ErrDuplicateContainer = errors.New("container already at port")
)

// Incoming docks a ship. Docking an already docked ship is a no-op.
func (p *Port) Incoming(ship int) {
	if !contains(p.docked, ship) {
		p.docked = append(p.docked, ship)
	}
}

// Outgoing records the ship as departed and undocks it.
func (p *Port) Outgoing(ship int) error {
	i := indexOf(p.docked, ship)
	if i < 0 {
		return ErrNotDocked
	}
	if !contains(p.departed, ship) {
		p.departed = append(p.departed, ship)
	}
	p.docked = append(p.docked[:i], p.docked[i+1:]...)
	return nil
}

// IsDocked reports whether the ship is currently at this port
func (p *Port) IsDocked(ship int) bool {
	return contains(p.docked, ship)
}

// Docked returns the ids of the ships at the port in arrival order
func (p *Port) Docked() []int {
	return append([]int(nil), p.docked...)
}

// Departed returns the ids of every ship that has left the port
func (p *Port) Departed() []int {
	return append([]int(nil), p.departed...)
}

// DistanceTo is the straight line distance between two ports on the
// latitude/longitude plane.
func (p *Port) DistanceTo(other *Port) float64 {
	dLat := p.Latitude - other.Latitude
	dLon := p.Longitude - other.Longitude
	return math.Sqrt(dLat*dLat + dLon*dLon)
}

// Store places a container at the port
func (p *Port) Store(c container.Container) {
	p.containers = append(p.containers, c)
}

// Find looks up a resident container by id
func (p *Port) Find(id container.ID) (container.Container, bool) {
	for _, c := range p.containers {
		if c.ID == id {
			return c, true
		}
	}
	return container.Container{}, false
}

// Take removes a resident container and hands it to the caller
func (p *Port) Take(id container.ID) (container.Container, error) {
	for i, c := range p.containers {
		if c.ID == id {
			p.containers = append(p.containers[:i], p.containers[i+1:]...)
			return c, nil
		}
	}
	return container.Container{}, ErrNoContainer
}

// Containers returns the containers resident at the port
func (p *Port) Containers() []container.Container {
	return append([]container.Container(nil), p.containers...)
}

// Repository represents a port store
type Repository interface {
	Store(p *Port) error
	Find(id ID) (*Port, error)
	FindAll() []*Port
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func contains(ids []int, id int) bool {
	return indexOf(ids, id) >= 0
}
