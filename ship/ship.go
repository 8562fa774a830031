package ship

import (
	"errors"
	"fmt"

	"github.com/Qalifah/portsim/container"
	"github.com/Qalifah/portsim/port"
)

// ID uniquely identifies a ship
type ID int

// Capacity is the declared cargo configuration of a ship. Only All is
// enforced unless the ship is built WithCapacityChecks.
type Capacity struct {
	TotalWeight  float64 `json:"total_weight_capacity"`
	All          int     `json:"max_all_containers"`
	Heavy        int     `json:"max_heavy_containers"`
	Refrigerated int     `json:"max_refrigerated_containers"`
	Liquid       int     `json:"max_liquid_containers"`
}

// Ship carries containers between ports and burns fuel doing so
type Ship struct {
	ID              ID
	Capacity        Capacity
	FuelPerDistance float64

	fuel     float64
	port     *port.Port
	manifest []container.Container
	checks   bool
}

// Option configures a ship
type Option func(*Ship)

// WithCapacityChecks enforces the per-kind and total weight limits on Load.
func WithCapacityChecks() Option {
	return func(s *Ship) { s.checks = true }
}

// New creates a ship lying at the given port. Docking it there is up to the caller.
func New(id ID, fuel float64, at *port.Port, c Capacity, fuelPerDistance float64, opts ...Option) *Ship {
	s := &Ship{
		ID:              id,
		Capacity:        c,
		FuelPerDistance: fuelPerDistance,
		fuel:            fuel,
		port:            at,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var (
	// ErrUnknown is used when a ship can't be found
	ErrUnknown = errors.New("unknown ship")

	// ErrCapacityExceeded is used when a load would overfill the ship
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrDuplicateContainer is used when a container with the same id is already aboard
	ErrDuplicateContainer = errors.New("container already aboard")

	// ErrNotAboard is used when an unloaded container is not in the manifest
	ErrNotAboard = errors.New("container not aboard")

	// ErrInsufficientFuel is used when the ship can't afford a trip
	ErrInsufficientFuel = errors.New("insufficient fuel")

	// ErrNegativeRefuel is used when a refuel amount is below zero
	ErrNegativeRefuel = errors.New("negative refuel amount")
)

// Fuel returns the fuel left in the tanks
func (s *Ship) Fuel() float64 { return s.fuel }

// Port returns the port the ship is lying at
func (s *Ship) Port() *port.Port { return s.port }

// Manifest returns the containers aboard in loading order
func (s *Ship) Manifest() []container.Container {
	return append([]container.Container(nil), s.manifest...)
}

// Load puts a container aboard
func (s *Ship) Load(c container.Container) error {
	if len(s.manifest) >= s.Capacity.All {
		return fmt.Errorf("%w: %d of %d containers aboard", ErrCapacityExceeded, len(s.manifest), s.Capacity.All)
	}
	if _, ok := s.Find(c.ID); ok {
		return fmt.Errorf("%w: %d", ErrDuplicateContainer, c.ID)
	}
	if s.checks {
		if err := s.checkLimits(c); err != nil {
			return err
		}
	}
	s.manifest = append(s.manifest, c)
	return nil
}

func (s *Ship) checkLimits(c container.Container) error {
	limits := map[container.Kind]int{
		container.Heavy:        s.Capacity.Heavy,
		container.Refrigerated: s.Capacity.Refrigerated,
		container.Liquid:       s.Capacity.Liquid,
	}
	if limit, ok := limits[c.Kind]; ok {
		n := 0
		for _, m := range s.manifest {
			if m.Kind == c.Kind {
				n++
			}
		}
		if n >= limit {
			return fmt.Errorf("%w: %d of %d %s containers aboard", ErrCapacityExceeded, n, limit, c.Kind)
		}
	}

	weight := c.Weight
	for _, m := range s.manifest {
		weight += m.Weight
	}
	if weight > s.Capacity.TotalWeight {
		return fmt.Errorf("%w: %v over weight capacity %v", ErrCapacityExceeded, weight, s.Capacity.TotalWeight)
	}
	return nil
}

// Find looks up a container aboard by id
func (s *Ship) Find(id container.ID) (container.Container, bool) {
	for _, c := range s.manifest {
		if c.ID == id {
			return c, true
		}
	}
	return container.Container{}, false
}

// Unload takes the first container equal to c off the ship and returns it
func (s *Ship) Unload(c container.Container) (container.Container, error) {
	for i, m := range s.manifest {
		if m.Equal(c) {
			s.manifest = append(s.manifest[:i], s.manifest[i+1:]...)
			return m, nil
		}
	}
	return container.Container{}, fmt.Errorf("%w: %d", ErrNotAboard, c.ID)
}

// TripCost is the fuel a voyage to dest would burn with the current manifest
func (s *Ship) TripCost(dest *port.Port) float64 {
	cargo := 0.0
	for _, c := range s.manifest {
		cargo += c.Consumption()
	}
	return s.FuelPerDistance*s.port.DistanceTo(dest) + cargo
}

// SailTo moves the ship to dest. Either the fuel is paid and the ship changes
// ports, or nothing changes.
func (s *Ship) SailTo(dest *port.Port) error {
	cost := s.TripCost(dest)
	if s.fuel < cost {
		return fmt.Errorf("%w: trip costs %v, %v left", ErrInsufficientFuel, cost, s.fuel)
	}
	if err := s.port.Outgoing(int(s.ID)); err != nil {
		return fmt.Errorf("ship %d leaving port %d: %w", s.ID, s.port.ID, err)
	}
	s.fuel -= cost
	dest.Incoming(int(s.ID))
	s.port = dest
	return nil
}

// Refuel adds fuel to the tanks
func (s *Ship) Refuel(amount float64) error {
	if amount < 0 {
		return fmt.Errorf("%w: %v", ErrNegativeRefuel, amount)
	}
	s.fuel += amount
	return nil
}

// Repository provides access to a ship store
type Repository interface {
	Store(s *Ship) error
	Find(id ID) (*Ship, error)
	FindAll() []*Ship
}
