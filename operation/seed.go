package operation

import (
	"fmt"

	"github.com/Qalifah/portsim/container"
	"github.com/Qalifah/portsim/port"
	"github.com/Qalifah/portsim/ship"
)

// ContainerSpec describes a container present when the simulation starts
type ContainerSpec struct {
	ID     container.ID `json:"id"`
	Kind   string       `json:"kind"`
	Weight float64      `json:"weight"`
}

// PortSpec describes a port and the containers waiting at it
type PortSpec struct {
	ID         port.ID         `json:"id"`
	Latitude   float64         `json:"latitude"`
	Longitude  float64         `json:"longitude"`
	Containers []ContainerSpec `json:"containers,omitempty"`
}

// ShipSpec describes a ship, the port it starts at and its initial cargo.
// The capacity limits sit at the top level of the descriptor.
type ShipSpec struct {
	ID     ship.ID `json:"id"`
	Fuel   float64 `json:"fuel"`
	PortID port.ID `json:"current_port_id"`
	ship.Capacity
	FuelPerDistance float64         `json:"fuel_consumption_per_distance_unit"`
	Containers      []ContainerSpec `json:"containers,omitempty"`
}

// Fleet is the starting state of a simulation
type Fleet struct {
	Ports []PortSpec `json:"ports"`
	Ships []ShipSpec `json:"ships"`
}

// Seed stores the fleet's ports and ships and docks every ship at its start port.
func Seed(ports port.Repository, ships ship.Repository, f Fleet, opts ...ship.Option) error {
	seen := make(map[port.ID]bool, len(f.Ports))
	for _, ps := range f.Ports {
		if seen[ps.ID] {
			return fmt.Errorf("%w: duplicate port %d", ErrInvalidArgument, ps.ID)
		}
		seen[ps.ID] = true

		p := port.New(ps.ID, ps.Latitude, ps.Longitude)
		for _, cs := range ps.Containers {
			c, err := container.New(cs.Kind, cs.ID, cs.Weight)
			if err != nil {
				return fmt.Errorf("port %d: %w", ps.ID, err)
			}
			p.Store(c)
		}
		if err := ports.Store(p); err != nil {
			return err
		}
	}

	for _, ss := range f.Ships {
		if _, err := ships.Find(ss.ID); err == nil {
			return fmt.Errorf("%w: duplicate ship %d", ErrInvalidArgument, ss.ID)
		}
		at, err := ports.Find(ss.PortID)
		if err != nil {
			return fmt.Errorf("ship %d: %w: %w", ss.ID, ErrUnknownEntity, err)
		}

		s := ship.New(ss.ID, ss.Fuel, at, ss.Capacity, ss.FuelPerDistance, opts...)
		for _, cs := range ss.Containers {
			c, err := container.New(cs.Kind, cs.ID, cs.Weight)
			if err != nil {
				return fmt.Errorf("ship %d: %w", ss.ID, err)
			}
			if err := s.Load(c); err != nil {
				return fmt.Errorf("ship %d: %w", ss.ID, err)
			}
		}
		if err := ships.Store(s); err != nil {
			return err
		}
		at.Incoming(int(s.ID))
	}
	return nil
}
