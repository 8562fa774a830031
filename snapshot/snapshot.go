// Package snapshot projects the state of ports and ships into a read model.
package snapshot

import (
	"fmt"
	"strconv"

	"github.com/Qalifah/portsim/container"
	"github.com/Qalifah/portsim/port"
	"github.com/Qalifah/portsim/ship"
)

// Snapshot is the state of every port, in port order
type Snapshot struct {
	Ports []Port `json:"ports"`
}

// Port is a read model of a port and the ships docked at it
type Port struct {
	Label      string                             `json:"label"`
	Lat        float64                            `json:"lat"`
	Lon        float64                            `json:"lon"`
	Containers map[container.Group][]container.ID `json:"containers"`
	Ships      []Ship                             `json:"ships"`
}

// Ship is a read model of a docked ship
type Ship struct {
	Label      string                             `json:"label"`
	FuelLeft   float64                            `json:"fuel_left"`
	Containers map[container.Group][]container.ID `json:"containers"`
}

// Build projects ports and the ships docked at them. It does not mutate anything.
func Build(ports port.Repository, ships ship.Repository) (Snapshot, error) {
	snap := Snapshot{Ports: make([]Port, 0)}
	for _, p := range ports.FindAll() {
		view := Port{
			Label:      PortLabel(p.ID),
			Lat:        p.Latitude,
			Lon:        p.Longitude,
			Containers: container.GroupIDs(p.Containers()),
			Ships:      make([]Ship, 0),
		}
		for _, id := range p.Docked() {
			s, err := ships.Find(ship.ID(id))
			if err != nil {
				return Snapshot{}, fmt.Errorf("port %d: %w", p.ID, err)
			}
			view.Ships = append(view.Ships, Ship{
				Label:      ShipLabel(s.ID),
				FuelLeft:   round2(s.Fuel()),
				Containers: container.GroupIDs(s.Manifest()),
			})
		}
		snap.Ports = append(snap.Ports, view)
	}
	return snap, nil
}

// ByLabel indexes the ports of the snapshot by their label
func (s Snapshot) ByLabel() map[string]Port {
	out := make(map[string]Port, len(s.Ports))
	for _, p := range s.Ports {
		out[p.Label] = p
	}
	return out
}

// Ship finds a docked ship by label
func (p Port) Ship(label string) (Ship, bool) {
	for _, s := range p.Ships {
		if s.Label == label {
			return s, true
		}
	}
	return Ship{}, false
}

// PortLabel is the key a port is listed under
func PortLabel(id port.ID) string { return fmt.Sprintf("Port %d", id) }

// ShipLabel is the key a ship is listed under
func ShipLabel(id ship.ID) string { return fmt.Sprintf("ship_%d", id) }

// round2 rounds the exact value of f to two decimals, ties to even.
func round2(f float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(f, 'f', 2, 64), 64)
	return r
}
