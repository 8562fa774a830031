package container

import (
	"errors"
	"fmt"
)

// ID identifies a container within the manifest that owns it
type ID int

// Container is a unit of cargo
type Container struct {
	ID     ID      `json:"id"`
	Weight float64 `json:"weight"`
	Kind   Kind    `json:"kind"`
}

// ErrInvalidWeight is used when a container is given a negative weight
var ErrInvalidWeight = errors.New("invalid container weight")

// New creates a container of the named kind
func New(kind string, id ID, weight float64) (Container, error) {
	k, err := ParseKind(kind)
	if err != nil {
		return Container{}, err
	}
	if weight < 0 {
		return Container{}, fmt.Errorf("%w: %v", ErrInvalidWeight, weight)
	}
	return Container{ID: id, Weight: weight, Kind: k}, nil
}

// Consumption returns the fuel this container costs on one voyage leg
func (c Container) Consumption() float64 {
	return c.Kind.Rate() * c.Weight
}

// Equal compares containers by id and weight. Kind is not part of the identity.
func (c Container) Equal(other Container) bool {
	return c.ID == other.ID && c.Weight == other.Weight
}

// GroupIDs collects container ids per listing group, keeping the order of cs.
// Every group is present, possibly empty.
func GroupIDs(cs []Container) map[Group][]ID {
	out := make(map[Group][]ID, len(Groups))
	for _, g := range Groups {
		ids := make([]ID, 0)
		for _, c := range cs {
			if c.Kind.InGroup(g) {
				ids = append(ids, c.ID)
			}
		}
		out[g] = ids
	}
	return out
}
