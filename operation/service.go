// Package operation replays command streams against ports and ships.
package operation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pborman/uuid"

	"github.com/Qalifah/portsim/container"
	"github.com/Qalifah/portsim/port"
	"github.com/Qalifah/portsim/ship"
	"github.com/Qalifah/portsim/snapshot"
)

var (
	// ErrInvalidArgument is returned when a command lacks a field its action needs.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnknownAction is returned for actions outside load, unload, sail and refuel.
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnknownEntity is returned when a command names a ship or port that does not exist.
	ErrUnknownEntity = errors.New("unknown entity")

	// ErrInvariantViolation means the state of ports and ships no longer agrees.
	// It stops a run.
	ErrInvariantViolation = errors.New("invariant violation")
)

// Service is the interface that provides simulation methods.
type Service interface {
	// Run applies commands in order. Failed commands are recorded in the
	// report and skipped; only an invariant violation ends the run early,
	// in which case the partial report is returned with the error.
	Run(commands []Command) (Report, error)

	// Snapshot returns the current state of every port and docked ship.
	Snapshot() (snapshot.Snapshot, error)
}

type service struct {
	ports port.Repository
	ships ship.Repository
}

// NewService creates a simulation service over the given working set.
func NewService(ports port.Repository, ships ship.Repository) Service {
	return &service{
		ports: ports,
		ships: ships,
	}
}

func (s *service) Run(commands []Command) (Report, error) {
	r := Report{
		RunID:   nextRunID(),
		Results: make([]Result, 0, len(commands)),
	}
	for i, cmd := range commands {
		err := s.apply(cmd)
		r.Results = append(r.Results, Result{Index: i, Action: cmd.Action, Err: err})
		if err != nil {
			r.Failed++
		} else {
			r.Applied++
		}
		if errors.Is(err, ErrInvariantViolation) {
			return r, fmt.Errorf("command %d: %w", i, err)
		}
	}
	return r, nil
}

func (s *service) Snapshot() (snapshot.Snapshot, error) {
	return snapshot.Build(s.ports, s.ships)
}

func (s *service) apply(cmd Command) error {
	if !cmd.Action.valid() {
		return fmt.Errorf("%w: %q", ErrUnknownAction, cmd.Action)
	}
	sh, err := s.ships.Find(cmd.Ship)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownEntity, err)
	}

	switch cmd.Action {
	case Load:
		return s.load(sh, cmd)
	case Unload:
		return s.unload(sh, cmd)
	case Sail:
		return s.sail(sh, cmd)
	default:
		if cmd.Amount == nil {
			return fmt.Errorf("%w: refuel needs an amount", ErrInvalidArgument)
		}
		return sh.Refuel(*cmd.Amount)
	}
}

func (s *service) load(sh *ship.Ship, cmd Command) error {
	if cmd.Container == nil {
		return fmt.Errorf("%w: load needs a container id", ErrInvalidArgument)
	}
	id := *cmd.Container

	if cmd.Weight == nil {
		at := sh.Port()
		c, ok := at.Find(id)
		if !ok {
			return fmt.Errorf("%w: container %d is not at port %d and has no weight", ErrInvalidArgument, id, at.ID)
		}
		if err := sh.Load(c); err != nil {
			return err
		}
		_, err := at.Take(id)
		return err
	}

	// A new container must not reuse the id of one waiting at the port.
	if at := sh.Port(); hasResident(at, id) {
		return fmt.Errorf("%w: %d is waiting at port %d", port.ErrDuplicateContainer, id, at.ID)
	}

	kind := cmd.Kind
	if kind == "" {
		kind = container.Basic.String()
	}
	c, err := container.New(kind, id, *cmd.Weight)
	if err != nil {
		return err
	}
	return sh.Load(c)
}

// Unloaded containers stay at the port the ship is lying at.
func (s *service) unload(sh *ship.Ship, cmd Command) error {
	if cmd.Container == nil {
		return fmt.Errorf("%w: unload needs a container id", ErrInvalidArgument)
	}
	id := *cmd.Container

	target := container.Container{ID: id}
	if cmd.Weight != nil {
		target.Weight = *cmd.Weight
	} else {
		c, ok := sh.Find(id)
		if !ok {
			return fmt.Errorf("%w: %d", ship.ErrNotAboard, id)
		}
		target = c
	}

	at := sh.Port()
	if hasResident(at, id) {
		return fmt.Errorf("%w: %d at port %d", port.ErrDuplicateContainer, id, at.ID)
	}
	c, err := sh.Unload(target)
	if err != nil {
		return err
	}
	at.Store(c)
	return nil
}

func hasResident(p *port.Port, id container.ID) bool {
	_, ok := p.Find(id)
	return ok
}

func (s *service) sail(sh *ship.Ship, cmd Command) error {
	if cmd.Port == nil {
		return fmt.Errorf("%w: sail needs a port id", ErrInvalidArgument)
	}
	dest, err := s.ports.Find(*cmd.Port)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnknownEntity, err)
	}
	if err := sh.SailTo(dest); err != nil {
		if errors.Is(err, port.ErrNotDocked) {
			return fmt.Errorf("%w: %w", ErrInvariantViolation, err)
		}
		return err
	}
	return nil
}

func nextRunID() string {
	return strings.Split(strings.ToUpper(uuid.New()), "-")[0]
}
