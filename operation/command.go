package operation

import (
	"github.com/Qalifah/portsim/container"
	"github.com/Qalifah/portsim/port"
	"github.com/Qalifah/portsim/ship"
)

// Action names what a command does to its ship
type Action string

// valid actions
const (
	Load   Action = "load"
	Unload Action = "unload"
	Sail   Action = "sail"
	Refuel Action = "refuel"
)

func (a Action) valid() bool {
	switch a {
	case Load, Unload, Sail, Refuel:
		return true
	}
	return false
}

// Command is one step of a simulation. Which optional fields are needed
// depends on the action:
//
//	load    Container, and Weight unless the container is waiting at the ship's port. Kind defaults to basic.
//	unload  Container, Weight narrows the match
//	sail    Port
//	refuel  Amount
type Command struct {
	Action    Action        `json:"action"`
	Ship      ship.ID       `json:"ship_id"`
	Port      *port.ID      `json:"port_id,omitempty"`
	Container *container.ID `json:"container_id,omitempty"`
	Weight    *float64      `json:"weight,omitempty"`
	Kind      string        `json:"kind,omitempty"`
	Amount    *float64      `json:"amount,omitempty"`
}

// LoadCommand builds a load of a new container
func LoadCommand(s ship.ID, kind string, id container.ID, weight float64) Command {
	return Command{Action: Load, Ship: s, Kind: kind, Container: &id, Weight: &weight}
}

// UnloadCommand builds an unload matched by container id only
func UnloadCommand(s ship.ID, id container.ID) Command {
	return Command{Action: Unload, Ship: s, Container: &id}
}

// SailCommand builds a voyage to a port
func SailCommand(s ship.ID, to port.ID) Command {
	return Command{Action: Sail, Ship: s, Port: &to}
}

// RefuelCommand builds a refuel
func RefuelCommand(s ship.ID, amount float64) Command {
	return Command{Action: Refuel, Ship: s, Amount: &amount}
}

// Result is the outcome of the command at Index in the stream. A nil Err means
// the command was applied.
type Result struct {
	Index  int    `json:"index"`
	Action Action `json:"action"`
	Err    error  `json:"error,omitempty"`
}

// Report collects the results of a run in stream order
type Report struct {
	RunID   string   `json:"run_id"`
	Results []Result `json:"results"`
	Applied int      `json:"applied"`
	Failed  int      `json:"failed"`
}
