package operation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Qalifah/portsim/container"
	"github.com/Qalifah/portsim/inmem"
	"github.com/Qalifah/portsim/port"
	"github.com/Qalifah/portsim/ship"
)

// twoPorts has port 1 at the origin and port 2 five units away, with ship 1
// docked at port 1.
func twoPorts(fuel, rate float64, all int) Fleet {
	return Fleet{
		Ports: []PortSpec{
			{ID: 1, Latitude: 0, Longitude: 0},
			{ID: 2, Latitude: 3, Longitude: 4},
		},
		Ships: []ShipSpec{
			{ID: 1, Fuel: fuel, PortID: 1, Capacity: ship.Capacity{All: all}, FuelPerDistance: rate},
		},
	}
}

func newTestService(t *testing.T, f Fleet, opts ...ship.Option) (Service, port.Repository, ship.Repository) {
	t.Helper()
	ports := inmem.NewPortRepository()
	ships := inmem.NewShipRepository()
	require.NoError(t, Seed(ports, ships, f, opts...))
	return NewService(ports, ships), ports, ships
}

func find(t *testing.T, ports port.Repository, ships ship.Repository, s ship.ID, p port.ID) (*ship.Ship, *port.Port) {
	t.Helper()
	sh, err := ships.Find(s)
	require.NoError(t, err)
	pt, err := ports.Find(p)
	require.NoError(t, err)
	return sh, pt
}

func TestRun_Sail(t *testing.T) {
	svc, ports, ships := newTestService(t, twoPorts(20, 1.0, 10))

	r, err := svc.Run([]Command{SailCommand(1, 2)})
	require.NoError(t, err)
	require.Len(t, r.Results, 1)
	assert.NoError(t, r.Results[0].Err)
	assert.Equal(t, 1, r.Applied)
	assert.NotEmpty(t, r.RunID)

	s, b := find(t, ports, ships, 1, 2)
	a, _ := ports.Find(1)
	assert.Equal(t, 15.0, s.Fuel())
	assert.Same(t, b, s.Port())
	assert.True(t, b.IsDocked(1))
	assert.False(t, a.IsDocked(1))
	assert.Equal(t, []int{1}, a.Departed())
}

func TestRun_FailedCommandIsRecordedAndSkipped(t *testing.T) {
	svc, ports, ships := newTestService(t, twoPorts(9.0, 1.0, 10))

	r, err := svc.Run([]Command{
		LoadCommand(1, "basic", 1, 2),
		SailCommand(1, 2),
		RefuelCommand(1, 1),
		SailCommand(1, 2),
	})
	require.NoError(t, err)
	require.Len(t, r.Results, 4)

	assert.NoError(t, r.Results[0].Err)
	assert.ErrorIs(t, r.Results[1].Err, ship.ErrInsufficientFuel)
	assert.NoError(t, r.Results[2].Err)
	assert.NoError(t, r.Results[3].Err)
	assert.Equal(t, 3, r.Applied)
	assert.Equal(t, 1, r.Failed)
	for i, res := range r.Results {
		assert.Equal(t, i, res.Index)
	}

	s, b := find(t, ports, ships, 1, 2)
	assert.Equal(t, 0.0, s.Fuel())
	assert.Same(t, b, s.Port())
}

func TestRun_InsufficientFuelLeavesStateUnchanged(t *testing.T) {
	svc, ports, ships := newTestService(t, twoPorts(9.0, 1.0, 10))
	_, err := svc.Run([]Command{LoadCommand(1, "basic", 1, 2)})
	require.NoError(t, err)

	s, a := find(t, ports, ships, 1, 1)
	b, _ := ports.Find(2)
	beforeDocked, beforeDeparted := a.Docked(), a.Departed()

	r, err := svc.Run([]Command{SailCommand(1, 2)})
	require.NoError(t, err)
	assert.ErrorIs(t, r.Results[0].Err, ship.ErrInsufficientFuel)

	assert.Equal(t, 9.0, s.Fuel())
	assert.Same(t, a, s.Port())
	assert.Equal(t, beforeDocked, a.Docked())
	assert.Equal(t, beforeDeparted, a.Departed())
	assert.Empty(t, b.Docked())
}

func TestRun_CapacityBoundHolds(t *testing.T) {
	svc, _, ships := newTestService(t, twoPorts(0, 1.0, 3))

	var cmds []Command
	for i := 0; i < 6; i++ {
		cmds = append(cmds, LoadCommand(1, "heavy", container.ID(i), 1))
	}
	r, err := svc.Run(cmds)
	require.NoError(t, err)

	assert.Equal(t, 3, r.Applied)
	for _, res := range r.Results[3:] {
		assert.ErrorIs(t, res.Err, ship.ErrCapacityExceeded)
	}
	s, _ := ships.Find(1)
	assert.LessOrEqual(t, len(s.Manifest()), s.Capacity.All)
}

func TestRun_LoadUnloadRoundTrip(t *testing.T) {
	svc, ports, ships := newTestService(t, twoPorts(0, 1.0, 10))

	r, err := svc.Run([]Command{
		LoadCommand(1, "liquid", 5, 10),
		UnloadCommand(1, 5),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, r.Applied)

	s, a := find(t, ports, ships, 1, 1)
	assert.Empty(t, s.Manifest())

	// the unloaded container stays at the port the ship was lying at
	c, ok := a.Find(5)
	require.True(t, ok)
	assert.Equal(t, container.Liquid, c.Kind)
	assert.Equal(t, 10.0, c.Weight)
}

func TestRun_UnloadWithWeight(t *testing.T) {
	svc, _, _ := newTestService(t, twoPorts(0, 1.0, 10))

	wrong, right := 11.0, 10.0
	id := container.ID(5)
	r, err := svc.Run([]Command{
		LoadCommand(1, "basic", id, 10),
		{Action: Unload, Ship: 1, Container: &id, Weight: &wrong},
		{Action: Unload, Ship: 1, Container: &id, Weight: &right},
		UnloadCommand(1, id),
	})
	require.NoError(t, err)

	assert.NoError(t, r.Results[0].Err)
	assert.ErrorIs(t, r.Results[1].Err, ship.ErrNotAboard)
	assert.NoError(t, r.Results[2].Err)
	assert.ErrorIs(t, r.Results[3].Err, ship.ErrNotAboard)
}

func TestRun_LoadFromPort(t *testing.T) {
	f := twoPorts(100, 1.0, 10)
	f.Ports[1].Containers = []ContainerSpec{{ID: 30, Kind: "refrigerated", Weight: 2}}
	f.Ships = append(f.Ships, ShipSpec{ID: 2, Fuel: 0, PortID: 2, Capacity: ship.Capacity{All: 1}, FuelPerDistance: 1})
	svc, ports, ships := newTestService(t, f)

	id := container.ID(30)
	r, err := svc.Run([]Command{
		{Action: Load, Ship: 1, Container: &id},
		{Action: Load, Ship: 2, Container: &id},
		{Action: Load, Ship: 2, Container: &id},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, r.Results[0].Err, ErrInvalidArgument, "ship 1 is not at the port holding the container")
	assert.NoError(t, r.Results[1].Err)
	assert.ErrorIs(t, r.Results[2].Err, ErrInvalidArgument, "the container has left the port")

	s, b := find(t, ports, ships, 2, 2)
	require.Len(t, s.Manifest(), 1)
	assert.Equal(t, container.Refrigerated, s.Manifest()[0].Kind)
	assert.Empty(t, b.Containers())
}

func TestRun_LoadFromPortRejectedKeepsContainerAtPort(t *testing.T) {
	f := twoPorts(0, 1.0, 0)
	f.Ports[0].Containers = []ContainerSpec{{ID: 30, Kind: "basic", Weight: 2}}
	svc, ports, _ := newTestService(t, f)

	id := container.ID(30)
	r, err := svc.Run([]Command{{Action: Load, Ship: 1, Container: &id}})
	require.NoError(t, err)
	assert.ErrorIs(t, r.Results[0].Err, ship.ErrCapacityExceeded)

	a, _ := ports.Find(1)
	_, ok := a.Find(30)
	assert.True(t, ok)
}

func TestRun_LoadRejectsIDWaitingAtPort(t *testing.T) {
	f := twoPorts(0, 1.0, 10)
	f.Ports[0].Containers = []ContainerSpec{{ID: 5, Kind: "basic", Weight: 1}}
	svc, ports, ships := newTestService(t, f)

	r, err := svc.Run([]Command{
		LoadCommand(1, "heavy", 5, 3),
		UnloadCommand(1, 5),
	})
	require.NoError(t, err)
	assert.ErrorIs(t, r.Results[0].Err, port.ErrDuplicateContainer)
	assert.ErrorIs(t, r.Results[1].Err, ship.ErrNotAboard)

	s, a := find(t, ports, ships, 1, 1)
	assert.Empty(t, s.Manifest())
	assert.Equal(t, []container.Container{{ID: 5, Weight: 1, Kind: container.Basic}}, a.Containers())
}

func TestRun_UnloadRejectsIDWaitingAtPort(t *testing.T) {
	f := twoPorts(100, 1.0, 10)
	f.Ports[1].Containers = []ContainerSpec{{ID: 5, Kind: "basic", Weight: 1}}
	svc, ports, ships := newTestService(t, f)

	r, err := svc.Run([]Command{
		LoadCommand(1, "heavy", 5, 3),
		SailCommand(1, 2),
		UnloadCommand(1, 5),
	})
	require.NoError(t, err)
	assert.NoError(t, r.Results[0].Err)
	assert.NoError(t, r.Results[1].Err)
	assert.ErrorIs(t, r.Results[2].Err, port.ErrDuplicateContainer)

	s, b := find(t, ports, ships, 1, 2)
	assert.Equal(t, []container.Container{{ID: 5, Weight: 3, Kind: container.Heavy}}, s.Manifest())
	assert.Equal(t, []container.Container{{ID: 5, Weight: 1, Kind: container.Basic}}, b.Containers())
}

func TestRun_DefaultKindIsBasic(t *testing.T) {
	svc, _, ships := newTestService(t, twoPorts(0, 1.0, 10))

	_, err := svc.Run([]Command{LoadCommand(1, "", 1, 4)})
	require.NoError(t, err)

	s, _ := ships.Find(1)
	require.Len(t, s.Manifest(), 1)
	assert.Equal(t, container.Basic, s.Manifest()[0].Kind)
	assert.Equal(t, 10.0, s.Manifest()[0].Consumption())
}

func TestRun_RecoverableErrors(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want error
	}{
		{"unknown ship", RefuelCommand(9, 1), ErrUnknownEntity},
		{"unknown ship wraps repository error", RefuelCommand(9, 1), ship.ErrUnknown},
		{"unknown port", SailCommand(1, 9), ErrUnknownEntity},
		{"unknown port wraps repository error", SailCommand(1, 9), port.ErrUnknown},
		{"unknown kind", LoadCommand(1, "explosive", 1, 1), container.ErrUnknownKind},
		{"negative weight", LoadCommand(1, "basic", 1, -1), container.ErrInvalidWeight},
		{"unknown action", Command{Action: "scuttle", Ship: 1}, ErrUnknownAction},
		{"load without container", Command{Action: Load, Ship: 1}, ErrInvalidArgument},
		{"unload without container", Command{Action: Unload, Ship: 1}, ErrInvalidArgument},
		{"unload missing container", UnloadCommand(1, 4), ship.ErrNotAboard},
		{"sail without port", Command{Action: Sail, Ship: 1}, ErrInvalidArgument},
		{"refuel without amount", Command{Action: Refuel, Ship: 1}, ErrInvalidArgument},
		{"negative refuel", RefuelCommand(1, -5), ship.ErrNegativeRefuel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, ships := newTestService(t, twoPorts(20, 1.0, 10))

			r, err := svc.Run([]Command{tt.cmd, RefuelCommand(1, 1)})
			require.NoError(t, err, "recoverable errors must not end the run")
			require.Len(t, r.Results, 2)
			assert.ErrorIs(t, r.Results[0].Err, tt.want)
			assert.NoError(t, r.Results[1].Err)

			s, _ := ships.Find(1)
			assert.Equal(t, 21.0, s.Fuel())
			assert.Empty(t, s.Manifest())
		})
	}
}

func TestRun_InvariantViolationStopsRun(t *testing.T) {
	ports := inmem.NewPortRepository()
	ships := inmem.NewShipRepository()
	a := port.New(1, 0, 0)
	b := port.New(2, 3, 4)
	require.NoError(t, ports.Store(a))
	require.NoError(t, ports.Store(b))
	// stored but never docked at a
	adrift := ship.New(1, 20, a, ship.Capacity{All: 1}, 1)
	require.NoError(t, ships.Store(adrift))

	svc := NewService(ports, ships)
	r, err := svc.Run([]Command{
		RefuelCommand(1, 5),
		SailCommand(1, 2),
		RefuelCommand(1, 5),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvariantViolation)
	assert.ErrorIs(t, err, port.ErrNotDocked)
	require.Len(t, r.Results, 2, "commands after the violation are not applied")
	assert.Equal(t, 1, r.Applied)
	assert.Equal(t, 1, r.Failed)
	assert.Equal(t, 25.0, adrift.Fuel())
	assert.Empty(t, b.Docked())
}

func TestSnapshot_DoubledHeavyMembership(t *testing.T) {
	svc, _, _ := newTestService(t, twoPorts(100, 1.0, 10))

	r, err := svc.Run([]Command{LoadCommand(1, "refrigerated", 9, 3)})
	require.NoError(t, err)
	require.NoError(t, r.Results[0].Err)

	snap, err := svc.Snapshot()
	require.NoError(t, err)

	s, ok := snap.ByLabel()["Port 1"].Ship("ship_1")
	require.True(t, ok)
	assert.Equal(t, []container.ID{9}, s.Containers[container.RefrigeratedGroup])
	assert.Equal(t, []container.ID{9}, s.Containers[container.HeavyGroup])
	assert.Empty(t, s.Containers[container.BasicGroup])
	assert.Empty(t, s.Containers[container.LiquidGroup])
}

func TestSnapshot_ReflectsOnlySuccessfulCommands(t *testing.T) {
	svc, _, _ := newTestService(t, twoPorts(9, 1.0, 10))

	_, err := svc.Run([]Command{
		LoadCommand(1, "basic", 1, 2),
		SailCommand(1, 2),
		LoadCommand(1, "plutonium", 2, 2),
	})
	require.NoError(t, err)

	snap, err := svc.Snapshot()
	require.NoError(t, err)
	byLabel := snap.ByLabel()

	assert.Empty(t, byLabel["Port 2"].Ships)
	s, ok := byLabel["Port 1"].Ship("ship_1")
	require.True(t, ok)
	assert.Equal(t, 9.0, s.FuelLeft)
	assert.Equal(t, []container.ID{1}, s.Containers[container.BasicGroup])
}
