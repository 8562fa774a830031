package main

import (
	"github.com/Qalifah/portsim/operation"
	"github.com/Qalifah/portsim/ship"
)

// Sample ports.
var (
	Kyiv      = operation.PortSpec{ID: 1, Latitude: 50.45, Longitude: 30.52}
	Amsterdam = operation.PortSpec{ID: 2, Latitude: 52.37, Longitude: 4.90}
)

// sampleFleet is two ships, each lying at one of the sample ports.
var sampleFleet = operation.Fleet{
	Ports: []operation.PortSpec{Kyiv, Amsterdam},
	Ships: []operation.ShipSpec{
		{
			ID:              1,
			Fuel:            500,
			PortID:          Kyiv.ID,
			Capacity:        ship.Capacity{TotalWeight: 1000, All: 10, Heavy: 5, Refrigerated: 2, Liquid: 3},
			FuelPerDistance: 1.0,
		},
		{
			ID:              2,
			Fuel:            600,
			PortID:          Amsterdam.ID,
			Capacity:        ship.Capacity{TotalWeight: 1200, All: 12, Heavy: 6, Refrigerated: 3, Liquid: 4},
			FuelPerDistance: 1.2,
		},
	},
}

var sampleCommands = []operation.Command{
	operation.LoadCommand(1, "basic", 101, 100),
	operation.SailCommand(1, Amsterdam.ID),
	operation.RefuelCommand(1, 300),
	operation.LoadCommand(2, "heavy", 102, 200),
	operation.SailCommand(2, Kyiv.ID),
	operation.RefuelCommand(2, 400),
}
