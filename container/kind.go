package container

import (
	"errors"
	"fmt"
)

// Kind describes the type of a container
type Kind int

// valid container kinds
const (
	Basic Kind = iota
	Heavy
	Refrigerated
	Liquid
)

func (k Kind) String() string {
	switch k {
	case Basic:
		return "basic"
	case Heavy:
		return "heavy"
	case Refrigerated:
		return "refrigerated"
	case Liquid:
		return "liquid"
	}
	return ""
}

// Rate is the fuel consumed per unit of weight for one voyage leg.
func (k Kind) Rate() float64 {
	return rates[k]
}

var rates = map[Kind]float64{
	Basic:        2.5,
	Heavy:        3.0,
	Refrigerated: 5.0,
	Liquid:       4.0,
}

// ErrUnknownKind is used when a kind string is outside the closed set
var ErrUnknownKind = errors.New("unknown container kind")

// ParseKind maps a kind name onto a Kind.
func ParseKind(s string) (Kind, error) {
	kinds := map[string]Kind{
		Basic.String():        Basic,
		Heavy.String():        Heavy,
		Refrigerated.String(): Refrigerated,
		Liquid.String():       Liquid,
	}
	k, ok := kinds[s]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
	return k, nil
}

// Group is a bucket of containers in a snapshot listing
type Group string

// output groups, in listing order
const (
	BasicGroup        Group = "basic_container"
	HeavyGroup        Group = "heavy_container"
	RefrigeratedGroup Group = "refrigerated_container"
	LiquidGroup       Group = "liquid_container"
)

// Groups lists every group in listing order.
var Groups = []Group{BasicGroup, HeavyGroup, RefrigeratedGroup, LiquidGroup}

// Refrigerated and liquid containers are heavy containers for listing purposes,
// so they show up in the heavy group as well as their own.
var members = map[Group][]Kind{
	BasicGroup:        {Basic},
	HeavyGroup:        {Heavy, Refrigerated, Liquid},
	RefrigeratedGroup: {Refrigerated},
	LiquidGroup:       {Liquid},
}

// InGroup reports whether a container of kind k is listed under g.
func (k Kind) InGroup(g Group) bool {
	for _, m := range members[g] {
		if m == k {
			return true
		}
	}
	return false
}
