package netmatch

import (
	"fmt"
	"net/netip"
)

// Family identifies the address family of a network. Candidates are only
// ever tested against targets of the same family.
type Family uint8

const (
	FamilyIPv4 Family = 4
	FamilyIPv6 Family = 6
)

func (f Family) String() string {
	switch f {
	case FamilyIPv4:
		return "IPv4"
	case FamilyIPv6:
		return "IPv6"
	default:
		return fmt.Sprintf("Family(%d)", uint8(f))
	}
}

// FamilyOf returns the address family of p. An invalid prefix reaching
// family partitioning is a bug in the token parser, not bad input, so it
// panics instead of mis-sorting.
func FamilyOf(p netip.Prefix) Family {
	if !p.IsValid() {
		panic(fmt.Sprintf("netmatch: invalid prefix %v reached family partitioning", p))
	}
	if p.Addr().Is4() {
		return FamilyIPv4
	}
	return FamilyIPv6
}
