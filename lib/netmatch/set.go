package netmatch

import (
	"net/netip"

	"go4.org/netipx"

	"github.com/netgrep/netgrep/lib/log"
)

// TargetSet holds the target networks of one address family in canonical
// collapsed form: no member overlaps another or forms a mergeable adjacent
// pair with one, and members are sorted by base address ascending. A nil
// set is valid and matches nothing.
type TargetSet []netip.Prefix

// BuildTargetSets parses every network spec, reports and drops the ones
// with no network interpretation, and collapses the rest into one
// canonical set per address family. The returned sets are immutable by
// convention and may be shared across any number of Match calls.
func BuildTargetSets(specs []string) (v4, v6 TargetSet) {
	var p4, p6 []netip.Prefix
	for _, spec := range specs {
		p, ok := ParseToken(spec)
		if !ok {
			log.Warnf("'%s' does not appear to be an IPv4 or IPv6 network, ignoring", spec)
			continue
		}
		switch FamilyOf(p) {
		case FamilyIPv4:
			p4 = append(p4, p)
		case FamilyIPv6:
			p6 = append(p6, p)
		}
	}
	return Collapse(p4), Collapse(p6)
}

// Collapse reduces networks of a single family to the minimal equivalent
// set of non-overlapping networks. Duplicates and contained networks
// disappear, adjacent equal-size siblings merge into their parent until no
// merge is possible. Collapsing an already collapsed set returns an equal
// set.
func Collapse(prefixes []netip.Prefix) TargetSet {
	var b netipx.IPSetBuilder
	for _, p := range prefixes {
		b.AddPrefix(p.Masked())
	}
	return collapse(&b)
}

func collapse(b *netipx.IPSetBuilder) TargetSet {
	set, err := b.IPSet()
	if err != nil {
		// Only reachable with invalid prefixes, which ParseToken never
		// produces.
		panic("netmatch: collapse: " + err.Error())
	}
	prefixes := set.Prefixes()
	if len(prefixes) == 0 {
		return nil
	}
	return TargetSet(prefixes)
}

// Contains reports whether candidate is a subnet of one of the member
// networks: a member contains the candidate iff the member's prefix length
// is no longer than the candidate's and the candidate's base address lies
// inside the member. Membership is boolean; the scan stops at the first
// hit.
func (s TargetSet) Contains(candidate netip.Prefix) bool {
	for _, target := range s {
		if target.Bits() <= candidate.Bits() && target.Contains(candidate.Addr()) {
			return true
		}
	}
	return false
}

// Strings renders the set in CIDR notation, preserving order.
func (s TargetSet) Strings() []string {
	if len(s) == 0 {
		return nil
	}
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.String()
	}
	return out
}
