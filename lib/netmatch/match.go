package netmatch

import "net/netip"

// Match reports which token positions of one input line fall inside a
// target network. Tokens without a network interpretation never match.
// The result depends only on the token slice and the two sets; no state
// survives between calls.
func Match(tokens []string, v4, v6 TargetSet) []int {
	var matched []int

	// Interpretations assigned one position ahead by the pair-merge below.
	// A position with its slot set is already resolved and is not
	// re-parsed.
	ahead := make([]netip.Prefix, len(tokens))

	for i, token := range tokens {
		var working netip.Prefix
		if ahead[i].IsValid() {
			working = ahead[i]
		} else {
			p, ok := ParseToken(token)
			if !ok {
				continue
			}
			working = p

			// Address and mask frequently appear as two separate fields in
			// logs ("10.0.0.1 255.255.255.0"). When an IPv4 host address is
			// followed by a token that is both an IPv4 host address and a
			// syntactically valid dotted mask, the pair is reinterpreted as
			// one network and the merged result stands in for both
			// positions. Masks preceding the address and IPv6 equivalents
			// are intentionally not recognized.
			if isHostV4(working) && i+1 < len(tokens) {
				if next, ok := ParseToken(tokens[i+1]); ok && isHostV4(next) {
					if merged, ok := maskedPrefix(working.Addr(), tokens[i+1]); ok {
						working = merged
						ahead[i+1] = merged
					}
				}
			}
		}

		var targets TargetSet
		switch FamilyOf(working) {
		case FamilyIPv4:
			targets = v4
		case FamilyIPv6:
			targets = v6
		}
		if targets.Contains(working) {
			matched = append(matched, i)
		}
	}

	return matched
}

// isHostV4 reports whether p is a single IPv4 address, i.e. a /32 network.
func isHostV4(p netip.Prefix) bool {
	return p.Addr().Is4() && p.Bits() == 32
}
