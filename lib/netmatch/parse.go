package netmatch

import (
	"encoding/binary"
	"math/bits"
	"net/netip"
	"strings"
)

// ParseToken converts one whitespace-delimited token into a canonical
// network. Interpretations are tried in a fixed order:
//
//  1. CIDR notation ("10.0.0.0/24", "2001:db8::/32") or a bare address,
//     which becomes a host network (/32 or /128). Host bits after the
//     prefix are cleared.
//  2. An address with a dotted mask ("192.168.1.0/255.255.255.0"),
//     IPv4 only.
//
// Anything else has no network interpretation and the second return value
// is false. IPv6 zone IDs ("fe80::1%eth0") are treated as plain text: the
// set operations would silently drop the zone and then match the wrong
// interface's addresses.
func ParseToken(s string) (netip.Prefix, bool) {
	if s == "" || strings.Contains(s, "%") {
		return netip.Prefix{}, false
	}

	if i := strings.IndexByte(s, '/'); i >= 0 {
		if strings.Contains(s[i+1:], ".") {
			return ParseMaskPair(s[:i], s[i+1:])
		}
		p, err := netip.ParsePrefix(s)
		if err != nil {
			return netip.Prefix{}, false
		}
		return p.Masked(), true
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Prefix{}, false
	}
	return netip.PrefixFrom(addr, addr.BitLen()), true
}

// ParseMaskPair interprets addrStr/maskStr as an IPv4 "interface with mask"
// form and converts it to the equivalent canonical network. Host bits in
// the address are cleared. Families are never mixed: both parts must be
// IPv4.
func ParseMaskPair(addrStr, maskStr string) (netip.Prefix, bool) {
	addr, err := netip.ParseAddr(addrStr)
	if err != nil {
		return netip.Prefix{}, false
	}
	return maskedPrefix(addr, maskStr)
}

func maskedPrefix(addr netip.Addr, maskStr string) (netip.Prefix, bool) {
	mask, err := netip.ParseAddr(maskStr)
	if err != nil || !addr.Is4() || !mask.Is4() {
		return netip.Prefix{}, false
	}
	ones, ok := maskBits(mask)
	if !ok {
		return netip.Prefix{}, false
	}
	return netip.PrefixFrom(addr, ones).Masked(), true
}

// maskBits converts a dotted-quad mask to a prefix length. Both netmask
// (255.255.255.0) and hostmask (0.0.0.255) spellings are accepted; a mask
// contiguous in neither direction is rejected.
func maskBits(mask netip.Addr) (int, bool) {
	b := mask.As4()
	v := binary.BigEndian.Uint32(b[:])
	if inv := ^v; inv&(inv+1) == 0 {
		return bits.OnesCount32(v), true
	}
	if v&(v+1) == 0 {
		return 32 - bits.OnesCount32(v), true
	}
	return 0, false
}
