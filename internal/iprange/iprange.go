// Package iprange expands IPv4 CIDR notation into inclusive address
// ranges using 32-bit unsigned arithmetic.
package iprange

import (
	"encoding/binary"
	"fmt"
	"net"
)

// Range is an inclusive IPv4 address range.
type Range struct {
	First uint32
	Last  uint32
}

// Count returns the number of addresses in the range.
func (r Range) Count() uint64 {
	return uint64(r.Last-r.First) + 1
}

// FromCIDR expands an IPv4 network in CIDR notation into its first and
// last addresses. The first address is the base address masked to the
// network; the last is first + 2^(32-prefix) - 1. IPv6 networks are
// rejected.
func FromCIDR(network string) (Range, error) {
	ip, ipnet, err := net.ParseCIDR(network)
	if err != nil {
		return Range{}, fmt.Errorf("parsing network %q: %w", network, err)
	}

	if ip.To4() == nil {
		return Range{}, fmt.Errorf("network %q: only IPv4 networks are supported", network)
	}

	ones, bits := ipnet.Mask.Size()
	if bits != 32 {
		return Range{}, fmt.Errorf("network %q: only IPv4 networks are supported", network)
	}

	// ParseCIDR already masks ipnet.IP to the network base.
	first := ToUint32(ipnet.IP)
	size := uint64(1) << (32 - ones)

	return Range{
		First: first,
		Last:  uint32(uint64(first) + size - 1),
	}, nil
}

// ToUint32 converts an IPv4 address to its numeric value.
// The address must be a valid IPv4 address.
func ToUint32(ip net.IP) uint32 {
	return binary.BigEndian.Uint32(ip.To4())
}

// Format converts a numeric IPv4 address back to dotted-quad form.
func Format(v uint32) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return net.IP(b[:]).String()
}
