package iprange

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

func TestFromCIDR(t *testing.T) {
	tests := []struct {
		network string
		first   string
		last    string
	}{
		{"1.2.3.0/24", "1.2.3.0", "1.2.3.255"},
		{"10.0.0.5/32", "10.0.0.5", "10.0.0.5"},
		{"0.0.0.0/0", "0.0.0.0", "255.255.255.255"},
		{"192.168.1.77/26", "192.168.1.64", "192.168.1.127"},
		{"172.16.0.0/12", "172.16.0.0", "172.31.255.255"},
		// Base address gets masked to the network
		{"1.2.3.4/24", "1.2.3.0", "1.2.3.255"},
	}

	for _, tt := range tests {
		t.Run(tt.network, func(t *testing.T) {
			r, err := FromCIDR(tt.network)
			if err != nil {
				t.Fatalf("FromCIDR(%q) error = %v", tt.network, err)
			}
			if got := Format(r.First); got != tt.first {
				t.Errorf("first = %s, want %s", got, tt.first)
			}
			if got := Format(r.Last); got != tt.last {
				t.Errorf("last = %s, want %s", got, tt.last)
			}
		})
	}
}

func TestFromCIDRInvalid(t *testing.T) {
	tests := []string{
		"",
		"not-a-network",
		"1.2.3.4",     // no prefix
		"1.2.3.0/33",  // prefix out of range
		"1.2.3.0/-1",
		"300.2.3.0/24",
		"2001:db8::/32", // IPv6 not supported
	}

	for _, network := range tests {
		t.Run(network, func(t *testing.T) {
			if _, err := FromCIDR(network); err == nil {
				t.Errorf("FromCIDR(%q) expected error", network)
			}
		})
	}
}

func TestFromCIDRProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		addr := rapid.Uint32().Draw(t, "addr")
		prefix := rapid.IntRange(0, 32).Draw(t, "prefix")

		network := fmt.Sprintf("%s/%d", Format(addr), prefix)
		r, err := FromCIDR(network)
		if err != nil {
			t.Fatalf("FromCIDR(%q) error = %v", network, err)
		}

		if r.First > r.Last {
			t.Fatalf("first %d > last %d", r.First, r.Last)
		}
		if want := uint64(1) << (32 - prefix); r.Count() != want {
			t.Fatalf("count = %d, want %d", r.Count(), want)
		}

		// First is the base address masked to the network, and the
		// base address always falls inside the range.
		mask := ^uint32(0) << (32 - prefix)
		if prefix == 0 {
			mask = 0
		}
		if r.First != addr&mask {
			t.Fatalf("first = %d, want %d", r.First, addr&mask)
		}
		if addr < r.First || addr > r.Last {
			t.Fatalf("address %d outside range [%d, %d]", addr, r.First, r.Last)
		}
	})
}

func TestFormatRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Uint32().Draw(t, "addr")
		network := Format(v) + "/32"
		r, err := FromCIDR(network)
		if err != nil {
			t.Fatalf("FromCIDR(%q) error = %v", network, err)
		}
		if r.First != v || r.Last != v {
			t.Fatalf("/32 range = [%d, %d], want [%d, %d]", r.First, r.Last, v, v)
		}
	})
}
