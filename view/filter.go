package view

import (
	"bytes"
	"sort"
	"strings"

	"github.com/markrepedersen/netparser/decode"
)

// Predicate decides whether a packet belongs to a filtered view.
type Predicate func(*decode.Packet) bool

// Filter keep the packets matching pred, preserving order.
func Filter(pkts []*decode.Packet, pred Predicate) []*decode.Packet {
	var out []*decode.Packet
	for _, p := range pkts {
		if pred(p) {
			out = append(out, p)
		}
	}

	return out
}

// ByMAC match packets whose source MAC renders equal to mac,
// case-insensitively.
func ByMAC(mac string) Predicate {
	return func(p *decode.Packet) bool {
		m := SrcMAC(p)

		return m != nil && strings.EqualFold(m.String(), mac)
	}
}

// ByIP match packets whose source IP renders equal to ip.
func ByIP(ip string) Predicate {
	return func(p *decode.Packet) bool {
		i := SrcIP(p)

		return i != nil && i.String() == ip
	}
}

// ByPort match packets with source port port.
func ByPort(port uint16) Predicate {
	return func(p *decode.Packet) bool {
		sp, ok := SrcPort(p)

		return ok && sp == port
	}
}

// Faulted match packets whose decode stopped early.
func Faulted() Predicate {
	return func(p *decode.Packet) bool {
		return p.Faulted()
	}
}

// Less orders two packets. Sort is stable, so ties keep arrival order.
type Less func(a, b *decode.Packet) bool

// Sort order pkts in place by less, stably.
func Sort(pkts []*decode.Packet, less Less) {
	sort.SliceStable(pkts, func(i, j int) bool {
		return less(pkts[i], pkts[j])
	})
}

// LessMAC the default order: lexicographic by rendered source MAC.
// Packets without a MAC sort first.
func LessMAC(a, b *decode.Packet) bool {
	am, bm := SrcMAC(a), SrcMAC(b)

	return am.String() < bm.String()
}

// LessIP order by source IP bytes (16-byte normalized), packets without
// an IP first.
func LessIP(a, b *decode.Packet) bool {
	ai, bi := SrcIP(a).To16(), SrcIP(b).To16()

	return bytes.Compare(ai, bi) < 0
}

// LessPort order numerically by source port, packets without a port
// first.
func LessPort(a, b *decode.Packet) bool {
	ap, aok := SrcPort(a)
	bp, bok := SrcPort(b)
	if aok != bok {
		return !aok
	}

	return ap < bp
}

// Devices de-duplicate pkts by source MAC, keeping the first packet seen
// per device and dropping packets without a MAC. Combined with Sort this
// yields the viewer's sorted, de-duplicated device list.
func Devices(pkts []*decode.Packet) []*decode.Packet {
	seen := make(map[string]bool, len(pkts))
	var out []*decode.Packet
	for _, p := range pkts {
		mac := SrcMAC(p)
		if mac == nil {
			continue
		}
		key := mac.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}

	return out
}
