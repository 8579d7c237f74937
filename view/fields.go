// Package view is the presentation boundary over decoded packets: a flat
// field projection for fixed-column rendering, and predicate filtering
// plus deterministic ordering over finite packet sequences. Nothing here
// is a source of truth; every value is derived from the Packet on demand.
package view

import (
	"net"
	"strconv"

	"github.com/markrepedersen/netparser/decode"
	"github.com/markrepedersen/netparser/layers"
)

// Field one display field: name plus rendered value.
type Field struct {
	Name  string
	Value string
}

// SrcMAC get the first source MAC address found in the packet, nil when
// it carries none.
func SrcMAC(p *decode.Packet) net.HardwareAddr {
	for _, l := range p.Layers {
		switch layer := l.(type) {
		case *layers.Ethernet:
			return layer.SrcMAC

		case *layers.Dot11:
			if layer.SrcMAC() != nil {
				return layer.SrcMAC()
			}

		case *layers.ARP:
			return layer.SenderHW
		}
	}

	return nil
}

// SrcIP get the first source IP address found in the packet, nil when it
// carries none.
func SrcIP(p *decode.Packet) net.IP {
	for _, l := range p.Layers {
		switch layer := l.(type) {
		case *layers.IPv4:
			return layer.SrcIP

		case *layers.IPv6:
			return layer.SrcIP

		case *layers.ARP:
			if len(layer.SenderIP) == net.IPv4len || len(layer.SenderIP) == net.IPv6len {
				return layer.SenderIP
			}
		}
	}

	return nil
}

// SrcPort get the first source port found in the packet, false when it
// carries none.
func SrcPort(p *decode.Packet) (uint16, bool) {
	for _, l := range p.Layers {
		switch layer := l.(type) {
		case *layers.TCP:
			return layer.SrcPort, true

		case *layers.UDP:
			return layer.SrcPort, true
		}
	}

	return 0, false
}

// Project flatten a packet into the fixed three-column view consumed by
// the viewer: MAC, IP, PORT in that order. Fields the packet does not
// carry keep an empty value rather than being omitted, so the column
// count is stable across rows.
func Project(p *decode.Packet) []Field {
	fields := []Field{{Name: "MAC"}, {Name: "IP"}, {Name: "PORT"}}

	if mac := SrcMAC(p); mac != nil {
		fields[0].Value = mac.String()
	}
	if ip := SrcIP(p); ip != nil {
		fields[1].Value = ip.String()
	}
	if port, ok := SrcPort(p); ok {
		fields[2].Value = strconv.Itoa(int(port))
	}

	return fields
}
