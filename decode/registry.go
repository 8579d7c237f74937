// Package decode turns captured frames into layered Packet records. The
// registry maps next-protocol identifiers to layer decoders; the pipeline
// walks the registry until a terminal layer and never aborts on bad input.
package decode

import (
	"github.com/markrepedersen/netparser/layers"
)

// Factory builds a fresh decoder for one layer. Decoders hold per-decode
// state, so the registry stores constructors, not instances.
type Factory func() layers.Decoder

// Registry maps a layer's next-protocol identifier to the decoder for the
// next layer. The concrete LayerType key types (DatalinkType, EthernetType,
// IPProtocol, ProtocolFamily) keep the originating layer's namespace apart,
// so registering a value never shadows another protocol family.
//
// A lookup miss is not an error: unresolved protocols terminate a decode
// with an opaque payload. Adding a protocol is a Register call, not a
// pipeline change.
type Registry struct {
	factories map[layers.LayerType]Factory
}

// NewRegistry create a registry with the standard protocol graph
// registered.
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[layers.LayerType]Factory)}

	// Datalink entry points.
	r.Register(layers.DatalinkTypeEthernet, func() layers.Decoder { return new(layers.Ethernet) })
	r.Register(layers.DatalinkTypeDot11, func() layers.Decoder { return new(layers.Dot11) })
	r.Register(layers.DatalinkTypeRadiotap, func() layers.Decoder { return new(layers.Radiotap) })
	r.Register(layers.DatalinkTypeNull, func() layers.Decoder { return new(layers.Loopback) })
	r.Register(layers.DatalinkTypeLoop, func() layers.Decoder { return new(layers.Loopback) })

	// Ethernet type dispatch.
	r.Register(layers.EthernetTypeLLC, func() layers.Decoder { return new(layers.LLC) })
	r.Register(layers.EthernetTypeVLAN, func() layers.Decoder { return new(layers.VLAN) })
	r.Register(layers.EthernetTypeARP, func() layers.Decoder { return new(layers.ARP) })
	r.Register(layers.EthernetTypeIPv4, func() layers.Decoder { return new(layers.IPv4) })
	r.Register(layers.EthernetTypeIPv6, func() layers.Decoder { return new(layers.IPv6) })

	// Loopback protocol families.
	r.Register(layers.ProtocolFamilyIPv4, func() layers.Decoder { return new(layers.IPv4) })
	r.Register(layers.ProtocolFamilyIPv6FreeBSD, func() layers.Decoder { return new(layers.IPv6) })
	r.Register(layers.ProtocolFamilyIPv6Darwin, func() layers.Decoder { return new(layers.IPv6) })

	// IP protocol dispatch, shared by IPv4 and the IPv6 next-header chain.
	r.Register(layers.IPProtocolICMP, func() layers.Decoder { return new(layers.ICMPv4) })
	r.Register(layers.IPProtocolICMPv6, func() layers.Decoder { return new(layers.ICMPv6) })
	r.Register(layers.IPProtocolTCP, func() layers.Decoder { return new(layers.TCP) })
	r.Register(layers.IPProtocolUDP, func() layers.Decoder { return new(layers.UDP) })

	return r
}

// Register map a next-protocol identifier to a decoder factory.
func (r *Registry) Register(t layers.LayerType, f Factory) {
	r.factories[t] = f
}

// Lookup get the decoder factory for a next-protocol identifier, nil when
// none is registered.
func (r *Registry) Lookup(t layers.LayerType) Factory {
	if t == layers.NullLayerType {
		return nil
	}

	return r.factories[t]
}
