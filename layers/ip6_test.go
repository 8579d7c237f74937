package layers

import (
	"bytes"
	"encoding/binary"
	"testing"
)

var (
	testSrcIPv6 = []byte{0x20, 0x01, 0x0D, 0xB8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x01}
	testDstIPv6 = []byte{0x20, 0x01, 0x0D, 0xB8, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0x02}
)

func ipv6Packet(next IPProtocol, payload []byte) []byte {
	hdr := make([]byte, 40, 40+len(payload))
	hdr[0] = 0x60
	binary.BigEndian.PutUint16(hdr[4:6], uint16(len(payload)))
	hdr[6] = uint8(next)
	hdr[7] = 64
	copy(hdr[8:24], testSrcIPv6)
	copy(hdr[24:40], testDstIPv6)

	return append(hdr, payload...)
}

func TestIPv6Decode(t *testing.T) {
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	packet := ipv6Packet(IPProtocolUDP, payload)

	ip := new(IPv6)
	if fault := ip.Decode(packet); fault != nil {
		t.Fatalf("Decode IPv6 packet with fault: %s.", fault)
	}

	if ip.Version != 6 {
		t.Errorf("Wrong IPv6 version: %d.", ip.Version)
	}
	if ip.NextHeader != IPProtocolUDP {
		t.Errorf("Wrong IPv6 next header: %s.", ip.NextHeader.Name())
	}
	if ip.HopLimit != 64 {
		t.Errorf("Wrong IPv6 hop limit: %d.", ip.HopLimit)
	}
	if !bytes.Equal(ip.SrcIP, testSrcIPv6) {
		t.Errorf("Wrong IPv6 source IP: %s.", ip.SrcIP)
	}
	if !bytes.Equal(ip.LayerPayload(), payload) {
		t.Errorf("Wrong IPv6 payload: %v.", ip.LayerPayload())
	}
	if ip.NextLayerType() != IPProtocolUDP {
		t.Error("Wrong IPv6 next layer type.")
	}
}

func TestIPv6ExtensionChain(t *testing.T) {
	// Hop-by-hop (8 bytes) then fragment (8 bytes) then a UDP header.
	udp := make([]byte, 8)
	binary.BigEndian.PutUint16(udp[4:6], 8)
	body := make([]byte, 16, 16+len(udp))
	body[0] = uint8(ipv6HeaderFragment)
	body[1] = 0 // hop-by-hop length: (0+1)*8
	body[8] = uint8(IPProtocolUDP)

	packet := ipv6Packet(ipv6HeaderHopByHop, append(body, udp...))

	ip := new(IPv6)
	if fault := ip.Decode(packet); fault != nil {
		t.Fatalf("Decode IPv6 extension chain with fault: %s.", fault)
	}

	if len(ip.Extensions) != 2 {
		t.Fatalf("Wrong IPv6 extension count: %d.", len(ip.Extensions))
	}
	if ip.Extensions[0].Type != ipv6HeaderHopByHop {
		t.Errorf("Wrong first extension type: %s.", ip.Extensions[0].Type.Name())
	}
	if ip.Extensions[1].Type != ipv6HeaderFragment {
		t.Errorf("Wrong second extension type: %s.", ip.Extensions[1].Type.Name())
	}
	if ip.NextHeader != IPProtocolUDP {
		t.Errorf("Wrong IPv6 next header after chain: %s.", ip.NextHeader.Name())
	}
	if len(ip.LayerPayload()) != len(udp) {
		t.Errorf("Wrong IPv6 payload length: %d.", len(ip.LayerPayload()))
	}
}

func TestIPv6FragmentTerminates(t *testing.T) {
	frag := make([]byte, 8)
	frag[0] = uint8(IPProtocolTCP)
	// Offset 1 (in 8 byte units), more-fragments set.
	binary.BigEndian.PutUint16(frag[2:4], 1<<3|0)
	frag[3] |= 0x01

	packet := ipv6Packet(ipv6HeaderFragment, append(frag, 0xAA, 0xBB))

	ip := new(IPv6)
	if fault := ip.Decode(packet); fault != nil {
		t.Fatalf("Decode IPv6 fragment with fault: %s.", fault)
	}

	if ip.FragOffset != 1 {
		t.Errorf("Wrong IPv6 fragment offset: %d.", ip.FragOffset)
	}
	if !ip.MF {
		t.Error("More-fragments flag not recognized.")
	}
	if ip.NextLayerType() != NullLayerType {
		t.Error("Non-first fragment must terminate decoding.")
	}
}

func TestIPv6ExtensionHopCap(t *testing.T) {
	// A chain of hop-by-hop headers each pointing at another hop-by-hop
	// header, longer than the walk allows.
	body := make([]byte, 8*(IPv6MaxExtensionHops+1))
	for i := 0; i < IPv6MaxExtensionHops+1; i++ {
		body[i*8] = uint8(ipv6HeaderHopByHop)
	}

	ip := new(IPv6)
	fault := ip.Decode(ipv6Packet(ipv6HeaderHopByHop, body))
	if fault == nil {
		t.Fatal("Expected fault for over-long extension chain.")
	}
	if fault.Kind != FaultInvariantViolation {
		t.Errorf("Wrong fault kind: %s.", fault.Kind.Name())
	}
}

func TestIPv6BadVersion(t *testing.T) {
	packet := ipv6Packet(IPProtocolTCP, nil)
	packet[0] = 0x40

	ip := new(IPv6)
	fault := ip.Decode(packet)
	if fault == nil {
		t.Fatal("Expected fault for wrong IP version.")
	}
	if fault.Kind != FaultInvariantViolation {
		t.Errorf("Wrong fault kind: %s.", fault.Kind.Name())
	}
}

func TestIPv6Truncated(t *testing.T) {
	packet := ipv6Packet(IPProtocolUDP, make([]byte, 8))
	for _, size := range []int{0, 20, 39} {
		ip := new(IPv6)
		fault := ip.Decode(packet[:size])
		if fault == nil {
			t.Fatalf("Expected truncation fault for %d byte packet.", size)
		}
		if fault.Kind != FaultTruncated {
			t.Errorf("Wrong fault kind for %d byte packet: %s.", size, fault.Kind.Name())
		}
		if fault.Decoded {
			t.Errorf("Header truncation at %d bytes must not keep the layer.", size)
		}
	}
}

func TestIPv6SnapshotTruncated(t *testing.T) {
	// A complete base header whose payload was cut short by the snapshot
	// length: the layer is kept and the truncation flagged.
	packet := ipv6Packet(IPProtocolUDP, make([]byte, 8))[:44]

	ip := new(IPv6)
	fault := ip.Decode(packet)
	if fault == nil {
		t.Fatal("Expected truncation fault for capture below the IPv6 payload length.")
	}
	if fault.Kind != FaultTruncated {
		t.Errorf("Wrong fault kind: %s.", fault.Kind.Name())
	}
	if !fault.Decoded {
		t.Error("Payload truncation must keep the decoded header.")
	}
	if !bytes.Equal(ip.SrcIP, testSrcIPv6) {
		t.Errorf("Fields not populated on payload truncation: %s.", ip.SrcIP)
	}
	if len(ip.LayerPayload()) != 4 {
		t.Errorf("Wrong clamped payload length: %d.", len(ip.LayerPayload()))
	}
}
