package layers

import (
	"encoding/binary"
	"testing"
)

// icmpv6Echo builds an echo request whose checksum is valid over the
// RFC 4443 pseudo-header.
func icmpv6Echo() []byte {
	msg := make([]byte, 12)
	msg[0] = 128 // echo request
	binary.BigEndian.PutUint16(msg[4:6], 0x1234)
	binary.BigEndian.PutUint16(msg[6:8], 1)
	copy(msg[8:], "ping")

	pseudo := make([]byte, 0, 40+len(msg))
	pseudo = append(pseudo, testSrcIPv6...)
	pseudo = append(pseudo, testDstIPv6...)
	var length [4]byte
	binary.BigEndian.PutUint32(length[:], uint32(len(msg)))
	pseudo = append(pseudo, length[:]...)
	pseudo = append(pseudo, 0, 0, 0, uint8(IPProtocolICMPv6))
	pseudo = append(pseudo, msg...)
	binary.BigEndian.PutUint16(msg[2:4], Checksum(pseudo))

	return msg
}

func TestICMPv6Decode(t *testing.T) {
	// The message checksum covers a pseudo-header this decoder cannot
	// see, so a valid message must decode without a checksum fault.
	msg := icmpv6Echo()

	icmp := new(ICMPv6)
	if fault := icmp.Decode(msg); fault != nil {
		t.Fatalf("Decode ICMPv6 message with fault: %s.", fault)
	}

	if icmp.Type != 128 {
		t.Errorf("Wrong ICMPv6 type: %d.", icmp.Type)
	}
	if icmp.Code != 0 {
		t.Errorf("Wrong ICMPv6 code: %d.", icmp.Code)
	}
	if icmp.Checksum != binary.BigEndian.Uint16(msg[2:4]) {
		t.Errorf("Checksum not stored: 0x%04X.", icmp.Checksum)
	}
	if len(icmp.LayerPayload()) != 8 {
		t.Errorf("Wrong ICMPv6 payload length: %d.", len(icmp.LayerPayload()))
	}
	if icmp.NextLayerType() != NullLayerType {
		t.Error("ICMPv6 is a terminal layer.")
	}
}

func TestICMPv6Truncated(t *testing.T) {
	icmp := new(ICMPv6)
	fault := icmp.Decode([]byte{128, 0})
	if fault == nil {
		t.Fatal("Expected truncation fault for 2 byte message.")
	}
	if fault.Kind != FaultTruncated {
		t.Errorf("Wrong fault kind: %s.", fault.Kind.Name())
	}
}
