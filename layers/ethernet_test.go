package layers

import (
	"bytes"
	"encoding/binary"
	"testing"
)

var (
	testSrcMAC = []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55}
	testDstMAC = []byte{0x66, 0x77, 0x88, 0x99, 0xAA, 0xBB}
)

func ethernetFrame(typeOrLen uint16, payload []byte) []byte {
	frame := make([]byte, 14, 14+len(payload))
	copy(frame[0:6], testDstMAC)
	copy(frame[6:12], testSrcMAC)
	binary.BigEndian.PutUint16(frame[12:14], typeOrLen)

	return append(frame, payload...)
}

func TestEthernetDecode(t *testing.T) {
	payload := []byte{0xDE, 0xAD, 0xBE, 0xEF}
	frame := ethernetFrame(uint16(EthernetTypeIPv4), payload)

	eth := new(Ethernet)
	if fault := eth.Decode(frame); fault != nil {
		t.Fatalf("Decode Ethernet frame with fault: %s.", fault)
	}

	if !bytes.Equal(eth.SrcMAC, testSrcMAC) {
		t.Errorf("Wrong Ethernet source MAC: %s.", eth.SrcMAC)
	}
	if !bytes.Equal(eth.DstMAC, testDstMAC) {
		t.Errorf("Wrong Ethernet dest MAC: %s.", eth.DstMAC)
	}
	if eth.EthernetType != EthernetTypeIPv4 {
		t.Errorf("Wrong Ethernet type: %s.", eth.EthernetType.Name())
	}
	if !bytes.Equal(eth.LayerPayload(), payload) {
		t.Errorf("Wrong Ethernet payload: %v.", eth.LayerPayload())
	}
	if eth.NextLayerType() != EthernetTypeIPv4 {
		t.Errorf("Wrong Ethernet next layer type.")
	}
}

func TestEthernet8023Length(t *testing.T) {
	// 802.3: the type/length field is a payload length; the frame has
	// trailing padding beyond it.
	payload := make([]byte, 20)
	frame := ethernetFrame(10, payload)

	eth := new(Ethernet)
	if fault := eth.Decode(frame); fault != nil {
		t.Fatalf("Decode 802.3 frame with fault: %s.", fault)
	}

	if eth.EthernetType != EthernetTypeLLC {
		t.Errorf("Wrong 802.3 Ethernet type: %s.", eth.EthernetType.Name())
	}
	if eth.Length != 10 {
		t.Errorf("Wrong 802.3 length: %d.", eth.Length)
	}
	if len(eth.LayerPayload()) != 10 {
		t.Errorf("802.3 payload not clamped to length: %d.", len(eth.LayerPayload()))
	}
	if eth.NextLayerType() != EthernetTypeLLC {
		t.Errorf("802.3 frame should dispatch to LLC.")
	}
}

func TestEthernet8023LengthTruncated(t *testing.T) {
	frame := ethernetFrame(100, make([]byte, 10))

	eth := new(Ethernet)
	fault := eth.Decode(frame)
	if fault == nil {
		t.Fatal("Expected truncation fault for 802.3 length > capture length.")
	}
	if fault.Kind != FaultTruncated {
		t.Errorf("Wrong fault kind: %s.", fault.Kind.Name())
	}
	if !fault.Decoded {
		t.Error("Payload truncation must keep the decoded header.")
	}
	if eth.Length != 100 {
		t.Errorf("Fields not populated on payload truncation: length=%d.", eth.Length)
	}
	if len(eth.LayerPayload()) != 10 {
		t.Errorf("Wrong clamped payload length: %d.", len(eth.LayerPayload()))
	}
}

func TestEthernetTruncated(t *testing.T) {
	frame := ethernetFrame(uint16(EthernetTypeIPv4), nil)
	for size := 0; size < 14; size++ {
		eth := new(Ethernet)
		fault := eth.Decode(frame[:size])
		if fault == nil {
			t.Fatalf("Expected truncation fault for %d byte frame.", size)
		}
		if fault.Kind != FaultTruncated {
			t.Errorf("Wrong fault kind for %d byte frame: %s.", size, fault.Kind.Name())
		}
	}
}

func TestVLANDecode(t *testing.T) {
	tag := []byte{0x60, 0x64, 0x08, 0x00, 0xFF}

	vlan := new(VLAN)
	if fault := vlan.Decode(tag); fault != nil {
		t.Fatalf("Decode VLAN tag with fault: %s.", fault)
	}

	if vlan.Priority != 3 {
		t.Errorf("Wrong VLAN priority: %d.", vlan.Priority)
	}
	if vlan.ID != 100 {
		t.Errorf("Wrong VLAN id: %d.", vlan.ID)
	}
	if vlan.NextLayerType() != EthernetTypeIPv4 {
		t.Errorf("Wrong VLAN next layer type.")
	}
}

func TestLoopbackDecode(t *testing.T) {
	// Little-endian family word, as written by a Darwin null interface.
	frame := []byte{0x02, 0x00, 0x00, 0x00, 0x45}

	lo := new(Loopback)
	if fault := lo.Decode(frame); fault != nil {
		t.Fatalf("Decode Loopback frame with fault: %s.", fault)
	}
	if lo.Family != ProtocolFamilyIPv4 {
		t.Errorf("Wrong Loopback family: %s.", lo.Family.Name())
	}
	if lo.NextLayerType() != ProtocolFamilyIPv4 {
		t.Errorf("Wrong Loopback next layer type.")
	}
}
