package layers

import (
	"testing"
)

func TestLLCSnapDecode(t *testing.T) {
	header := []byte{0xAA, 0xAA, 0x03, 0x00, 0x00, 0x00, 0x08, 0x00, 0x45}

	llc := new(LLC)
	if fault := llc.Decode(header); fault != nil {
		t.Fatalf("Decode LLC/SNAP header with fault: %s.", fault)
	}

	if !llc.SNAP {
		t.Error("SNAP extension not recognized.")
	}
	if llc.EthernetType != EthernetTypeIPv4 {
		t.Errorf("Wrong SNAP Ethernet type: %s.", llc.EthernetType.Name())
	}
	if llc.NextLayerType() != EthernetTypeIPv4 {
		t.Error("Wrong LLC next layer type.")
	}
	if len(llc.LayerPayload()) != 1 {
		t.Errorf("Wrong LLC payload length: %d.", len(llc.LayerPayload()))
	}
}

func TestLLCNonSnapDecode(t *testing.T) {
	// STP: DSAP/SSAP 0x42, no SNAP extension, payload stays opaque.
	header := []byte{0x42, 0x42, 0x03, 0x00, 0x00}

	llc := new(LLC)
	if fault := llc.Decode(header); fault != nil {
		t.Fatalf("Decode LLC header with fault: %s.", fault)
	}

	if llc.SNAP {
		t.Error("SNAP extension recognized on non-SNAP header.")
	}
	if llc.NextLayerType() != NullLayerType {
		t.Error("Non-SNAP LLC should be terminal.")
	}
}

func TestLLCSnapTruncated(t *testing.T) {
	header := []byte{0xAA, 0xAA, 0x03, 0x00, 0x00}

	llc := new(LLC)
	fault := llc.Decode(header)
	if fault == nil {
		t.Fatal("Expected truncation fault for short SNAP header.")
	}
	if fault.Kind != FaultTruncated {
		t.Errorf("Wrong fault kind: %s.", fault.Kind.Name())
	}
}
