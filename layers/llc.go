package layers

import (
	"encoding/binary"
	"fmt"
)

// LLC 802.2 logical link control header, optionally followed by a SNAP
// extension carrying an EtherType. Non-SNAP payloads stay opaque.
type LLC struct {
	Base
	DSAP, SSAP, Control uint8
	SNAP                bool
	OUI                 [3]byte
	EthernetType        EthernetType
}

func (llc *LLC) Decode(data []byte) *Fault {
	if len(data) < 3 {
		return truncatedf("invalid (too small) LLC capture length (%d < 3)", len(data))
	}

	llc.DSAP = data[0]
	llc.SSAP = data[1]
	llc.Control = data[2]

	if llc.DSAP == 0xAA && llc.SSAP == 0xAA && llc.Control == 0x03 {
		if len(data) < 8 {
			return truncatedf("invalid (too small) LLC/SNAP capture length (%d < 8)", len(data))
		}
		llc.SNAP = true
		copy(llc.OUI[:], data[3:6])
		llc.EthernetType = EthernetType(binary.BigEndian.Uint16(data[6:8]))
		llc.Contents = data[:8]
		llc.Payload = data[8:]

		return nil
	}

	llc.Contents = data[:3]
	llc.Payload = data[3:]

	return nil
}

func (llc *LLC) NextLayerType() LayerType {
	if llc.SNAP {
		return llc.EthernetType
	}

	return NullLayerType
}

func (llc LLC) String() string {
	desc := "LLC: "

	desc += fmt.Sprintf("dsap=0x%02X, ", llc.DSAP)
	desc += fmt.Sprintf("ssap=0x%02X, ", llc.SSAP)
	desc += fmt.Sprintf("control=0x%02X", llc.Control)
	if llc.SNAP {
		desc += fmt.Sprintf(", snapEthernetType=%s", llc.EthernetType.Name())
	}

	return desc
}
