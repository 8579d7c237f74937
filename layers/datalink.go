package layers

import (
	"fmt"
)

// DatalinkType link layer type as reported by the capture source
// (pcap linktype numbering).
type DatalinkType int

const (
	DatalinkTypeNull     DatalinkType = 0x0000
	DatalinkTypeEthernet DatalinkType = 0x0001
	DatalinkTypeDot11    DatalinkType = 0x0069
	DatalinkTypeLoop     DatalinkType = 0x006C
	DatalinkTypeRadiotap DatalinkType = 0x007F
)

// Name get datalink type name.
func (dt DatalinkType) Name() string {
	switch dt {
	case DatalinkTypeNull,
		DatalinkTypeLoop:
		return "Loop"

	case DatalinkTypeEthernet:
		return "Ethernet"

	case DatalinkTypeDot11:
		return "802.11"

	case DatalinkTypeRadiotap:
		return "Radiotap"

	default:
		return fmt.Sprintf("datalink type 0x%04X", uint16(dt))
	}
}
