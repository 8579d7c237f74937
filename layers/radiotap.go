package layers

import (
	"encoding/binary"
	"fmt"
)

// Radiotap capture header prepended to 802.11 frames by monitor-mode
// drivers. Only the length is needed to reach the MAC frame; the
// per-field radio metadata stays opaque inside Contents.
type Radiotap struct {
	Base
	Version uint8
	Length  uint16
	Present uint32
}

func (r *Radiotap) Decode(data []byte) *Fault {
	if len(data) < 8 {
		return truncatedf("invalid (too small) Radiotap capture length (%d < 8)", len(data))
	}

	r.Version = data[0]
	r.Length = binary.LittleEndian.Uint16(data[2:4])
	r.Present = binary.LittleEndian.Uint32(data[4:8])

	if int(r.Length) < 8 {
		return invariantf("invalid (too small) Radiotap header length (%d < 8)", r.Length)
	}
	if int(r.Length) > len(data) {
		return truncatedf("invalid Radiotap header length > capture length (%d > %d)", r.Length, len(data))
	}

	r.Contents = data[:r.Length]
	r.Payload = data[r.Length:]

	return nil
}

func (r *Radiotap) NextLayerType() LayerType {
	return DatalinkTypeDot11
}

func (r Radiotap) String() string {
	desc := "Radiotap: "

	desc += fmt.Sprintf("version=%d, ", r.Version)
	desc += fmt.Sprintf("length=%d, ", r.Length)
	desc += fmt.Sprintf("present=0x%08X", r.Present)

	return desc
}
