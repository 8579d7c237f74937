package layers

import (
	"encoding/binary"
	"fmt"
	"net"
)

// Dot11FrameType 802.11 frame type from the frame-control field.
type Dot11FrameType uint8

const (
	// Dot11FrameTypeManagement 802.11 management frame.
	Dot11FrameTypeManagement Dot11FrameType = 0
	// Dot11FrameTypeControl 802.11 control frame.
	Dot11FrameTypeControl Dot11FrameType = 1
	// Dot11FrameTypeData 802.11 data frame.
	Dot11FrameTypeData Dot11FrameType = 2
	// Dot11FrameTypeExtension 802.11 extension frame.
	Dot11FrameTypeExtension Dot11FrameType = 3
)

// Name get 802.11 frame type name.
func (t Dot11FrameType) Name() string {
	switch t {
	case Dot11FrameTypeManagement:
		return "Management"

	case Dot11FrameTypeControl:
		return "Control"

	case Dot11FrameTypeData:
		return "Data"

	case Dot11FrameTypeExtension:
		return "Extension"

	default:
		return fmt.Sprintf("802.11 frame type %d", uint8(t))
	}
}

// Dot11 802.11 MAC frame header. Only data frames carry a dispatchable
// payload (an LLC/SNAP header naming the encapsulated protocol);
// management and control frames are header-only layers. Protected data
// frames keep their payload opaque since it is encrypted.
type Dot11 struct {
	Base
	Version uint8
	Type    Dot11FrameType
	Subtype uint8

	ToDS, FromDS  bool
	MoreFragments bool
	Retry         bool
	PowerMgmt     bool
	MoreData      bool
	Protected     bool
	Order         bool

	Duration   uint16
	Addr1      net.HardwareAddr
	Addr2      net.HardwareAddr
	Addr3      net.HardwareAddr
	Addr4      net.HardwareAddr
	SeqControl uint16
	QoSControl uint16
}

const (
	dot11MinControlLen = 10
	dot11MinHeaderLen  = 24
)

func (d *Dot11) Decode(data []byte) *Fault {
	if len(data) < dot11MinControlLen {
		return truncatedf("invalid (too small) 802.11 capture length (%d < %d)", len(data), dot11MinControlLen)
	}

	d.Version = data[0] & 0x03
	d.Type = Dot11FrameType((data[0] >> 2) & 0x03)
	d.Subtype = data[0] >> 4

	flags := data[1]
	d.ToDS = flags&0x01 != 0
	d.FromDS = flags&0x02 != 0
	d.MoreFragments = flags&0x04 != 0
	d.Retry = flags&0x08 != 0
	d.PowerMgmt = flags&0x10 != 0
	d.MoreData = flags&0x20 != 0
	d.Protected = flags&0x40 != 0
	d.Order = flags&0x80 != 0

	d.Duration = binary.LittleEndian.Uint16(data[2:4])
	d.Addr1 = net.HardwareAddr(data[4:10])

	// Control frames carry at most the first address; they never have a
	// payload to dispatch.
	if d.Type == Dot11FrameTypeControl {
		d.Contents = data
		d.Payload = nil

		return nil
	}

	headerLen := dot11MinHeaderLen
	if d.ToDS && d.FromDS {
		headerLen += 6
	}
	if d.Type == Dot11FrameTypeData && d.Subtype&0x08 != 0 {
		// QoS data subtypes carry a QoS control field.
		headerLen += 2
	}
	if len(data) < headerLen {
		return truncatedf("invalid (too small) 802.11 capture length < header length (%d < %d)", len(data), headerLen)
	}

	d.Addr2 = net.HardwareAddr(data[10:16])
	d.Addr3 = net.HardwareAddr(data[16:22])
	d.SeqControl = binary.LittleEndian.Uint16(data[22:24])
	offset := dot11MinHeaderLen
	if d.ToDS && d.FromDS {
		d.Addr4 = net.HardwareAddr(data[offset : offset+6])
		offset += 6
	}
	if d.Type == Dot11FrameTypeData && d.Subtype&0x08 != 0 {
		d.QoSControl = binary.LittleEndian.Uint16(data[offset : offset+2])
		offset += 2
	}

	d.Contents = data[:offset]
	d.Payload = data[offset:]

	return nil
}

func (d *Dot11) NextLayerType() LayerType {
	if d.Type != Dot11FrameTypeData || d.Protected || len(d.Payload) == 0 {
		return NullLayerType
	}

	return EthernetTypeLLC
}

// SrcMAC get transmitter address, nil for control frames.
func (d *Dot11) SrcMAC() net.HardwareAddr {
	return d.Addr2
}

func (d Dot11) String() string {
	desc := "802.11: "

	desc += fmt.Sprintf("type=%s, ", d.Type.Name())
	desc += fmt.Sprintf("subtype=%d, ", d.Subtype)
	desc += fmt.Sprintf("toDS=%t, ", d.ToDS)
	desc += fmt.Sprintf("fromDS=%t, ", d.FromDS)
	desc += fmt.Sprintf("protected=%t, ", d.Protected)
	desc += fmt.Sprintf("addr1=%s", d.Addr1)
	if d.Addr2 != nil {
		desc += fmt.Sprintf(", addr2=%s", d.Addr2)
	}
	if d.Addr3 != nil {
		desc += fmt.Sprintf(", addr3=%s", d.Addr3)
	}

	return desc
}
