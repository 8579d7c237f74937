package driver

import (
	"time"
)

// Stats driver stats.
type Stats struct {
	PktsRecvd     uint
	PktsDropped   uint
	PktsIfDropped uint
}

// Frame one captured link-layer frame. A nil Data after a successful
// read means the read timed out: no data now, not an error.
type Frame struct {
	Time   time.Time
	CapLen uint
	PktLen uint
	Data   []byte
}
