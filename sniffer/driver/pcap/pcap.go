// Package pcap drives live capture through libpcap via gopacket.
package pcap

import (
	"fmt"
	"time"

	gopcap "github.com/google/gopacket/pcap"
	"github.com/markrepedersen/netparser/layers"
	"github.com/markrepedersen/netparser/sniffer/driver"
)

// Pcap live capture handle.
type Pcap struct {
	handle *gopcap.Handle
}

// Open create a pcap handle for live capture. The handle is built on an
// inactive handle so snapshot length, promiscuous and monitor mode are
// all applied before activation; an unsupported mode fails here, before
// any frame is read.
func Open(device string, snapLen int, promiscuous, monitor bool, filter string, timeout time.Duration) (*Pcap, error) {
	inactive, err := gopcap.NewInactiveHandle(device)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", device, err)
	}
	defer inactive.CleanUp()

	if err = inactive.SetSnapLen(snapLen); err != nil {
		return nil, fmt.Errorf("set snaplen %d: %w", snapLen, err)
	}
	if err = inactive.SetPromisc(promiscuous); err != nil {
		return nil, fmt.Errorf("set promiscuous mode: %w", err)
	}
	if err = inactive.SetTimeout(timeout); err != nil {
		return nil, fmt.Errorf("set timeout %s: %w", timeout, err)
	}
	if monitor {
		if err = inactive.SetRFMon(true); err != nil {
			return nil, fmt.Errorf("set monitor mode: %w", err)
		}
	}

	handle, err := inactive.Activate()
	if err != nil {
		return nil, fmt.Errorf("activate %s: %w", device, err)
	}
	if filter != "" {
		if err = handle.SetBPFFilter(filter); err != nil {
			handle.Close()
			return nil, fmt.Errorf("set filter %q: %w", filter, err)
		}
	}

	return &Pcap{handle: handle}, nil
}

// DatalinkType get datalink type.
func (p *Pcap) DatalinkType() layers.DatalinkType {
	return layers.DatalinkType(p.handle.LinkType())
}

// NextFrame get next network frame. A read timeout leaves frame.Data nil
// and returns no error, so callers can poll a stop flag between reads.
func (p *Pcap) NextFrame(frame *driver.Frame) error {
	data, ci, err := p.handle.ReadPacketData()
	switch err {
	case nil:
		frame.Time = ci.Timestamp
		frame.CapLen = uint(ci.CaptureLength)
		frame.PktLen = uint(ci.Length)
		frame.Data = data

		return nil

	case gopcap.NextErrorTimeoutExpired:
		frame.Data = nil

		return nil

	default:
		return err
	}
}

// Stats get capture statistics.
func (p *Pcap) Stats() (*driver.Stats, error) {
	s, err := p.handle.Stats()
	if err != nil {
		return nil, err
	}

	return &driver.Stats{
		PktsRecvd:     uint(s.PacketsReceived),
		PktsDropped:   uint(s.PacketsDropped),
		PktsIfDropped: uint(s.PacketsIfDropped),
	}, nil
}

// Close close the pcap handle. Closing unblocks an in-progress read.
func (p *Pcap) Close() error {
	p.handle.Close()

	return nil
}
