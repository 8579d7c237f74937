// Package sniffer abstracts the raw frame source: live interface capture
// or recorded-file replay. All configuration is validated here, at
// construction; a frame's validity is judged downstream by the decode
// pipeline, never by the source.
package sniffer

import (
	"errors"
	"time"

	"github.com/markrepedersen/netparser/layers"
	"github.com/markrepedersen/netparser/sniffer/driver"
	"github.com/markrepedersen/netparser/sniffer/driver/pcap"
	"github.com/markrepedersen/netparser/sniffer/driver/pcapfile"
)

// DefaultSnapLen max bytes captured per frame when none is configured.
const DefaultSnapLen = 65535

// DefaultTimeout read timeout when none is configured.
const DefaultTimeout = time.Second

// Config capture configuration. Exactly one of Device and File must be
// set.
type Config struct {
	// Device network interface for live capture.
	Device string
	// File recorded capture to replay.
	File string
	// SnapLen max bytes captured per frame, DefaultSnapLen when zero.
	SnapLen int
	// Promiscuous capture frames not addressed to the interface.
	Promiscuous bool
	// Monitor 802.11 monitor (rfmon) mode.
	Monitor bool
	// Filter optional BPF capture filter, live capture only.
	Filter string
	// Timeout read timeout for live capture, DefaultTimeout when zero.
	Timeout time.Duration
}

func (c *Config) validate() error {
	if c.Device == "" && c.File == "" {
		return errors.New("no capture device or file configured")
	}
	if c.Device != "" && c.File != "" {
		return errors.New("both capture device and file configured")
	}
	if c.File != "" && c.Filter != "" {
		return errors.New("capture filter is not supported on file replay")
	}
	if c.File != "" && c.Monitor {
		return errors.New("monitor mode is not supported on file replay")
	}
	if c.SnapLen == 0 {
		c.SnapLen = DefaultSnapLen
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}

	return nil
}

// Sniffer network sniffer.
type Sniffer interface {
	DatalinkType() layers.DatalinkType
	NextFrame(frame *driver.Frame) error
	Stats() (*driver.Stats, error)
	Close() error
}

// New create a new sniffer. Any failure here (bad configuration, device
// cannot be opened, unsupported mode) is fatal for the caller and is
// never retried internally.
func New(cfg Config) (Sniffer, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.File != "" {
		return pcapfile.Open(cfg.File)
	}

	return pcap.Open(cfg.Device, cfg.SnapLen, cfg.Promiscuous, cfg.Monitor, cfg.Filter, cfg.Timeout)
}
