// Package pcapfile replays recorded captures in the standard pcap
// container format. Only frame boundaries and record metadata are read
// from the file; frame contents are handed to the decode pipeline as-is.
package pcapfile

import (
	"fmt"
	"os"

	"github.com/google/gopacket/pcapgo"
	"github.com/markrepedersen/netparser/layers"
	"github.com/markrepedersen/netparser/sniffer/driver"
)

// Reader replays a recorded capture file. Unlike a live source the
// sequence is finite (NextFrame returns io.EOF at the end) and
// restartable via Reset.
type Reader struct {
	path   string
	file   *os.File
	reader *pcapgo.Reader
	recvd  uint
}

// Open open a recorded capture file for replay.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture file: %w", err)
	}

	reader, err := pcapgo.NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read capture file header %s: %w", path, err)
	}

	return &Reader{path: path, file: file, reader: reader}, nil
}

// DatalinkType get datalink type from the capture file's global header.
func (r *Reader) DatalinkType() layers.DatalinkType {
	return layers.DatalinkType(r.reader.LinkType())
}

// NextFrame get next recorded frame. Returns io.EOF once the file is
// exhausted.
func (r *Reader) NextFrame(frame *driver.Frame) error {
	data, ci, err := r.reader.ReadPacketData()
	if err != nil {
		return err
	}

	frame.Time = ci.Timestamp
	frame.CapLen = uint(ci.CaptureLength)
	frame.PktLen = uint(ci.Length)
	frame.Data = data
	r.recvd++

	return nil
}

// Reset restart the replay from the first frame.
func (r *Reader) Reset() error {
	file, err := os.Open(r.path)
	if err != nil {
		return fmt.Errorf("reopen capture file: %w", err)
	}

	reader, err := pcapgo.NewReader(file)
	if err != nil {
		file.Close()
		return fmt.Errorf("read capture file header %s: %w", r.path, err)
	}

	r.file.Close()
	r.file = file
	r.reader = reader
	r.recvd = 0

	return nil
}

// Stats get replay statistics. A file replay drops nothing.
func (r *Reader) Stats() (*driver.Stats, error) {
	return &driver.Stats{PktsRecvd: r.recvd}, nil
}

// Close close the capture file.
func (r *Reader) Close() error {
	return r.file.Close()
}
