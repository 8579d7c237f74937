// Package stream runs the capture-and-decode loop: one goroutine pulls
// frames from a sniffer, decodes them and publishes completed packets to
// a bounded channel. A decode fault never ends the stream; only source
// exhaustion, a source error or an explicit Stop does.
package stream

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	log "github.com/sirupsen/logrus"

	"github.com/markrepedersen/netparser/decode"
	"github.com/markrepedersen/netparser/sniffer"
	"github.com/markrepedersen/netparser/sniffer/driver"
)

// Policy backpressure policy for a full packet buffer. The choice is the
// consumer's: an unbounded buffer under a fast interface is a resource
// exhaustion risk, so there is no implicit default growth.
type Policy int

const (
	// Block the capture loop until the consumer drains the buffer.
	Block Policy = iota
	// DropOldest discard the oldest buffered packet to make room.
	DropOldest
)

// DefaultBuffer packet buffer capacity when none is configured.
const DefaultBuffer = 1024

// Options stream options.
type Options struct {
	Buffer int
	Policy Policy
}

type runState uint32

func (rs *runState) stop() {
	atomic.StoreUint32((*uint32)(rs), 1)
}

func (rs *runState) stopped() bool {
	return atomic.LoadUint32((*uint32)(rs)) > 0
}

// Stream a running capture-and-decode loop.
type Stream struct {
	snf      sniffer.Sniffer
	pipeline *decode.Pipeline
	opts     Options

	packets  chan *decode.Packet
	stopc    chan struct{}
	state    runState
	wg       sync.WaitGroup
	stopOnce sync.Once

	mu  sync.Mutex
	err error
}

// New create a stream over a sniffer. A nil pipeline gets the standard
// registry.
func New(snf sniffer.Sniffer, pipeline *decode.Pipeline, opts Options) *Stream {
	if opts.Buffer <= 0 {
		opts.Buffer = DefaultBuffer
	}
	if pipeline == nil {
		pipeline = decode.NewPipeline(nil)
	}

	return &Stream{
		snf:      snf,
		pipeline: pipeline,
		opts:     opts,
		packets:  make(chan *decode.Packet, opts.Buffer),
		stopc:    make(chan struct{}),
	}
}

// Start launch the capture loop.
func (s *Stream) Start() {
	s.wg.Add(1)
	go s.loop()
}

// Packets get the decoded packet channel. It is closed when the source
// is exhausted, the stream is stopped or the source fails; Err tells
// which.
func (s *Stream) Packets() <-chan *decode.Packet {
	return s.packets
}

// Next get the next decoded packet, blocking until one is available.
// ok is false once the stream has ended.
func (s *Stream) Next() (pkt *decode.Packet, ok bool) {
	pkt, ok = <-s.packets

	return pkt, ok
}

// Stop cooperatively stop the loop, unblocking an in-progress read, and
// wait for it to exit. Safe to call more than once.
func (s *Stream) Stop() {
	s.stopOnce.Do(func() {
		s.state.stop()
		close(s.stopc)
		s.snf.Close()
	})
	s.wg.Wait()
}

// Err get the terminal source error, nil after a clean stop or
// exhausted replay.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.err
}

func (s *Stream) setErr(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

func (s *Stream) loop() {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("Capture loop run with error: %v.", r)
			s.setErr(fmt.Errorf("capture loop: %v", r))
		}
		close(s.packets)
		s.wg.Done()
	}()

	datalink := s.snf.DatalinkType()
	frame := new(driver.Frame)
	for !s.state.stopped() {
		err := s.snf.NextFrame(frame)
		if err != nil {
			if errors.Is(err, io.EOF) {
				log.Debug("Capture source exhausted.")
				return
			}
			if s.state.stopped() {
				// Stop closed the handle under the read.
				return
			}
			log.Errorf("Read frame error: %s.", err)
			s.setErr(err)
			return
		}
		if frame.Data == nil {
			// Read timeout, poll the stop flag again.
			continue
		}

		pkt, err := s.pipeline.Decode(&decode.RawFrame{
			Time:     frame.Time,
			Datalink: datalink,
			Data:     frame.Data,
		})
		if err != nil {
			log.Debugf("Drop frame: %s.", err)
			continue
		}
		if pkt.Faulted() {
			log.Debugf("Decode fault at layer %d: %s.", pkt.Fault.LayerIndex, pkt.Fault.Reason)
		}

		s.publish(pkt)
	}
}

func (s *Stream) publish(pkt *decode.Packet) {
	if s.opts.Policy == DropOldest {
		for {
			select {
			case s.packets <- pkt:
				return

			case <-s.stopc:
				return

			default:
			}

			select {
			case <-s.packets:
			default:
			}
		}
	}

	select {
	case s.packets <- pkt:

	case <-s.stopc:
	}
}
