package decode

import (
	"errors"
	"time"

	"github.com/markrepedersen/netparser/layers"
)

// ErrEmptyFrame rejects a zero-length frame before decoding starts. It is
// the only hard failure a decode can produce.
var ErrEmptyFrame = errors.New("empty frame")

// maxLayers caps the number of layers per packet so a registry cycle can
// never loop a decode.
const maxLayers = 16

// RawFrame one captured frame plus the metadata the pipeline needs. The
// pipeline owns Data for the duration of one Decode call and never
// mutates it.
type RawFrame struct {
	Time     time.Time
	Datalink layers.DatalinkType
	Data     []byte
}

// FaultMarker records where and why decoding stopped early. LayerIndex
// points at the faulted layer when it was kept (advisory faults), or one
// past the last decoded layer when it was not. A payload truncated below
// a declared length is reported on the layer that declared the length,
// since that layer's header is the last thing decoded.
type FaultMarker struct {
	LayerIndex int
	Kind       layers.FaultKind
	Reason     string
}

// Packet is a decoded frame: the layer sequence in encapsulation order
// plus the frame metadata. Packets are immutable once returned; layer
// contents alias the RawFrame bytes rather than copying them.
type Packet struct {
	Time     time.Time
	Datalink layers.DatalinkType
	Length   int
	Layers   []layers.Layer
	Fault    *FaultMarker
}

// Faulted reports whether decoding stopped early.
func (p *Packet) Faulted() bool {
	return p.Fault != nil
}

// Pipeline walks a frame through the registry until a terminal layer.
// Decoding is synchronous and side-effect-free; a Pipeline is safe for
// concurrent use since all per-decode state lives in the decoders it
// creates.
type Pipeline struct {
	registry *Registry
}

// NewPipeline create a pipeline over a registry. A nil registry gets the
// standard one.
func NewPipeline(registry *Registry) *Pipeline {
	if registry == nil {
		registry = NewRegistry()
	}

	return &Pipeline{registry: registry}
}

// Decode decode one frame into a best-effort Packet. Truncated, malformed
// or unrecognized input yields a Packet carrying the layers decoded so
// far (plus a fault marker or trailing opaque payload); it never yields
// an error, except for an empty frame.
func (p *Pipeline) Decode(frame *RawFrame) (*Packet, error) {
	if frame == nil || len(frame.Data) == 0 {
		return nil, ErrEmptyFrame
	}

	pkt := &Packet{
		Time:     frame.Time,
		Datalink: frame.Datalink,
		Length:   len(frame.Data),
	}

	factory := p.registry.Lookup(frame.Datalink)
	if factory == nil {
		// Unknown link type: the whole frame stays opaque.
		pkt.Layers = append(pkt.Layers, opaque(frame.Data))

		return pkt, nil
	}

	data := frame.Data
	for len(pkt.Layers) < maxLayers {
		decoder := factory()
		if fault := decoder.Decode(data); fault != nil {
			if fault.Decoded {
				pkt.Layers = append(pkt.Layers, decoder)
			}
			pkt.Fault = &FaultMarker{
				LayerIndex: len(pkt.Layers),
				Kind:       fault.Kind,
				Reason:     fault.Reason,
			}
			if fault.Decoded {
				pkt.Fault.LayerIndex = len(pkt.Layers) - 1
			}

			return pkt, nil
		}
		pkt.Layers = append(pkt.Layers, decoder)

		payload := decoder.LayerPayload()
		if len(payload) == 0 {
			return pkt, nil
		}

		factory = p.registry.Lookup(decoder.NextLayerType())
		if factory == nil {
			pkt.Layers = append(pkt.Layers, opaque(payload))

			return pkt, nil
		}
		data = payload
	}

	pkt.Fault = &FaultMarker{
		LayerIndex: len(pkt.Layers),
		Kind:       layers.FaultInvariantViolation,
		Reason:     "layer count exceeds cap",
	}

	return pkt, nil
}

func opaque(data []byte) layers.Layer {
	pl := new(layers.Payload)
	pl.Decode(data)

	return pl
}
