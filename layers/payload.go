package layers

import (
	"fmt"
)

// Payload is a terminal layer over bytes no registered decoder claims.
// Unknown protocols never abort a decode, they end up here.
type Payload struct {
	Base
}

func (p *Payload) Decode(data []byte) *Fault {
	p.Contents = data
	p.Payload = nil

	return nil
}

func (p *Payload) NextLayerType() LayerType {
	return NullLayerType
}

func (p Payload) String() string {
	return fmt.Sprintf("Payload: %d bytes", len(p.Contents))
}
