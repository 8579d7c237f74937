package layers

// Layer is one decoded protocol layer. Contents and Payload reference the
// captured frame, they are never copies.
type Layer interface {
	LayerContents() []byte
	LayerPayload() []byte
	NextLayerType() LayerType
}

// Decoder decodes a single protocol layer from a byte slice. Decoders are
// pure: given the same input they populate the same fields and never touch
// shared state, so a decode can be replayed deterministically.
type Decoder interface {
	Layer
	Decode(data []byte) *Fault
}
