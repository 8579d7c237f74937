package layers

import "fmt"

// FaultKind classifies why decoding a layer stopped.
type FaultKind int

const (
	// FaultTruncated a declared length exceeds the available bytes.
	FaultTruncated FaultKind = iota
	// FaultInvariantViolation a checksum mismatch, malformed length field
	// or over-long header chain.
	FaultInvariantViolation
	// FaultUnsupported an identified protocol this decoder cannot handle.
	FaultUnsupported
)

// Name get fault kind name.
func (k FaultKind) Name() string {
	switch k {
	case FaultTruncated:
		return "truncated"

	case FaultInvariantViolation:
		return "invariant violation"

	case FaultUnsupported:
		return "unsupported"

	default:
		return fmt.Sprintf("fault kind %d", int(k))
	}
}

// Fault reports a decode failure. Faults are values, not panics: a fault on
// one frame must never unwind state needed for the next.
type Fault struct {
	Kind   FaultKind
	Reason string
	// Decoded reports that the layer's fields were fully populated despite
	// the fault (an advisory checksum mismatch). Such a layer is kept and
	// flagged rather than discarded.
	Decoded bool
}

func (f *Fault) Error() string {
	return f.Reason
}

func truncatedf(format string, args ...interface{}) *Fault {
	return &Fault{Kind: FaultTruncated, Reason: fmt.Sprintf(format, args...)}
}

func invariantf(format string, args ...interface{}) *Fault {
	return &Fault{Kind: FaultInvariantViolation, Reason: fmt.Sprintf(format, args...)}
}

func advisoryf(format string, args ...interface{}) *Fault {
	return &Fault{Kind: FaultInvariantViolation, Reason: fmt.Sprintf(format, args...), Decoded: true}
}
