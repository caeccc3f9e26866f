package bitvec

import "errors"

// ErrCorrupt is the sentinel all decode failures unwrap to.
var ErrCorrupt = errors.New("bitvec: corrupt serialized data")

// DecodeError describes why serialized BitVector bytes were rejected.
//
// It matches ErrCorrupt under errors.Is.
type DecodeError struct {
	Reason string
}

func (e *DecodeError) Error() string {
	return "bitvec: decode: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return ErrCorrupt }
