package dsp

import "wfmrx/internal/sample"

// CS and RS are local aliases for the two concrete scalar types so the rest
// of this package can stay terse; they are the same types defined in
// wfmrx/internal/sample.
type (
	CS = sample.CS
	RS = sample.RS
)
