// scuart/errors.go

package scuart

import "errors"

var (
	// ErrDeviceError is returned by Configure when the transmitter never
	// reports completion within ReadyTimeout polls.
	ErrDeviceError = errors.New("scuart: transmitter did not become ready")

	// ErrUnsupported is returned by operations this port does not offer.
	ErrUnsupported = errors.New("scuart: operation not supported")
)
