// Package omapi implements the OMAPI transactional request/response
// engine: the Message type (serialize, sign, verify) and the Client that
// drives a handshake and the high-level host operations over a single
// stream.
package omapi

import (
	"errors"
	"fmt"
)

var (
	// ErrProtocolMismatch is returned when the peer's startup frame
	// advertises a protocol version other than ProtocolVersion.
	ErrProtocolMismatch = errors.New("omapi: protocol version mismatch")

	// ErrHeaderSizeMismatch is returned when the peer's startup frame
	// advertises a header size other than headerSize.
	ErrHeaderSizeMismatch = errors.New("omapi: header size mismatch")

	// ErrNotConnected is returned by any operation attempted after
	// Close, or after a transport failure has closed the connection.
	ErrNotConnected = errors.New("omapi: not connected")

	// ErrConnectionClosed is returned when the peer closes the
	// connection (EOF) while more bytes were expected.
	ErrConnectionClosed = errors.New("omapi: connection closed by peer")

	// ErrBadSignature is returned when a received message's signature
	// does not verify, or its authid names no known authenticator.
	ErrBadSignature = errors.New("omapi: bad message signature")

	// ErrWrongAuthenticator is returned when a response is signed under
	// an authenticator other than the connection's default, and the
	// caller has not opted into accepting it.
	ErrWrongAuthenticator = errors.New("omapi: response signed with wrong authenticator")

	// ErrUnexpectedResponse is returned when a received message's rid
	// does not match the tid of the request it was read for.
	ErrUnexpectedResponse = errors.New("omapi: received message is not the expected response")

	// ErrNotFound is returned when a lookup or delete finds no object,
	// or an expected attribute is absent from an UPDATE response.
	ErrNotFound = errors.New("omapi: not found")

	// ErrValue is returned when a caller-supplied IP or MAC address is
	// not well-formed.
	ErrValue = errors.New("omapi: invalid value")
)

// OmapiError reports a protocol-level failure that does not fit one of
// the other sentinel errors — e.g. an operation that received a
// syntactically valid but semantically wrong opcode.
type OmapiError struct {
	Text string
}

func (e *OmapiError) Error() string {
	return fmt.Sprintf("omapi: %s", e.Text)
}

func newOmapiError(format string, args ...interface{}) error {
	return &OmapiError{Text: fmt.Sprintf(format, args...)}
}
