// Package omapiauth implements the OMAPI signing capability: a closed
// set of authenticators that can produce and, by construction, verify a
// fixed-length signature over a message's signing form.
package omapiauth

import "github.com/canonical/omapiclient/pkg/omapiwire"

// Authenticator is a signing capability identified by a server-assigned
// id, with a fixed signature length and algorithm name. The set of
// implementations is closed: Null and HMACMD5.
type Authenticator interface {
	// AuthID returns the id this authenticator is registered under. It
	// is 0 for the null authenticator and server-assigned for HMAC-MD5.
	AuthID() uint32

	// AuthLen is the exact byte length of every signature Sign
	// produces.
	AuthLen() int

	// Algorithm is the wire algorithm name, or "" for the null
	// authenticator.
	Algorithm() string

	// AuthObject returns the object-dictionary fragment sent to the
	// server when opening an "authenticator" object with this
	// authenticator.
	AuthObject() omapiwire.Dictionary

	// Sign returns the signature of data. len(result) always equals
	// AuthLen().
	Sign(data []byte) ([]byte, error)
}
