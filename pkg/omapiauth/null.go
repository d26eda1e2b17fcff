package omapiauth

import "github.com/canonical/omapiclient/pkg/omapiwire"

// NullAuthenticator is the identity authenticator: a zero-length
// signature under fixed id 0. It is always present in a Client's
// authenticator registry and requires no special casing at the call
// site — its Sign simply flows through the normal serialization path.
type NullAuthenticator struct{}

// NewNull returns a NullAuthenticator.
func NewNull() *NullAuthenticator {
	return &NullAuthenticator{}
}

func (a *NullAuthenticator) AuthID() uint32 { return 0 }

func (a *NullAuthenticator) AuthLen() int { return 0 }

func (a *NullAuthenticator) Algorithm() string { return "" }

func (a *NullAuthenticator) AuthObject() omapiwire.Dictionary { return nil }

func (a *NullAuthenticator) Sign([]byte) ([]byte, error) { return []byte{}, nil }
