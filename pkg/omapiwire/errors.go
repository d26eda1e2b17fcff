// Package omapiwire implements the OMAPI binary envelope: the append-only
// output accumulator, the incremental input parser, and the ordered
// key/value dictionaries carried inside every message.
package omapiwire

import "errors"

// SizeLimit is the maximum number of bytes a single PDU may occupy, both
// while it is being built for transmission and while it is being
// accumulated from the wire before a full message has been parsed.
const SizeLimit = 65536

// ErrSizeLimit is returned whenever an encode or decode operation would
// push the accumulated byte count for one PDU above SizeLimit.
var ErrSizeLimit = errors.New("omapiwire: pdu exceeds size limit")
