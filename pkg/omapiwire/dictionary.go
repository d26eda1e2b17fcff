package omapiwire

import "bytes"

// DictEntry is one key/value pair of a Dictionary. Keys must be non-empty
// and at most 65535 bytes; values are bounded only by SizeLimit in
// practice.
type DictEntry struct {
	Key   []byte
	Value []byte
}

// Dictionary is an ordered sequence of key/value pairs. Order is
// significant both on the wire and when an update is applied; it is not
// a map.
type Dictionary []DictEntry

// Get returns the value of the last entry matching key, mirroring the
// behavior of building a Python dict from the (key, value) pairs: later
// duplicates win.
func (d Dictionary) Get(key []byte) ([]byte, bool) {
	var (
		value []byte
		found bool
	)
	for _, e := range d {
		if bytes.Equal(e.Key, key) {
			value, found = e.Value, true
		}
	}
	return value, found
}

// Update returns a new Dictionary with any entry whose key appears in
// update removed, followed by the entries of update in their original
// order.
func (d Dictionary) Update(update Dictionary) Dictionary {
	skip := make(map[string]struct{}, len(update))
	for _, e := range update {
		skip[string(e.Key)] = struct{}{}
	}
	out := make(Dictionary, 0, len(d)+len(update))
	for _, e := range d {
		if _, drop := skip[string(e.Key)]; drop {
			continue
		}
		out = append(out, e)
	}
	return append(out, update...)
}
