package omapi

import (
	"fmt"
	"strconv"
	"strings"
)

// packIP converts a dotted-quad IPv4 address to its 4-byte network-order
// form.
func packIP(s string) ([]byte, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return nil, fmt.Errorf("%w: %q has an invalid number of dots", ErrValue, s)
	}
	out := make([]byte, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > 255 {
			return nil, fmt.Errorf("%w: %q is not a valid ip address octet", ErrValue, p)
		}
		out[i] = byte(v)
	}
	return out, nil
}

// unpackIP converts a 4-byte network-order IPv4 address to dotted-quad
// notation.
func unpackIP(b []byte) (string, error) {
	if len(b) != 4 {
		return "", fmt.Errorf("%w: buffer is not exactly four bytes long", ErrValue)
	}
	return fmt.Sprintf("%d.%d.%d.%d", b[0], b[1], b[2], b[3]), nil
}

// packMAC converts a colon-delimited hex MAC address to its 6-byte
// network-order form.
func packMAC(s string) ([]byte, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 6 {
		return nil, fmt.Errorf("%w: %q has an invalid number of colons", ErrValue, s)
	}
	out := make([]byte, 6)
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 16, 8)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a valid mac address octet", ErrValue, p)
		}
		out[i] = byte(v)
	}
	return out, nil
}

// unpackMAC converts a 6-byte network-order MAC address to lowercase
// colon-delimited hex notation.
func unpackMAC(b []byte) (string, error) {
	if len(b) != 6 {
		return "", fmt.Errorf("%w: buffer is not exactly six bytes long", ErrValue)
	}
	return fmt.Sprintf("%02x:%02x:%02x:%02x:%02x:%02x", b[0], b[1], b[2], b[3], b[4], b[5]), nil
}
