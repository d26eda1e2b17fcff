package omapi

import (
	"encoding/binary"

	"github.com/canonical/omapiclient/pkg/omapiwire"
)

// hardwareTypeEthernet is the OMAPI "hardware-type" value for Ethernet,
// the only link type this client speaks.
const hardwareTypeEthernet uint32 = 1

func u32bytes(v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return b[:]
}

// AddHost creates a new host reservation binding mac to ip.
func (c *Client) AddHost(ip, mac string) error {
	macBytes, err := packMAC(mac)
	if err != nil {
		return err
	}
	ipBytes, err := packIP(ip)
	if err != nil {
		return err
	}

	msg, err := Open("host")
	if err != nil {
		return err
	}
	msg.MessageDict = append(msg.MessageDict,
		omapiwire.DictEntry{Key: []byte("create"), Value: u32bytes(1)},
		omapiwire.DictEntry{Key: []byte("exclusive"), Value: u32bytes(1)},
	)
	msg.Obj = append(msg.Obj,
		omapiwire.DictEntry{Key: []byte("hardware-address"), Value: macBytes},
		omapiwire.DictEntry{Key: []byte("hardware-type"), Value: u32bytes(hardwareTypeEthernet)},
		omapiwire.DictEntry{Key: []byte("ip-address"), Value: ipBytes},
	)

	response, err := c.queryServer(msg)
	if err != nil {
		return err
	}
	if response.Opcode != OpUpdate {
		return newOmapiError("add failed")
	}
	return nil
}

// UpdateHost sets the ip address of the host reservation with the given
// mac, creating it via AddHost if it does not already exist.
func (c *Client) UpdateHost(mac, ip string) error {
	macBytes, err := packMAC(mac)
	if err != nil {
		return err
	}

	msg, err := Open("host")
	if err != nil {
		return err
	}
	msg.Obj = append(msg.Obj, omapiwire.DictEntry{Key: []byte("hardware-address"), Value: macBytes})

	response, err := c.queryServer(msg)
	if err != nil {
		return err
	}
	if response.Opcode != OpUpdate {
		return c.AddHost(ip, mac)
	}

	ipBytes, err := packIP(ip)
	if err != nil {
		return err
	}
	update, err := UpdateMessage(response.Handle)
	if err != nil {
		return err
	}
	update.Obj = omapiwire.Dictionary{{Key: []byte("ip-address"), Value: ipBytes}}

	response, err = c.queryServer(update)
	if err != nil {
		return err
	}
	if response.Opcode != OpStatus {
		return newOmapiError("could not update host with mac: %s", mac)
	}
	return nil
}

// DelHost removes the host reservation identified by mac.
func (c *Client) DelHost(mac string) error {
	macBytes, err := packMAC(mac)
	if err != nil {
		return err
	}

	msg, err := Open("host")
	if err != nil {
		return err
	}
	msg.Obj = append(msg.Obj,
		omapiwire.DictEntry{Key: []byte("hardware-address"), Value: macBytes},
		omapiwire.DictEntry{Key: []byte("hardware-type"), Value: u32bytes(hardwareTypeEthernet)},
	)

	response, err := c.queryServer(msg)
	if err != nil {
		return err
	}
	if response.Opcode != OpUpdate {
		return ErrNotFound
	}
	if response.Handle == 0 {
		return newOmapiError("received invalid handle from server")
	}

	del, err := DeleteMessage(response.Handle)
	if err != nil {
		return err
	}
	response, err = c.queryServer(del)
	if err != nil {
		return err
	}
	if response.Opcode != OpStatus {
		return newOmapiError("delete failed")
	}
	return nil
}

// LookupIP returns the ip address bound to mac.
func (c *Client) LookupIP(mac string) (string, error) {
	macBytes, err := packMAC(mac)
	if err != nil {
		return "", err
	}

	msg, err := Open("host")
	if err != nil {
		return "", err
	}
	msg.Obj = append(msg.Obj, omapiwire.DictEntry{Key: []byte("hardware-address"), Value: macBytes})

	response, err := c.queryServer(msg)
	if err != nil {
		return "", err
	}
	if response.Opcode != OpUpdate {
		return "", ErrNotFound
	}
	ipBytes, ok := response.Obj.Get([]byte("ip-address"))
	if !ok {
		return "", ErrNotFound
	}
	return unpackIP(ipBytes)
}

// LookupMAC returns the mac address bound to ip.
func (c *Client) LookupMAC(ip string) (string, error) {
	ipBytes, err := packIP(ip)
	if err != nil {
		return "", err
	}

	msg, err := Open("host")
	if err != nil {
		return "", err
	}
	msg.Obj = append(msg.Obj, omapiwire.DictEntry{Key: []byte("ip-address"), Value: ipBytes})

	response, err := c.queryServer(msg)
	if err != nil {
		return "", err
	}
	if response.Opcode != OpUpdate {
		return "", ErrNotFound
	}
	macBytes, ok := response.Obj.Get([]byte("hardware-address"))
	if !ok {
		return "", ErrNotFound
	}
	return unpackMAC(macBytes)
}
