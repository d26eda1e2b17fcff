package omapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"

	"github.com/rs/zerolog"

	"github.com/canonical/omapiclient/pkg/omapiauth"
	"github.com/canonical/omapiclient/pkg/omapiwire"
)

// ProtocolVersion is the OMAPI protocol version this client speaks.
const ProtocolVersion uint32 = 100

// headerSize is the byte length of a message's fixed six-field header
// (6 x 4-byte big-endian integers), advertised during the startup
// handshake.
const headerSize uint32 = 24

// recvChunk is the number of bytes requested from the transport on each
// read when the parser needs more data.
const recvChunk = 2048

// MetricsRecorder receives lifecycle observations from a Client. It is
// satisfied by *internal/metrics.OmapiRegistry; callers that do not need
// metrics can leave it nil.
type MetricsRecorder interface {
	ObserveRequest(opcode uint32)
	ObserveResponse(opcode uint32, status string)
	ObserveSignatureFailure()
	ObserveHandshake(result string)
}

// ClientConfig configures a Client.
type ClientConfig struct {
	Host string
	Port int

	// User and Key, when both set, are used to build an HMAC-MD5
	// authenticator and run the authenticator handshake. Key must be
	// Base64-encoded.
	User string
	Key  string

	// Insecure allows receiveResponse to accept a response signed by an
	// authenticator other than the connection's default. It is off by
	// default; only set this when you know what you are doing.
	Insecure bool

	Logger  *zerolog.Logger
	Metrics MetricsRecorder
}

// Client owns a transport stream, an InBuffer, a registry of
// authenticators keyed by server-assigned id, and the default
// authenticator id used to sign outgoing messages.
type Client struct {
	conn     net.Conn
	in       *omapiwire.InBuffer
	authIDs  map[uint32]omapiauth.Authenticator
	defauth  uint32
	insecure bool
	closed   bool

	log     zerolog.Logger
	metrics MetricsRecorder
}

// Dial connects to the OMAPI server described by cfg, performs the
// startup handshake, and — if User and Key are both set — the
// authenticator handshake.
func Dial(ctx context.Context, cfg ClientConfig) (*Client, error) {
	log := zerolog.Nop()
	if cfg.Logger != nil {
		log = *cfg.Logger
	}

	addr := net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))
	conn, err := (&net.Dialer{}).DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("omapi: dialing %s: %w", addr, err)
	}

	return newClient(conn, cfg, log)
}

// newClient drives the handshake over an already-connected transport.
// It is split out from Dial so tests can exercise the protocol over an
// in-memory net.Conn instead of a real TCP dial.
func newClient(conn net.Conn, cfg ClientConfig, log zerolog.Logger) (*Client, error) {
	c := &Client{
		conn:     conn,
		in:       omapiwire.NewInBuffer(),
		authIDs:  map[uint32]omapiauth.Authenticator{0: omapiauth.NewNull()},
		defauth:  0,
		insecure: cfg.Insecure,
		log:      log,
		metrics:  cfg.Metrics,
	}

	if err := c.sendStartup(); err != nil {
		c.Close()
		return nil, err
	}
	if err := c.recvStartup(); err != nil {
		c.Close()
		return nil, err
	}
	c.log.Debug().Str("host", cfg.Host).Int("port", cfg.Port).Msg("omapi: startup handshake complete")

	if cfg.User != "" && cfg.Key != "" {
		auth, err := omapiauth.NewHMACMD5(cfg.User, cfg.Key)
		if err != nil {
			c.Close()
			return nil, err
		}
		if err := c.initializeAuthenticator(auth); err != nil {
			c.observeHandshake("failure")
			c.Close()
			return nil, err
		}
		c.observeHandshake("success")
		c.log.Debug().Uint32("authid", auth.AuthID()).Msg("omapi: authenticator handshake complete")
	}

	return c, nil
}

func (c *Client) observeHandshake(result string) {
	if c.metrics != nil {
		c.metrics.ObserveHandshake(result)
	}
}

func (c *Client) checkConnected() error {
	if c.closed {
		return ErrNotConnected
	}
	return nil
}

// Close shuts down the transport if open. It is idempotent; any
// subsequent send or receive fails with ErrNotConnected.
func (c *Client) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.conn.Close()
}

func (c *Client) sendConn(data []byte) error {
	if err := c.checkConnected(); err != nil {
		return err
	}
	for len(data) > 0 {
		n, err := c.conn.Write(data)
		if err != nil {
			c.Close()
			return err
		}
		data = data[n:]
	}
	return nil
}

func (c *Client) fillInBuffer() error {
	if err := c.checkConnected(); err != nil {
		return err
	}
	buf := make([]byte, recvChunk)
	n, err := c.conn.Read(buf)
	if n == 0 {
		c.Close()
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("omapi: reading from transport: %w", err)
		}
		return ErrConnectionClosed
	}
	if feedErr := c.in.Feed(buf[:n]); feedErr != nil {
		c.Close()
		return feedErr
	}
	return nil
}

func (c *Client) sendStartup() error {
	if err := c.checkConnected(); err != nil {
		return err
	}
	out := omapiwire.NewOutBuffer()
	if err := out.AddNet32Int(ProtocolVersion); err != nil {
		return err
	}
	if err := out.AddNet32Int(headerSize); err != nil {
		return err
	}
	return c.sendConn(out.Bytes())
}

func (c *Client) recvStartup() error {
	for {
		version, hsize, ok := c.in.ParseStartup()
		if !ok {
			if err := c.fillInBuffer(); err != nil {
				return err
			}
			continue
		}
		c.in.ResetSize()
		if version != ProtocolVersion {
			c.Close()
			return ErrProtocolMismatch
		}
		if hsize != headerSize {
			c.Close()
			return ErrHeaderSizeMismatch
		}
		return nil
	}
}

func (c *Client) receiveMessage() (*Message, error) {
	for {
		frame, ok := c.in.ParseFrame()
		if !ok {
			if err := c.fillInBuffer(); err != nil {
				return nil, err
			}
			continue
		}
		c.in.ResetSize()
		msg := &Message{Frame: *frame}
		if !msg.Verify(c.authIDs) {
			if c.metrics != nil {
				c.metrics.ObserveSignatureFailure()
			}
			c.log.Error().Uint32("authid", msg.AuthID).Msg("omapi: bad message signature")
			c.Close()
			return nil, ErrBadSignature
		}
		return msg, nil
	}
}

func (c *Client) receiveResponse(request *Message) (*Message, error) {
	response, err := c.receiveMessage()
	if err != nil {
		return nil, err
	}
	if !response.IsResponse(request) {
		return nil, ErrUnexpectedResponse
	}
	if response.AuthID != c.defauth && !c.insecure {
		c.log.Warn().Uint32("authid", response.AuthID).Uint32("defauth", c.defauth).Msg("omapi: response signed with unexpected authenticator")
		return nil, ErrWrongAuthenticator
	}
	if c.metrics != nil {
		c.metrics.ObserveResponse(response.Opcode, "ok")
	}
	return response, nil
}

func (c *Client) sendMessage(msg *Message, sign bool) error {
	if err := c.checkConnected(); err != nil {
		return err
	}
	if sign {
		if err := msg.Sign(c.authIDs[c.defauth]); err != nil {
			return err
		}
	}
	data, err := msg.AsString(false)
	if err != nil {
		return err
	}
	return c.sendConn(data)
}

// queryServer signs and sends msg, then reads and validates its
// response.
func (c *Client) queryServer(msg *Message) (*Message, error) {
	if c.metrics != nil {
		c.metrics.ObserveRequest(msg.Opcode)
	}
	if err := c.sendMessage(msg, true); err != nil {
		return nil, err
	}
	return c.receiveResponse(msg)
}

func (c *Client) initializeAuthenticator(auth *omapiauth.HMACMD5Authenticator) error {
	msg, err := Open("authenticator")
	if err != nil {
		return err
	}
	msg.UpdateObject(auth.AuthObject())

	response, err := c.queryServer(msg)
	if err != nil {
		return err
	}
	if response.Opcode != OpUpdate {
		return newOmapiError("received non-update response for open")
	}
	authid := response.Handle
	if authid == 0 {
		return newOmapiError("received invalid authid from server")
	}
	auth.SetAuthID(authid)
	c.authIDs[authid] = auth
	c.defauth = authid
	return nil
}
