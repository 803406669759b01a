// Package selfplay implements the client side of the self-play sample
// sink contract (spec §6.3): every stochastic decision emits one training
// sample (state tensor, policy tensor, outcome) to an external collector.
// The reference implementation's storeGamePolicyDNN
// (original_source/src/connect4.hpp) sends the sample as two ZeroMQ REQ
// messages, reading and checking the fixed two-byte {0x04, 0x02}
// acknowledgement after each one before sending the next; this client
// reproduces that same send/ack/send/ack framing over a WebSocket
// connection, dialed the same way pkg/priors dials its endpoint.
package selfplay

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/adamp87/mcts/pkg/mcts"
)

// ack is the literal acknowledgement byte sequence the sink replies with,
// unchanged from the reference implementation's wire format.
var ack = []byte{0x04, 0x02}

const disabledEndpoint = "0"

// SampleMessage is the first of the two messages sent per sample: the
// state features and which player they were captured from.
type SampleMessage struct {
	State  []float32 `json:"state"`
	Player int       `json:"player"`
}

// PolicyMessage is the second message: the visit-derived policy target
// and, once known, the game's terminal outcome from Player's perspective.
type PolicyMessage struct {
	Policy  []float32 `json:"policy"`
	Outcome float64   `json:"outcome"`
}

// Client is a persistent connection to the self-play sink.
type Client struct {
	mu       sync.Mutex
	conn     *websocket.Conn
	endpoint string
}

// Dial connects to endpoint, or returns a disabled client for the "0"
// sentinel.
func Dial(endpoint string, handshakeTimeout time.Duration) (*Client, error) {
	if endpoint == disabledEndpoint || endpoint == "" {
		return &Client{endpoint: disabledEndpoint}, nil
	}
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.Dial(endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("selfplay: dial %s: %w", endpoint, err)
	}
	return &Client{conn: conn, endpoint: endpoint}, nil
}

// Enabled reports whether this client has a live connection.
func (c *Client) Enabled() bool { return c.conn != nil }

// Send transmits one training sample as two framed messages and waits for
// the sink's acknowledgement.
func (c *Client) Send(state []float32, player int, policy []float32, outcome float64) error {
	if c.conn == nil {
		return fmt.Errorf("selfplay: %w", mcts.ErrEndpointDisabled)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	first, err := json.Marshal(SampleMessage{State: state, Player: player})
	if err != nil {
		return fmt.Errorf("selfplay: marshal sample: %w", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, first); err != nil {
		return fmt.Errorf("selfplay: write sample: %w", err)
	}
	if err := c.readAck(); err != nil {
		return fmt.Errorf("selfplay: sample not stored: %w", err)
	}

	second, err := json.Marshal(PolicyMessage{Policy: policy, Outcome: outcome})
	if err != nil {
		return fmt.Errorf("selfplay: marshal policy: %w", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, second); err != nil {
		return fmt.Errorf("selfplay: write policy: %w", err)
	}
	if err := c.readAck(); err != nil {
		return fmt.Errorf("selfplay: policy not stored: %w", err)
	}
	return nil
}

// readAck waits for the sink's two-byte {0x04, 0x02} acknowledgement,
// required after every WriteMessage call per storeGamePolicyDNN.
func (c *Client) readAck() error {
	_, reply, err := c.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("read ack: %w", err)
	}
	if !bytes.Equal(reply, ack) {
		return fmt.Errorf("unexpected ack %v: %w", reply, mcts.ErrMalformedResponse)
	}
	return nil
}

// Close closes the underlying connection, if any.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
