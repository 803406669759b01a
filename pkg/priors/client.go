// Package priors implements the client side of the external priors/value
// service contract (spec §6.2): a Problem that holds a dialed Client calls
// Evaluate from its own Wp to get the action priors and scalar value it
// would otherwise have to compute itself; the engine never talks to the
// service directly. The original C++ implementation talked to this service over a
// ZeroMQ REQ socket (original_source/src/connect4.hpp's computeMCTS_WP);
// no ZeroMQ binding exists anywhere in the retrieved Go pack, so this
// client instead dials it as a WebSocket client connection, following
// brensch-snek2's scraper/downloader/downloader.go dialer.Dial pattern.
package priors

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/adamp87/mcts/pkg/mcts"
)

// Request is the wire shape sent for one priors/value evaluation.
type Request struct {
	State []float32 `json:"state"`
}

// Response is the wire shape a priors/value service replies with. Priors
// is parallel to the Problem's LegalActions order at the call site.
type Response struct {
	Priors []float64 `json:"priors"`
	Value  float64   `json:"value"`
}

// disabledEndpoint is the endpoint string Dial treats as "no service":
// the returned client skips the network call entirely, per spec §6.2.
const disabledEndpoint = "0"

// Client is a single persistent connection to one player's priors/value
// endpoint. Requests are serialized: the wire protocol is strict
// request/reply, so concurrent Evaluate calls from multiple search
// goroutines share the connection under a mutex rather than opening one
// socket per goroutine.
type Client struct {
	mu       sync.Mutex
	conn     *websocket.Conn
	endpoint string
}

// Dial connects to endpoint, or returns a disabled client if endpoint is
// the "0" sentinel.
func Dial(endpoint string, handshakeTimeout time.Duration) (*Client, error) {
	if endpoint == disabledEndpoint || endpoint == "" {
		return &Client{endpoint: disabledEndpoint}, nil
	}

	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.Dial(endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("priors: dial %s: %w", endpoint, err)
	}
	log.Debug().Str("endpoint", endpoint).Msg("priors client connected")
	return &Client{conn: conn, endpoint: endpoint}, nil
}

// Enabled reports whether this client has a live connection.
func (c *Client) Enabled() bool { return c.conn != nil }

// Evaluate sends state and returns the priors/value response. Callers on
// a disabled client get an error; the engine's Problem.Wp implementation
// is expected to check Enabled first and fall back to a local heuristic.
func (c *Client) Evaluate(state []float32) (Response, error) {
	if c.conn == nil {
		return Response{}, fmt.Errorf("priors: %w", mcts.ErrEndpointDisabled)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	payload, err := json.Marshal(Request{State: state})
	if err != nil {
		return Response{}, fmt.Errorf("priors: marshal request: %w", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		return Response{}, fmt.Errorf("priors: write: %w", err)
	}

	_, raw, err := c.conn.ReadMessage()
	if err != nil {
		return Response{}, fmt.Errorf("priors: read: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return Response{}, fmt.Errorf("priors: unmarshal response: %w", err)
	}
	if len(resp.Priors) == 0 {
		return Response{}, fmt.Errorf("priors: empty priors: %w", mcts.ErrMalformedResponse)
	}
	return resp, nil
}

// Close closes the underlying connection, if any.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Close()
}
