package selfplay

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamp87/mcts/pkg/mcts"
)

func TestDialDisabledSentinelNeedsNoNetwork(t *testing.T) {
	c, err := Dial("0", 0)
	require.NoError(t, err)
	assert.False(t, c.Enabled())
}

func TestSendOnDisabledClientReturnsEndpointDisabled(t *testing.T) {
	c, _ := Dial("0", 0)
	err := c.Send([]float32{1, 2}, 0, []float32{0.5, 0.5}, 1.0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mcts.ErrEndpointDisabled))
}

func TestCloseOnDisabledClientIsANoop(t *testing.T) {
	c, _ := Dial("0", 0)
	assert.NoError(t, c.Close())
}

// sinkServer runs a fake sample sink that acknowledges every message it
// receives, recording each decoded payload's kind ("sample" or "policy")
// in the order it arrived.
func sinkServer(t *testing.T, order *[]string) *httptest.Server {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		for i := 0; i < 2; i++ {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				return
			}
			var probe map[string]json.RawMessage
			require.NoError(t, json.Unmarshal(msg, &probe))
			if _, isSample := probe["player"]; isSample {
				*order = append(*order, "sample")
			} else {
				*order = append(*order, "policy")
			}
			require.NoError(t, conn.WriteMessage(websocket.TextMessage, ack))
		}
	}))
	return srv
}

func TestSendWaitsForAckAfterEachMessageBeforeSendingTheNext(t *testing.T) {
	var order []string
	srv := sinkServer(t, &order)
	defer srv.Close()

	endpoint := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, err := Dial(endpoint, 0)
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Send([]float32{1, 2}, 0, []float32{0.5, 0.5}, 1.0))
	assert.Equal(t, []string{"sample", "policy"}, order)
}

func TestSendReturnsMalformedResponseOnBadAck(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()
		_, _, err = conn.ReadMessage()
		require.NoError(t, err)
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte{0, 0}))
	}))
	defer srv.Close()

	endpoint := "ws" + strings.TrimPrefix(srv.URL, "http")
	c, err := Dial(endpoint, 0)
	require.NoError(t, err)
	defer c.Close()

	err = c.Send([]float32{1, 2}, 0, []float32{0.5, 0.5}, 1.0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, mcts.ErrMalformedResponse))
}
