package client

import (
	"context"
	"net/http"
	"time"

	"connectfour/communication"

	"github.com/gorilla/websocket"
)

// Client talks to the play server from a terminal or a test.
type Client struct {
	conn *websocket.Conn
}

// Dial connects to a websocket URL such as ws://localhost:8080/ws.
func Dial(ctx context.Context, url string, header http.Header) (*Client, *http.Response, error) {
	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, resp, err
	}
	return &Client{conn: conn}, resp, nil
}

// NewGame starts a game. A nil humanFirst lets the server decide.
func (c *Client) NewGame(humanFirst *bool) error {
	return c.conn.WriteJSON(communication.ClientMessage{Type: communication.MessageNew, HumanFirst: humanFirst})
}

func (c *Client) Move(column int) error {
	return c.conn.WriteJSON(communication.ClientMessage{Type: communication.MessageMove, Column: column})
}

func (c *Client) Send(raw []byte) error {
	return c.conn.WriteMessage(websocket.TextMessage, raw)
}

// Receive blocks for the next server message.
func (c *Client) Receive() (communication.ServerMessage, error) {
	var msg communication.ServerMessage
	err := c.conn.ReadJSON(&msg)
	return msg, err
}

func (c *Client) Close() error {
	c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.conn.Close()
}
