// network/connection.go
package network

import (
	"net"
	"sync"

	"github.com/gorilla/websocket"
)

// Connection abstracts one client transport so rooms and sessions can
// be exercised in tests without a live websocket.
type Connection interface {
	Send(data []byte) error
	ReadEnvelope() (*Envelope, error)
	Close() error
	RemoteAddr() net.Addr
}

type WSConnection struct {
	conn      *websocket.Conn
	sendMutex sync.Mutex
}

func NewWSConnection(conn *websocket.Conn) *WSConnection {
	return &WSConnection{conn: conn}
}

// Send writes one JSON text frame. Serialized so concurrent room
// broadcasts never interleave on the socket.
func (c *WSConnection) Send(data []byte) error {
	c.sendMutex.Lock()
	defer c.sendMutex.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// ReadEnvelope blocks for the next inbound message and decodes it.
// A decode failure is a protocol error; the caller aborts the connection.
func (c *WSConnection) ReadEnvelope() (*Envelope, error) {
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	return ParseEnvelope(data)
}

func (c *WSConnection) Close() error {
	return c.conn.Close()
}

func (c *WSConnection) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}
