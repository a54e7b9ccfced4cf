// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 8 / 10

	// Once this many messages are queued, droppable ones are thinned out.
	socketCongestionThreshold = 8
	// About half a second of frames
	socketBufferSize = 32

	maxMessageSize = 512

	debugSocket = false
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // debug viewers run anywhere
	},
	HandshakeTimeout: time.Second,
	ReadBufferSize:   maxMessageSize,
	WriteBufferSize:  8192,
}

// SocketClient relays between a websocket and the hub. Reads and writes each
// get a goroutine.
type SocketClient struct {
	ClientData
	conn    *websocket.Conn
	send    chan outbound
	once    sync.Once
	counter int
}

func NewSocketClient(conn *websocket.Conn) *SocketClient {
	return &SocketClient{
		conn: conn,
		send: make(chan outbound, socketBufferSize),
	}
}

func (client *SocketClient) Init() {
	go client.writePump()
	go client.readPump()
}

func (client *SocketClient) Data() *ClientData {
	return &client.ClientData
}

// Close is called by the hub after unregistering, it ends the write pump.
func (client *SocketClient) Close() {
	close(client.send)
}

func (client *SocketClient) Destroy() {
	client.once.Do(func() {
		hub := client.Hub

		// May be called on the hub goroutine, which can't block on its own channel.
		select {
		case hub.unregister <- client:
		default:
			go func() {
				hub.unregister <- client
			}()
		}

		_ = client.conn.Close()
	})
}

func (client *SocketClient) Send(out outbound) {
	client.counter++
	if congestion := len(client.send) - socketCongestionThreshold; congestion > 1 && out.droppable() && client.counter%congestion != 0 {
		if debugSocket {
			log.Println("socket: dropping frame, congestion", congestion)
		}
		return
	}

	select {
	case client.send <- out:
	default:
		if debugSocket {
			log.Println("socket: send buffer full")
		}
		client.Destroy()
	}
}

func (client *SocketClient) readPump() {
	defer client.Destroy()

	conn := client.conn
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, buf, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Println("socket: close error:", err)
			}
			return
		}

		in, err := decodeInbound(buf)
		if err != nil {
			log.Println("socket: decode error:", err)
			return
		}
		client.Hub.inbound <- SignedInbound{Client: client, inbound: in}
	}
}

func (client *SocketClient) writePump() {
	conn := client.conn
	pingTicker := time.NewTicker(pingPeriod)
	defer func() {
		pingTicker.Stop()
		client.Destroy()
	}()

	for {
		select {
		case out, ok := <-client.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}

			buf, err := encodeOutbound(out)
			if err == nil {
				err = conn.WriteMessage(websocket.TextMessage, buf)
			}
			if err != nil {
				if debugSocket {
					log.Println("socket: write error:", err)
				}
				return
			}
		case <-pingTicker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
