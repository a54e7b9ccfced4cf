// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

type (
	// Client is a viewer connected to the Hub, over a socket or in process.
	Client interface {
		// Init is called by the hub goroutine once Data().Hub is set.
		Init()

		// Close is called by the hub goroutine after unregistering.
		Close()

		// Send must not block, it is called by the hub goroutine.
		Send(out outbound)

		// Destroy unregisters the client once, however often it is called
		// and from whichever goroutine.
		Destroy()

		Data() *ClientData
	}

	// ClientData is embedded by every Client.
	ClientData struct {
		Hub   *Hub
		index int // one plus position in a ClientList, zero if in none
	}

	// ClientList is an unordered set of Clients.
	ClientList struct {
		clients []Client
	}
)

func (list *ClientList) Len() int {
	return len(list.clients)
}

func (list *ClientList) Add(client Client) {
	data := client.Data()
	if data.index != 0 {
		panic("already added")
	}
	list.clients = append(list.clients, client)
	data.index = len(list.clients)
}

// Remove swaps the last client into client's place.
func (list *ClientList) Remove(client Client) {
	data := client.Data()
	i := data.index - 1
	if i < 0 || i >= len(list.clients) || list.clients[i] != client {
		panic("not in list")
	}

	last := len(list.clients) - 1
	if i != last {
		moved := list.clients[last]
		list.clients[i] = moved
		moved.Data().index = i + 1
	}
	list.clients[last] = nil
	list.clients = list.clients[:last]
	data.index = 0
}

// Broadcast sends out to every client in the list.
func (list *ClientList) Broadcast(out outbound) {
	for _, client := range list.clients {
		client.Send(out)
	}
}
