// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"testing"
)

// testClient keeps everything sent to it.
type testClient struct {
	ClientData
	sent      []outbound
	destroyed bool
}

func (client *testClient) Init() { client.sent = nil }
func (client *testClient) Close() {}
func (client *testClient) Send(out outbound) { client.sent = append(client.sent, out) }
func (client *testClient) Destroy() { client.destroyed = true }
func (client *testClient) Data() *ClientData { return &client.ClientData }

func (client *testClient) frames() (frames []FrameUpdate) {
	for _, out := range client.sent {
		if frame, ok := out.(FrameUpdate); ok {
			frames = append(frames, frame)
		}
	}
	return
}

func TestClientList(t *testing.T) {
	var list ClientList
	a, b, c := &testClient{}, &testClient{}, &testClient{}
	list.Add(a)
	list.Add(b)
	list.Add(c)
	if list.Len() != 3 {
		t.Fatalf("expected 3 clients got %d", list.Len())
	}

	list.Remove(a)
	if list.Len() != 2 || c.index != 1 || b.index != 2 {
		t.Errorf("expected c to take a's place, indices b %d c %d", b.index, c.index)
	}

	list.Broadcast(FrameUpdate{})
	if len(a.sent) != 0 || len(b.sent) != 1 || len(c.sent) != 1 {
		t.Errorf("expected broadcast to b and c")
	}

	list.Remove(b)
	list.Remove(c)
	if list.Len() != 0 {
		t.Errorf("expected empty list got %d", list.Len())
	}

	// Removed clients can join again
	list.Add(a)
	if list.Len() != 1 || a.index != 1 {
		t.Errorf("expected a to be re-added")
	}

	defer func() {
		if recover() == nil {
			t.Errorf("expected panic removing twice")
		}
	}()
	list.Remove(b)
}
