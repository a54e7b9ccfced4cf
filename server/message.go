// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"fmt"
	jsoniter "github.com/json-iterator/go"
	"reflect"
	"strings"
)

// Messages travel as {"data": ..., "type": name} where name is the Go type
// name starting with a lower case letter.
type (
	inbound interface {
		Inbound(hub *Hub, client Client)
	}

	// outbound is sent by the hub. Droppable ones may be skipped by a client
	// that fell behind.
	outbound interface {
		droppable() bool
	}

	messageType string

	outboundEnvelope struct {
		Data outbound    `json:"data"`
		Type messageType `json:"type"`
	}

	inboundEnvelope struct {
		Data jsoniter.RawMessage `json:"data"`
		Type messageType         `json:"type"`
	}

	// SignedInbound is an inbound and the client that sent it.
	SignedInbound struct {
		Client Client
		inbound
	}
)

var errNoMessageType = errors.New("message without type")

var (
	inboundTypes  = make(map[messageType]reflect.Type)
	outboundTypes = make(map[reflect.Type]messageType)
)

func messageTypeOf(t reflect.Type) messageType {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	name := t.Name()
	return messageType(strings.ToLower(name[:1]) + name[1:])
}

// Only call from init functions.
func registerInbound(inbounds ...inbound) {
	for _, in := range inbounds {
		t := reflect.TypeOf(in)
		inboundTypes[messageTypeOf(t)] = t
	}
}

// Only call from init functions.
func registerOutbound(outbounds ...outbound) {
	for _, out := range outbounds {
		t := reflect.TypeOf(out)
		outboundTypes[t] = messageTypeOf(t)
	}
}

func encodeOutbound(out outbound) ([]byte, error) {
	typ, ok := outboundTypes[reflect.TypeOf(out)]
	if !ok {
		// Outbounds only come from the hub
		panic("unregistered outbound " + reflect.TypeOf(out).String())
	}
	return json.Marshal(outboundEnvelope{Data: out, Type: typ})
}

// decodeInbound unwraps a message from a client. Unregistered types become
// InvalidInbound instead of an error so old clients stay connected.
func decodeInbound(buf []byte) (inbound, error) {
	var envelope inboundEnvelope
	if err := json.Unmarshal(buf, &envelope); err != nil {
		return nil, err
	}
	if envelope.Type == "" {
		return nil, errNoMessageType
	}

	t, ok := inboundTypes[envelope.Type]
	if !ok {
		return InvalidInbound{messageType: envelope.Type}, nil
	}

	in := reflect.New(t)
	if len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, in.Interface()); err != nil {
			return nil, fmt.Errorf("%s: %w", envelope.Type, err)
		}
	}
	return in.Elem().Interface().(inbound), nil
}
