// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package world

import (
	_ "embed"
	"errors"
	"github.com/json-iterator/go"
	"sort"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// invalidKind is the zero Kind, objects without a kind use it.
const invalidKind = 0

type (
	// Kind is the capability tag of an object such as: player, badGuy, coin, etc.
	// Handlers switch on it instead of inspecting concrete types.
	Kind uint8

	// KindData is the description of a Kind.
	KindData struct {
		Group    Group       `json:"group"`
		Width    float32     `json:"width"`
		Height   float32     `json:"height"`
		Response HitResponse `json:"response"` // default response of a plain handler
		Unisolid bool        `json:"unisolid"`
		Label    string      `json:"label"`
	}

	kindEnum struct {
		choices map[string]Kind
		strings []string
	}
)

var (
	//go:embed kinds.json
	kindDataJSON []byte

	kinds    kindEnum
	kindData []KindData

	KindPlayer   Kind
	KindBadGuy   Kind
	KindBullet   Kind
	KindPowerUp  Kind
	KindPlatform Kind
	KindRock     Kind
	KindBlock    Kind
	KindCoin     Kind
	KindTrigger  Kind
)

func init() {
	data := make(map[string]KindData)
	if err := json.Unmarshal(kindDataJSON, &data); err != nil {
		panic(err)
	}

	// Sort so Kind values are stable but invalid must remain at index 0
	kinds.strings = []string{"invalid"}
	for s := range data {
		kinds.strings = append(kinds.strings, s)
	}
	sort.Strings(kinds.strings[invalidKind+1:])

	kinds.choices = make(map[string]Kind, len(kinds.strings)-1)
	kindData = make([]KindData, len(kinds.strings))
	for i, s := range kinds.strings {
		if i == invalidKind {
			continue
		}
		kinds.choices[s] = Kind(i)
		kindData[i] = data[s]
	}

	KindPlayer = mustParseKind("player")
	KindBadGuy = mustParseKind("badGuy")
	KindBullet = mustParseKind("bullet")
	KindPowerUp = mustParseKind("powerUp")
	KindPlatform = mustParseKind("platform")
	KindRock = mustParseKind("rock")
	KindBlock = mustParseKind("block")
	KindCoin = mustParseKind("coin")
	KindTrigger = mustParseKind("trigger")
}

func mustParseKind(s string) Kind {
	k, err := ParseKind(s)
	if err != nil {
		panic(err)
	}
	return k
}

func ParseKind(s string) (Kind, error) {
	k, ok := kinds.choices[s]
	if !ok {
		return invalidKind, errors.New("invalid kind: " + s)
	}
	return k, nil
}

// Kinds returns every valid Kind in order.
func Kinds() []Kind {
	out := make([]Kind, 0, len(kinds.strings)-1)
	for i := range kinds.strings {
		if i != invalidKind {
			out = append(out, Kind(i))
		}
	}
	return out
}

// Data returns the KindData of k, the zero KindData for unknown kinds.
func (k Kind) Data() *KindData {
	if int(k) >= len(kindData) {
		return &kindData[invalidKind]
	}
	return &kindData[k]
}

func (k Kind) String() string {
	if int(k) >= len(kinds.strings) {
		return kinds.strings[invalidKind]
	}
	return kinds.strings[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
