// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"github.com/SoftbearStudios/tuxcollide/replay"
	jsoniter "github.com/json-iterator/go"
)

// Vectors and rects encode as arrays once replay.JSON registered them.
var _ = replay.JSON()

var json = jsoniter.Config{
	EscapeHTML:                    false,
	SortMapKeys:                   true,
	ObjectFieldMustBeSimpleString: true,
	CaseSensitive:                 true,
}.Froze()
