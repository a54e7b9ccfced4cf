// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"math/rand"
)

// prob is true with probability p per call, so per frame for actors.
func prob(r *rand.Rand, p float64) bool {
	return r.Float64() < p
}
