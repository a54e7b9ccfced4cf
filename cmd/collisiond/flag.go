// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"strconv"
)

// float32Flag is a flag.Value of a float32.
type float32Flag struct {
	value *float32
}

func (f float32Flag) String() string {
	if f.value == nil {
		return ""
	}
	return strconv.FormatFloat(float64(*f.value), 'g', -1, 32)
}

func (f float32Flag) Set(s string) error {
	v, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	*f.value = float32(v)
	return nil
}
