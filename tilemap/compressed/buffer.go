// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package compressed

import "io"

// maxRun is the longest run a single byte can hold.
const maxRun = 16

// Buffer run length encodes nibbles (values 0-15).
// Each byte is the nibble in the high 4 bits followed by run length - 1.
type Buffer struct {
	buf  []byte
	off  int // read position
	used int // nibbles of buf[off] already read
}

func (buffer *Buffer) Reset(buf []byte) {
	buffer.buf = buf
	buffer.off = 0
	buffer.used = 0
}

// WriteNibble appends the low 4 bits of n.
func (buffer *Buffer) WriteNibble(n byte) {
	n &= 0b1111
	if end := len(buffer.buf) - 1; end >= 0 {
		tuple := buffer.buf[end]
		if tuple>>4 == n && tuple&0b1111 < maxRun-1 {
			buffer.buf[end] = tuple + 1
			return
		}
	}
	buffer.buf = append(buffer.buf, n<<4)
}

// Write writes every byte as a nibble.
func (buffer *Buffer) Write(buf []byte) (int, error) {
	for _, b := range buf {
		buffer.WriteNibble(b)
	}
	return len(buf), nil
}

// ReadNibble reads the next nibble. It does not modify the encoded data so a
// Buffer can be read after Reset again.
func (buffer *Buffer) ReadNibble() (byte, error) {
	if buffer.off >= len(buffer.buf) {
		return 0, io.EOF
	}
	tuple := buffer.buf[buffer.off]
	buffer.used++
	if buffer.used > int(tuple&0b1111) {
		buffer.off++
		buffer.used = 0
	}
	return tuple >> 4, nil
}

func (buffer *Buffer) Read(buf []byte) (int, error) {
	i := 0
	for ; i < len(buf); i++ {
		n, err := buffer.ReadNibble()
		if err != nil {
			break
		}
		buf[i] = n
	}

	if i == 0 && len(buf) > 0 {
		return 0, io.EOF
	}
	return i, nil
}

// Grow makes space for about n nibbles
func (buffer *Buffer) Grow(n int) {
	compressed := n / 2
	if old := buffer.Buffer(); cap(old)-len(old) < compressed {
		buf := make([]byte, len(old), len(old)+compressed)
		copy(buf, old)
		buffer.buf = buf
		buffer.off = 0
	}
}

// Buffer returns the unread encoded bytes.
func (buffer *Buffer) Buffer() []byte {
	return buffer.buf[buffer.off:]
}
