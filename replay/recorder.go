// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package replay

import (
	"bufio"
	"fmt"
	"github.com/SoftbearStudios/tuxcollide/sector"
	"github.com/SoftbearStudios/tuxcollide/world"
	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"io"
	"sync"
	"time"
)

// Recorder is a sector.Observer that writes every frame as one line of JSON.
// The first error stops recording, see Err.
type Recorder struct {
	header Header
	stream *jsoniter.Stream
	pairs  []PairState

	mu   sync.Mutex // guards last and err, the hub reads them from other goroutines
	last *Frame
	err  error
}

var _ sector.Observer = (*Recorder)(nil)

// NewRecorder writes the header of a new session to w.
func NewRecorder(level string, options sector.Options, w io.Writer) (*Recorder, error) {
	r := &Recorder{
		header: Header{
			Session:   uuid.New(),
			Level:     level,
			Created:   time.Now().UTC(),
			Options:   options,
			FrameRate: world.FramesPerSecond,
		},
		stream: jsoniter.NewStream(json, w, 4096),
	}
	if err := r.write(&r.header); err != nil {
		return nil, err
	}
	return r, nil
}

// Header of the recorded session.
func (r *Recorder) Header() Header {
	return r.header
}

func (r *Recorder) Pair(pair sector.Pair) {
	r.pairs = append(r.pairs, PairState{
		A:         pair.AID,
		B:         pair.BID,
		Hit:       pair.Hit,
		ResponseA: pair.ResponseA,
		ResponseB: pair.ResponseB,
		Touch:     pair.Touch,
	})
}

func (r *Recorder) Frame(s *sector.Sector, stats sector.Stats) {
	frame := Capture(s, stats)
	frame.Pairs = r.pairs
	r.pairs = nil

	r.mu.Lock()
	r.last = frame
	failed := r.err != nil
	r.mu.Unlock()

	if failed {
		return
	}
	if err := r.write(frame); err != nil {
		r.mu.Lock()
		r.err = err
		r.mu.Unlock()
	}
}

// Last returns the last recorded frame, nil before the first.
func (r *Recorder) Last() *Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Err returns the first write error.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

func (r *Recorder) write(v interface{}) error {
	r.stream.WriteVal(v)
	r.stream.WriteRaw("\n")
	if r.stream.Error != nil {
		return fmt.Errorf("encode replay: %w", r.stream.Error)
	}
	if err := r.stream.Flush(); err != nil {
		return fmt.Errorf("write replay: %w", err)
	}
	return nil
}

// Reader reads a replay written by a Recorder.
type Reader struct {
	scanner *bufio.Scanner
	header  Header
}

// NewReader reads the header of a replay.
func NewReader(rd io.Reader) (*Reader, error) {
	scanner := bufio.NewScanner(rd)
	scanner.Buffer(make([]byte, 64*1024), 64*1024*1024)

	r := &Reader{scanner: scanner}
	if err := r.next(&r.header); err != nil {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("read replay header: %w", err)
	}
	return r, nil
}

func (r *Reader) Header() Header {
	return r.header
}

// Next returns the next frame or io.EOF.
func (r *Reader) Next() (*Frame, error) {
	frame := new(Frame)
	if err := r.next(frame); err != nil {
		return nil, err
	}
	return frame, nil
}

func (r *Reader) next(v interface{}) error {
	for r.scanner.Scan() {
		line := r.scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		return json.Unmarshal(line, v)
	}
	if err := r.scanner.Err(); err != nil {
		return err
	}
	return io.EOF
}

// Verify reads every frame of rd and compares it with the frame produced by
// step, which should advance a freshly built sector by one frame.
func Verify(rd io.Reader, step func() *Frame) (frames int, err error) {
	reader, err := NewReader(rd)
	if err != nil {
		return 0, err
	}
	for {
		expected, err := reader.Next()
		if err == io.EOF {
			return frames, nil
		} else if err != nil {
			return frames, err
		}
		if err := Compare(expected, step()); err != nil {
			return frames, err
		}
		frames++
	}
}
