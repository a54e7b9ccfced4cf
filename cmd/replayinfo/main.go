// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command replayinfo condenses the stats of a replay into CSV and optionally
// checks that simulating the level again reproduces it.
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"github.com/SoftbearStudios/tuxcollide/replay"
	"github.com/SoftbearStudios/tuxcollide/server"
	"io"
	"log"
	"os"
)

func main() {
	var (
		replayPath string
		output     string
		group      int
		verify     bool
		level      string
		seed       int64
		actors     int
	)

	flag.StringVar(&replayPath, "replay", "", "replay to read")
	flag.StringVar(&output, "o", "", "CSV to write (stdout if empty)")
	flag.IntVar(&group, "group", 64, "frames averaged per row")
	flag.BoolVar(&verify, "verify", false, "simulate the level again and compare")
	flag.StringVar(&level, "level", "", "TMX level the replay was recorded on (generated if empty)")
	flag.Int64Var(&seed, "seed", 1, "seed the replay was recorded with")
	flag.IntVar(&actors, "actors", 8, "actors the replay was recorded with")
	flag.Parse()

	if replayPath == "" || group < 1 {
		flag.Usage()
		os.Exit(2)
	}

	if verify {
		l, err := server.LoadLevel(level, seed)
		if err != nil {
			log.Fatal(err)
		}
		f, err := os.Open(replayPath)
		if err != nil {
			log.Fatal(err)
		}
		header, err := peekHeader(replayPath)
		if err != nil {
			log.Fatal(err)
		}
		hub, err := server.NewHub(server.HubOptions{Level: l, Sector: header.Options, Actors: actors, Seed: seed})
		if err != nil {
			log.Fatal(err)
		}
		frames, err := replay.Verify(f, func() *replay.Frame {
			hub.Update()
			return hub.Frame()
		})
		f.Close()
		if err != nil {
			log.Fatalf("verify after %d frames: %v", frames, err)
		}
		log.Printf("verified %d frames", frames)
	}

	f, err := os.Open(replayPath)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	out := io.Writer(os.Stdout)
	if output != "" {
		o, err := os.Create(output)
		if err != nil {
			log.Fatal(err)
		}
		defer o.Close()
		out = o
	}

	if err := condense(f, out, group); err != nil {
		log.Fatal(err)
	}
}

func peekHeader(path string) (replay.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return replay.Header{}, err
	}
	defer f.Close()
	reader, err := replay.NewReader(f)
	if err != nil {
		return replay.Header{}, err
	}
	return reader.Header(), nil
}

// condense writes one CSV row of averaged stats per group of frames.
func condense(r io.Reader, out io.Writer, group int) error {
	reader, err := replay.NewReader(r)
	if err != nil {
		return err
	}
	header := reader.Header()
	log.Printf("session %s of %s recorded %s", header.Session, header.Level, header.Created.Format("2006-01-02 15:04:05"))

	w := csv.NewWriter(out)
	if err := w.Write([]string{"frame", "objects", "active", "pairs", "touches", "crushed", "moved", "removed"}); err != nil {
		return err
	}

	for {
		var (
			first  uint32
			n      int
			totals [7]int
		)
		for ; n < group; n++ {
			frame, err := reader.Next()
			if err == io.EOF {
				break
			} else if err != nil {
				return err
			}
			if n == 0 {
				first = frame.Number
			}
			s := frame.Stats
			for i, v := range [...]int{s.Objects, s.Active, s.Pairs, s.Touches, s.Crushed, s.Moved, s.Removed} {
				totals[i] += v
			}
		}
		if n == 0 {
			break
		}

		fields := []string{fmt.Sprint(first)}
		for _, total := range totals {
			fields = append(fields, fmt.Sprintf("%.2f", float32(total)/float32(n)))
		}
		if err := w.Write(fields); err != nil {
			return err
		}
		if n < group {
			break
		}
	}

	w.Flush()
	return w.Error()
}
