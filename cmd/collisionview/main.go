// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Command collisionview draws a level, its objects and the collisions between
// them. It either simulates the level itself or plays a recorded replay.
package main

import (
	"flag"
	"github.com/SoftbearStudios/tuxcollide/replay"
	"github.com/SoftbearStudios/tuxcollide/server"
	"github.com/SoftbearStudios/tuxcollide/world"
	"github.com/hajimehoshi/ebiten/v2"
	"log"
	"os"
)

const (
	screenWidth  = 960
	screenHeight = 540
)

func main() {
	var (
		level      string
		replayPath string
		seed       int64
		actors     int
	)

	flag.StringVar(&level, "level", "", "TMX level to load (generated if empty)")
	flag.StringVar(&replayPath, "replay", "", "replay to play instead of simulating")
	flag.Int64Var(&seed, "seed", 1, "seed of the generated level and actors")
	flag.IntVar(&actors, "actors", 8, "extra players to spawn when simulating")
	flag.Parse()

	l, err := server.LoadLevel(level, seed)
	if err != nil {
		log.Fatal(err)
	}

	var source FrameSource
	if replayPath != "" {
		f, err := os.Open(replayPath)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()

		reader, err := replay.NewReader(f)
		if err != nil {
			log.Fatal(err)
		}
		if header := reader.Header(); header.Level != l.Name {
			log.Printf("replay of %s played on %s", header.Level, l.Name)
		}
		source = replaySource{reader}
	} else {
		hub, err := server.NewHub(server.HubOptions{Level: l, Actors: actors, Seed: seed})
		if err != nil {
			log.Fatal(err)
		}
		source = newHubSource(hub)
	}

	viewer, err := NewViewer(l, source)
	if err != nil {
		log.Fatal(err)
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("collisionview: " + l.Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(world.FramesPerSecond)

	if err := ebiten.RunGame(viewer); err != nil {
		log.Fatal(err)
	}
}
