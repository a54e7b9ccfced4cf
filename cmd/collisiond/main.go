// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"flag"
	"fmt"
	"github.com/SoftbearStudios/tuxcollide/replay"
	"github.com/SoftbearStudios/tuxcollide/sector"
	"github.com/SoftbearStudios/tuxcollide/server"
	"github.com/SoftbearStudios/tuxcollide/world"
	"golang.org/x/net/netutil"
	"log"
	"net"
	"net/http"
	_ "net/http/pprof"
)

func main() {
	var (
		level          string
		seed           int64
		port           int
		maxConnections int
		actors         int
		tickRate       int
		replayDir      string
		s3Bucket       string
		s3Region       string
		statsFile      string
		options        = sector.DefaultOptions()
	)

	flag.StringVar(&level, "level", "", "TMX level to load (generated if empty)")
	flag.Int64Var(&seed, "seed", 1, "seed of the generated level and actors")
	flag.IntVar(&port, "port", 8192, "http service port (negative to run without http)")
	flag.IntVar(&maxConnections, "max-connections", 64, "maximum number of inbound TCP connections")
	flag.IntVar(&actors, "actors", 8, "extra players to spawn")
	flag.IntVar(&tickRate, "tick-rate", world.FramesPerSecond, "frames per second")
	flag.StringVar(&replayDir, "replay-dir", "", "directory to store replays in")
	flag.StringVar(&s3Bucket, "s3-bucket", "", "S3 bucket to store replays in (overrides replay-dir)")
	flag.StringVar(&s3Region, "s3-region", "us-east-1", "region of the S3 bucket")
	flag.StringVar(&statsFile, "stats", "", "CSV file to append frame stats to")
	flag.Var(float32Flag{&options.MaxSpeed}, "max-speed", "longest movement per frame in pixels")
	flag.Var(float32Flag{&options.Epsilon}, "epsilon", "gap left between resolved objects")
	flag.Var(float32Flag{&options.ShiftDelta}, "shift-delta", "overlap shifted out sideways")
	flag.Parse()

	if actors < 0 {
		log.Fatal("invalid argument actors: ", actors)
	}
	if tickRate <= 0 {
		log.Fatal("invalid argument tick-rate: ", tickRate)
	}

	var store replay.Store = replay.Offline{}
	if s3Bucket != "" {
		s3Store, err := replay.NewS3Store(s3Region, s3Bucket, "replays")
		if err != nil {
			// Replays are not required for the server to function, just log an error
			log.Printf("S3 error: %v\n", err)
		} else {
			store = s3Store
		}
	} else if replayDir != "" {
		store = replay.Dir(replayDir)
	}

	l, err := server.LoadLevel(level, seed)
	if err != nil {
		log.Fatal(err)
	}

	hub, err := server.NewHub(server.HubOptions{
		Level:     l,
		Sector:    options,
		TickRate:  tickRate,
		Actors:    actors,
		Store:     store,
		StatsFile: statsFile,
		Seed:      seed,
	})
	if err != nil {
		log.Fatal(err)
	}

	go hub.Run()

	if port < 0 {
		log.Printf("%s simulation started, replays: %s", l.Name, store)
		// Block forever
		<-make(chan struct{})
	}

	log.Printf("%s server started on http://localhost:%d, replays: %s", l.Name, port, store)

	http.HandleFunc("/", hub.ServeIndex)
	http.HandleFunc("/ws", hub.ServeSocket)

	listener, err := net.Listen("tcp", fmt.Sprint(":", port))
	if err != nil {
		log.Fatalf("Listen: %v", err)
	}
	defer listener.Close()

	listener = netutil.LimitListener(listener, maxConnections)

	log.Fatal("Serve: ", http.Serve(listener, nil))
}
