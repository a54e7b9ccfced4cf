// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"fmt"
	"github.com/SoftbearStudios/tuxcollide/sector"
	"log"
	"runtime"
	"sort"
	"time"
)

// Status is served as JSON by ServeIndex.
type Status struct {
	Level     string       `json:"level"`
	Session   string       `json:"session"`
	Store     string       `json:"store"`
	Clients   int          `json:"clients"`
	Actors    int          `json:"actors"`
	Collected int          `json:"collected"`
	Paused    bool         `json:"paused,omitempty"`
	Stats     sector.Stats `json:"stats"`
}

// Debug prints debugging info to console and appends frame stats to the stats file.
func (h *Hub) Debug() {
	fmt.Printf("Debug [%v] %s\n", time.Now().Format(time.UnixDate), h.options.Store)
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	fmt.Printf(" - memstats: %dM/%dM\n", mem.HeapInuse/1e6, mem.NextGC/1e6)
	fmt.Printf(" - clients: %d, actors: %d, collected: %d, paused: %t\n", h.clients.Len(), len(h.actors), h.collected, h.paused)

	s := h.stats
	fmt.Printf(" - frame %d: objects: %d, active: %d, pairs: %d, touches: %d, crushed: %d\n",
		s.Frame, s.Objects, s.Active, s.Pairs, s.Touches, s.Crushed)

	fmt.Print(" - ")
	h.sector.Debug()

	var totalDuration time.Duration
	fmt.Print(" - ")
	names, averages := h.benches.averages()
	for i, name := range names {
		totalDuration += averages[i]
		fmt.Print(name, ": ", averages[i], ", ")
	}
	fmt.Println("total:", totalDuration)

	if h.options.StatsFile != "" {
		if err := AppendLog(h.options.StatsFile, []interface{}{
			time.Now().UnixMilli(),
			s.Frame,
			s.Objects,
			s.Active,
			s.Pairs,
			s.Touches,
			s.Crushed,
			totalDuration.Seconds() * 1000,
		}); err != nil {
			log.Println("stats:", err)
		}
	}

	h.updateStatus()
}

func (h *Hub) updateStatus() {
	buf, err := json.Marshal(Status{
		Level:     h.level.Name,
		Session:   h.level.Session.String(),
		Store:     h.options.Store.String(),
		Clients:   h.clients.Len(),
		Actors:    len(h.actors),
		Collected: h.collected,
		Paused:    h.paused,
		Stats:     h.stats,
	})
	if err != nil {
		log.Println("status:", err)
		return
	}
	h.statusJSON.Store(buf)
}

// benchmarks accumulate how long hub functions take between calls to Debug.
type benchmarks map[string]*benchmark

type benchmark struct {
	total time.Duration
	runs  int
}

// record adds the time since start to name. Use as
// defer h.benches.record("name", time.Now())
func (benches benchmarks) record(name string, start time.Time) {
	elapsed := time.Since(start)
	b, ok := benches[name]
	if !ok {
		b = &benchmark{}
		benches[name] = b
	}
	b.total += elapsed
	b.runs++
}

// averages returns the average of each benchmark ordered by name and resets them.
func (benches benchmarks) averages() (names []string, averages []time.Duration) {
	for name := range benches {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		b := benches[name]
		var average time.Duration
		if b.runs > 0 {
			average = b.total / time.Duration(b.runs)
		}
		averages = append(averages, average)
		*b = benchmark{}
	}
	return
}
