// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package replay

import (
	"fmt"
	"os"
	"path/filepath"
)

const ContentType = "application/x-ndjson"

// Store keeps finished replays. A nil Store is not valid, use Offline.
type Store interface {
	Upload(name string, data []byte) error
	fmt.Stringer
}

// Name is the object name of a session's replay.
func Name(header Header) string {
	return fmt.Sprintf("%s/%s.ndjson", header.Level, header.Session)
}

// Offline discards replays.
type Offline struct{}

func (Offline) Upload(string, []byte) error {
	return nil
}

func (Offline) String() string {
	return "offline"
}

// Dir writes replays below a local directory.
type Dir string

func (dir Dir) Upload(name string, data []byte) error {
	path := filepath.Join(string(dir), filepath.FromSlash(name))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("replay dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func (dir Dir) String() string {
	return "dir " + string(dir)
}
