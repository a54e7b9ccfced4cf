// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"bytes"
	"errors"
	"fmt"
	"github.com/SoftbearStudios/tuxcollide/replay"
	"github.com/SoftbearStudios/tuxcollide/tilemap"
	"github.com/SoftbearStudios/tuxcollide/tilemap/compressed"
	"github.com/SoftbearStudios/tuxcollide/tilemap/tiled"
	"github.com/SoftbearStudios/tuxcollide/world"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
	"image/color"
	"io"
)

// Pixels per frame the camera pans
const cameraSpeed = 12

// layerView is a decoded tile layer.
type layerView struct {
	offset  world.Vec2f
	stride  int
	classes []compressed.Class
}

// Viewer is the ebiten.Game of collisionview.
type Viewer struct {
	level  *tiled.Level
	layers []layerView
	source FrameSource
	frame  *replay.Frame
	boxes  map[uint32]world.Rect // by object id, for drawing pairs
	camera world.Vec2f
	paused bool
	ended  bool
	face   *text.GoTextFace
	width  int
	height int
}

// NewViewer decodes the tile layers of level like a remote client would.
func NewViewer(level *tiled.Level, source FrameSource) (*Viewer, error) {
	fontSource, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}

	v := &Viewer{
		level:  level,
		source: source,
		boxes:  make(map[uint32]world.Rect),
		face:   &text.GoTextFace{Source: fontSource, Size: 14},
		width:  screenWidth,
		height: screenHeight,
	}
	for _, layer := range level.Layers {
		snapshot := compressed.Encode(layer)
		classes, err := snapshot.Decode()
		if err != nil {
			return nil, err
		}
		v.layers = append(v.layers, layerView{offset: snapshot.Offset, stride: snapshot.Stride, classes: classes})
	}
	return v, nil
}

func (v *Viewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	controller, _ := v.source.(Controller)

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		v.paused = !v.paused
		if controller != nil {
			controller.Pause(v.paused)
		}
	}

	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA) {
		v.camera.X -= cameraSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD) {
		v.camera.X += cameraSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW) {
		v.camera.Y -= cameraSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS) {
		v.camera.Y += cameraSpeed
	}
	v.camera.X = world.Clamp(v.camera.X, 0, max(v.level.Width-float32(v.width), 0))
	v.camera.Y = world.Clamp(v.camera.Y, 0, max(v.level.Height-float32(v.height), 0))

	if controller != nil && inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		controller.Spawn(world.KindRock, v.camera.Add(world.Vec2f{X: float32(x), Y: float32(y)}))
	}

	// Period steps one frame while paused
	step := v.paused && inpututil.IsKeyJustPressed(ebiten.KeyPeriod)
	if step && controller != nil {
		controller.Step()
	}
	if v.ended || (v.paused && !step && controller == nil) {
		return nil
	}

	frame, err := v.source.Next()
	if errors.Is(err, io.EOF) {
		v.ended = true
		return nil
	} else if err != nil {
		return err
	} else if frame == nil {
		return nil
	}

	v.frame = frame
	clear(v.boxes)
	for _, obj := range frame.Objects {
		v.boxes[obj.ID] = obj.BBox
	}
	return nil
}

func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{20, 20, 32, 255})

	for _, layer := range v.layers {
		v.drawLayer(screen, layer)
	}
	if v.frame == nil {
		return
	}
	for i := range v.frame.Objects {
		v.drawObject(screen, &v.frame.Objects[i])
	}
	for i := range v.frame.Pairs {
		v.drawPair(screen, &v.frame.Pairs[i])
	}

	s := v.frame.Stats
	status := fmt.Sprintf("%s frame %d  objects %d  active %d  pairs %d  touches %d  crushed %d",
		v.level.Name, v.frame.Number, s.Objects, s.Active, s.Pairs, s.Touches, s.Crushed)
	if v.ended {
		status += "  [end]"
	} else if v.paused {
		status += "  [paused]"
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, status, v.face, op)
}

func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	v.width, v.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// tileBBox is the box of the ith tile of a layer.
func (layer *layerView) tileBBox(i int) world.Rect {
	x, y := i%layer.stride, i/layer.stride
	return world.RectSized(world.Vec2f{
		X: layer.offset.X + float32(x*tilemap.Size),
		Y: layer.offset.Y + float32(y*tilemap.Size),
	}, tilemap.Size, tilemap.Size)
}

// view is the visible part of the level.
func (v *Viewer) view() world.Rect {
	return world.RectSized(v.camera, float32(v.width), float32(v.height))
}
