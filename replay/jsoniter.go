// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package replay

import (
	"github.com/SoftbearStudios/tuxcollide/world"
	jsoniter "github.com/json-iterator/go"
	"reflect"
	"strconv"
	"unsafe"
)

// Make sure functions get run first
var json = func() jsoniter.API {
	// Vectors and rects as arrays instead of objects
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(world.Vec2f{}).String(), encodeVec2f, emptyVec2f)
	jsoniter.RegisterTypeEncoderFunc(reflect.TypeOf(world.Rect{}).String(), encodeRect, emptyRect)

	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(world.Vec2f{}).String(), decodeVec2f)
	jsoniter.RegisterTypeDecoderFunc(reflect.TypeOf(world.Rect{}).String(), decodeRect)

	return jsoniter.Config{
		IndentionStep:                 0,
		MarshalFloatWith6Digits:       false, // replays must reproduce exact positions
		EscapeHTML:                    false,
		SortMapKeys:                   true,
		UseNumber:                     false,
		DisallowUnknownFields:         false,
		TagKey:                        "json",
		OnlyTaggedField:               false,
		ValidateJsonRawMessage:        false,
		ObjectFieldMustBeSimpleString: true,
		CaseSensitive:                 true,
	}.Froze()
}()

// JSON is the codec used for frames, shared with the debug server.
func JSON() jsoniter.API {
	return json
}

func encodeVec2f(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	vec := (*world.Vec2f)(ptr)
	stream.WriteArrayStart()
	stream.WriteFloat32(vec.X)
	stream.WriteMore()
	stream.WriteFloat32(vec.Y)
	stream.WriteArrayEnd()
}

func emptyVec2f(ptr unsafe.Pointer) bool {
	return (*world.Vec2f)(ptr).IsZero()
}

func encodeRect(ptr unsafe.Pointer, stream *jsoniter.Stream) {
	r := (*world.Rect)(ptr)
	stream.WriteArrayStart()
	stream.WriteFloat32(r.P1.X)
	stream.WriteMore()
	stream.WriteFloat32(r.P1.Y)
	stream.WriteMore()
	stream.WriteFloat32(r.P2.X)
	stream.WriteMore()
	stream.WriteFloat32(r.P2.Y)
	stream.WriteArrayEnd()
}

func emptyRect(ptr unsafe.Pointer) bool {
	return *(*world.Rect)(ptr) == world.Rect{}
}

// readFloats reads up to len(out) floats of an array and skips the rest.
func readFloats(iter *jsoniter.Iterator, out []float32) {
	i := 0
	iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
		if i < len(out) {
			// ReadFloat32 may round twice, ParseFloat doesn't
			f, err := strconv.ParseFloat(string(iter.ReadNumber()), 32)
			if err != nil {
				iter.ReportError("decode float", err.Error())
				return false
			}
			out[i] = float32(f)
		} else {
			iter.Skip()
		}
		i++
		return true
	})
}

func decodeVec2f(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	var f [2]float32
	readFloats(iter, f[:])
	*(*world.Vec2f)(ptr) = world.Vec2f{X: f[0], Y: f[1]}
}

func decodeRect(ptr unsafe.Pointer, iter *jsoniter.Iterator) {
	var f [4]float32
	readFloats(iter, f[:])
	*(*world.Rect)(ptr) = world.RectFrom(f[0], f[1], f[2], f[3])
}
