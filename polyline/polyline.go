// Package polyline implements Google's Encoded Polyline Algorithm Format.
//
// Points are stored as signed deltas scaled by 1e5, zig-zag encoded and split
// into 5-bit chunks offset by 63 so the result is printable ASCII.
package polyline

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/theoremus-urban-solutions/transit-directions/geo"
)

// Precision is the Google Maps scale factor.
const Precision = 1e5

// ErrTruncated is returned when the input ends inside a value.
var ErrTruncated = errors.New("polyline: truncated input")

// ErrOverflow is returned when a value has more chunks than a 32-bit delta needs.
var ErrOverflow = errors.New("polyline: value overflows 32 bits")

// maxShift bounds a value to seven 5-bit chunks.
const maxShift = 30

// Decode converts an encoded polyline into coordinates.
func Decode(encoded string) ([]geo.LatLng, error) {
	var points []geo.LatLng
	index, lat, lng := 0, 0, 0

	for index < len(encoded) {
		dLat, next, err := decodeValue(encoded, index)
		if err != nil {
			return nil, err
		}
		dLng, next, err := decodeValue(encoded, next)
		if err != nil {
			return nil, err
		}
		index = next
		lat += dLat
		lng += dLng
		points = append(points, geo.LatLng{
			Lat: float64(lat) / Precision,
			Lng: float64(lng) / Precision,
		})
	}
	return points, nil
}

func decodeValue(encoded string, index int) (int, int, error) {
	shift, result := 0, 0
	for {
		if index >= len(encoded) {
			return 0, index, ErrTruncated
		}
		b := int(encoded[index]) - 63
		if b < 0 || b > 0x3f {
			return 0, index, fmt.Errorf("polyline: invalid byte %q at offset %d", encoded[index], index)
		}
		if shift > maxShift {
			return 0, index, fmt.Errorf("%w at offset %d", ErrOverflow, index)
		}
		index++
		result |= (b & 0x1f) << shift
		shift += 5
		if b < 0x20 {
			break
		}
	}
	if result&1 != 0 {
		return ^(result >> 1), index, nil
	}
	return result >> 1, index, nil
}

// Encode is the inverse of Decode.
func Encode(points []geo.LatLng) string {
	var b strings.Builder
	prevLat, prevLng := 0, 0
	for _, p := range points {
		lat := int(math.Round(p.Lat * Precision))
		lng := int(math.Round(p.Lng * Precision))
		encodeValue(&b, lat-prevLat)
		encodeValue(&b, lng-prevLng)
		prevLat, prevLng = lat, lng
	}
	return b.String()
}

func encodeValue(b *strings.Builder, v int) {
	u := v << 1
	if v < 0 {
		u = ^u
	}
	for u >= 0x20 {
		b.WriteByte(byte((0x20 | (u & 0x1f)) + 63))
		u >>= 5
	}
	b.WriteByte(byte(u + 63))
}
