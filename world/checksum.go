package world

import (
	"cmp"
	"encoding/binary"
	"hash/fnv"
	"math"
	"slices"
)

type shapeKey struct {
	x, y, w, h int64
	oneWay     bool
}

// Checksum hashes the structural shape of a rect set
// Positions are taken relative to the set's minimum corner and quantized, so the
// result ignores uniform translation, id assignment and jitter below quantum
func Checksum(rects []Rect, quantum float64) uint64 {
	if quantum <= 0 {
		quantum = 1
	}
	h := fnv.New64a()
	if len(rects) == 0 {
		return h.Sum64()
	}

	minX, minY := math.Inf(1), math.Inf(1)
	for _, r := range rects {
		minX = min(minX, r.X)
		minY = min(minY, r.Y)
	}

	q := func(v float64) int64 { return int64(math.Round(v / quantum)) }
	keys := make([]shapeKey, len(rects))
	for i, r := range rects {
		keys[i] = shapeKey{
			x:      q(r.X - minX),
			y:      q(r.Y - minY),
			w:      q(r.W),
			h:      q(r.H),
			oneWay: r.OneWay(),
		}
	}
	slices.SortFunc(keys, func(a, b shapeKey) int {
		switch {
		case a.x != b.x:
			return cmp.Compare(a.x, b.x)
		case a.y != b.y:
			return cmp.Compare(a.y, b.y)
		case a.w != b.w:
			return cmp.Compare(a.w, b.w)
		case a.h != b.h:
			return cmp.Compare(a.h, b.h)
		case a.oneWay != b.oneWay:
			if a.oneWay {
				return 1
			}
			return -1
		}
		return 0
	})

	var buf [33]byte
	for _, k := range keys {
		binary.LittleEndian.PutUint64(buf[0:], uint64(k.x))
		binary.LittleEndian.PutUint64(buf[8:], uint64(k.y))
		binary.LittleEndian.PutUint64(buf[16:], uint64(k.w))
		binary.LittleEndian.PutUint64(buf[24:], uint64(k.h))
		buf[32] = 0
		if k.oneWay {
			buf[32] = 1
		}
		h.Write(buf[:])
	}
	return h.Sum64()
}
