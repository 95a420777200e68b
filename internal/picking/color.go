package picking

import (
	"image/color"

	"github.com/example/plotsketch/internal/render"
)

// Key is the RGB triple identifying one live object in the pick raster.
type Key [3]uint8

// RGBA converts a key to an opaque raster color.
func (k Key) RGBA() color.RGBA {
	return color.RGBA{k[0], k[1], k[2], 255}
}

// sentinels are colors the allocator must never hand out: they mean "no
// object" when read back from the raster.
var sentinels = map[Key]bool{
	{0, 0, 0}:       true,
	{255, 255, 255}: true,
	{render.CanvasLight[0], render.CanvasLight[1], render.CanvasLight[2]}: true,
	{render.CanvasDark[0], render.CanvasDark[1], render.CanvasDark[2]}:    true,
}

// Per-channel multipliers for the id hash. Distinct odd constants keep the
// three channels decorrelated for similar id strings.
var channelMuls = [3]uint32{31, 37, 41}

const maxSaltAttempts = 1000

// allocator hands out one color per object id and remembers the mapping in
// both directions for the lifetime of the object.
type allocator struct {
	idToKey map[string]Key
	keyToID map[Key]string
	seq     uint32
}

func newAllocator() *allocator {
	return &allocator{
		idToKey: make(map[string]Key),
		keyToID: make(map[Key]string),
	}
}

// colorFor returns the key for id, assigning one on first use. Hashing is
// retried with an incrementing salt while the result collides with a
// sentinel or an already-assigned key; past the attempt ceiling a sequential
// counter takes over, which cannot run out of distinct colors.
func (a *allocator) colorFor(id string) Key {
	if k, ok := a.idToKey[id]; ok {
		return k
	}
	for salt := uint32(0); salt < maxSaltAttempts; salt++ {
		k := hashKey(id, salt)
		if sentinels[k] {
			continue
		}
		if _, taken := a.keyToID[k]; taken {
			continue
		}
		a.assign(id, k)
		return k
	}
	for {
		a.seq++
		k := Key{uint8(a.seq), uint8(a.seq >> 8), uint8(a.seq >> 16)}
		if sentinels[k] {
			continue
		}
		if _, taken := a.keyToID[k]; taken {
			continue
		}
		a.assign(id, k)
		return k
	}
}

func (a *allocator) assign(id string, k Key) {
	a.idToKey[id] = k
	a.keyToID[k] = id
}

// lookup resolves a raster color back to its owning object id.
func (a *allocator) lookup(k Key) (string, bool) {
	id, ok := a.keyToID[k]
	return id, ok
}

// prune drops mappings for ids no longer alive so their colors become
// available again. Called on rebuild with the current scene's id set.
func (a *allocator) prune(live map[string]bool) {
	for id, k := range a.idToKey {
		if !live[id] {
			delete(a.idToKey, id)
			delete(a.keyToID, k)
		}
	}
}

// hashKey derives an RGB triple from id using one multiplicative hash per
// channel, then pushes mid-tone channels out of the ambiguous middle band.
func hashKey(id string, salt uint32) Key {
	var k Key
	for c := 0; c < 3; c++ {
		h := salt*2654435761 + uint32(c)
		for i := 0; i < len(id); i++ {
			h = h*channelMuls[c] + uint32(id[i])
		}
		k[c] = contrast(uint8(h))
	}
	return k
}

// contrast maps values in [85, 170] into the low or high band so assigned
// colors stay visually distinct from each other and from mid grays.
func contrast(v uint8) uint8 {
	if v < 85 || v > 170 {
		return v
	}
	if v < 128 {
		return v - 85
	}
	return v + 85
}
