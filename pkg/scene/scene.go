package scene

import (
	"image/color"
	"slices"
	"sync"

	"github.com/taigrr/chart3d/pkg/math3d"
)

// Scene is the ordered draw list of one chart. Insertion order is draw order.
// All methods are safe for concurrent use.
type Scene struct {
	mu sync.Mutex

	// Draw slots; removed polygons leave nil until the next compaction.
	slots []*Polygon
	index map[Key]int
	// Keys per segment in insertion order.
	segments map[SegmentID][]Key
	holes    int
}

// New returns an empty scene.
func New() *Scene {
	return &Scene{
		index:    make(map[Key]int),
		segments: make(map[SegmentID][]Key),
	}
}

// Add appends p to the draw list. A polygon with the same key is replaced
// in its existing slot.
func (s *Scene) Add(p *Polygon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.add(p)
}

func (s *Scene) add(p *Polygon) {
	if i, ok := s.index[p.Key]; ok {
		p.ZIndex = i
		s.slots[i] = p
		return
	}
	p.ZIndex = len(s.slots)
	s.index[p.Key] = len(s.slots)
	s.slots = append(s.slots, p)
	s.segments[p.Key.Segment] = append(s.segments[p.Key.Segment], p.Key)
}

// Remove drops the polygon with the given key, if present.
func (s *Scene) Remove(k Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.drop(k) {
		return
	}
	keys := s.segments[k.Segment]
	if i := slices.Index(keys, k); i >= 0 {
		keys = slices.Delete(keys, i, i+1)
	}
	if len(keys) == 0 {
		delete(s.segments, k.Segment)
	} else {
		s.segments[k.Segment] = keys
	}
	s.maybeCompact()
}

// RemoveSegment drops every polygon owned by id.
func (s *Scene) RemoveSegment(id SegmentID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range s.segments[id] {
		s.drop(k)
	}
	delete(s.segments, id)
	s.maybeCompact()
}

// ReplaceSegment swaps a segment's polygons for polys, keeping the segment's
// position in the draw order. A segment not yet in the scene is appended.
func (s *Scene) ReplaceSegment(id SegmentID, polys []*Polygon) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(id, polys, 0, false)
}

// InsertSegment is ReplaceSegment for a segment that may not be in the scene
// yet: a new segment is placed just before the first polygon of next, or
// appended when next is not in the scene either.
func (s *Scene) InsertSegment(id SegmentID, polys []*Polygon, next SegmentID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(id, polys, next, true)
}

func (s *Scene) firstSlot(id SegmentID) (int, bool) {
	keys, ok := s.segments[id]
	if !ok {
		return 0, false
	}
	pos := len(s.slots)
	for _, k := range keys {
		pos = min(pos, s.index[k])
	}
	return pos, true
}

func (s *Scene) replace(id SegmentID, polys []*Polygon, next SegmentID, hasNext bool) {
	pos, ok := s.firstSlot(id)
	if !ok && hasNext {
		pos, ok = s.firstSlot(next)
	}
	if !ok {
		for _, p := range polys {
			p.Key.Segment = id
			s.add(p)
		}
		return
	}
	for _, k := range s.segments[id] {
		s.drop(k)
	}
	delete(s.segments, id)

	for _, p := range polys {
		p.Key.Segment = id
		s.segments[id] = append(s.segments[id], p.Key)
	}
	s.slots = slices.Insert(s.slots, pos, polys...)
	s.compact()
}

// Get returns the polygon with the given key.
func (s *Scene) Get(k Key) (*Polygon, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[k]
	if !ok {
		return nil, false
	}
	return s.slots[i], true
}

// Segment returns the polygons owned by id in insertion order.
func (s *Scene) Segment(id SegmentID) []*Polygon {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := s.segments[id]
	out := make([]*Polygon, 0, len(keys))
	for _, k := range keys {
		out = append(out, s.slots[s.index[k]])
	}
	return out
}

// Len returns the number of polygons, drawable or not.
func (s *Scene) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.index)
}

// UpdatePolygon replaces the geometry of an existing polygon in place. It
// reports false when the key is unknown.
func (s *Scene) UpdatePolygon(k Key, vertices []math3d.Vec3, fill color.RGBA, visible bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[k]
	if !ok {
		return false
	}
	s.slots[i].Update(vertices, fill, visible)
	return true
}

// Polygons returns a snapshot of the drawable polygons in draw order.
// Invalid and hidden polygons are skipped. Vertex slices are shared and
// must not be modified.
func (s *Scene) Polygons() []Polygon {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Polygon, 0, len(s.index))
	for _, p := range s.slots {
		if p != nil && p.valid && p.Visible {
			out = append(out, *p)
		}
	}
	return out
}

// Clear removes everything.
func (s *Scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slots = s.slots[:0]
	s.holes = 0
	clear(s.index)
	clear(s.segments)
}

// Bounds returns the box around every drawable polygon.
func (s *Scene) Bounds() AABB {
	b := EmptyAABB()
	for _, p := range s.Polygons() {
		for _, v := range p.Vertices {
			b = b.Extend(v)
		}
	}
	return b
}

func (s *Scene) drop(k Key) bool {
	i, ok := s.index[k]
	if !ok {
		return false
	}
	s.slots[i] = nil
	delete(s.index, k)
	s.holes++
	return true
}

func (s *Scene) maybeCompact() {
	if s.holes > 32 && s.holes*2 > len(s.slots) {
		s.compact()
	}
}

// compact removes nil slots and rebuilds the index.
func (s *Scene) compact() {
	s.slots = slices.DeleteFunc(s.slots, func(p *Polygon) bool { return p == nil })
	s.holes = 0
	clear(s.index)
	for i, p := range s.slots {
		p.ZIndex = i
		s.index[p.Key] = i
	}
}
