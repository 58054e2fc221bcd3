// Package rtree implements a generic, bulk-loadable R-tree over
// payload-carrying points: a bounding-volume hierarchy supporting range,
// intersection, and nearest-neighbor queries. There is no R-tree in the
// reference corpus this package is adapted from; its API surface and
// documentation style follow the teacher's SpatialIndex
// (internal/lidar/clustering.go) — a regular-grid neighbor index with
// Build/RegionQuery — generalized from a fixed grid to a balanced,
// hierarchical index with the richer query surface a trajectory analytics
// library needs (strict containment, arbitrary-box intersection, kNN).
package rtree

import (
	"container/heap"
	"math"
	"reflect"
	"sort"

	"github.com/sandialabs/tracktable-go/internal/tracktable/geodomain"
	"github.com/sandialabs/tracktable-go/internal/tracktable/point"
)

// Fanout is the tree's node fan-out: a node holds at most Fanout entries
// (leaf) or children (internal) before it is split.
const Fanout = 16

// minFill is the quadratic split algorithm's target minimum group size;
// it is not a hard invariant maintained across deletions (see Remove).
const minFill = Fanout / 3

// Entry is a value stored in the tree: a geometry component (a point, the
// only geometry kind the tree indexes) and an opaque payload.
type Entry[T any] struct {
	Geometry point.Point
	Payload  T
}

func entryBox[T any](e Entry[T]) point.Box {
	return point.Box{Min: e.Geometry, Max: e.Geometry}
}

type node[T any] struct {
	bbox     point.Box
	leaf     bool
	entries  []Entry[T]
	children []*node[T]
}

// Tree is a bulk-loadable R-tree over Entry[T] values.
type Tree[T any] struct {
	root *node[T]
	n    int
}

// New returns an empty tree.
func New[T any]() *Tree[T] {
	return &Tree[T]{}
}

// Size returns the number of entries in the tree.
func (t *Tree[T]) Size() int { return t.n }

// Empty reports whether the tree holds no entries.
func (t *Tree[T]) Empty() bool { return t.n == 0 }

// Clear removes every entry, leaving the tree as if newly constructed.
func (t *Tree[T]) Clear() {
	t.root = nil
	t.n = 0
}

// Insert adds e to the tree.
func (t *Tree[T]) Insert(e Entry[T]) {
	t.n++
	if t.root == nil {
		t.root = &node[T]{leaf: true, bbox: entryBox(e), entries: []Entry[T]{e}}
		return
	}
	if sibling := insertInto(t.root, e); sibling != nil {
		newRoot := &node[T]{
			children: []*node[T]{t.root, sibling},
			bbox:     point.Union(t.root.bbox, sibling.bbox),
		}
		t.root = newRoot
	}
}

// InsertRange inserts every entry in es, in order.
func (t *Tree[T]) InsertRange(es []Entry[T]) {
	for _, e := range es {
		t.Insert(e)
	}
}

// insertInto inserts e into the subtree rooted at n, recursing via
// chooseChild's least-enlargement rule. If the insertion overflows n's
// fan-out, n is split in place via quadratic split and the new sibling
// half is returned for the caller to link into its own children.
func insertInto[T any](n *node[T], e Entry[T]) *node[T] {
	eb := entryBox(e)
	if n.leaf {
		n.entries = append(n.entries, e)
		n.bbox = point.Union(n.bbox, eb)
		if len(n.entries) <= Fanout {
			return nil
		}
		return splitLeaf(n)
	}

	child := chooseChild(n, eb)
	sibling := insertInto(child, e)
	n.bbox = point.Union(n.bbox, eb)
	if sibling == nil {
		return nil
	}
	n.children = append(n.children, sibling)
	if len(n.children) <= Fanout {
		return nil
	}
	return splitInternal(n)
}

// chooseChild picks the child needing the least bounding-box enlargement
// to cover eb, breaking ties by smaller resulting volume.
func chooseChild[T any](n *node[T], eb point.Box) *node[T] {
	best := 0
	bestEnlargement := enlargement(n.children[0].bbox, eb)
	bestVolume := point.Union(n.children[0].bbox, eb).Volume()
	for i := 1; i < len(n.children); i++ {
		enl := enlargement(n.children[i].bbox, eb)
		vol := point.Union(n.children[i].bbox, eb).Volume()
		if enl < bestEnlargement || (enl == bestEnlargement && vol < bestVolume) {
			best = i
			bestEnlargement = enl
			bestVolume = vol
		}
	}
	return n.children[best]
}

func enlargement(box, eb point.Box) float64 {
	return point.Union(box, eb).Volume() - box.Volume()
}

func splitLeaf[T any](n *node[T]) *node[T] {
	boxes := make([]point.Box, len(n.entries))
	for i, e := range n.entries {
		boxes[i] = entryBox(e)
	}
	groupA, groupB := quadraticSplit(boxes)

	entries := n.entries
	aEntries := make([]Entry[T], 0, len(groupA))
	bEntries := make([]Entry[T], 0, len(groupB))
	for _, i := range groupA {
		aEntries = append(aEntries, entries[i])
	}
	for _, i := range groupB {
		bEntries = append(bEntries, entries[i])
	}

	n.entries = aEntries
	n.bbox = boxesUnion(boxes, groupA)
	sibling := &node[T]{leaf: true, entries: bEntries, bbox: boxesUnion(boxes, groupB)}
	return sibling
}

func splitInternal[T any](n *node[T]) *node[T] {
	boxes := make([]point.Box, len(n.children))
	for i, c := range n.children {
		boxes[i] = c.bbox
	}
	groupA, groupB := quadraticSplit(boxes)

	children := n.children
	aChildren := make([]*node[T], 0, len(groupA))
	bChildren := make([]*node[T], 0, len(groupB))
	for _, i := range groupA {
		aChildren = append(aChildren, children[i])
	}
	for _, i := range groupB {
		bChildren = append(bChildren, children[i])
	}

	n.children = aChildren
	n.bbox = boxesUnion(boxes, groupA)
	sibling := &node[T]{children: bChildren, bbox: boxesUnion(boxes, groupB)}
	return sibling
}

func boxesUnion(boxes []point.Box, idx []int) point.Box {
	result := boxes[idx[0]]
	for _, i := range idx[1:] {
		result = point.Union(result, boxes[i])
	}
	return result
}

// quadraticSplit implements Guttman's quadratic-cost split algorithm:
// pick the pair of boxes whose combined bounding box wastes the most
// space as the two group seeds, then repeatedly assign the remaining box
// that has the strongest preference for one group over the other, until
// the groups' sizes force the rest into whichever group needs them to
// satisfy minFill.
func quadraticSplit(boxes []point.Box) (groupA, groupB []int) {
	n := len(boxes)
	seedA, seedB := pickSeeds(boxes)

	groupA = []int{seedA}
	groupB = []int{seedB}
	boxA := boxes[seedA]
	boxB := boxes[seedB]

	assigned := make([]bool, n)
	assigned[seedA] = true
	assigned[seedB] = true
	remaining := n - 2

	for remaining > 0 {
		if len(groupA)+remaining <= minFill {
			for i := 0; i < n; i++ {
				if !assigned[i] {
					groupA = append(groupA, i)
					assigned[i] = true
				}
			}
			break
		}
		if len(groupB)+remaining <= minFill {
			for i := 0; i < n; i++ {
				if !assigned[i] {
					groupB = append(groupB, i)
					assigned[i] = true
				}
			}
			break
		}

		next, toA := pickNext(boxes, assigned, boxA, boxB)
		if toA {
			groupA = append(groupA, next)
			boxA = point.Union(boxA, boxes[next])
		} else {
			groupB = append(groupB, next)
			boxB = point.Union(boxB, boxes[next])
		}
		assigned[next] = true
		remaining--
	}
	return groupA, groupB
}

func pickSeeds(boxes []point.Box) (int, int) {
	bestI, bestJ := 0, 1
	bestWaste := -1.0
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			combined := point.Union(boxes[i], boxes[j])
			waste := combined.Volume() - boxes[i].Volume() - boxes[j].Volume()
			if waste > bestWaste {
				bestWaste = waste
				bestI, bestJ = i, j
			}
		}
	}
	return bestI, bestJ
}

func pickNext(boxes []point.Box, assigned []bool, boxA, boxB point.Box) (idx int, toA bool) {
	bestIdx := -1
	bestDiff := -1.0
	bestToA := true
	for i, box := range boxes {
		if assigned[i] {
			continue
		}
		dA := enlargement(boxA, box)
		dB := enlargement(boxB, box)
		diff := dA - dB
		if diff < 0 {
			diff = -diff
		}
		if diff > bestDiff {
			bestDiff = diff
			bestIdx = i
			bestToA = dA < dB || (dA == dB && boxA.Volume() <= boxB.Volume())
		}
	}
	return bestIdx, bestToA
}

// BulkLoad constructs a tree from es via a bottom-up build: sort by the
// first coordinate, slice into Fanout-sized leaves, then repeat one
// level up (sorting sibling boxes by their minimum first coordinate,
// grouping into parents) until a single root remains. This is a one-axis simplification of the
// sort-tile-recursive family of bulk-load algorithms; it typically
// produces a more balanced shape than repeated single inserts while
// holding the same logical contents (every entry present exactly once).
func BulkLoad[T any](es []Entry[T]) *Tree[T] {
	t := &Tree[T]{n: len(es)}
	if len(es) == 0 {
		return t
	}
	leaves := make([]*node[T], 0, (len(es)+Fanout-1)/Fanout)
	sorted := make([]Entry[T], len(es))
	copy(sorted, es)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Geometry.At(0) < sorted[j].Geometry.At(0) })

	for i := 0; i < len(sorted); i += Fanout {
		end := i + Fanout
		if end > len(sorted) {
			end = len(sorted)
		}
		chunk := sorted[i:end]
		boxes := make([]point.Box, len(chunk))
		for j, e := range chunk {
			boxes[j] = entryBox(e)
		}
		leaves = append(leaves, &node[T]{leaf: true, entries: append([]Entry[T]{}, chunk...), bbox: boxesUnion(boxes, identityIdx(len(boxes)))})
	}

	t.root = buildLevel(leaves)
	return t
}

func identityIdx(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// buildLevel recursively groups nodes into parents of at most Fanout
// children until a single root remains.
func buildLevel[T any](level []*node[T]) *node[T] {
	if len(level) == 1 {
		return level[0]
	}
	sort.Slice(level, func(i, j int) bool { return level[i].bbox.Min.At(0) < level[j].bbox.Min.At(0) })

	next := make([]*node[T], 0, (len(level)+Fanout-1)/Fanout)
	for i := 0; i < len(level); i += Fanout {
		end := i + Fanout
		if end > len(level) {
			end = len(level)
		}
		chunk := level[i:end]
		boxes := make([]point.Box, len(chunk))
		for j, c := range chunk {
			boxes[j] = c.bbox
		}
		next = append(next, &node[T]{children: append([]*node[T]{}, chunk...), bbox: boxesUnion(boxes, identityIdx(len(boxes)))})
	}
	return buildLevel(next)
}

// Remove deletes the first entry matching e by element-wise comparison
// (geometry equality and a deep-equal payload comparison), not geometric
// proximity. Returns true if an entry was removed.
//
// Deletion does not reinsert orphaned entries to maintain Guttman's
// minimum-fill invariant — nodes are simply allowed to underflow. The
// tree remains logically correct (every surviving entry is still found by
// every query) but may become less balanced after many deletions; callers
// that delete heavily should periodically rebuild via BulkLoad.
func (t *Tree[T]) Remove(e Entry[T]) bool {
	if t.root == nil {
		return false
	}
	if removeFrom(t.root, e) {
		t.n--
		return true
	}
	return false
}

// RemoveRange removes every entry in es, returning the count actually
// removed (an entry absent from the tree is simply skipped).
func (t *Tree[T]) RemoveRange(es []Entry[T]) int {
	count := 0
	for _, e := range es {
		if t.Remove(e) {
			count++
		}
	}
	return count
}

func removeFrom[T any](n *node[T], e Entry[T]) bool {
	eb := entryBox(e)
	if !n.bbox.Intersects(eb) {
		return false
	}
	if n.leaf {
		for i, cand := range n.entries {
			if cand.Geometry.Equal(e.Geometry) && reflect.DeepEqual(cand.Payload, e.Payload) {
				n.entries = append(n.entries[:i], n.entries[i+1:]...)
				n.bbox = recomputeLeafBox(n)
				return true
			}
		}
		return false
	}
	for _, c := range n.children {
		if removeFrom(c, e) {
			n.bbox = recomputeInternalBox(n)
			return true
		}
	}
	return false
}

func recomputeLeafBox[T any](n *node[T]) point.Box {
	if len(n.entries) == 0 {
		return point.Box{}
	}
	box := entryBox(n.entries[0])
	for _, e := range n.entries[1:] {
		box = point.Union(box, entryBox(e))
	}
	return box
}

func recomputeInternalBox[T any](n *node[T]) point.Box {
	box := n.children[0].bbox
	for _, c := range n.children[1:] {
		box = point.Union(box, c.bbox)
	}
	return box
}

// FindPointsInsideBox returns every entry whose point is covered by box,
// border included.
func (t *Tree[T]) FindPointsInsideBox(box point.Box) []Entry[T] {
	var out []Entry[T]
	if t.root != nil {
		collectInsideBox(t.root, box, &out)
	}
	return out
}

func collectInsideBox[T any](n *node[T], box point.Box, out *[]Entry[T]) {
	if !n.bbox.Intersects(box) {
		return
	}
	if n.leaf {
		for _, e := range n.entries {
			if box.Contains(e.Geometry) {
				*out = append(*out, e)
			}
		}
		return
	}
	for _, c := range n.children {
		collectInsideBox(c, box, out)
	}
}

// FindPointsStrictlyInsideBox returns every entry whose point lies in
// box's open interior.
func (t *Tree[T]) FindPointsStrictlyInsideBox(box point.Box) []Entry[T] {
	var out []Entry[T]
	if t.root != nil {
		collectStrictlyInsideBox(t.root, box, &out)
	}
	return out
}

func collectStrictlyInsideBox[T any](n *node[T], box point.Box, out *[]Entry[T]) {
	if !n.bbox.Intersects(box) {
		return
	}
	if n.leaf {
		for _, e := range n.entries {
			if box.StrictlyContains(e.Geometry) {
				*out = append(*out, e)
			}
		}
		return
	}
	for _, c := range n.children {
		collectStrictlyInsideBox(c, box, out)
	}
}

// Intersects returns every entry whose geometry is not disjoint from box.
// Since every stored geometry is a point, this is equivalent to
// FindPointsInsideBox.
func (t *Tree[T]) Intersects(box point.Box) []Entry[T] {
	return t.FindPointsInsideBox(box)
}

// nnItem is a best-first search frontier element: either an unexpanded
// node or a leaf entry, ordered by its lower-bound distance to the query
// point.
type nnItem[T any] struct {
	n       *node[T]
	e       *Entry[T]
	minDist float64
}

type nnHeap[T any] []nnItem[T]

func (h nnHeap[T]) Len() int            { return len(h) }
func (h nnHeap[T]) Less(i, j int) bool  { return h[i].minDist < h[j].minDist }
func (h nnHeap[T]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nnHeap[T]) Push(x interface{}) { *h = append(*h, x.(nnItem[T])) }
func (h *nnHeap[T]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// FindNearestNeighbors returns the k entries closest to p in d's metric,
// ascending by distance. If p is itself stored in the tree, it is
// included (distance 0). Ties break by traversal order, which is
// deterministic for a fixed tree shape and insertion order.
func (t *Tree[T]) FindNearestNeighbors(d geodomain.Domain, p point.Point, k int) []Entry[T] {
	if t.root == nil || k <= 0 {
		return nil
	}
	euclidean := false
	if ec, ok := d.(geodomain.EuclideanCoordinates); ok {
		euclidean = ec.EuclideanCoordinates()
	}

	h := &nnHeap[T]{{n: t.root, minDist: boxMinDist(t.root.bbox, p, euclidean)}}
	heap.Init(h)

	var out []Entry[T]
	for h.Len() > 0 && len(out) < k {
		item := heap.Pop(h).(nnItem[T])
		if item.e != nil {
			out = append(out, *item.e)
			continue
		}
		n := item.n
		if n.leaf {
			for i := range n.entries {
				e := n.entries[i]
				heap.Push(h, nnItem[T]{e: &e, minDist: d.Distance(p, e.Geometry)})
			}
			continue
		}
		for _, c := range n.children {
			heap.Push(h, nnItem[T]{n: c, minDist: boxMinDist(c.bbox, p, euclidean)})
		}
	}
	return out
}

// boxMinDist returns a valid lower bound on d.Distance(p, x) for any
// point x inside box. It is exact for Euclidean domains; for domains
// whose raw coordinates don't correspond linearly to Distance (the
// spherical domain's longitude/latitude), it conservatively returns 0 so
// the best-first search never prunes a subtree it shouldn't, at the cost
// of visiting more nodes than a tight bound would allow.
func boxMinDist(box point.Box, p point.Point, euclidean bool) float64 {
	if !euclidean {
		return 0
	}
	sumSq := 0.0
	for i := 0; i < box.Dim(); i++ {
		v := p.At(i)
		diff := 0.0
		if v < box.Min.At(i) {
			diff = box.Min.At(i) - v
		} else if v > box.Max.At(i) {
			diff = v - box.Max.At(i)
		}
		sumSq += diff * diff
	}
	return math.Sqrt(sumSq)
}
