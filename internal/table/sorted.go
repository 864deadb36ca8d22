package table

import (
	"math"

	"github.com/google/btree"
)

const btreeDegree = 16

type entry[V any] struct {
	key float64
	val V
}

// sortedMap is an ordered float64-keyed map with floor/ceiling queries.
type sortedMap[V any] struct {
	tree *btree.BTreeG[entry[V]]
}

func newSortedMap[V any]() *sortedMap[V] {
	return &sortedMap[V]{
		tree: btree.NewG(btreeDegree, func(a, b entry[V]) bool { return a.key < b.key }),
	}
}

func (m *sortedMap[V]) put(key float64, val V) {
	if math.IsNaN(key) {
		return
	}
	m.tree.ReplaceOrInsert(entry[V]{key: key, val: val})
}

func (m *sortedMap[V]) get(key float64) (V, bool) {
	e, ok := m.tree.Get(entry[V]{key: key})
	return e.val, ok
}

func (m *sortedMap[V]) len() int {
	return m.tree.Len()
}

func (m *sortedMap[V]) first() (entry[V], bool) {
	return m.tree.Min()
}

func (m *sortedMap[V]) last() (entry[V], bool) {
	return m.tree.Max()
}

// floor returns the greatest entry with key <= k.
func (m *sortedMap[V]) floor(k float64) (e entry[V], ok bool) {
	m.tree.DescendLessOrEqual(entry[V]{key: k}, func(item entry[V]) bool {
		e, ok = item, true
		return false
	})
	return
}

// ceiling returns the least entry with key >= k.
func (m *sortedMap[V]) ceiling(k float64) (e entry[V], ok bool) {
	m.tree.AscendGreaterOrEqual(entry[V]{key: k}, func(item entry[V]) bool {
		e, ok = item, true
		return false
	})
	return
}

// higher returns the least entry with key > k.
func (m *sortedMap[V]) higher(k float64) (e entry[V], ok bool) {
	m.tree.AscendGreaterOrEqual(entry[V]{key: k}, func(item entry[V]) bool {
		if item.key == k {
			return true
		}
		e, ok = item, true
		return false
	})
	return
}

// lower returns the greatest entry with key < k.
func (m *sortedMap[V]) lower(k float64) (e entry[V], ok bool) {
	m.tree.DescendLessOrEqual(entry[V]{key: k}, func(item entry[V]) bool {
		if item.key == k {
			return true
		}
		e, ok = item, true
		return false
	})
	return
}

func (m *sortedMap[V]) entries() []entry[V] {
	out := make([]entry[V], 0, m.tree.Len())
	m.tree.Ascend(func(item entry[V]) bool {
		out = append(out, item)
		return true
	})
	return out
}
