package booking

import (
	"sort"

	"github.com/BruksfildServices01/mechapp/internal/integrations/mechapi"
)

// registry is an id-indexed snapshot, always replaced as a whole.
type registry[T any] struct {
	byID  map[uint]T
	order []uint
}

func newRegistry[T any](items []T, id func(T) uint) registry[T] {
	r := registry[T]{byID: make(map[uint]T, len(items))}
	for _, it := range items {
		k := id(it)
		if _, dup := r.byID[k]; !dup {
			r.order = append(r.order, k)
		}
		r.byID[k] = it
	}
	sort.Slice(r.order, func(i, j int) bool { return r.order[i] < r.order[j] })
	return r
}

func (r registry[T]) get(id uint) (T, bool) {
	v, ok := r.byID[id]
	return v, ok
}

func (r registry[T]) list() []T {
	out := make([]T, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

func mechanicID(m mechapi.Mechanic) uint { return m.ID }
func workshopID(w mechapi.Workshop) uint { return w.ID }
