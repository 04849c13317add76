package game

import (
	"maps"
	"slices"
)

// frameQueue holds callbacks for the next display refresh.
// Callbacks requested while a refresh runs wait for the following one.
type frameQueue struct {
	last    FrameID
	pending map[FrameID]func()
	order   []FrameID
}

func (q *frameQueue) request(fn func()) FrameID {
	if q.pending == nil {
		q.pending = make(map[FrameID]func())
	}
	q.last++
	q.pending[q.last] = fn
	q.order = append(q.order, q.last)
	return q.last
}

func (q *frameQueue) cancel(id FrameID) {
	delete(q.pending, id)
}

// run executes the callbacks queued before this call and returns how many ran.
func (q *frameQueue) run() int {
	batch := q.order
	q.order = nil

	ran := 0
	for _, id := range batch {
		fn, ok := q.pending[id]
		if !ok {
			continue // cancelled
		}
		delete(q.pending, id)
		fn()
		ran++
	}
	return ran
}

func (q *frameQueue) len() int {
	return len(q.pending)
}

// resizeListeners fans viewport changes out to subscribers in subscription order.
type resizeListeners struct {
	last int
	fns  map[int]func(w, h int)
}

func (l *resizeListeners) add(fn func(w, h int)) func() {
	if l.fns == nil {
		l.fns = make(map[int]func(w, h int))
	}
	l.last++
	id := l.last
	l.fns[id] = fn
	return func() { delete(l.fns, id) }
}

func (l *resizeListeners) notify(w, h int) {
	for _, id := range slices.Sorted(maps.Keys(l.fns)) {
		if fn, ok := l.fns[id]; ok {
			fn(w, h)
		}
	}
}

func (l *resizeListeners) len() int {
	return len(l.fns)
}
