/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: frontier.go
Description: Frontier implementation for candidate style scheduling in the search
engine. Provides efficient insertion, removal, and ordering by the Candidate total
order. Uses a binary heap data structure for O(log n) operations, ordered by
Candidate.Less rather than a plain integer priority.
*/

package style

import (
	"sync"
)

// Frontier is a thread-safe min-heap of Candidates ordered by Candidate.Less.
// Candidate.Less puts the "best so far" candidate at the root, so Pop always
// returns the current leader.
type Frontier struct {
	heap []Candidate
	mu   sync.RWMutex

	insertions int64
	removals   int64
}

// NewFrontier creates an empty Frontier.
func NewFrontier() *Frontier {
	return &Frontier{heap: make([]Candidate, 0, 64)}
}

// Push adds a candidate to the frontier, maintaining heap order.
func (f *Frontier) Push(c Candidate) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.heap = append(f.heap, c)
	f.insertions++
	f.bubbleUp(len(f.heap) - 1)
}

// Pop removes and returns the current leader. ok is false if the frontier is
// empty.
func (f *Frontier) Pop() (Candidate, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.heap) == 0 {
		return Candidate{}, false
	}

	root := f.heap[0]
	f.removals++

	last := len(f.heap) - 1
	f.heap[0] = f.heap[last]
	f.heap = f.heap[:last]
	if len(f.heap) > 0 {
		f.bubbleDown(0)
	}
	return root, true
}

// Peek returns the current leader without removing it.
func (f *Frontier) Peek() (Candidate, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if len(f.heap) == 0 {
		return Candidate{}, false
	}
	return f.heap[0], true
}

// Size returns the number of candidates currently held.
func (f *Frontier) Size() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.heap)
}

// IsEmpty reports whether the frontier holds no candidates.
func (f *Frontier) IsEmpty() bool {
	return f.Size() == 0
}

// All returns a snapshot copy of every candidate currently held, in no
// particular order.
func (f *Frontier) All() []Candidate {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]Candidate, len(f.heap))
	copy(out, f.heap)
	return out
}

func (f *Frontier) bubbleUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if f.heap[i].Less(f.heap[parent]) {
			f.heap[i], f.heap[parent] = f.heap[parent], f.heap[i]
			i = parent
		} else {
			break
		}
	}
}

func (f *Frontier) bubbleDown(i int) {
	n := len(f.heap)
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && f.heap[left].Less(f.heap[smallest]) {
			smallest = left
		}
		if right < n && f.heap[right].Less(f.heap[smallest]) {
			smallest = right
		}
		if smallest == i {
			break
		}
		f.heap[i], f.heap[smallest] = f.heap[smallest], f.heap[i]
		i = smallest
	}
}
