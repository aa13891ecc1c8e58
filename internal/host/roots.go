package host

// Scope registers params as roots for the duration of fn, the way a host
// primitive declares its arguments before allocating. The word fn returns is
// not rooted once Scope returns; callers that keep it must Retain it.
func (h *Heap) Scope(params []Word, fn func() (Word, error)) (Word, error) {
	h.mu.Lock()
	for _, p := range params {
		h.roots[p]++
	}
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		for _, p := range params {
			if h.roots[p]--; h.roots[p] <= 0 {
				delete(h.roots, p)
			}
		}
		h.mu.Unlock()
	}()

	return fn()
}

// Retain keeps w alive across collections until a matching Release.
func (h *Heap) Retain(w Word) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.retained[w]++
}

func (h *Heap) Release(w Word) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.retained[w]--; h.retained[w] <= 0 {
		delete(h.retained, w)
	}
}

// Collect frees every block not reachable from scoped roots or retained
// words and returns how many were freed.
func (h *Heap) Collect() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.collectLocked()
}

func (h *Heap) collectLocked() int {
	var stack []Word
	for w := range h.roots {
		stack = append(stack, w)
	}
	for w := range h.retained {
		stack = append(stack, w)
	}
	for len(stack) > 0 {
		w := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		b, err := h.lookupLocked(w)
		if err != nil || b.mark {
			continue
		}
		b.mark = true
		for _, f := range b.fields {
			if !IsImmediate(f) {
				stack = append(stack, f)
			}
		}
	}

	freed := 0
	for idx, b := range h.blocks {
		if b == nil || !b.live {
			continue
		}
		if b.mark {
			b.mark = false
			continue
		}
		h.blocks[idx] = nil
		h.free.PushBack(idx)
		freed++
	}
	h.stats.Live -= freed
	h.stats.Collected += freed
	return freed
}
