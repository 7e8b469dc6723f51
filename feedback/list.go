package feedback

// List owns the live handles of the current batch and tracks which one is
// active (its card shown). Every handle removed from the list is released.
type List struct {
	handles []*Handle
	active  string
}

func NewList() *List { return &List{} }

// Replace swaps in a new batch, releasing the previous one. The active id is
// cleared.
func (l *List) Replace(handles []*Handle) {
	for _, h := range l.handles {
		h.Release()
	}
	l.handles = append([]*Handle(nil), handles...)
	l.active = ""
}

// Clear releases every handle.
func (l *List) Clear() { l.Replace(nil) }

// Dismiss releases and removes the handle with the given id. The active id is
// cleared if it matched. It reports whether the id was found.
func (l *List) Dismiss(id string) bool {
	for i, h := range l.handles {
		if h.ID != id {
			continue
		}
		h.Release()
		l.handles = append(l.handles[:i:i], l.handles[i+1:]...)
		if l.active == id {
			l.active = ""
		}
		return true
	}
	return false
}

func (l *List) Get(id string) (*Handle, bool) {
	for _, h := range l.handles {
		if h.ID == id {
			return h, true
		}
	}
	return nil, false
}

// Handles returns the handles in materialization order. The slice is a copy.
func (l *List) Handles() []*Handle {
	return append([]*Handle(nil), l.handles...)
}

func (l *List) Len() int { return len(l.handles) }

// Active returns the active handle, if any.
func (l *List) Active() (*Handle, bool) {
	if l.active == "" {
		return nil, false
	}
	return l.Get(l.active)
}

func (l *List) ActiveID() string { return l.active }

// SetActive marks id active. Unknown ids are ignored.
func (l *List) SetActive(id string) bool {
	if _, ok := l.Get(id); !ok {
		return false
	}
	l.active = id
	return true
}

// ToggleActive activates id, or deactivates it when it is already active.
// It returns the new active id.
func (l *List) ToggleActive(id string) string {
	if l.active == id {
		l.active = ""
		return ""
	}
	l.SetActive(id)
	return l.active
}

func (l *List) ClearActive() { l.active = "" }

// Next returns the live handle after the one with id (the first one when id
// is empty or unknown), wrapping around. Handles whose range no longer exists
// are skipped. With back set it walks in reverse.
func (l *List) Next(id string, back bool) (*Handle, bool) {
	n := len(l.handles)
	if n == 0 {
		return nil, false
	}
	cur := -1
	for i, h := range l.handles {
		if h.ID == id {
			cur = i
			break
		}
	}
	step := 1
	if back {
		step = -1
		if cur < 0 {
			cur = n
		}
	}
	for k := 1; k <= n; k++ {
		i := ((cur+step*k)%n + n) % n
		if _, ok := l.handles[i].Range(); ok {
			return l.handles[i], true
		}
	}
	return nil, false
}
