package anchor

// Inputs is everything a placement depends on. The document version stands
// in for layout changes that move the reference without resizing it.
type Inputs struct {
	Reference Rect
	Floating  Rect
	Boundary  Rect
	Scroll    Point
	Version   uint64
}

// Updater caches the last placement and recomputes only when Inputs change.
type Updater struct {
	opts     Options
	last     Inputs
	pos      Position
	has      bool
	stopped  bool
	computes int
}

// NewUpdater returns an updater using opts. Boundary and Scroll in opts are
// replaced by the values passed to Update.
func NewUpdater(opts Options) *Updater {
	return &Updater{opts: opts}
}

// Update returns the placement for in. ok is false once the updater is
// stopped.
func (u *Updater) Update(in Inputs) (Position, bool) {
	if u == nil || u.stopped {
		return Position{}, false
	}
	if u.has && in == u.last {
		return u.pos, true
	}
	opts := u.opts
	opts.Boundary = in.Boundary
	opts.Scroll = in.Scroll
	u.pos = Compute(in.Reference, in.Floating, opts)
	u.last = in
	u.has = true
	u.computes++
	return u.pos, true
}

// Stop ends recomputation permanently.
func (u *Updater) Stop() {
	if u == nil {
		return
	}
	u.stopped = true
	u.has = false
}

func (u *Updater) Stopped() bool { return u == nil || u.stopped }

// Computations counts how many times Update actually recomputed.
func (u *Updater) Computations() int {
	if u == nil {
		return 0
	}
	return u.computes
}
