// Package input turns wheel, touch and pointer gestures into the same two
// navigation intents with one pacing policy.
//
// Edge policy: a wheel or touch gesture is consumed only while the navigator
// can still move in the requested direction. At either end of the stack the
// gesture passes through to the host (page scroll) and does not touch the
// wheel rate limiter. A held pointer drag is always consumed.
package input

import (
	"math"
	"time"

	"github.com/ingyamilmolinar/holostack/core/nav"
	game_log "github.com/ingyamilmolinar/holostack/internal/log"
)

// Target is the navigation state the unifier drives.
type Target interface {
	CanAdvance(k nav.Kind, dir int) bool
	Apply(i nav.Intent) bool
}

type Config struct {
	WheelInterval  time.Duration // minimum gap between wheel intents
	TouchThreshold float64       // px of vertical travel before a swipe counts
	DragStep       float64       // px of pointer travel per intent
}

func DefaultConfig() Config {
	return Config{
		WheelInterval:  140 * time.Millisecond,
		TouchThreshold: 8,
		DragStep:       70,
	}
}

type touchGesture struct {
	active bool
	startY float64
	fired  bool
}

type pointerGesture struct {
	down     bool
	lastY    float64
	acc      float64 // signed travel not yet turned into intents
	distance float64 // total absolute travel since down
}

// Unifier holds the ephemeral per-source gesture bookkeeping.
type Unifier struct {
	cfg    Config
	target Target
	logger *game_log.Logger
	now    func() time.Time

	lastWheel    time.Time
	hasLastWheel bool
	touch        touchGesture
	pointer      pointerGesture

	// OnIntent, when set, observes every intent the unifier emits and
	// whether the target accepted it.
	OnIntent func(i nav.Intent, applied bool)
}

func New(cfg Config, target Target, logger *game_log.Logger) *Unifier {
	return &Unifier{cfg: cfg, target: target, logger: logger, now: time.Now}
}

func (u *Unifier) emit(i nav.Intent) bool {
	ok := u.target.Apply(i)
	u.logger.Debugf("[INPUT] emit %v applied=%t", i, ok)
	if u.OnIntent != nil {
		u.OnIntent(i, ok)
	}
	return ok
}

func sign(v float64) int {
	if v > 0 {
		return 1
	}
	return -1
}

// Wheel handles a vertical wheel delta; positive means scrolling down, which
// advances to the next category. It returns whether the event was consumed.
func (u *Unifier) Wheel(dy float64) bool {
	if dy == 0 || math.IsNaN(dy) {
		return false
	}
	dir := sign(dy)
	if !u.target.CanAdvance(nav.AdvanceCategory, dir) {
		return false
	}
	now := u.now()
	if u.hasLastWheel && now.Sub(u.lastWheel) < u.cfg.WheelInterval {
		u.logger.Debugf("[INPUT] wheel throttled (%s since last)", now.Sub(u.lastWheel))
		return true
	}
	u.lastWheel = now
	u.hasLastWheel = true
	u.emit(nav.Intent{Kind: nav.AdvanceCategory, Dir: dir})
	return true
}

// TouchStart begins a single-finger swipe at client y.
func (u *Unifier) TouchStart(y float64) {
	u.touch = touchGesture{active: true, startY: y}
}

// TouchMove reports the finger at client y. A swipe upward by more than the
// threshold advances to the next category; at most one intent fires per
// gesture. It returns whether the event was consumed.
func (u *Unifier) TouchMove(y float64) bool {
	if !u.touch.active {
		return false
	}
	dy := u.touch.startY - y
	if math.Abs(dy) < u.cfg.TouchThreshold {
		return false
	}
	dir := sign(dy)
	if !u.target.CanAdvance(nav.AdvanceCategory, dir) {
		return false
	}
	if !u.touch.fired {
		u.touch.fired = true
		u.emit(nav.Intent{Kind: nav.AdvanceCategory, Dir: dir})
	}
	return true
}

func (u *Unifier) TouchEnd() { u.touch = touchGesture{} }

// PointerDown starts a mouse or pen drag at y.
func (u *Unifier) PointerDown(y float64) {
	u.pointer = pointerGesture{down: true, lastY: y}
}

// PointerMove accumulates vertical travel while the button is held and emits
// one intent per DragStep crossed. Dragging upward advances.
func (u *Unifier) PointerMove(y float64) bool {
	if !u.pointer.down {
		return false
	}
	d := u.pointer.lastY - y
	u.pointer.lastY = y
	u.pointer.acc += d
	u.pointer.distance += math.Abs(d)
	step := u.cfg.DragStep
	if step <= 0 {
		return true
	}
	for u.pointer.acc >= step {
		u.pointer.acc -= step
		u.emit(nav.Intent{Kind: nav.AdvanceCategory, Dir: 1})
	}
	for u.pointer.acc <= -step {
		u.pointer.acc += step
		u.emit(nav.Intent{Kind: nav.AdvanceCategory, Dir: -1})
	}
	return true
}

func (u *Unifier) PointerUp()     { u.pointer = pointerGesture{} }
func (u *Unifier) PointerCancel() { u.pointer = pointerGesture{} }

// Dragging reports whether a pointer drag is in progress.
func (u *Unifier) Dragging() bool { return u.pointer.down }

// DragDistance is the absolute vertical travel of the current drag. Hosts
// use it to tell a click from a drag.
func (u *Unifier) DragDistance() float64 { return u.pointer.distance }

// PrevCard and NextCard are the explicit horizontal controls. They are
// clamped by the target, not rate limited.
func (u *Unifier) PrevCard() bool { return u.emit(nav.Intent{Kind: nav.AdvanceCard, Dir: -1}) }
func (u *Unifier) NextCard() bool { return u.emit(nav.Intent{Kind: nav.AdvanceCard, Dir: 1}) }

// Reset drops all gesture bookkeeping, as on unmount.
func (u *Unifier) Reset() {
	u.touch = touchGesture{}
	u.pointer = pointerGesture{}
	u.hasLastWheel = false
	u.lastWheel = time.Time{}
}
