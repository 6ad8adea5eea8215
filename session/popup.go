package session

import (
	"sync"
	"time"
)

// Popup is the single in-flight transient notification. Only one message is
// live at a time: posting while one is visible replaces the text and re-arms
// the auto-dismiss timer from zero. The popup owns its timer and cancels it
// on every transition out of visible, nothing else ever touches it.
type Popup struct {
	mu       sync.Mutex
	text     string
	visible  bool
	interval time.Duration
	timer    *time.Timer
	gen      uint64
	notify   func()
}

func NewPopup(interval time.Duration) *Popup {
	return &Popup{interval: interval}
}

// SetNotify installs the hook fired when the timer dismisses the popup,
// so the UI can redraw. Must be set before the first Post.
func (p *Popup) SetNotify(fn func()) {
	p.mu.Lock()
	p.notify = fn
	p.mu.Unlock()
}

// Post shows a message, replacing any current one and re-arming the
// auto-dismiss timer to the full interval.
func (p *Popup) Post(text string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopTimerLocked()
	p.text = text
	p.visible = true
	p.gen++

	gen := p.gen
	p.timer = time.AfterFunc(p.interval, func() { p.expire(gen) })
}

func (p *Popup) expire(gen uint64) {
	p.mu.Lock()
	// A newer Post re-armed the timer after this one was scheduled
	if gen != p.gen || !p.visible {
		p.mu.Unlock()
		return
	}
	p.text = ""
	p.visible = false
	notify := p.notify
	p.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Dismiss hides the popup immediately, the swipe-away equivalent.
func (p *Popup) Dismiss() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopTimerLocked()
	p.text = ""
	p.visible = false
	p.gen++
}

// Suspend cancels a pending auto-dismiss without hiding the message, used
// while a blocking operation is in flight.
func (p *Popup) Suspend() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopTimerLocked()
	p.gen++
}

// Resume re-arms the auto-dismiss for a still-visible message.
func (p *Popup) Resume() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.visible {
		return
	}
	p.stopTimerLocked()
	p.gen++
	gen := p.gen
	p.timer = time.AfterFunc(p.interval, func() { p.expire(gen) })
}

// Stop cancels everything on shutdown so the timer never fires into a
// torn-down program.
func (p *Popup) Stop() {
	p.Dismiss()
}

// Message returns the current text and visibility.
func (p *Popup) Message() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text, p.visible
}

func (p *Popup) stopTimerLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}
