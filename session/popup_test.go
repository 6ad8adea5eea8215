package session

import (
	"testing"
	"time"
)

func TestPopupAutoDismiss(t *testing.T) {
	p := NewPopup(80 * time.Millisecond)

	p.Post("Posted successfully")
	if text, visible := p.Message(); !visible || text != "Posted successfully" {
		t.Fatalf("Expected visible popup, got %q visible=%v", text, visible)
	}

	time.Sleep(160 * time.Millisecond)
	if _, visible := p.Message(); visible {
		t.Error("Expected popup dismissed after interval")
	}
}

func TestPopupPostResetsTimer(t *testing.T) {
	p := NewPopup(120 * time.Millisecond)

	p.Post("first")
	time.Sleep(80 * time.Millisecond)
	p.Post("second")

	// The first timer would have fired by now if Post did not re-arm
	time.Sleep(80 * time.Millisecond)
	if text, visible := p.Message(); !visible || text != "second" {
		t.Errorf("Expected 'second' still visible, got %q visible=%v", text, visible)
	}

	time.Sleep(120 * time.Millisecond)
	if _, visible := p.Message(); visible {
		t.Error("Expected popup dismissed after the re-armed interval")
	}
}

func TestPopupDismissCancelsTimer(t *testing.T) {
	p := NewPopup(60 * time.Millisecond)

	fired := make(chan struct{}, 1)
	p.SetNotify(func() { fired <- struct{}{} })

	p.Post("going away")
	p.Dismiss()

	if _, visible := p.Message(); visible {
		t.Error("Expected popup hidden after Dismiss")
	}

	select {
	case <-fired:
		t.Error("Notify must not fire for a dismissed popup")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestPopupSuspendResume(t *testing.T) {
	p := NewPopup(60 * time.Millisecond)

	p.Post("held")
	p.Suspend()

	time.Sleep(150 * time.Millisecond)
	if text, visible := p.Message(); !visible || text != "held" {
		t.Fatalf("Expected suspended popup to stay visible, got %q visible=%v", text, visible)
	}

	p.Resume()
	time.Sleep(150 * time.Millisecond)
	if _, visible := p.Message(); visible {
		t.Error("Expected popup dismissed after Resume re-armed the timer")
	}
}

func TestPopupNotifyFiresOnExpiry(t *testing.T) {
	p := NewPopup(40 * time.Millisecond)

	fired := make(chan struct{}, 1)
	p.SetNotify(func() { fired <- struct{}{} })

	p.Post("ping")
	select {
	case <-fired:
	case <-time.After(500 * time.Millisecond):
		t.Error("Expected notify hook on timer expiry")
	}
}
