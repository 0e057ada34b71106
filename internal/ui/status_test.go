package ui

import (
	"strings"
	"testing"
	"time"
)

func TestStatusBar_RenderBaseline(t *testing.T) {
	s := NewStatusBar("alice")
	s.SetBaseline("connected")

	if got := s.Render(); got != "alice connected" {
		t.Errorf("Render() = %q, want %q", got, "alice connected")
	}
}

func TestStatusBar_FlashWithinWindow(t *testing.T) {
	now := time.Now()
	s := NewStatusBar("alice")
	s.now = func() time.Time { return now }
	s.SetBaseline("connected")
	s.SetFlash("bob joined")

	if got := s.Render(); got != "alice connected [bob joined]" {
		t.Errorf("Render() = %q, want flash included", got)
	}

	// Just inside the window
	s.now = func() time.Time { return now.Add(FlashDuration - time.Millisecond) }
	if got := s.Render(); !strings.Contains(got, "[bob joined]") {
		t.Errorf("Render() = %q, flash should still show at 4.999s", got)
	}

	// At the window boundary the flash is gone
	s.now = func() time.Time { return now.Add(FlashDuration) }
	if got := s.Render(); strings.Contains(got, "bob joined") {
		t.Errorf("Render() = %q, flash should be gone at 5s", got)
	}
}

func TestStatusBar_ErrorSegment(t *testing.T) {
	s := NewStatusBar("alice")
	s.SetBaseline("connected")
	s.SetError("disconnected")

	if got := s.Render(); got != "alice connected ERROR:disconnected" {
		t.Errorf("Render() = %q", got)
	}
	if !s.HasError() {
		t.Error("HasError() should be true")
	}

	s.ClearError()
	if got := s.Render(); strings.Contains(got, "ERROR") {
		t.Errorf("Render() = %q, error segment should be cleared", got)
	}
	if s.HasError() {
		t.Error("HasError() should be false after ClearError")
	}
}

func TestStatusBar_FlashAndErrorCompose(t *testing.T) {
	now := time.Now()
	s := NewStatusBar("alice")
	s.now = func() time.Time { return now }
	s.SetBaseline("reconnecting...")
	s.SetFlash("upload done")
	s.SetError("timeout")

	want := "alice reconnecting... [upload done] ERROR:timeout"
	if got := s.Render(); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestStatusBar_ViewStyleFollowsError(t *testing.T) {
	s := NewStatusBar("alice")
	s.SetWidth(40)
	s.SetBaseline("connected")

	ok := s.View()
	s.SetError("boom")
	bad := s.View()

	if ok == bad {
		t.Error("View() should change styling when an error is set")
	}
}

func TestStatusBar_ViewIncludesLatency(t *testing.T) {
	s := NewStatusBar("alice")
	s.SetWidth(60)
	s.SetBaseline("connected")
	s.SetLatency(42 * time.Millisecond)

	if got := s.View(); !strings.Contains(got, "42ms") {
		t.Errorf("View() = %q, want latency segment", got)
	}
}
