package ui

import (
	"strings"
	"testing"

	"github.com/hallway-chat/hallway/internal/bus"
)

func users(names ...string) []bus.User {
	us := make([]bus.User, len(names))
	for i, n := range names {
		us[i] = bus.User{Name: n}
	}
	return us
}

func TestRoster_DeduplicatesAcrossChannels(t *testing.T) {
	r := NewRoster()
	r.Update(bus.UsersEvent{Channel: "chat", Users: users("bob", "alice")})
	r.Update(bus.UsersEvent{Channel: "upload", Users: users("alice", "carol")})

	got := r.Names()
	want := []string{"alice", "bob", "carol"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRoster_ChannelOrderDoesNotMatter(t *testing.T) {
	a := NewRoster()
	a.Update(bus.UsersEvent{Channel: "chat", Users: users("bob")})
	a.Update(bus.UsersEvent{Channel: "upload", Users: users("alice")})

	b := NewRoster()
	b.Update(bus.UsersEvent{Channel: "upload", Users: users("alice")})
	b.Update(bus.UsersEvent{Channel: "chat", Users: users("bob")})

	if a.Render() != b.Render() {
		t.Errorf("roster depends on channel arrival order:\n%q\n%q", a.Render(), b.Render())
	}
}

func TestRoster_Idempotent(t *testing.T) {
	r := NewRoster()
	ev := bus.UsersEvent{Channel: "chat", Users: users("bob", "alice", "bob")}
	r.Update(ev)
	first := r.Render()
	r.Update(ev)
	second := r.Render()

	if first != second {
		t.Errorf("Render() not idempotent: %q then %q", first, second)
	}
}

func TestRoster_FlatListReplacesEverything(t *testing.T) {
	r := NewRoster()
	r.Update(bus.UsersEvent{Channel: "chat", Users: users("bob")})
	r.Update(bus.UsersEvent{Users: users("alice")})

	got := r.Names()
	if len(got) != 1 || got[0] != "alice" {
		t.Errorf("Names() = %v, want [alice]", got)
	}
}

func TestRoster_ChannelSnapshotReplacesChannel(t *testing.T) {
	r := NewRoster()
	r.Update(bus.UsersEvent{Channel: "chat", Users: users("bob", "alice")})
	r.Update(bus.UsersEvent{Channel: "chat", Users: users("alice")})

	got := r.Names()
	if len(got) != 1 || got[0] != "alice" {
		t.Errorf("Names() = %v, want [alice] after bob left", got)
	}
}

func TestRoster_RenderHeaderAndTyping(t *testing.T) {
	r := NewRoster()
	r.Update(bus.UsersEvent{Channel: "chat", Users: users("alice", "bob")})
	r.SetTyping("bob", true)

	got := r.Render()
	if !strings.HasPrefix(got, "Online:") {
		t.Errorf("Render() = %q, want Online: header", got)
	}
	if !strings.Contains(got, "bob …") {
		t.Errorf("Render() = %q, want typing indicator on bob", got)
	}
	if strings.Contains(got, "alice …") {
		t.Errorf("Render() = %q, alice is not typing", got)
	}

	r.SetTyping("bob", false)
	if strings.Contains(r.Render(), "…") {
		t.Errorf("Render() = %q, indicator should clear", r.Render())
	}
}
