package dashboard

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func TestErrorRegion_ShowAndExpire(t *testing.T) {
	// Given: a region showing a message
	e := newErrorRegion(time.Millisecond)
	cmd := e.Show("boom")
	if !e.Visible() || e.Text() != "boom" {
		t.Fatalf("after Show: visible=%v text=%q", e.Visible(), e.Text())
	}

	// When: its expiry fires
	msg := cmd()
	expired, ok := msg.(errorExpiredMsg)
	if !ok {
		t.Fatalf("Show command produced %T, want errorExpiredMsg", msg)
	}
	e.Expire(expired.seq)

	// Then: the region is empty and hidden
	if e.Visible() || e.Text() != "" || e.View() != "" {
		t.Errorf("after Expire: visible=%v text=%q view=%q", e.Visible(), e.Text(), e.View())
	}
}

func TestErrorRegion_NewMessageRestartsWindow(t *testing.T) {
	// Given: two messages shown back to back
	e := newErrorRegion(time.Hour)
	e.tick = func(time.Duration, func(time.Time) tea.Msg) tea.Cmd { return nil }
	e.Show("first")
	firstSeq := e.seq
	e.Show("second")

	// When: the first message's timer fires
	e.Expire(firstSeq)

	// Then: the second message stays visible
	if !e.Visible() || e.Text() != "second" {
		t.Errorf("visible=%v text=%q, want second still shown", e.Visible(), e.Text())
	}

	e.Expire(e.seq)
	if e.Visible() {
		t.Error("second message should hide on its own expiry")
	}
}

func TestErrorRegion_ClearHidesImmediately(t *testing.T) {
	e := newErrorRegion(time.Hour)
	e.tick = func(time.Duration, func(time.Time) tea.Msg) tea.Cmd { return nil }
	e.Show("boom")
	shownSeq := e.seq

	e.Clear()
	if e.Visible() || e.Text() != "" {
		t.Fatalf("after Clear: visible=%v text=%q", e.Visible(), e.Text())
	}

	// A stale expiry after Clear must not disturb a later message.
	e.Show("again")
	e.Expire(shownSeq)
	if !e.Visible() {
		t.Error("stale expiry hid a newer message")
	}
}

func TestErrorRegion_UsesConfiguredTTL(t *testing.T) {
	var got time.Duration
	e := newErrorRegion(3 * time.Second)
	e.tick = func(d time.Duration, _ func(time.Time) tea.Msg) tea.Cmd {
		got = d
		return nil
	}
	e.Show("boom")
	if got != 3*time.Second {
		t.Errorf("tick duration = %v, want 3s", got)
	}

	if newErrorRegion(0).ttl != DefaultErrorTTL {
		t.Error("non-positive TTL should fall back to DefaultErrorTTL")
	}
}

func TestErrorRegion_ViewSanitizes(t *testing.T) {
	e := newErrorRegion(time.Hour)
	e.tick = func(time.Duration, func(time.Time) tea.Msg) tea.Cmd { return nil }
	e.Show("bad\x1b[2Jstatus")

	v := e.View()
	if strings.Contains(v, "\x1b[2J") {
		t.Errorf("View() kept a control sequence: %q", v)
	}
	if !containsPlainText(v, "badstatus") {
		t.Errorf("View() = %q, want sanitized text", v)
	}
}
