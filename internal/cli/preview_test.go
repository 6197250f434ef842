package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func sizedPreview(t *testing.T) previewModel {
	t.Helper()
	m, err := newPreviewModel("full", 64, 2)
	if err != nil {
		t.Fatalf("newPreviewModel() error: %v", err)
	}
	next, cmd := m.Update(tea.WindowSizeMsg{Width: 60, Height: 21})
	if cmd == nil {
		t.Fatal("resize should start a render")
	}
	next, _ = next.Update(cmd())
	return next.(previewModel)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestShade(t *testing.T) {
	if got := shade(0); got != '@' {
		t.Errorf("shade(0) = %q, want '@'", got)
	}
	if got := shade(255); got != ' ' {
		t.Errorf("shade(255) = %q, want ' '", got)
	}
}

func TestPreviewUnknownRegion(t *testing.T) {
	if _, err := newPreviewModel("atlantis", 64, 0); err == nil {
		t.Error("expected error for unknown region")
	}
}

func TestPreviewFrame(t *testing.T) {
	m := sizedPreview(t)
	if m.err != nil {
		t.Fatalf("render error: %v", m.err)
	}

	lines := strings.Split(m.frame, "\n")
	if len(lines) != 20 {
		t.Fatalf("frame has %d lines, want 20", len(lines))
	}
	for i, line := range lines {
		if len(line) != 60 {
			t.Fatalf("line %d has %d columns, want 60", i, len(line))
		}
	}
	if !strings.Contains(m.frame, "@") {
		t.Error("the full view should contain bounded points")
	}

	view := m.View()
	if !strings.Contains(view, "full") || !strings.Contains(view, "limit") {
		t.Errorf("status line missing from view:\n%s", view)
	}
}

func TestPreviewViewportAspect(t *testing.T) {
	m := sizedPreview(t)
	req := m.request()
	re := real(req.LowerRight) - real(req.UpperLeft)
	im := imag(req.UpperLeft) - imag(req.LowerRight)
	if d := re - m.span; d > 1e-12 || d < -1e-12 {
		t.Errorf("real span = %v, want %v", re, m.span)
	}
	want := m.span * 20 / 60 * charAspect
	if d := im - want; d > 1e-12 || d < -1e-12 {
		t.Errorf("imaginary span = %v, want %v", im, want)
	}
	if !req.Oriented() {
		t.Error("preview corners should be oriented")
	}
}

func TestPreviewKeys(t *testing.T) {
	base := sizedPreview(t)

	tests := []struct {
		key   string
		check func(t *testing.T, m previewModel)
	}{
		{"left", func(t *testing.T, m previewModel) {
			if real(m.center) >= real(base.center) {
				t.Errorf("center %v did not move left of %v", m.center, base.center)
			}
		}},
		{"k", func(t *testing.T, m previewModel) {
			if imag(m.center) <= imag(base.center) {
				t.Errorf("center %v did not move up from %v", m.center, base.center)
			}
		}},
		{"+", func(t *testing.T, m previewModel) {
			if m.span != base.span/zoomStep {
				t.Errorf("span = %v, want %v", m.span, base.span/zoomStep)
			}
		}},
		{"-", func(t *testing.T, m previewModel) {
			if m.span != base.span*zoomStep {
				t.Errorf("span = %v, want %v", m.span, base.span*zoomStep)
			}
		}},
		{"]", func(t *testing.T, m previewModel) {
			if m.limit != 128 {
				t.Errorf("limit = %d, want 128", m.limit)
			}
		}},
		{"[", func(t *testing.T, m previewModel) {
			if m.limit != 32 {
				t.Errorf("limit = %d, want 32", m.limit)
			}
		}},
		{"tab", func(t *testing.T, m previewModel) {
			if m.region == base.region || m.region < 0 {
				t.Errorf("region = %d, want the next region after %d", m.region, base.region)
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			next, cmd := base.Update(key(tt.key))
			m := next.(previewModel)
			if cmd == nil {
				t.Fatal("key should start a render")
			}
			if m.seq != base.seq+1 {
				t.Errorf("seq = %d, want %d", m.seq, base.seq+1)
			}
			tt.check(t, m)
		})
	}
}

func TestPreviewPanClearsRegion(t *testing.T) {
	next, _ := sizedPreview(t).Update(key("left"))
	if m := next.(previewModel); m.region != -1 {
		t.Errorf("region = %d after panning, want -1", m.region)
	}
}

func TestPreviewDropsStaleFrames(t *testing.T) {
	m := sizedPreview(t)
	next, _ := m.Update(frameMsg{seq: m.seq - 1, text: "stale"})
	if got := next.(previewModel).frame; got == "stale" {
		t.Error("stale frame should be ignored")
	}
}

func TestPreviewQuit(t *testing.T) {
	_, cmd := sizedPreview(t).Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}
