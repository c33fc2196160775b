package statusbar

import (
	"strings"
	"testing"

	"github.com/bethropolis/dupline/internal/core/occurrence"
	"github.com/bethropolis/dupline/internal/types"
	"github.com/gdamore/tcell/v2"
)

func newScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("screen Init: %v", err)
	}
	s.SetSize(width, height)
	t.Cleanup(s.Fini)
	return s
}

func row(s tcell.Screen, y, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestIndicatorText(t *testing.T) {
	tests := []struct {
		status occurrence.Status
		want   string
	}{
		{occurrence.Status{Count: 5}, ""},
		{occurrence.Status{Count: 5, Visible: true}, "5 Reps"},
		{occurrence.Status{Count: 12, Visible: true, CaseSensitive: true}, "12 Reps Aa"},
	}
	for _, tt := range tests {
		if got := IndicatorText(tt.status); got != tt.want {
			t.Errorf("IndicatorText(%+v) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestDrawIndicator(t *testing.T) {
	const width, height = 40, 3
	s := newScreen(t, width, height)
	sb := New(DefaultConfig())
	sb.SetFileInfo("notes.md", false)
	sb.SetCursorInfo(types.Position{Line: 1, Col: 4}, 1)
	sb.SetIndicatorStyle("#C6AB85", true)
	sb.SetOccurrences(occurrence.Status{Count: 3, Visible: true})

	sb.Draw(s, width, height)
	line := row(s, height-1, width)

	if !strings.HasPrefix(line, "notes.md -- Line: 2, Col: 5") {
		t.Errorf("left text = %q", line)
	}
	if !strings.HasSuffix(line, "3 Reps ") {
		t.Errorf("indicator missing: %q", line)
	}

	x := width - len("3 Reps") - 1
	_, _, style, _ := s.GetContent(x, height-1)
	fg, _, attrs := style.Decompose()
	if fg != tcell.GetColor("#C6AB85") {
		t.Errorf("indicator foreground = %v", fg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Error("indicator should be bold")
	}

	if !sb.HitIndicator(x, height-1, height) {
		t.Error("HitIndicator on the indicator = false")
	}
	if sb.HitIndicator(0, height-1, height) {
		t.Error("HitIndicator on the file name = true")
	}
	if sb.HitIndicator(x, 0, height) {
		t.Error("HitIndicator off the status row = true")
	}
}

func TestHiddenIndicatorIsNotClickable(t *testing.T) {
	const width, height = 30, 2
	s := newScreen(t, width, height)
	sb := New(DefaultConfig())
	sb.SetOccurrences(occurrence.Status{Count: 1})
	sb.Draw(s, width, height)

	for x := 0; x < width; x++ {
		if sb.HitIndicator(x, height-1, height) {
			t.Fatalf("HitIndicator(%d) = true with the indicator hidden", x)
		}
	}
}

func TestTemporaryMessage(t *testing.T) {
	const width, height = 30, 1
	s := newScreen(t, width, height)
	sb := New(DefaultConfig())
	sb.SetTemporaryMessage("Saved %s", "a.txt")
	if got := sb.Message(); got != "Saved a.txt" {
		t.Errorf("Message() = %q", got)
	}
	sb.Draw(s, width, height)
	if line := row(s, 0, width); !strings.HasPrefix(line, "Saved a.txt") {
		t.Errorf("drawn = %q", line)
	}
	sb.ResetTemporaryMessage()
	if got := sb.Message(); got != "" {
		t.Errorf("Message() after reset = %q", got)
	}
}
