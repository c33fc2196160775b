// internal/statusbar/statusbar.go
package statusbar

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/dupline/internal/core/occurrence"
	"github.com/bethropolis/dupline/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// CaseMarker follows the occurrence count while matching is case-sensitive.
const CaseMarker = "Aa"

// Config defines the appearance and behavior of the status bar.
type Config struct {
	StyleDefault   tcell.Style // Default background/foreground
	StyleModified  tcell.Style // Style for the modified indicator
	StyleMessage   tcell.Style // Style for temporary messages
	MessageTimeout time.Duration
}

// DefaultConfig provides sensible defaults.
func DefaultConfig() Config {
	return Config{
		StyleDefault:   tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorBlue),
		StyleModified:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Background(tcell.ColorBlue).Bold(true),
		StyleMessage:   tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue).Bold(true),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar represents the UI component for the status line.
type StatusBar struct {
	config Config
	mu     sync.RWMutex // Protect access to text fields

	// Content fields (will be updated externally)
	filePath   string
	cursorPos  types.Position
	selections int
	isModified bool

	// Occurrence indicator
	occurrences occurrence.Status
	color       tcell.Color
	emphasize   bool
	indicatorX  int // first column of the indicator as last drawn, -1 when hidden
	indicatorW  int

	// Temporary message state
	tempMessage     string
	tempMessageTime time.Time
}

// New creates a new StatusBar with the given configuration.
func New(config Config) *StatusBar {
	return &StatusBar{
		config:     config,
		color:      tcell.ColorDefault,
		indicatorX: -1,
	}
}

// SetFileInfo updates the file path shown in the status bar.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the primary cursor position and the selection count.
func (sb *StatusBar) SetCursorInfo(pos types.Position, selections int) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
	sb.selections = selections
}

// SetOccurrences updates the occurrence indicator.
func (sb *StatusBar) SetOccurrences(status occurrence.Status) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.occurrences = status
}

// SetIndicatorStyle sets the indicator color (a name or "#rrggbb") and
// whether it is drawn bold. Unknown colors fall back to the bar's own.
func (sb *StatusBar) SetIndicatorStyle(color string, emphasize bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.color = tcell.GetColor(color)
	sb.emphasize = emphasize
}

// Occurrences returns the indicator state.
func (sb *StatusBar) Occurrences() occurrence.Status {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	return sb.occurrences
}

// SetTemporaryMessage displays a message for a configured duration.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = time.Now()
}

// ResetTemporaryMessage clears any temporary message being displayed
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Message returns the active temporary message, if any.
func (sb *StatusBar) Message() string {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	if sb.tempMessageTime.IsZero() || time.Since(sb.tempMessageTime) > sb.config.MessageTimeout {
		return ""
	}
	return sb.tempMessage
}

// IndicatorText is the occurrence indicator as drawn, "" when hidden.
func IndicatorText(status occurrence.Status) string {
	if !status.Visible {
		return ""
	}
	text := fmt.Sprintf("%d Reps", status.Count)
	if status.CaseSensitive {
		text += " " + CaseMarker
	}
	return text
}

// getDefaultDisplayText builds the default status line text.
func (sb *StatusBar) getDefaultDisplayText() string {
	fPath := sb.filePath
	if fPath == "" {
		fPath = "[No Name]"
	}
	modifiedIndicator := ""
	if sb.isModified {
		modifiedIndicator = " [Modified]"
	}
	selIndicator := ""
	if sb.selections > 1 {
		selIndicator = fmt.Sprintf(" (%d selections)", sb.selections)
	}

	cursor := sb.cursorPos
	return fmt.Sprintf("%s%s -- Line: %d, Col: %d%s",
		fPath, modifiedIndicator, cursor.Line+1, cursor.Col+1, selIndicator)
}

// Draw renders the status bar onto the last screen row. The occurrence
// indicator is right-aligned and drawn after the left text so it stays
// visible on narrow screens.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	isTempMsgActive := !sb.tempMessageTime.IsZero() && time.Since(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !isTempMsgActive {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}

	var style tcell.Style
	var text string
	if isTempMsgActive {
		text = sb.tempMessage
		style = sb.config.StyleMessage
	} else {
		text = sb.getDefaultDisplayText()
		if sb.isModified {
			style = sb.config.StyleModified
		} else {
			style = sb.config.StyleDefault
		}
	}

	indicator := IndicatorText(sb.occurrences)
	indicatorStyle := sb.config.StyleDefault
	if sb.color != tcell.ColorDefault {
		indicatorStyle = indicatorStyle.Foreground(sb.color)
	}
	indicatorStyle = indicatorStyle.Bold(sb.emphasize)

	sb.indicatorX = -1
	sb.indicatorW = 0
	indicatorWidth := uniseg.StringWidth(indicator)
	if indicator != "" && indicatorWidth+1 <= width {
		sb.indicatorX = width - indicatorWidth - 1
		sb.indicatorW = indicatorWidth
	}
	indicatorX := sb.indicatorX
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}

	limit := width
	if indicatorX >= 0 {
		limit = indicatorX - 1
	}
	drawText(screen, 0, y, limit, text, style)
	if indicatorX >= 0 {
		drawText(screen, indicatorX, y, width, indicator, indicatorStyle)
	}
}

// drawText draws text from x up to column limit, measuring grapheme
// clusters with uniseg.
func drawText(screen tcell.Screen, x, y, limit int, text string, style tcell.Style) {
	gr := uniseg.NewGraphemes(text)
	currentX := x
	for gr.Next() {
		clusterWidth := gr.Width()
		if currentX+clusterWidth > limit {
			break
		}
		runes := gr.Runes()
		if len(runes) > 0 {
			var combiningRunes []rune
			if len(runes) > 1 {
				combiningRunes = runes[1:]
			}
			screen.SetContent(currentX, y, runes[0], combiningRunes, style)
		}
		currentX += clusterWidth
	}
}

// HitIndicator reports whether the cell (x, y) lies on the occurrence
// indicator as last drawn on a screen of the given height.
func (sb *StatusBar) HitIndicator(x, y, height int) bool {
	sb.mu.RLock()
	defer sb.mu.RUnlock()
	if sb.indicatorX < 0 || y != height-1 {
		return false
	}
	return x >= sb.indicatorX && x < sb.indicatorX+sb.indicatorW
}
