package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/dupline/internal/types"
)

// parseSelections parses "L:C" cursors and "L:C-L:C" ranges (anchor then
// head), 1-based, separated by commas. The last one is primary.
func parseSelections(arg string) ([]types.Selection, error) {
	var sels []types.Selection
	for _, part := range strings.Split(arg, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		anchorText, headText, isRange := strings.Cut(part, "-")
		anchor, err := parsePosition(anchorText)
		if err != nil {
			return nil, err
		}
		head := anchor
		if isRange {
			if head, err = parsePosition(headText); err != nil {
				return nil, err
			}
		}
		sels = append(sels, types.Selection{Anchor: anchor, Head: head})
	}
	if len(sels) == 0 {
		return nil, fmt.Errorf("no selections in %q", arg)
	}
	return sels, nil
}

func parsePosition(s string) (types.Position, error) {
	lineText, colText, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return types.Position{}, fmt.Errorf("position %q: want LINE:COL", s)
	}
	line, err := strconv.Atoi(lineText)
	if err != nil || line < 1 {
		return types.Position{}, fmt.Errorf("position %q: bad line", s)
	}
	col, err := strconv.Atoi(colText)
	if err != nil || col < 1 {
		return types.Position{}, fmt.Errorf("position %q: bad column", s)
	}
	return types.Position{Line: line - 1, Col: col - 1}, nil
}

// formatSelections is the inverse of parseSelections.
func formatSelections(sels []types.Selection) string {
	parts := make([]string, len(sels))
	for i, s := range sels {
		a := fmt.Sprintf("%d:%d", s.Anchor.Line+1, s.Anchor.Col+1)
		if s.Anchor == s.Head {
			parts[i] = a
			continue
		}
		parts[i] = fmt.Sprintf("%s-%d:%d", a, s.Head.Line+1, s.Head.Col+1)
	}
	return strings.Join(parts, ",")
}
