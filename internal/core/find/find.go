// Package find locates literal occurrences of a query in a document.
package find

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"unicode/utf8"

	"github.com/bethropolis/dupline/internal/core/selection"
	"github.com/bethropolis/dupline/internal/logger"
	"github.com/bethropolis/dupline/internal/types"
	"github.com/bethropolis/dupline/internal/utils"
)

// ErrEmptyQuery is returned when compiling an empty query.
var ErrEmptyQuery = errors.New("empty query")

// Matcher is a compiled literal query. It is never modified after Compile.
type Matcher struct {
	query         string
	caseSensitive bool
	re            *regexp.Regexp
}

// Compile builds a matcher for query taken literally.
func Compile(query string, caseSensitive bool) (*Matcher, error) {
	if query == "" {
		return nil, ErrEmptyQuery
	}
	pattern := regexp.QuoteMeta(query)
	if !caseSensitive {
		pattern = "(?i)" + pattern
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("compile query %q: %w", query, err)
	}
	return &Matcher{query: query, caseSensitive: caseSensitive, re: re}, nil
}

// Query returns the literal text the matcher was built from.
func (m *Matcher) Query() string { return m.query }

// CaseSensitive reports the case policy the matcher was built with.
func (m *Matcher) CaseSensitive() bool { return m.caseSensitive }

// Matches reports whether the matcher was built for exactly this query and
// case policy, i.e. whether it can be reused.
func (m *Matcher) Matches(query string, caseSensitive bool) bool {
	return m != nil && m.query == query && m.caseSensitive == caseSensitive
}

// All yields every non-overlapping occurrence in ascending order.
func (m *Matcher) All(doc selection.Document) iter.Seq[types.Range] {
	return func(yield func(types.Range) bool) {
		text := selection.Text(doc)
		loc := locator{text: text}
		for start := 0; start < len(text); {
			idx := m.re.FindStringIndex(text[start:])
			if idx == nil || idx[0] == idx[1] {
				return
			}
			from := loc.advance(start + idx[0])
			to := loc.advance(start + idx[1])
			if !yield(types.Range{From: from, To: to}) {
				return
			}
			start += idx[1]
		}
	}
}

// Count returns the number of occurrences in doc.
func (m *Matcher) Count(doc selection.Document) int {
	n := 0
	for range m.All(doc) {
		n++
	}
	return n
}

// NextAfter returns the first occurrence starting at or after the rune
// offset fromOffset. It does not wrap around.
func (m *Matcher) NextAfter(doc selection.Document, fromOffset int) (types.Range, bool) {
	text := selection.Text(doc)
	start, ok := utils.ByteOffset(text, fromOffset)
	if !ok {
		return types.Range{}, false
	}
	idx := m.re.FindStringIndex(text[start:])
	if idx == nil || idx[0] == idx[1] {
		return types.Range{}, false
	}
	loc := locator{text: text}
	from := loc.advance(start + idx[0])
	return types.Range{From: from, To: loc.advance(start + idx[1])}, true
}

// FindAllOccurrences yields the occurrences of query in doc. A query that
// cannot be compiled yields nothing.
func FindAllOccurrences(doc selection.Document, query string, caseSensitive bool) iter.Seq[types.Range] {
	m, err := compileOrLog(query, caseSensitive)
	if err != nil {
		return func(func(types.Range) bool) {}
	}
	return m.All(doc)
}

// FindNextOccurrenceAfter returns the first occurrence of query starting
// at or after fromOffset.
func FindNextOccurrenceAfter(doc selection.Document, query string, caseSensitive bool, fromOffset int) (types.Range, bool) {
	m, err := compileOrLog(query, caseSensitive)
	if err != nil {
		return types.Range{}, false
	}
	return m.NextAfter(doc, fromOffset)
}

func compileOrLog(query string, caseSensitive bool) (*Matcher, error) {
	m, err := Compile(query, caseSensitive)
	if err != nil && !errors.Is(err, ErrEmptyQuery) {
		logger.Warnf("find: %v", err)
	}
	return m, err
}

// locator turns ascending byte offsets of a text into positions.
type locator struct {
	text string
	off  int
	pos  types.Position
}

func (l *locator) advance(to int) types.Position {
	for l.off < to {
		r, size := utf8.DecodeRuneInString(l.text[l.off:])
		if r == '\n' {
			l.pos.Line++
			l.pos.Col = 0
		} else {
			l.pos.Col++
		}
		l.off += size
	}
	return l.pos
}
