package engine

import (
	"fmt"
	"strings"
)

// Entry is one battle log line tagged with the turn it was written in.
type Entry struct {
	Turn int    `json:"turn"`
	Text string `json:"text"`
}

func (e Entry) String() string { return fmt.Sprintf("Turn %d: %s", e.Turn, e.Text) }

// battleLog is append-only. Nothing in the package truncates or rewrites it.
type battleLog struct {
	entries []Entry
}

func (l *battleLog) add(turn int, msg string) {
	l.entries = append(l.entries, Entry{Turn: turn, Text: msg})
}

func (l *battleLog) addf(turn int, format string, args ...interface{}) {
	l.add(turn, fmt.Sprintf(format, args...))
}

func (l *battleLog) len() int { return len(l.entries) }

func (l *battleLog) lines() []string {
	out := make([]string, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.String()
	}
	return out
}

func (l *battleLog) copyEntries() []Entry {
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// joined returns the whole log as one newline-separated string.
func (l *battleLog) joined() string {
	return strings.Join(l.lines(), "\n")
}
