package models

import (
	"fmt"
	"strings"
)

// Result is the outcome of a match from the player's point of view.
type Result string

const (
	ResultWin  Result = "win"
	ResultLose Result = "lose"
)

// Valid reports whether r is one of the known results.
func (r Result) Valid() bool {
	return r == ResultWin || r == ResultLose
}

func (r Result) String() string {
	return string(r)
}

// ParseResult converts form or JSON input into a Result.
// Matching is case-insensitive and ignores surrounding whitespace.
func ParseResult(s string) (Result, error) {
	r := Result(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown match result %q", s)
	}
	return r, nil
}
