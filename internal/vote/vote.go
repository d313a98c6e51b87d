// Package vote turns a batch of free-text replies into a single move intent.
// Replies are matched by keyword or emoji and the counts are resolved with a
// cascading priority: tilt, then left, then right, then down.
package vote

import (
	"fmt"
	"strings"
)

// Intent is the single directional action chosen for one tick.
type Intent int

const (
	None Intent = iota
	Left
	Right
	TiltLeft
	SoftDrop
)

// String returns a human-readable name for the intent.
func (i Intent) String() string {
	switch i {
	case None:
		return "none"
	case Left:
		return "left"
	case Right:
		return "right"
	case TiltLeft:
		return "tilt"
	case SoftDrop:
		return "down"
	default:
		return "unknown"
	}
}

// ParseIntent converts a name produced by String back into an Intent.
func ParseIntent(s string) (Intent, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "tilt", "spin":
		return TiltLeft, nil
	case "down", "drop":
		return SoftDrop, nil
	}
	return None, fmt.Errorf("vote: unknown intent %q", s)
}

// matcher holds the words (matched case-insensitively) and emoji (matched
// exactly) that count a message toward one intent.
type matcher struct {
	words []string
	emoji []string
}

func (m matcher) match(text string) bool {
	lower := strings.ToLower(text)
	for _, w := range m.words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	for _, e := range m.emoji {
		if strings.Contains(text, e) {
			return true
		}
	}
	return false
}

var (
	leftMatcher  = matcher{words: []string{"left"}, emoji: []string{"⬅️"}}
	rightMatcher = matcher{words: []string{"right"}, emoji: []string{"➡️"}}
	tiltMatcher  = matcher{words: []string{"spin", "tilt", "turn", "flip"}, emoji: []string{"⤴️", "↩️"}}
	downMatcher  = matcher{words: []string{"down", "drop"}, emoji: []string{"⬇️"}}
)

// Counts is the number of messages matching each keyword set.
// A single message may count toward several sets.
type Counts struct {
	Left  int
	Right int
	Tilt  int
	Down  int
}

// Tally counts the messages matching each keyword set.
func Tally(messages []string) Counts {
	var c Counts
	for _, msg := range messages {
		if leftMatcher.match(msg) {
			c.Left++
		}
		if rightMatcher.match(msg) {
			c.Right++
		}
		if tiltMatcher.match(msg) {
			c.Tilt++
		}
		if downMatcher.match(msg) {
			c.Down++
		}
	}
	return c
}

// Resolve picks the winning intent. Each tier must beat every tier below it
// strictly; a tie drops the vote to the next tier down.
func (c Counts) Resolve() Intent {
	switch {
	case c.Tilt > 0 && c.Tilt > c.Left && c.Tilt > c.Right && c.Tilt > c.Down:
		return TiltLeft
	case c.Left > 0 && c.Left > c.Right && c.Left > c.Down:
		return Left
	case c.Right > 0 && c.Right > c.Down:
		return Right
	case c.Down > 0:
		return SoftDrop
	}
	return None
}

// Interpret tallies the messages and resolves them to one intent.
func Interpret(messages []string) Intent {
	return Tally(messages).Resolve()
}
