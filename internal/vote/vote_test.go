package vote

import "testing"

func TestTally(t *testing.T) {
	c := Tally([]string{"go left", "LEFT!", "right", "spin it", "⬇️ please", "turn left"})

	if c.Left != 3 {
		t.Errorf("Left = %d, expected 3", c.Left)
	}
	if c.Right != 1 {
		t.Errorf("Right = %d, expected 1", c.Right)
	}
	if c.Tilt != 2 {
		t.Errorf("Tilt = %d, expected 2", c.Tilt)
	}
	if c.Down != 1 {
		t.Errorf("Down = %d, expected 1", c.Down)
	}
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		name     string
		messages []string
		expected Intent
	}{
		{"no messages", nil, None},
		{"unrelated chatter", []string{"nice", "lol"}, None},
		{"left beats right", []string{"go left", "left!", "right"}, Left},
		{"tilt loses to larger left", []string{"spin", "left", "left"}, Left},
		{"tilt wins outright", []string{"spin", "flip", "left"}, TiltLeft},
		{"tilt emoji", []string{"↩️"}, TiltLeft},
		{"tilt tied with left falls to left", []string{"spin", "left"}, Left},
		{"left tied with right falls to right", []string{"left", "right"}, Right},
		{"right tied with down falls to down", []string{"right", "down"}, SoftDrop},
		{"down only", []string{"drop it"}, SoftDrop},
		{"arrow emoji", []string{"➡️", "➡️", "⬅️"}, Right},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Interpret(tc.messages)
			if got != tc.expected {
				t.Errorf("Interpret(%q) = %v, expected %v", tc.messages, got, tc.expected)
			}
		})
	}
}

func TestParseIntent(t *testing.T) {
	for _, in := range []Intent{None, Left, Right, TiltLeft, SoftDrop} {
		got, err := ParseIntent(in.String())
		if err != nil {
			t.Fatalf("ParseIntent(%q) failed: %v", in.String(), err)
		}
		if got != in {
			t.Errorf("ParseIntent(%q) = %v, expected %v", in.String(), got, in)
		}
	}

	if _, err := ParseIntent("sideways"); err == nil {
		t.Error("expected error for unknown intent")
	}
}
