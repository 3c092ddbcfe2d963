package bfs

import "testing"

func TestParseScheduleNone(t *testing.T) {
	for _, expr := range []string{"", "none"} {
		s, err := ParseSchedule(expr)
		if err != nil {
			t.Fatalf("ParseSchedule(%q): %v", expr, err)
		}
		if s.Matches(4) || s.Matches(100) {
			t.Fatalf("ParseSchedule(%q) matched a tile sum, want none", expr)
		}
	}
}

func TestParseScheduleAll(t *testing.T) {
	s, err := ParseSchedule("all")
	if err != nil {
		t.Fatal(err)
	}
	for _, ts := range []uint32{4, 5, 100} {
		if !s.Matches(ts) {
			t.Fatalf("ParseSchedule(\"all\").Matches(%d) = false", ts)
		}
	}
}

func TestParseScheduleMod(t *testing.T) {
	s, err := ParseSchedule("mod:50")
	if err != nil {
		t.Fatal(err)
	}
	if !s.Matches(100) || !s.Matches(0) {
		t.Fatal("expected multiples of 50 to match")
	}
	if s.Matches(30) {
		t.Fatal("30 should not match mod:50")
	}
}

func TestParseScheduleInvalid(t *testing.T) {
	for _, expr := range []string{"mod:", "mod:-1", "every", "mod:abc"} {
		if _, err := ParseSchedule(expr); err == nil {
			t.Fatalf("ParseSchedule(%q) accepted an invalid expression", expr)
		}
	}
}

func TestNilScheduleMatchesNothing(t *testing.T) {
	var s *Schedule
	if s.Matches(4) {
		t.Fatal("nil schedule should never match")
	}
}
