package item

import (
	"strings"
	"testing"
)

func TestStackEmpty(t *testing.T) {
	tests := []struct {
		s    Stack
		want bool
	}{
		{Empty, true},
		{Stack{Kind: Air, Count: 5}, true},
		{Stack{Kind: 1, Count: 0}, true},
		{Stack{Kind: 1, Count: -3}, true},
		{Stack{Kind: 1, Count: 1}, false},
	}
	for _, tt := range tests {
		if got := tt.s.IsEmpty(); got != tt.want {
			t.Errorf("%+v.IsEmpty() = %v, want %v", tt.s, got, tt.want)
		}
	}
}

func TestSplit(t *testing.T) {
	s := New(1, 10)
	part := s.Split(4)
	if part.Count != 4 || s.Count != 6 {
		t.Errorf("Split(4) = %d, remaining %d, want 4 and 6", part.Count, s.Count)
	}

	rest := s.Split(100)
	if rest.Count != 6 || !s.IsEmpty() {
		t.Errorf("Split(100) = %d, remaining %+v, want 6 and empty", rest.Count, s)
	}
	if s.Kind != Air {
		t.Errorf("exhausted stack kind = %d, want Air", s.Kind)
	}

	if got := s.Split(1); !got.IsEmpty() {
		t.Errorf("Split on empty = %+v, want empty", got)
	}
}

func TestCopyIsDeep(t *testing.T) {
	s := New(7, 1, Component{ID: 3, Data: []byte{1, 2}})
	c := s.Copy()
	c.Components[0].Data[0] = 9
	if s.Components[0].Data[0] != 1 {
		t.Errorf("Copy shares component data with the original")
	}
}

func TestMatches(t *testing.T) {
	named := Component{ID: 5, Data: []byte("sword")}
	tests := []struct {
		name       string
		a, b       Stack
		matches    bool
		mergeable  bool
		sameKindOK bool
	}{
		{"both empty", Empty, Stack{Kind: 3}, true, false, false},
		{"same", New(1, 4), New(1, 4), true, true, true},
		{"count differs", New(1, 4), New(1, 5), false, true, true},
		{"kind differs", New(1, 4), New(2, 4), false, false, false},
		{"components differ", New(1, 1, named), New(1, 1), false, false, true},
		{"components same", New(1, 1, named), New(1, 1, named), true, true, true},
	}
	for _, tt := range tests {
		if got := Matches(tt.a, tt.b); got != tt.matches {
			t.Errorf("%s: Matches = %v, want %v", tt.name, got, tt.matches)
		}
		if got := SameItemSameComponents(tt.a, tt.b); got != tt.mergeable {
			t.Errorf("%s: SameItemSameComponents = %v, want %v", tt.name, got, tt.mergeable)
		}
		if got := SameItem(tt.a, tt.b); got != tt.sameKindOK {
			t.Errorf("%s: SameItem = %v, want %v", tt.name, got, tt.sameKindOK)
		}
	}
}

func TestComponentsSorted(t *testing.T) {
	a := New(1, 1, Component{ID: 9}, Component{ID: 2})
	b := New(1, 1, Component{ID: 2}, Component{ID: 9})
	if !Matches(a, b) {
		t.Errorf("component order should not affect equality")
	}
}

func TestStringEmpty(t *testing.T) {
	if got := Empty.String(); got != "empty" {
		t.Errorf("Empty.String() = %q, want %q", got, "empty")
	}
	if got := New(1, 3).String(); !strings.Contains(got, "x3") {
		t.Errorf("String() = %q, want count suffix", got)
	}
}
