package stack

import "testing"

func TestStackPushPop(t *testing.T) {
	t.Parallel()

	s := New[int]()
	if !s.IsEmpty() || s.Len() != 0 {
		t.Fatalf("New() Len = %d, IsEmpty = %t", s.Len(), s.IsEmpty())
	}

	s.Push(1)
	s.Push(2, 3)
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}

	for _, want := range []int{3, 2, 1} {
		got, ok := s.Pop()
		if !ok || got != want {
			t.Fatalf("Pop() = %d, %t, want %d, true", got, ok, want)
		}
	}

	got, ok := s.Pop()
	if ok || got != 0 {
		t.Errorf("Pop() on empty stack = %d, %t, want 0, false", got, ok)
	}
	if !s.IsEmpty() {
		t.Error("stack should be empty after popping all items")
	}
}

func TestStackZeroValue(t *testing.T) {
	t.Parallel()

	var s Stack[string]
	s.Push("a")

	got, ok := s.Pop()
	if !ok || got != "a" {
		t.Errorf("Pop() = %q, %t, want \"a\", true", got, ok)
	}
}

func TestStackPopReleasesSlot(t *testing.T) {
	t.Parallel()

	s := New[*int]()
	v := 42
	s.Push(&v)
	s.Pop()

	if s.items[:1][0] != nil {
		t.Error("popped slot still references the item")
	}
}
