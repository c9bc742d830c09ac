package layout

import (
	"testing"

	"github.com/pkg/errors"
)

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("Shape%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapeComputeStrides(t *testing.T) {
	got := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ComputeStrides() = %v, want %v", got, want)
		}
	}

	if len(Shape{}.ComputeStrides()) != 0 {
		t.Error("scalar shape should have no strides")
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, s := range []Shape{{2, 0}, {-1}} {
		err := s.Validate()
		if !errors.Is(err, ErrInvalidShape) {
			t.Errorf("Shape%v.Validate() = %v, want ErrInvalidShape", s, err)
		}
	}
}

func TestShapeCloneDoesNotAlias(t *testing.T) {
	s := Shape{2, 3}
	c := s.Clone()
	c[0] = 7
	if s[0] != 2 || !s.Equal(Shape{2, 3}) || s.Equal(c) {
		t.Errorf("Clone aliased its source: %v, %v", s, c)
	}
}

func TestShapeIndices(t *testing.T) {
	var visited [][]int
	Shape{2, 2}.Indices(func(index []int) {
		visited = append(visited, append([]int(nil), index...))
	})

	want := [][]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	if len(visited) != len(want) {
		t.Fatalf("visited %d indices, want %d", len(visited), len(want))
	}
	for i := range want {
		if visited[i][0] != want[i][0] || visited[i][1] != want[i][1] {
			t.Errorf("index %d = %v, want %v", i, visited[i], want[i])
		}
	}

	count := 0
	Shape{}.Indices(func([]int) { count++ })
	if count != 1 {
		t.Errorf("scalar shape visited %d indices, want 1", count)
	}
}
