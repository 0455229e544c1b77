package tensor

import (
	"errors"
	"math"
	"testing"
)

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		want  int
	}{
		{Shape{2, 3, 4, 5}, 120},
		{Shape{10, 1, 1, 1}, 10},
		{Shape{0, 3, 4, 5}, 0},
		{Shape{1, 1, 1, 1}, 1},
	}

	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.want {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.want)
		}
	}
}

func TestShapePerSample(t *testing.T) {
	s := Shape{8, 3, 28, 28}
	if got := s.PerSample(); got != 3*28*28 {
		t.Errorf("PerSample() = %d, want %d", got, 3*28*28)
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3, 4, 5}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	if err := (Shape{0, 1, 1, 1}).Validate(); err != nil {
		t.Errorf("zero dimension should be allowed: %v", err)
	}

	err := (Shape{2, -3, 4, 5}).Validate()
	if !errors.Is(err, ErrInvalidShape) {
		t.Errorf("negative dimension: got %v, want ErrInvalidShape", err)
	}

	err = (Shape{math.MaxInt, 2, 1, 1}).Validate()
	if !errors.Is(err, ErrInvalidShape) {
		t.Errorf("overflowing product: got %v, want ErrInvalidShape", err)
	}
}

func TestShapeString(t *testing.T) {
	if got := (Shape{2, 3, 4, 5}).String(); got != "(2 3 4 5)" {
		t.Errorf("String() = %q, want %q", got, "(2 3 4 5)")
	}
}
