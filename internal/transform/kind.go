// Package transform builds the per-kind 2x2 matrices from semantic
// parameters and composes them, in a caller-chosen order, into one affine
// matrix centered on the image midpoint.
package transform

import (
	"errors"
	"fmt"
	"strings"
)

// Kind identifies one of the three linear transforms.
type Kind int

const (
	Scale Kind = iota
	Rotation
	Shear
)

// Kinds lists every Kind in default order.
var Kinds = [3]Kind{Scale, Rotation, Shear}

func (k Kind) String() string {
	switch k {
	case Scale:
		return "scale"
	case Rotation:
		return "rotation"
	case Shear:
		return "shear"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Valid reports whether k is one of the three known kinds.
func (k Kind) Valid() bool {
	return k >= Scale && k <= Shear
}

// ParseKind accepts the kind name or its usual short forms.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "scale", "s":
		return Scale, nil
	case "rotation", "rotate", "r":
		return Rotation, nil
	case "shear", "h":
		return Shear, nil
	}
	return 0, fmt.Errorf("unknown transform kind %q", s)
}

// ErrInvalidOrder is returned when an order does not name every kind
// exactly once.
var ErrInvalidOrder = errors.New("order must contain scale, rotation and shear exactly once")

// Order is the sequence in which the transforms are applied to a point:
// Order[0] acts first.
type Order [3]Kind

// DefaultOrder is scale, then rotation, then shear.
func DefaultOrder() Order {
	return Order(Kinds)
}

// ParseOrder parses a comma separated list such as "rotation,scale,shear".
func ParseOrder(s string) (Order, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return Order{}, fmt.Errorf("%w: got %q", ErrInvalidOrder, s)
	}
	var o Order
	for i, p := range parts {
		k, err := ParseKind(p)
		if err != nil {
			return Order{}, err
		}
		o[i] = k
	}
	if err := o.Validate(); err != nil {
		return Order{}, err
	}
	return o, nil
}

// Validate checks that o is a permutation of the three kinds.
func (o Order) Validate() error {
	var seen [3]bool
	for _, k := range o {
		if !k.Valid() || seen[k] {
			return fmt.Errorf("%w: got %v", ErrInvalidOrder, o)
		}
		seen[k] = true
	}
	return nil
}

// Move swaps the entry at index with its neighbour in direction dir
// (-1 moves it earlier, +1 later). Moves past either end return o
// unchanged.
func (o Order) Move(index, dir int) Order {
	j := index + dir
	if index < 0 || index >= len(o) || j < 0 || j >= len(o) {
		return o
	}
	o[index], o[j] = o[j], o[index]
	return o
}

// Index returns the position of k in o, or -1.
func (o Order) Index(k Kind) int {
	for i, v := range o {
		if v == k {
			return i
		}
	}
	return -1
}

func (o Order) String() string {
	return o[0].String() + "," + o[1].String() + "," + o[2].String()
}
