// Package cell encodes and decodes hierarchical spatial cell identifiers.
//
// Cells come from the S2 partitioning of the sphere. A cell is addressed
// either by its canonical token (a trimmed hex string) or by its raw uint64
// id; the two encodings round-trip without loss. Levels run from 0 (face
// cells, continental scale) to 30 (sub-meter).
package cell

import (
	"errors"
	"fmt"

	"github.com/golang/geo/s2"
)

// MaxLevel is the deepest subdivision level of the hierarchy.
const MaxLevel = 30

var (
	// ErrInvalidToken is returned when a token is malformed or not the
	// canonical encoding of any cell.
	ErrInvalidToken = errors.New("cell: invalid token")
	// ErrInvalidID is returned when a raw id is not a valid cell encoding.
	ErrInvalidID = errors.New("cell: invalid id")
	// ErrNoParent is returned by ParentOf for level-0 cells.
	ErrNoParent = errors.New("cell: level 0 cell has no parent")
	// ErrInvalidLevel is returned when a level lies outside [0, MaxLevel].
	ErrInvalidLevel = errors.New("cell: level out of range")
)

// Token is the canonical string encoding of a cell id.
type Token string

// ParseToken decodes a token into its s2 cell id. It is a validating parse:
// malformed tokens and tokens that are not the canonical encoding of their
// cell (for example with trailing zero digits) are rejected rather than
// normalized.
func ParseToken(t Token) (s2.CellID, error) {
	id := s2.CellIDFromToken(string(t))
	if !id.IsValid() {
		return 0, fmt.Errorf("%w: %q", ErrInvalidToken, t)
	}
	if id.ToToken() != string(t) {
		return 0, fmt.Errorf("%w: %q is not canonical", ErrInvalidToken, t)
	}
	return id, nil
}

// IsValid reports whether t decodes to a cell. It never fails; malformed
// input yields false.
func IsValid(t Token) bool {
	_, err := ParseToken(t)
	return err == nil
}

// TokenFromID converts a raw cell id to its canonical token.
func TokenFromID(id uint64) (Token, error) {
	c := s2.CellID(id)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %#x", ErrInvalidID, id)
	}
	return Token(c.ToToken()), nil
}

// IDFromToken converts a token to its raw cell id.
func IDFromToken(t Token) (uint64, error) {
	id, err := ParseToken(t)
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// LevelOf returns the subdivision level encoded in the token.
func LevelOf(t Token) (int, error) {
	id, err := ParseToken(t)
	if err != nil {
		return 0, err
	}
	return id.Level(), nil
}

// ParentOf returns the token of the cell one level up.
func ParentOf(t Token) (Token, error) {
	id, err := ParseToken(t)
	if err != nil {
		return "", err
	}
	level := id.Level()
	if level == 0 {
		return "", fmt.Errorf("%w: %q", ErrNoParent, t)
	}
	return Token(id.Parent(level - 1).ToToken()), nil
}

// ChildrenOf returns the four cells partitioning t at the next level, in
// Hilbert curve position order. The order is stable: child i of a cell is
// always the same cell, so quadtree traversals built on it are
// deterministic.
func ChildrenOf(t Token) ([4]Token, error) {
	var out [4]Token
	id, err := ParseToken(t)
	if err != nil {
		return out, err
	}
	if id.Level() == MaxLevel {
		return out, fmt.Errorf("%w: level %d cell has no children", ErrInvalidLevel, MaxLevel)
	}
	for i, child := range id.Children() {
		out[i] = Token(child.ToToken())
	}
	return out, nil
}

// FromCoordinates returns the unique cell containing the point at the given
// level. The mapping is deterministic: a point always lands in the same
// cell.
func FromCoordinates(lat, lng float64, level int) (Token, error) {
	if level < 0 || level > MaxLevel {
		return "", fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	leaf := s2.CellIDFromLatLng(s2.LatLngFromDegrees(lat, lng))
	return Token(leaf.Parent(level).ToToken()), nil
}
