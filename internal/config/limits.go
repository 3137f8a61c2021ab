package config

import (
	"github.com/pkg/errors"

	"regexnfa/internal/syntax"
)

var (
	ErrPatternTooLong = errors.New("pattern too long")
	ErrTooDeep        = errors.New("pattern nested too deeply")
	ErrClassTooLarge  = errors.New("character classes too large")
)

// Limits bounds the input accepted before translation. Translation recurses
// once per tree level, so MaxDepth also bounds the stack it uses. A class
// range becomes one transition per character, MaxClassSize caps their sum.
type Limits struct {
	MaxPatternLength int
	MaxDepth         int
	MaxClassSize     int
}

// Limits returns the limits configured in c.
func (c Config) Limits() Limits {
	return Limits{MaxPatternLength: c.MaxPatternLength, MaxDepth: c.MaxDepth, MaxClassSize: c.MaxClassSize}
}

// CheckLength rejects patterns longer than MaxPatternLength bytes. It is
// meant to run before parsing.
func (l Limits) CheckLength(pattern string) error {
	if len(pattern) > l.MaxPatternLength {
		return errors.Wrapf(ErrPatternTooLong, "%d bytes, limit is %d", len(pattern), l.MaxPatternLength)
	}
	return nil
}

// Check applies CheckLength to pattern and rejects n if it is deeper than
// MaxDepth or its class ranges cover more than MaxClassSize characters.
func (l Limits) Check(pattern string, n syntax.Node) error {
	if err := l.CheckLength(pattern); err != nil {
		return err
	}
	if d := syntax.Depth(n); d > l.MaxDepth {
		return errors.Wrapf(ErrTooDeep, "depth %d, limit is %d", d, l.MaxDepth)
	}
	if size := ClassSize(n); size > int64(l.MaxClassSize) {
		return errors.Wrapf(ErrClassTooLarge, "%d characters, limit is %d", size, l.MaxClassSize)
	}
	return nil
}

// ClassSize is the number of characters spanned by all class ranges in n.
func ClassSize(n syntax.Node) int64 {
	var size int64
	syntax.Walk(n, func(n syntax.Node) bool {
		if r, ok := n.(*syntax.ClassSetRange); ok && r.End >= r.Start {
			size += int64(r.End-r.Start) + 1
		}
		return true
	})
	return size
}
