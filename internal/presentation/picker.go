package presentation

import (
	"fmt"
	"math/rand/v2"
)

// Selection names a strategy for choosing the content template behind each
// generated slide.
type Selection string

const (
	// SelectionRandom picks uniformly at random, with replacement.
	SelectionRandom Selection = "random"
	// SelectionRoundRobin cycles through the templates in deck order.
	SelectionRoundRobin Selection = "round_robin"
)

// ParseSelection maps a configuration value to a Selection.
func ParseSelection(s string) (Selection, error) {
	switch Selection(s) {
	case SelectionRandom, SelectionRoundRobin:
		return Selection(s), nil
	case "":
		return SelectionRandom, nil
	default:
		return "", fmt.Errorf("unknown template selection %q", s)
	}
}

// picker returns an index in [0, n).
type picker func(n int) int

func (a *Assembler) newPicker() picker {
	if a.selection == SelectionRoundRobin {
		next := 0
		return func(n int) int {
			i := next % n
			next++
			return i
		}
	}
	if a.intN != nil {
		return a.intN
	}
	return rand.IntN
}
