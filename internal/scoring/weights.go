package scoring

import (
	"fmt"
)

const (
	MinWeight = 1
	MaxWeight = 5
)

// WeightSet defines the relative importance of each qualification criterion.
// Order matters: it matches the order criteria are evaluated and reported in.
type WeightSet struct {
	Deadline     int
	Budget       int
	Resources    int
	Credentials  int
	Relationship int
}

// DefaultWeights returns the fixed [3, 2, 2, 4, 1] distribution.
func DefaultWeights() WeightSet {
	return WeightSet{
		Deadline:     3,
		Budget:       2,
		Resources:    2,
		Credentials:  4,
		Relationship: 1,
	}
}

// Sum returns the total of all weights.
func (w WeightSet) Sum() int {
	return w.Deadline + w.Budget + w.Resources + w.Credentials + w.Relationship
}

// Validate checks every weight is within [MinWeight, MaxWeight].
func (w WeightSet) Validate() error {
	for i, v := range w.asList() {
		if v < MinWeight || v > MaxWeight {
			return fmt.Errorf("weight %d out of range: %d", i+1, v)
		}
	}
	return nil
}

func (w WeightSet) asList() []int {
	return []int{w.Deadline, w.Budget, w.Resources, w.Credentials, w.Relationship}
}
