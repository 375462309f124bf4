package engine

import (
	"fmt"
	"time"
)

type Rules struct {
	Rows          int           `json:"rows" yaml:"rows"`
	Cols          int           `json:"cols" yaml:"cols"`
	ResetInterval time.Duration `json:"reset_interval" yaml:"reset_interval"`
	RoundDuration time.Duration `json:"round_duration" yaml:"round_duration"`
	TargetSum     int           `json:"target_sum" yaml:"target_sum"`
	MatchReward   int           `json:"match_reward" yaml:"match_reward"`
	ExpiryPenalty int           `json:"expiry_penalty" yaml:"expiry_penalty"`
	MinSelection  int           `json:"min_selection" yaml:"min_selection"`
	Layout        Layout        `json:"layout" yaml:"layout"`
}

func DefaultRules() Rules {
	return Rules{
		Rows:          3,
		Cols:          3,
		ResetInterval: 15 * time.Second,
		RoundDuration: 60 * time.Second,
		TargetSum:     15,
		MatchReward:   15,
		ExpiryPenalty: 10,
		MinSelection:  2,
		Layout:        DefaultLayout(),
	}
}

// NumPanels is the size of the grid.
func (r Rules) NumPanels() int { return r.Rows * r.Cols }

// Validate reports the first problem with r, wrapped in ErrInvalidRules.
func (r Rules) Validate() error {
	switch {
	case r.Rows <= 0 || r.Cols <= 0:
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrInvalidRules, r.Rows, r.Cols)
	case r.ResetInterval <= 0:
		return fmt.Errorf("%w: reset interval must be positive, got %v", ErrInvalidRules, r.ResetInterval)
	case r.RoundDuration <= 0:
		return fmt.Errorf("%w: round duration must be positive, got %v", ErrInvalidRules, r.RoundDuration)
	case r.TargetSum <= 0:
		return fmt.Errorf("%w: target sum must be positive, got %d", ErrInvalidRules, r.TargetSum)
	case r.MatchReward < 0:
		return fmt.Errorf("%w: match reward must not be negative, got %d", ErrInvalidRules, r.MatchReward)
	case r.ExpiryPenalty < 0:
		return fmt.Errorf("%w: expiry penalty must not be negative, got %d", ErrInvalidRules, r.ExpiryPenalty)
	case r.MinSelection < 1:
		return fmt.Errorf("%w: min selection must be at least 1, got %d", ErrInvalidRules, r.MinSelection)
	}
	return r.Layout.validate(r.Rows, r.Cols)
}
