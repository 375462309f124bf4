package engine

import "time"

// RandomSource supplies panel values. *math/rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

const (
	MinPanelValue = 1
	MaxPanelValue = 9
)

type Panel struct {
	Value    int
	Selected bool
	Expiry   time.Time
}

func NewPanel(rnd RandomSource, now time.Time, interval time.Duration) Panel {
	var p Panel
	p.Reset(rnd, now, interval)
	return p
}

// Reset re-rolls the value, clears the selection flag and starts a fresh expiry window.
// It does not touch any Selection holding the panel.
func (p *Panel) Reset(rnd RandomSource, now time.Time, interval time.Duration) {
	p.Value = rollValue(rnd)
	p.Selected = false
	p.Expiry = now.Add(interval)
}

func (p Panel) IsExpired(now time.Time) bool {
	return now.After(p.Expiry)
}

func (p *Panel) ToggleSelected() {
	p.Selected = !p.Selected
}

// RemainingFraction is the share of the reset interval still left, in [0,1].
func (p Panel) RemainingFraction(now time.Time, interval time.Duration) float64 {
	if interval <= 0 {
		return 0
	}
	f := float64(p.Expiry.Sub(now)) / float64(interval)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

func rollValue(rnd RandomSource) int {
	return rnd.Intn(MaxPanelValue-MinPanelValue+1) + MinPanelValue
}
