package dirty

// DefaultThreshold is the share of changed cells above which a full
// repaint replaces a positional diff.
const DefaultThreshold = 0.5

// Policy decides between a positional diff and a full repaint.
type Policy struct {
	threshold float64
}

// NewPolicy creates a policy with the given threshold, clamped to [0,1].
func NewPolicy(threshold float64) Policy {
	p := Policy{}
	p.SetThreshold(threshold)
	return p
}

// DefaultPolicy returns a policy using DefaultThreshold.
func DefaultPolicy() Policy {
	return Policy{threshold: DefaultThreshold}
}

// Threshold returns the configured threshold.
func (p Policy) Threshold() float64 {
	return p.threshold
}

// SetThreshold updates the threshold, clamped to [0,1].
func (p *Policy) SetThreshold(threshold float64) {
	if threshold < 0 {
		threshold = 0
	}
	if threshold > 1 {
		threshold = 1
	}
	p.threshold = threshold
}

// FullRepaint reports whether changed out of total cells exceeds the
// threshold.
func (p Policy) FullRepaint(changed, total int) bool {
	if total <= 0 {
		return false
	}
	return float64(changed)/float64(total) > p.threshold
}
