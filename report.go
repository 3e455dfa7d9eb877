package stagger

import "fmt"

// BatchCounters accumulates send outcomes over one apply run.
type BatchCounters struct {
	Attempted int
	Succeeded int
}

// Record counts one send attempt.
func (c *BatchCounters) Record(ok bool) {
	c.Attempted++
	if ok {
		c.Succeeded++
	}
}

// Failed returns the number of unsuccessful attempts.
func (c BatchCounters) Failed() int {
	return c.Attempted - c.Succeeded
}

// SuccessRate returns the percentage of successful attempts.
// Returns 0 when nothing was attempted.
func (c BatchCounters) SuccessRate() float64 {
	if c.Attempted == 0 {
		return 0
	}
	return float64(c.Succeeded) / float64(c.Attempted) * 100
}

// FormatReport formats the batch summary shown to the operator.
func FormatReport(c BatchCounters) string {
	return fmt.Sprintf("%d successful, %d failed - %.2f%% success rate", c.Succeeded, c.Failed(), c.SuccessRate())
}
