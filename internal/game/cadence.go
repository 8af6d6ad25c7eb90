package game

import "time"

// Advance intervals by score bracket
const (
	BaseCadence = 80 * time.Millisecond // score 0-4
	MidCadence  = 60 * time.Millisecond // score 5-9
	FastCadence = 30 * time.Millisecond // score 10+

	midScore  = 5
	fastScore = 10
)

// Cadence returns the advance interval for a score
func Cadence(score int) time.Duration {
	switch {
	case score >= fastScore:
		return FastCadence
	case score >= midScore:
		return MidCadence
	default:
		return BaseCadence
	}
}
