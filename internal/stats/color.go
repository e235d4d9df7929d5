package stats

import (
	"math"

	"github.com/verte-zerg/arenatrack/internal/model"
)

// SemanticColor maps a percentage onto the red (0) → yellow (50) → green (100) ramp.
// Input outside [0,100] is accepted; channels are clamped to [0,255].
func SemanticColor(percentage float64) model.RGB {
	var red, green, blue int
	if percentage <= 50 {
		factor := percentage / 50
		red = 255
		green = roundHalfUp(107 + float64(148*factor))
		blue = roundHalfUp(107 + float64(61*factor))
	} else {
		factor := (percentage - 50) / 50
		red = roundHalfUp(255 - float64(188*factor))
		green = 255
		blue = roundHalfUp(168 - float64(101*factor))
	}
	return model.RGB{R: clampChannel(red), G: clampChannel(green), B: clampChannel(blue)}
}

func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint8 {
		return math.MaxUint8
	}
	return uint8(v)
}
