package sampling

import (
	"math"
	"math/rand"

	"github.com/davidleathers/transaction-synthesis-engine/internal/domain/profile"
)

// DefaultLocalRadius is the disc radius, in decimal degrees, for regular
// close-to-home transactions when the travel trial fails.
const DefaultLocalRadius = 1.0

// Geo places merchant coordinates relative to a customer's home point.
// A Bernoulli travel trial selects the disc radius; points are then drawn
// uniformly over the disc AREA via polar sampling with square-root radius
// scaling, so draws do not pile up near the center.
type Geo struct {
	travelPct     float64
	travelMaxDist float64
}

// NewGeo builds the placer for one profile.
func NewGeo(prof *profile.Profile) *Geo {
	return &Geo{
		travelPct:     prof.TravelPct,
		travelMaxDist: prof.TravelMaxDist,
	}
}

// Draw returns merchant coordinates around (homeLat, homeLong).
func (g *Geo) Draw(rng *rand.Rand, homeLat, homeLong float64) (lat, long float64) {
	radius := DefaultLocalRadius
	if rng.Float64()*100 < g.travelPct {
		radius = g.travelMaxDist
	}
	r := radius * math.Sqrt(rng.Float64())
	theta := rng.Float64() * 2 * math.Pi
	return homeLat + r*math.Sin(theta), homeLong + r*math.Cos(theta)
}
