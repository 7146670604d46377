package marksnap

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"time"
)

// nameDateLayout renders the date part of generated names (YYYYMMDD).
const nameDateLayout = "20060102"

// suffixLength is the number of random digits appended to generated names.
const suffixLength = 3

// NameGenerator builds output basenames of the form <base>_<YYYYMMDD><ddd>.
// The three digits are a low-entropy tag: collisions are expected to be rare
// within a day and are caught by the orchestrator's existence check.
type NameGenerator struct {
	Now  func() time.Time
	Rand func() float64 // must return a value in [0, 1)
}

// NewNameGenerator returns a generator using the wall clock and math/rand.
func NewNameGenerator() *NameGenerator {
	return &NameGenerator{Now: time.Now, Rand: rand.Float64}
}

// Generate returns base + "_" + date + three digits.
func (g *NameGenerator) Generate(base string) string {
	now, rnd := time.Now, rand.Float64
	if g != nil && g.Now != nil {
		now = g.Now
	}
	if g != nil && g.Rand != nil {
		rnd = g.Rand
	}
	return base + "_" + now().Format(nameDateLayout) + randomSuffix(rnd())
}

// randomSuffix keeps the last three fraction digits of f as rendered in
// decimal. Short fractions such as 0.5 are right-padded with zeros.
func randomSuffix(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[i+1:]
	} else {
		s = ""
	}
	if len(s) < suffixLength {
		s += strings.Repeat("0", suffixLength-len(s))
	}
	return s[len(s)-suffixLength:]
}
