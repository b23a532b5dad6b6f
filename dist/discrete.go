package dist

import (
	"math"
	"math/rand"
	"sort"
	"strconv"

	"github.com/katalvlaran/gohmm/internal/logspace"
)

// Discrete is a categorical distribution over a finite set of symbols,
// keyed by an arbitrary comparable label.
type Discrete struct {
	probs map[string]float64
}

// NewDiscrete constructs a Discrete from a symbol->probability map. The
// map is copied; probabilities need not already sum to 1 (callers that
// want strict normalization should normalize before constructing, or
// rely on Fit).
func NewDiscrete(probs map[string]float64) *Discrete {
	cp := make(map[string]float64, len(probs))
	for k, v := range probs {
		cp[k] = v
	}
	return &Discrete{probs: cp}
}

// LogProbability returns log(p[symbol]) if known, -Inf otherwise.
// Discrete's support is over strings; callers pass the symbol encoded
// as its string key via LogProbabilitySymbol below. LogProbability(x)
// treats x as a numeric symbol formatted the same way Fit's caller
// would encode it, for callers that keep emissions as float64 codes.
func (d *Discrete) LogProbability(x float64) float64 {
	return d.LogProbabilitySymbol(formatSymbol(x))
}

// LogProbabilitySymbol returns log(p[symbol]) if known, -Inf otherwise.
func (d *Discrete) LogProbabilitySymbol(symbol string) float64 {
	p, ok := d.probs[symbol]
	if !ok || p <= 0 {
		return logspace.NegInf
	}
	return math.Log(p)
}

// Sample draws a symbol by walking the cumulative distribution in
// sorted-key order (for determinism) and returns it decoded back to
// float64 via parseSymbol; SampleSymbol returns the raw string.
func (d *Discrete) Sample(rng *rand.Rand) float64 {
	return parseSymbol(d.SampleSymbol(rng))
}

// SampleSymbol draws one symbol according to probs.
func (d *Discrete) SampleSymbol(rng *rand.Rand) string {
	keys := d.sortedKeys()
	u := rng.Float64()
	var cum float64
	for _, k := range keys {
		cum += d.probs[k]
		if u < cum {
			return k
		}
	}
	if len(keys) > 0 {
		return keys[len(keys)-1]
	}
	return ""
}

// Fit accumulates weight per symbol from samples/weights and
// normalizes; a no-op if all weights are non-positive. samples are
// interpreted via formatSymbol, mirroring LogProbability.
func (d *Discrete) Fit(samples []float64, weights []float64) error {
	weights, err := resolveWeights(samples, weights)
	if err != nil {
		return err
	}
	acc := make(map[string]float64)
	var total float64
	for i, x := range samples {
		w := weights[i]
		if w <= 0 {
			continue
		}
		acc[formatSymbol(x)] += w
		total += w
	}
	if total == 0 {
		return nil
	}
	for k, v := range acc {
		acc[k] = v / total
	}
	d.probs = acc
	return nil
}

// CloneUntied returns an independent copy.
func (d *Discrete) CloneUntied() Distribution {
	cp := make(map[string]float64, len(d.probs))
	for k, v := range d.probs {
		cp[k] = v
	}
	return &Discrete{probs: cp}
}

func (d *Discrete) Samplable() bool { return true }
func (d *Discrete) Fittable() bool  { return true }

func (d *Discrete) sortedKeys() []string {
	keys := make([]string, 0, len(d.probs))
	for k := range d.probs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func formatSymbol(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func parseSymbol(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
