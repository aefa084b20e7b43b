// Package bigram implements a count-based bigram language model that
// trains from batches of (input, target) token rows.
package bigram

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/sayanbanerjee32/nanogpt2-text-generator/pkg/torch"
	"gonum.org/v1/gonum/stat"
)

// Model estimates p(next | prev) from bigram counts with additive smoothing:
//
//	p(j | i) = (c[i][j] + alpha) / (n[i] + alpha*V)
type Model struct {
	// VocabSize is the number of token ids the model accepts.
	VocabSize int
	// Smoothing is the additive pseudo-count alpha.
	Smoothing float64

	counts map[int32]map[int32]float64
	totals map[int32]float64
}

// New returns an untrained model.
func New(vocabSize int, smoothing float64) (*Model, error) {
	if vocabSize <= 0 {
		return nil, fmt.Errorf("vocab size must be positive, got %d", vocabSize)
	}
	if smoothing <= 0 {
		return nil, fmt.Errorf("smoothing must be positive, got %v", smoothing)
	}
	return &Model{
		VocabSize: vocabSize,
		Smoothing: smoothing,
		counts:    map[int32]map[int32]float64{},
		totals:    map[int32]float64{},
	}, nil
}

func (m *Model) check(token int32) error {
	if token < 0 || int(token) >= m.VocabSize {
		return fmt.Errorf("token %d outside vocabulary of %d", token, m.VocabSize)
	}
	return nil
}

// Prob returns p(next | prev).
func (m *Model) Prob(prev, next int32) float64 {
	denom := m.totals[prev] + m.Smoothing*float64(m.VocabSize)
	return (m.counts[prev][next] + m.Smoothing) / denom
}

// Forward computes the mean negative log likelihood of targets given inputs.
func (m *Model) Forward(inputs, targets [][]int32) (float64, error) {
	var probs []float64
	err := pairs(inputs, targets, func(prev, next int32) error {
		if err := m.check(prev); err != nil {
			return err
		}
		if err := m.check(next); err != nil {
			return err
		}
		probs = append(probs, m.Prob(prev, next))
		return nil
	})
	if err != nil {
		return 0, err
	}
	losses := make([]float64, len(probs))
	torch.CrossEntropyForward(losses, probs)
	return stat.Mean(losses, nil), nil
}

// Update adds the bigrams of one batch to the counts.
func (m *Model) Update(inputs, targets [][]int32) error {
	if err := pairs(inputs, targets, func(prev, next int32) error {
		if err := m.check(prev); err != nil {
			return err
		}
		return m.check(next)
	}); err != nil {
		return err
	}
	return pairs(inputs, targets, func(prev, next int32) error {
		row := m.counts[prev]
		if row == nil {
			row = map[int32]float64{}
			m.counts[prev] = row
		}
		row[next]++
		m.totals[prev]++
		return nil
	})
}

// Logits writes log p(· | prev) into dst, which must have VocabSize entries.
func (m *Model) Logits(dst []float64, prev int32) {
	denom := math.Log(m.totals[prev] + m.Smoothing*float64(m.VocabSize))
	base := math.Log(m.Smoothing) - denom
	for i := range dst {
		dst[i] = base
	}
	for next, c := range m.counts[prev] {
		dst[next] = math.Log(c+m.Smoothing) - denom
	}
}

// Generate extends context by maxNew sampled tokens and returns the whole
// sequence. temperature must be positive; topK <= 0 samples from the full
// vocabulary. Logits tied at the top-k boundary are kept or masked in
// floats.Argsort order, so near-zero temperatures pick an arbitrary one of them.
func (m *Model) Generate(context []int32, maxNew int, temperature float64, topK int, rng *rand.Rand) ([]int32, error) {
	if len(context) == 0 {
		return nil, fmt.Errorf("context must hold at least one token")
	}
	if temperature <= 0 {
		return nil, fmt.Errorf("temperature must be positive, got %v", temperature)
	}
	for _, token := range context {
		if err := m.check(token); err != nil {
			return nil, err
		}
	}
	out := append(make([]int32, 0, len(context)+maxNew), context...)
	logits := make([]float64, m.VocabSize)
	probs := make([]float64, m.VocabSize)
	for t := 0; t < maxNew; t++ {
		m.Logits(logits, out[len(out)-1])
		torch.TopK(logits, topK)
		torch.SoftmaxForward(probs, logits, temperature)
		out = append(out, int32(torch.SampleMult(probs, rng.Float64())))
	}
	return out, nil
}

func pairs(inputs, targets [][]int32, fn func(prev, next int32) error) error {
	if len(inputs) != len(targets) {
		return fmt.Errorf("batch has %d input rows and %d target rows", len(inputs), len(targets))
	}
	for i := range inputs {
		if len(inputs[i]) != len(targets[i]) {
			return fmt.Errorf("row %d has %d inputs and %d targets", i, len(inputs[i]), len(targets[i]))
		}
		for j := range inputs[i] {
			if err := fn(inputs[i][j], targets[i][j]); err != nil {
				return err
			}
		}
	}
	return nil
}
