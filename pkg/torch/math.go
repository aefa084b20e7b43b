// Package torch holds the row-wise numeric kernels shared by the models.
package torch

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Inf returns positive infinity if sign >= 0, negative infinity if sign < 0.
func Inf(sign int) float64 {
	return math.Inf(sign)
}

// SoftmaxForward writes softmax(logits / temperature) into probs.
//
// Masked entries (-Inf) get probability zero; at least one logit must be finite.
func SoftmaxForward(probs, logits []float64, temperature float64) {
	if len(probs) != len(logits) {
		panic("torch: softmax length mismatch")
	}
	floats.ScaleTo(probs, 1/temperature, logits)
	lse := floats.LogSumExp(probs)
	for i, v := range probs {
		probs[i] = math.Exp(v - lse)
	}
}

// TopK keeps the k largest logits and masks the rest with -Inf in place.
// k <= 0 or k >= len(logits) leaves logits unchanged.
func TopK(logits []float64, k int) {
	if k <= 0 || k >= len(logits) {
		return
	}
	sorted := make([]float64, len(logits))
	copy(sorted, logits)
	inds := make([]int, len(logits))
	floats.Argsort(sorted, inds)
	for _, i := range inds[:len(inds)-k] {
		logits[i] = Inf(-1)
	}
}

// CrossEntropyForward writes -log(p) into losses for each target
// probability p in probs.
func CrossEntropyForward(losses, probs []float64) {
	if len(losses) != len(probs) {
		panic("torch: cross entropy length mismatch")
	}
	for i, p := range probs {
		losses[i] = -math.Log(p)
	}
}

// SampleMult returns the index of the first element whose cumulative
// probability exceeds coin, coin in [0, 1).
func SampleMult(probabilities []float64, coin float64) int {
	var cdf float64
	for i, prob := range probabilities {
		cdf += prob
		if coin < cdf {
			return i
		}
	}
	return len(probabilities) - 1
}
