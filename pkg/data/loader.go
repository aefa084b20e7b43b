// Package data slices a flat token stream into fixed-shape training batches.
package data

import (
	"math"

	"github.com/charmbracelet/log"
)

// Loader is an interface for data loaders.
type Loader interface {
	// NextBatch returns B rows of T input tokens and the matching next-token targets.
	NextBatch() (inputs, targets [][]int32)
	// Reset moves the cursor back to the start of the stream.
	Reset()
}

// DataLoader walks a token stream sequentially, B*T tokens per batch,
// and wraps to the start when the next batch would run past the end.
//
// A DataLoader is not safe for concurrent use.
type DataLoader struct {
	batchSize int
	seqLength int
	curPos    int
	tokens    []int32
}

// Option configures a DataLoader.
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger sets the logger used to report the stream size at construction.
func WithLogger(logger *log.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New returns a DataLoader over a copy of tokens.
func New(tokens []int32, batchSize, seqLength int, opts ...Option) (*DataLoader, error) {
	o := options{logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if batchSize <= 0 || seqLength <= 0 {
		return nil, &ConfigError{BatchSize: batchSize, SeqLength: seqLength}
	}
	// B*T+1 <= L, rearranged so B*T is never formed when it cannot fit.
	if batchSize > (len(tokens)-1)/seqLength {
		return nil, &InsufficientDataError{
			Tokens:    len(tokens),
			Required:  required(batchSize, seqLength),
			BatchSize: batchSize,
			SeqLength: seqLength,
		}
	}
	loader := &DataLoader{
		batchSize: batchSize,
		seqLength: seqLength,
		tokens:    append([]int32(nil), tokens...),
	}
	o.logger.Info("loaded tokens", "tokens", len(loader.tokens))
	o.logger.Info("1 epoch", "batches", loader.NumBatches())
	return loader, nil
}

// required returns B*T+1, saturating at math.MaxInt.
func required(batchSize, seqLength int) int {
	if batchSize > (math.MaxInt-1)/seqLength {
		return math.MaxInt
	}
	return batchSize*seqLength + 1
}

// Reset resets the loader to the beginning of the stream.
func (loader *DataLoader) Reset() {
	loader.curPos = 0
}

// NextBatch returns the next batch of data.
//
// Row i of inputs holds tokens [cur+i*T, cur+(i+1)*T) and targets is the same
// window shifted by one token. The cursor wraps after advancing, so the
// trailing remainder shorter than B*T+1 tokens is never served.
func (loader *DataLoader) NextBatch() ([][]int32, [][]int32) {
	B, T := loader.batchSize, loader.seqLength
	buf := loader.tokens[loader.curPos : loader.curPos+B*T+1]
	inputs, targets := make([][]int32, B), make([][]int32, B)
	for i := range inputs {
		inputs[i] = append([]int32(nil), buf[i*T:(i+1)*T]...)
		targets[i] = append([]int32(nil), buf[i*T+1:(i+1)*T+1]...)
	}
	loader.curPos += B * T
	if loader.curPos+B*T+1 > len(loader.tokens) {
		loader.curPos = 0
	}
	return inputs, targets
}

// Position returns the cursor offset of the next batch.
func (loader *DataLoader) Position() int { return loader.curPos }

// Len returns the number of tokens in the stream.
func (loader *DataLoader) Len() int { return len(loader.tokens) }

// NumBatches returns the number of B*T windows in the stream, L / (B*T).
func (loader *DataLoader) NumBatches() int {
	return len(loader.tokens) / (loader.batchSize * loader.seqLength)
}

// EpochBatches returns the number of batches served before the cursor
// wraps, (L-1) / (B*T).
func (loader *DataLoader) EpochBatches() int {
	return (len(loader.tokens) - 1) / (loader.batchSize * loader.seqLength)
}

// BatchSize returns B.
func (loader *DataLoader) BatchSize() int { return loader.batchSize }

// SeqLength returns T.
func (loader *DataLoader) SeqLength() int { return loader.seqLength }
