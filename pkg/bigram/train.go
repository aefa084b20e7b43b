package bigram

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sayanbanerjee32/nanogpt2-text-generator/pkg/data"
	"gonum.org/v1/gonum/stat"
)

// TrainOptions controls the training loop.
type TrainOptions struct {
	// Steps is the number of training batches consumed.
	Steps int
	// ValEvery runs validation before every ValEvery-th step; 0 disables it.
	ValEvery int
	// ValBatches is the number of validation batches averaged per evaluation.
	ValBatches int
	// Logger receives per-step progress. Defaults to log.Default().
	Logger *log.Logger
}

// Evaluation is one validation result.
type Evaluation struct {
	Step int
	Loss float64
}

// Report summarises a training run.
type Report struct {
	TrainLosses []float64
	ValLosses   []Evaluation
}

// Train consumes opts.Steps batches from train. Each step records the loss
// of the batch under the current counts and then adds the batch to them.
// val may be nil.
func (m *Model) Train(train, val data.Loader, opts TrainOptions) (Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	var report Report
	for step := 0; step < opts.Steps; step++ {
		if val != nil && opts.ValEvery > 0 && step%opts.ValEvery == 0 {
			loss, err := m.Evaluate(val, opts.ValBatches)
			if err != nil {
				return report, fmt.Errorf("validation at step %d: %w", step, err)
			}
			report.ValLosses = append(report.ValLosses, Evaluation{Step: step, Loss: loss})
			logger.Info("val", "step", step, "loss", loss)
		}
		start := time.Now()
		inputs, targets := train.NextBatch()
		loss, err := m.Forward(inputs, targets)
		if err != nil {
			return report, fmt.Errorf("forward at step %d: %w", step, err)
		}
		if err := m.Update(inputs, targets); err != nil {
			return report, fmt.Errorf("update at step %d: %w", step, err)
		}
		report.TrainLosses = append(report.TrainLosses, loss)
		logger.Debug("train", "step", step, "loss", loss, "took", time.Since(start))
	}
	return report, nil
}

// Evaluate resets val and returns the mean loss over its first n batches.
func (m *Model) Evaluate(val data.Loader, n int) (float64, error) {
	if n <= 0 {
		return 0, fmt.Errorf("validation batches must be positive, got %d", n)
	}
	val.Reset()
	losses := make([]float64, n)
	for i := range losses {
		inputs, targets := val.NextBatch()
		loss, err := m.Forward(inputs, targets)
		if err != nil {
			return 0, err
		}
		losses[i] = loss
	}
	return stat.Mean(losses, nil), nil
}

// Fit adds the next n batches of loader to the counts without scoring them.
func (m *Model) Fit(loader data.Loader, n int) error {
	for i := 0; i < n; i++ {
		if err := m.Update(loader.NextBatch()); err != nil {
			return fmt.Errorf("batch %d: %w", i, err)
		}
	}
	return nil
}
