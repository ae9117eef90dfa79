// SPDX-License-Identifier: MIT

package coverage

import "github.com/katalvlaran/boolmf/binmat"

// Metrics summarizes a reconstruction.
// Ratios whose denominator is zero are reported as 0.
type Metrics struct {
	Counts

	TPR       float64 // TP / (TP + FN)
	FPR       float64 // FP / (FP + TN)
	FNR       float64 // FN / (TP + FN)
	Accuracy  float64 // (TP + TN) / total
	Precision float64 // TP / (TP + FP)
	Recall    float64 // same as TPR
	F1        float64 // harmonic mean of precision and recall
}

// ratio divides with the zero-denominator guard used across the package.
func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}

	return float64(num) / float64(den)
}

// MetricsOf derives Metrics from a tally.
func MetricsOf(c Counts) Metrics {
	m := Metrics{
		Counts:    c,
		TPR:       ratio(c.TP, c.TP+c.FN),
		FPR:       ratio(c.FP, c.FP+c.TN),
		FNR:       ratio(c.FN, c.TP+c.FN),
		Accuracy:  ratio(c.TP+c.TN, c.TP+c.FP+c.FN+c.TN),
		Precision: ratio(c.TP, c.TP+c.FP),
	}
	m.Recall = m.TPR
	if m.Precision+m.Recall > 0 {
		m.F1 = 2 * m.Precision * m.Recall / (m.Precision + m.Recall)
	}

	return m
}

// Evaluate computes Metrics of pd against gt.
func Evaluate(gt, pd *binmat.Matrix) (Metrics, error) {
	c, err := Confusion(gt, pd)
	if err != nil {
		return Metrics{}, err
	}

	return MetricsOf(c), nil
}

// ErrorRate returns the unweighted reconstruction error (FP+FN)/(m·n).
func ErrorRate(gt, pd *binmat.Matrix) (float64, error) {
	c, err := Confusion(gt, pd)
	if err != nil {
		return 0, err
	}

	return ratio(c.FP+c.FN, c.TP+c.FP+c.FN+c.TN), nil
}
