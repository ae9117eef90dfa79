// SPDX-License-Identifier: MIT

// Package coverage scores a binary prediction against a binary ground truth.
//
// Two objectives are provided:
//
//   - Score: TP − w_fp·FP − w_fn·FN (dual-weight form, used by the greedy
//     selector and the refiners);
//   - Cover: TP − w·FP (single-weight form, used by the weight-schedule
//     driven lazy-update engine, where TP − w·FP > 0 also bounds the
//     true-positive ratio of an accepted pattern from below).
//
// Each objective is available globally (one scalar), per column (Columns) or
// per row (Rows). Evaluate reports the usual confusion metrics and ErrorRate
// the unweighted reconstruction error.
//
// All functions are pure. Operands of different shapes yield
// binmat.ErrShapeMismatch; nothing is broadcast.
package coverage
