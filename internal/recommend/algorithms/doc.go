// Ludolog - Board Game Session Tracking and Adaptive Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/ludolog

// Package algorithms implements the pure, storage-agnostic kernels of the
// relationship-learning engine.
//
//   - Ranked-list promotion ("halving jump"): reinforced candidates jump to
//     roughly half their prior rank without a full re-sort.
//   - Confidence adaptation: per-entity, per-relation reliability scalar.
//   - Weight adaptation: global per-factor scalar driven by predictive
//     accuracy.
//   - Prediction-window policy: relation kind -> top-N window size.
//   - Weighted voting scorer: turns a set of contextual voters into summed
//     candidate scores.
//
// Every function here is deterministic, takes plain values, and performs no
// I/O; the training pipeline and the suggestion engines sequence them
// against storage.
package algorithms
