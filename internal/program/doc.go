// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package program assembles rungs from finalized ladder graphs and orders
// them, together with the timer table and analog extensions, into a Program.
//
// Assemble refuses to produce a rung whose instruction list does not behave
// like its graph. The check replays both forms over a battery of input
// vectors: every combination for rungs with up to six inputs, otherwise the
// corner vectors plus a deterministic pseudo-random sample.
package program
