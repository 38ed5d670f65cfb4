// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package il derives the instruction-list form of a rung from its ladder
// graph and replays instruction lists on a boolean accumulator machine.
//
// The linearizer never inspects grid cells itself. It walks the
// series-parallel networks recorded on the finalized graph, so a rung has
// exactly one source of truth for its topology.
package il
