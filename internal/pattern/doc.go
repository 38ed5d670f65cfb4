// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package pattern compiles a process specification into a program.
//
// Compilation allocates every declared symbol, timer and analog channel,
// then expands each rung intent into a ladder graph. Rung intents name a
// pattern (output, latch, compare, assign, scale, timeout) or place their
// elements explicitly (ladder). Pattern arguments are evaluated only after
// allocation, against a context where sym.NAME is the address of NAME.
//
// Condition terms are written as:
//
//	NAME       normally open contact on bit NAME
//	!NAME      negated contact
//	[ expr ]   comparison block, expression text is passed through
package pattern
