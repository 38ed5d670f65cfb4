// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package cli is responsible for parsing command-line arguments into an
// app.Config and for mapping build failures onto process exit codes.
package cli
