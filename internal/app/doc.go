// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package app contains the core application logic. It wires loaders, the
// pattern compiler and the document synthesizer into single and batch builds,
// decoupled from any specific entrypoint like a CLI.
package app
