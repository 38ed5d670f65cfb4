// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

// Package config defines the format-agnostic process specification model,
// along with the Loader and Converter interfaces that concrete formats
// implement.
//
// A Model is the single input of the pattern compiler. Loaders for HCL and
// YAML live in separate packages. Rung arguments stay as unevaluated
// hcl.Expression values until addresses have been allocated, so they can
// refer to allocated symbols.
package config
