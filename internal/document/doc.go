// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

/*
Package document renders a Program into a controller project document.

The base skeleton is parsed once into a node tree and never modified. Each
render clones the tree, swaps the content of every requested section element
(Rungs, MemoryBits, MemoryWords, MemoryFloats, Timers, Extensions) for freshly
rendered nodes, and serializes the result as UTF-8 with a byte-order mark and
CRLF line endings. A section the skeleton lacks is an error, never a silent
no-op.

The rendered bytes are validated before they are returned, and
WriteFileAtomic publishes them with a rename so that a failed build never
leaves a partial file behind.
*/
package document
