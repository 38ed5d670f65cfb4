// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package address owns every addressable location of a generated controller
// program and the symbolic names bound to them.
//
// # Zones
//
// Memory is split into zones, each with its own index space:
//
//	bit     %M<i>          discrete memory bits
//	word    %MW<i>         integer words
//	float   %MF<i>         floating-point words
//	timer   %TM<i>         timer function blocks
//	analog  %IW<slot>.<i>  analog channels of extension modules
//
// Every zone has a retentive boundary: indexes below it keep their value across
// a controller restart. Retentiveness is a property of the Address, never an
// allocation error. A zone may also reserve a prefix of low indexes; implicit
// allocations never hand those out, so hand-placed low addresses are not reused
// by accident.
//
// # Registry
//
// A Registry is created per build and passed to every builder that needs an
// address. Mutations are validated immediately: conflicts on indexes, names or
// addresses are reported at the call that introduced them.
package address
