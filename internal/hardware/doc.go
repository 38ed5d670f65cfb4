// Package hardware describes analog extension modules and binds each of
// their channels to an address of the analog zone.
//
// A module in extension position i occupies slot i+1; its channels render as
// %IW<slot>.<channel>. Every channel of a module is declared, unused ones as
// NotUsed, so the address space of a slot is always dense.
package hardware
