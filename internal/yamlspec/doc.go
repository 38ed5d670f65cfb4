// Package yamlspec loads process specifications written in YAML into the
// format-agnostic config model.
//
// Rung and element arguments become HCL expressions: strings are parsed as
// HCL templates, so `${sym.LEVEL}` interpolation works the same way it does
// in HCL specifications, sequences become tuples and mappings objects.
// Argument binding is shared with the HCL loader.
package yamlspec
