// Package hcl provides the HCL implementation of the specification loading
// and argument conversion interfaces defined in the `config` package.
// It is responsible for file parsing, HCL-to-model translation, and
// CTY-to-Go data binding of rung arguments.
package hcl
