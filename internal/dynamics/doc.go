// Package dynamics implements the recursive rigid-body dynamics algorithms over
// a multibody.Model: inverse dynamics (RNEA), nonlinear effects, generalized
// gravity, the Coriolis matrix, the joint-space mass matrix and the system
// energies.
//
// Every entry point takes the model, a workspace created by multibody.NewData
// for that model, and input vectors. Results are written into the workspace
// and returned as views of it, so they are overwritten by the next call that
// produces the same output. A workspace must not be shared between goroutines.
//
// Entry points do not allocate. Malformed inputs are programming errors and
// panic with an error wrapping one of the multibody sentinels, unless the
// package is built with the rbdyn_nocheck tag.
package dynamics
