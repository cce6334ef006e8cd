//go:build !rbdyn_nocheck

package dynamics

const checks = true
