// Package codegen renders board profiles as source code.
//
// GenerateGo emits a Go file that rebuilds the profiles with limits.MustNew,
// so a profile kept in YAML can be compiled into a binary. GenerateHeader
// emits the C configuration header flashed with the board firmware, and
// ParseHeader reads such a header back into a profile.
package codegen
