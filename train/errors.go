package train

import "errors"

var (
	// ErrConfiguration reports invalid construction or registration input.
	// It is fatal and surfaces synchronously at setup time.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrDispatch reports a hook callback failure during lifecycle dispatch.
	// The failure aborts the current run.
	ErrDispatch = errors.New("hook dispatch failed")
)
