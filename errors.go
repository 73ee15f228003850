// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ezhdl

import "github.com/pkg/errors"

// Errors returned by the simulation kernel. Returned errors wrap one of these
// with some context; use errors.Cause to test for a specific condition.
//
var (
	ErrTypeIncompatible    = errors.New("incompatible types")
	ErrMultipleDrivers     = errors.New("signal cannot have multiple drivers")
	ErrDirection           = errors.New("direction violation")
	ErrSliceDirection      = errors.New("slices must have downward direction")
	ErrSliceRange          = errors.New("slice out of range")
	ErrUnsupportedTimeUnit = errors.New("unsupported time unit")
	ErrNegativeDelay       = errors.New("negative delay")
	ErrCombinationalCycle  = errors.New("potential cyclical assignment detected")
	ErrConnectionLoop      = errors.New("connection loop")
	ErrUnknownSymbol       = errors.New("unknown enumeration symbol")
	ErrNoTop               = errors.New("no top level entity")
)
