// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

package ezhdl

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sideprojectslab/ezhdl/internal/hdl"
)

// Time is a simulation time expressed in ticks of the simulation resolution.
//
type Time uint64

// Unit returns the number of picoseconds in one unit. Supported units are
// "ps", "ns", "us", "ms" and "s".
//
func Unit(unit string) (uint64, error) {
	switch unit {
	case "ps":
		return 1, nil
	case "ns":
		return 1e3, nil
	case "us":
		return 1e6, nil
	case "ms":
		return 1e9, nil
	case "s":
		return 1e12, nil
	}
	return 0, errors.Wrapf(ErrUnsupportedTimeUnit, "%q", unit)
}

// unitTicks returns the number of resolution ticks in one unit.
//
func unitTicks(unit string, resolution uint64) (float64, error) {
	m, err := Unit(unit)
	if err != nil {
		return 0, err
	}
	return float64(m) / float64(resolution), nil
}

// ParseTime parses a time literal like "10ns", "2.5 us" or "100" into ticks of
// the given resolution unit. A literal without a unit is expressed in
// resolution ticks.
//
func ParseTime(s string, resolution string) (Time, error) {
	res, err := Unit(resolution)
	if err != nil {
		return 0, err
	}
	v, unit, err := hdl.ParseTime(s)
	if err != nil {
		return 0, err
	}
	mult := 1.0
	if unit != "" {
		if mult, err = unitTicks(unit, res); err != nil {
			return 0, err
		}
	}
	t := math.Round(v * mult)
	if t < 0 || t >= float64(math.MaxUint64) {
		return 0, errors.Errorf("time %s out of range", s)
	}
	return Time(t), nil
}

// Format returns t formatted in the given resolution unit, e.g. "1500ps".
//
func (t Time) Format(resolution string) string {
	return strconv.FormatUint(uint64(t), 10) + resolution
}
