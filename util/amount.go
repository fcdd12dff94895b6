// Copyright (c) 2013, 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
)

// Amount represents the base coin monetary unit (colloquially referred
// to as a `Satoshi'). A single Amount is equal to 1e-8 of a coin.
type Amount int64

// round converts a floating point number, which may or may not be representable
// as an integer, to the Amount integer type by rounding to the nearest integer.
// This is performed by adding or subtracting 0.5 depending on the sign, and
// relying on integer truncation to round the value to the nearest Amount.
func round(f float64) Amount {
	if f < 0 {
		return Amount(f - 0.5)
	}
	return Amount(f + 0.5)
}

// NewAmount creates an Amount from a floating point value representing
// some value in coins. NewAmount errors if f is NaN or +-Infinity, but
// does not check that the amount is within the total amount of coins
// producible as f may not refer to an amount at a single moment in time.
func NewAmount(f float64) (Amount, error) {
	// The amount is only considered invalid if it cannot be represented
	// as an integer type. This may happen if f is NaN or +-Infinity.
	switch {
	case math.IsNaN(f):
		fallthrough
	case math.IsInf(f, 1):
		fallthrough
	case math.IsInf(f, -1):
		return 0, errors.New("invalid coin amount")
	}

	return round(f * SatoshiPerCoin), nil
}

// ToCoin returns the amount as a floating point number of coins.
func (a Amount) ToCoin() float64 {
	return float64(a) / SatoshiPerCoin
}

// String returns the amount in coins with all eight decimal places.
func (a Amount) String() string {
	return strconv.FormatFloat(a.ToCoin(), 'f', 8, 64)
}
