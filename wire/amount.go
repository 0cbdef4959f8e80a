// Copyright (c) 2013, 2014 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"errors"
	"math"
	"strconv"
)

// AmountUnit describes a method of converting an Amount to something other
// than the base unit. The value of the AmountUnit is the exponent of the
// decadic multiple to convert from an amount in EVR to an amount counted in
// that unit.
type AmountUnit int

// Units used when describing an amount of the chain's native coin, named
// after the Satori base unit shared by the Evrmore/Ravencoin lineage.
const (
	AmountMegaEVR  AmountUnit = 6
	AmountKiloEVR  AmountUnit = 3
	AmountEVR      AmountUnit = 0
	AmountMilliEVR AmountUnit = -3
	AmountMicroEVR AmountUnit = -6
	AmountSatori   AmountUnit = -8

	// SatoriPerCoin is the number of base units in one whole coin.
	SatoriPerCoin = 1e8
)

// String returns the unit as a string, using the SI prefix for recognized
// units or "Satori" for the base unit.
func (u AmountUnit) String() string {
	switch u {
	case AmountMegaEVR:
		return "MEVR"
	case AmountKiloEVR:
		return "kEVR"
	case AmountEVR:
		return "EVR"
	case AmountMilliEVR:
		return "mEVR"
	case AmountMicroEVR:
		return "μEVR"
	case AmountSatori:
		return "Satori"
	default:
		return "1e" + strconv.FormatInt(int64(u), 10) + " EVR"
	}
}

// Amount represents a quantity of the chain's native coin as a signed count
// of the base unit, the denomination TxOut.Value is expressed in.
type Amount int64

func round(f float64) Amount {
	if f < 0 {
		return Amount(f - 0.5)
	}
	return Amount(f + 0.5)
}

// NewAmount creates an Amount from a floating point value denominated in
// whole coins, rounding to the nearest base unit. It errors if f is NaN or
// +-Infinity.
func NewAmount(f float64) (Amount, error) {
	switch {
	case math.IsNaN(f):
		fallthrough
	case math.IsInf(f, 1):
		fallthrough
	case math.IsInf(f, -1):
		return 0, errors.New("invalid amount")
	}
	return round(f * SatoriPerCoin), nil
}

// ToUnit converts a to the given unit.
func (a Amount) ToUnit(u AmountUnit) float64 {
	return float64(a) / math.Pow10(int(u+8))
}

// ToCoin is equivalent to calling ToUnit with AmountEVR.
func (a Amount) ToCoin() float64 {
	return a.ToUnit(AmountEVR)
}

// Format formats a as a string in the given unit with an SI suffix.
func (a Amount) Format(u AmountUnit) string {
	return strconv.FormatFloat(a.ToUnit(u), 'f', -int(u+8), 64) + " " + u.String()
}

// String is equivalent to calling Format with AmountEVR.
func (a Amount) String() string {
	return a.Format(AmountEVR)
}

// MulF64 multiplies a by a floating point value, useful for e.g. computing a
// fee from a percentage.
func (a Amount) MulF64(f float64) Amount {
	return round(float64(a) * f)
}
