package pricing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Unit is a unit of measurement a quantity can be entered in.
type Unit string

const (
	UnitKg     Unit = "kg"
	UnitGm     Unit = "gm"
	UnitLtr    Unit = "ltr"
	UnitMl     Unit = "ml"
	UnitPiece  Unit = "piece"
	UnitPacket Unit = "packet"
)

// BaseUnits is the closed set of units a product can be priced in.
var BaseUnits = []Unit{UnitKg, UnitLtr, UnitPiece, UnitPacket}

var thousand = decimal.NewFromInt(1000)

// divisors maps base unit -> display unit -> how many display units make one base unit.
var divisors = map[Unit]map[Unit]decimal.Decimal{
	UnitKg:     {UnitKg: decimal.NewFromInt(1), UnitGm: thousand},
	UnitLtr:    {UnitLtr: decimal.NewFromInt(1), UnitMl: thousand},
	UnitPiece:  {UnitPiece: decimal.NewFromInt(1)},
	UnitPacket: {UnitPacket: decimal.NewFromInt(1)},
}

// displayOrder keeps AllowedUnits deterministic, base unit first.
var displayOrder = map[Unit][]Unit{
	UnitKg:     {UnitKg, UnitGm},
	UnitLtr:    {UnitLtr, UnitMl},
	UnitPiece:  {UnitPiece},
	UnitPacket: {UnitPacket},
}

// ParseUnit normalizes a unit code. It does not check membership.
func ParseUnit(s string) Unit {
	return Unit(strings.ToLower(strings.TrimSpace(s)))
}

// IsBaseUnit reports whether u is one of the units a product can be priced in.
func IsBaseUnit(u Unit) bool {
	_, ok := divisors[u]
	return ok
}

// AllowedUnits returns the display units accepted for a product priced in base.
// Unknown base units have none.
func AllowedUnits(base Unit) []Unit {
	units := displayOrder[base]
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}

// IsAllowed reports whether display is a valid entry unit for base.
func IsAllowed(display, base Unit) bool {
	_, ok := divisors[base][display]
	return ok
}

func (u Unit) String() string {
	return string(u)
}
