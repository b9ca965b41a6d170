package report

import (
	"database/sql"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/marcboeker/go-duckdb"
	"github.com/shopspring/decimal"
)

const nullText = "NULL"

// NullText is a nullable text column that prints as NULL when absent.
type NullText struct {
	sql.NullString
}

// String returns the column value, or NULL.
func (n NullText) String() string {
	if !n.Valid {
		return nullText
	}
	return n.NullString.String
}

// MarshalJSON encodes the value as a JSON string or null.
func (n NullText) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(n.NullString.String)
}

// Text returns a valid NullText.
func Text(s string) NullText {
	return NullText{sql.NullString{String: s, Valid: true}}
}

// Numeric is a nullable numeric column. Float records that the driver
// returned a binary float rather than an exact decimal.
type Numeric struct {
	Decimal decimal.Decimal
	Float   bool
	Valid   bool

	f float64
}

// Scan implements sql.Scanner. It accepts floats, DuckDB decimals and
// everything decimal.Decimal scans (integers, numeric strings and bytes).
func (n *Numeric) Scan(src any) error {
	*n = Numeric{}
	switch v := src.(type) {
	case nil:
		return nil
	case float64:
		n.setFloat(v)
	case float32:
		n.setFloat(float64(v))
	case duckdb.Decimal:
		n.Decimal = fromDuckDB(v)
	case *duckdb.Decimal:
		if v == nil {
			return nil
		}
		n.Decimal = fromDuckDB(*v)
	default:
		var d decimal.NullDecimal
		if err := d.Scan(src); err != nil {
			return err
		}
		if !d.Valid {
			return nil
		}
		n.Decimal = d.Decimal
	}
	n.Valid = true
	return nil
}

func (n *Numeric) setFloat(f float64) {
	n.Float = true
	n.f = f
	if !math.IsNaN(f) && !math.IsInf(f, 0) {
		n.Decimal = decimal.NewFromFloat(f)
	}
}

func fromDuckDB(v duckdb.Decimal) decimal.Decimal {
	if v.Value == nil {
		return decimal.Zero
	}
	return decimal.NewFromBigInt(v.Value, -int32(v.Scale))
}

// String formats the value the way the text report prints it.
func (n Numeric) String() string {
	return formatNumber(n)
}

// MarshalJSON encodes the value as its printed string, or null.
func (n Numeric) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(formatNumber(n))
}

// formatNumber prints floats in shortest form with at least one decimal
// place (2.0 stays "2.0") and decimals with the scale the driver reported,
// so a NUMERIC(3,1) 4.0 stays "4.0".
func formatNumber(n Numeric) string {
	if !n.Valid {
		return nullText
	}
	if n.Float {
		s := strconv.FormatFloat(n.f, 'f', -1, 64)
		if math.IsNaN(n.f) || math.IsInf(n.f, 0) || strings.Contains(s, ".") {
			return s
		}
		return s + ".0"
	}
	if exp := n.Decimal.Exponent(); exp < 0 {
		return n.Decimal.StringFixed(-exp)
	}
	return n.Decimal.String()
}

// formatMoney prints n with exactly two decimal places.
func formatMoney(n Numeric) string {
	if !n.Valid {
		return nullText
	}
	return n.Decimal.StringFixed(2)
}

// Number returns a valid exact Numeric parsed from s. It panics on malformed
// input and is meant for literals.
func Number(s string) Numeric {
	return Numeric{Decimal: decimal.RequireFromString(s), Valid: true}
}

// Float returns a valid Numeric holding a driver float.
func Float(f float64) Numeric {
	var n Numeric
	n.setFloat(f)
	n.Valid = true
	return n
}
