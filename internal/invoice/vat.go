package invoice

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type vatKind uint8

const (
	vatNumeric vatKind = iota
	vatExempt
)

// VAT is either a numeric percentage rate or a non-numeric code such as
// an exemption marker ("NP", "ZW", "OO"). On the wire it is a JSON number
// or a JSON string respectively. The zero value is a 0% rate.
type VAT struct {
	kind vatKind
	rate float64
	code string
}

// NumericVAT returns a percentage rate, e.g. NumericVAT(23) for 23%.
func NumericVAT(rate float64) VAT {
	return VAT{kind: vatNumeric, rate: rate}
}

// ExemptVAT returns a non-numeric VAT code. Items with such a code carry
// no VAT amount.
func ExemptVAT(code string) VAT {
	return VAT{kind: vatExempt, code: code}
}

func (v VAT) IsNumeric() bool { return v.kind == vatNumeric }

// Rate is the percentage rate, or 0 for a code.
func (v VAT) Rate() float64 {
	if v.kind != vatNumeric {
		return 0
	}
	return v.rate
}

// Code is the non-numeric code, or "" for a rate.
func (v VAT) Code() string {
	if v.kind != vatExempt {
		return ""
	}
	return v.code
}

// VAT satisfies [fmt.Stringer]
func (v VAT) String() string {
	if v.kind == vatExempt {
		return v.code
	}
	return strconv.FormatFloat(v.rate, 'f', -1, 64)
}

// VAT satisfies [json.Marshaler]
func (v VAT) MarshalJSON() ([]byte, error) {
	if v.kind == vatExempt {
		return json.Marshal(v.code)
	}
	return json.Marshal(v.rate)
}

// VAT satisfies [json.Unmarshaler]
func (v *VAT) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		return nil
	case len(data) > 0 && data[0] == '"':
		var code string
		if err := json.Unmarshal(data, &code); err != nil {
			return err
		}
		*v = ExemptVAT(code)
		return nil
	default:
		var rate float64
		if err := json.Unmarshal(data, &rate); err != nil {
			return fmt.Errorf("vat must be a number or a string: %w", err)
		}
		*v = NumericVAT(rate)
		return nil
	}
}
