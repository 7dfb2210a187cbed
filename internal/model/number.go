package model

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Number is a decimal request field that accepts a JSON number or a numeric
// string.
//
// null and "" leave it unset. Anything else that does not parse is kept as
// Invalid instead of failing the decode, so validation can report it as a
// field error.
type Number struct {
	Value   decimal.Decimal
	Set     bool
	Invalid bool
}

// NewNumber returns a Number holding d.
func NewNumber(d decimal.Decimal) Number {
	return Number{Value: d, Set: true}
}

func (n *Number) UnmarshalJSON(data []byte) error {
	*n = Number{}

	raw := bytes.TrimSpace(data)
	if bytes.Equal(raw, []byte("null")) {
		return nil
	}

	text := string(raw)
	if len(raw) > 0 && raw[0] == '"' {
		if err := json.Unmarshal(raw, &text); err != nil {
			n.Set, n.Invalid = true, true
			return nil
		}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	value, err := decimal.NewFromString(text)
	if err != nil {
		n.Set, n.Invalid = true, true
		return nil
	}
	n.Value, n.Set = value, true
	return nil
}
