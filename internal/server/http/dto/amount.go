package dto

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/freightdesk/internal/invoice"
)

// Amount is a numeric form value as typed by the user. It accepts a JSON
// number, string or null. Anything that does not parse counts as zero.
type Amount string

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*a = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = Amount(s)
	default:
		*a = Amount(data)
	}
	return nil
}

// Decimal parses the value, yielding zero when it is not a number.
func (a Amount) Decimal() decimal.Decimal {
	return invoice.ParseAmount(string(a))
}
