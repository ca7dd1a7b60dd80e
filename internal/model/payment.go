package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// CurrencyUSD is the only currency payment intents are created in.
const CurrencyUSD = "usd"

// MaxMinorUnits is the largest amount, in cents, the gateway accepts for a
// single payment intent.
const MaxMinorUnits = 99999999

var (
	errPriceMissing   = errors.New("price is required")
	errPriceSyntax    = errors.New("price must be a plain decimal number")
	errAmountTooLarge = errors.New("amount exceeds the gateway maximum")
)

// Price is the textual form of a price as sent by the client. It accepts
// both JSON numbers and numeric strings.
type Price string

// UnmarshalJSON keeps numbers and strings as text; null leaves it empty.
func (p *Price) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*p = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*p = Price(strings.TrimSpace(s))
		return nil
	}
	*p = Price(b)
	return nil
}

// Float parses the price. Empty, non-numeric and non-finite values fail, as
// do Go-only literal forms such as "1_000" or "0x10".
func (p Price) Float() (float64, error) {
	if p == "" {
		return 0, errPriceMissing
	}
	if strings.IndexFunc(string(p), notDecimalRune) >= 0 {
		return 0, errPriceSyntax
	}
	v, err := strconv.ParseFloat(string(p), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.New("price must be finite")
	}
	return v, nil
}

func notDecimalRune(r rune) bool {
	return !strings.ContainsRune("0123456789.+-eE", r)
}

// MinorUnits converts a major-unit amount to the gateway's integer
// representation, rounding to the nearest cent. Amounts above MaxMinorUnits
// fail before the conversion can overflow.
func MinorUnits(amount float64) (int64, error) {
	cents := math.Round(amount * 100)
	if cents > MaxMinorUnits {
		return 0, errAmountTooLarge
	}
	return int64(cents), nil
}

// PaymentIntentRequest is the body of POST /create-payment-intent
type PaymentIntentRequest struct {
	Price Price `json:"price"`
}

// PaymentIntentResponse carries the client secret back to the browser
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// PaymentRecordResult holds the outcome of both writes of a payment
// recording. UpdatedPayment is nil when the second write failed.
type PaymentRecordResult struct {
	Result         *InsertResult `json:"result"`
	UpdatedPayment *UpdateResult `json:"updatedPayment,omitempty"`
}
