package domain

import (
	"net/url"

	"github.com/shopspring/decimal"
)

const (
	paymentURLLabel   = "SUBRA Purchase"
	paymentURLMessage = "Autonomous agent purchase"
)

// PaymentLink holds the inputs of a Solana Pay transfer request.
type PaymentLink struct {
	Recipient string
	Amount    decimal.Decimal
	Asset     Asset
	Reference string
	Memo      string
}

// URL renders the link as a solana: URI. The spl-token parameter is only set
// for token assets.
func (p PaymentLink) URL() string {
	q := url.Values{}
	q.Set("amount", p.Amount.String())
	if t, ok := p.Asset.(TokenAsset); ok {
		q.Set("spl-token", t.Mint.String())
	}
	q.Set("label", paymentURLLabel)
	q.Set("message", paymentURLMessage)
	if p.Reference != "" {
		q.Set("reference", p.Reference)
	}
	if p.Memo != "" {
		q.Set("memo", p.Memo)
	}
	return "solana:" + p.Recipient + "?" + q.Encode()
}
