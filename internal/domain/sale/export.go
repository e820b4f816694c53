package sale

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// csvHeader is the fixed export header; consumers depend on the exact order.
const csvHeader = "Date,Sale ID,Client Name,Client Email,Instrument,Amount,Status,Notes"

// DateFormatter renders a sale date for exports.
type DateFormatter func(time.Time) string

// CurrencyFormatter renders an amount for exports.
type CurrencyFormatter func(decimal.Decimal) string

// DefaultDateFormatter renders "Jan 2, 2006".
func DefaultDateFormatter(t time.Time) string {
	return t.Format("Jan 2, 2006")
}

// DefaultCurrencyFormatter renders a plain two-decimal amount.
func DefaultCurrencyFormatter(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// GenerateCSV renders the enriched sales as CSV. The output has exactly one
// header line plus one line per sale and no trailing newline. Refunds show as
// status Refunded with a positive magnitude in the Amount column.
func GenerateCSV(enriched []Enriched, dateFmt DateFormatter, currencyFmt CurrencyFormatter) string {
	lines := make([]string, 0, len(enriched)+1)
	lines = append(lines, csvHeader)

	for _, e := range enriched {
		status := "Paid"
		if e.SalePrice.IsNegative() {
			status = "Refunded"
		}

		clientName := ""
		clientEmail := ""
		if e.Client != nil {
			clientName = strings.TrimSpace(strings.TrimSpace(e.Client.FirstName) + " " + strings.TrimSpace(e.Client.LastName))
			clientEmail = e.Client.Email
		}

		instrumentLabel := ""
		if e.Instrument != nil {
			instrumentLabel = e.Instrument.Label()
		}

		notes := ""
		if e.Notes != nil {
			notes = *e.Notes
		}

		fields := []string{
			csvField(dateFmt(e.SaleDate)),
			csvField(e.ID),
			csvField(clientName),
			csvField(clientEmail),
			csvField(instrumentLabel),
			csvField(currencyFmt(e.SalePrice.Abs())),
			status,
			csvField(notes),
		}
		lines = append(lines, strings.Join(fields, ","))
	}

	return strings.Join(lines, "\n")
}

// csvField quotes a field containing commas or quotes, doubling embedded
// quotes so spreadsheet tools load the export cleanly.
func csvField(s string) string {
	if !strings.ContainsAny(s, ",\"\n") {
		return s
	}
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// Receipt is a mailto-ready subject and body, both percent-encoded.
type Receipt struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// ReceiptEmail builds the receipt email for a single sale. The client name
// falls back to the email address and then to "Customer"; the instrument
// line is omitted entirely when no instrument is attached.
func ReceiptEmail(e Enriched, dateFmt DateFormatter, currencyFmt CurrencyFormatter) Receipt {
	name := "Customer"
	if e.Client != nil {
		if n := e.Client.DisplayName(); n != "" {
			name = n
		}
	}

	subject := fmt.Sprintf("Receipt for your purchase on %s", dateFmt(e.SaleDate))

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", name)
	fmt.Fprintf(&b, "Date: %s\n", dateFmt(e.SaleDate))
	if e.Instrument != nil {
		fmt.Fprintf(&b, "Instrument: %s\n", e.Instrument.Label())
	}
	fmt.Fprintf(&b, "Amount: %s\n\n", currencyFmt(e.SalePrice.Abs()))
	b.WriteString("Thank you for your business.\n")

	return Receipt{
		Subject: mailtoEncode(subject),
		Body:    mailtoEncode(b.String()),
	}
}

// mailtoEncode percent-encodes for mailto links, where spaces must be %20
// rather than the form-encoding plus sign.
func mailtoEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
