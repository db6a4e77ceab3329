// Package assist implements the generative-text use cases of the
// dashboard: donor fraud verdicts, thank-you emails, emergency broadcast
// alerts and the admin chat assistant.
package assist

import (
	"errors"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// OrgName is the charity named in every prompt.
const OrgName = "Bairooha Foundation"

// signOff closes every generated email.
const signOff = "The " + OrgName + " Team"

// ErrInvalidInput is returned before any provider call when the caller's
// input is unusable.
var ErrInvalidInput = errors.New("invalid input")

var printer = message.NewPrinter(language.MustParse("en-IN"))

// FormatRupees renders an amount with the rupee sign and locale digit
// grouping, e.g. ₹5,000 or ₹250.50.
func FormatRupees(amount decimal.Decimal) string {
	if amount.Equal(amount.Truncate(0)) {
		return printer.Sprintf("₹%d", amount.IntPart())
	}
	return printer.Sprintf("₹%.2f", amount.InexactFloat64())
}
