package templates

import (
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/ar-copilot/ar-copilot/internal/chase"
)

const dateLayout = "2006-01-02"

// Symbols for the currencies the import path and templates commonly see;
// anything else renders as "CODE 1,234.56".
var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"CAD": "CA$",
	"AUD": "A$",
	"JPY": "¥",
}

// Currencies whose display form carries no fraction digits.
var zeroDecimalCurrencies = map[string]bool{
	"JPY": true,
	"KRW": true,
	"VND": true,
}

var amountPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatAmount renders integer minor units as a display amount, grouped per
// locale, e.g. 150000 USD -> "$1,500.00". Zero-decimal currencies drop the
// fraction, e.g. 500000 JPY -> "¥5,000".
func FormatAmount(cents int64, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	if code == "" {
		code = "USD"
	}
	sym, ok := currencySymbols[code]
	if !ok {
		sym = code + " "
	}
	if zeroDecimalCurrencies[code] {
		return amountPrinter.Sprintf("%s%.0f", sym, float64(cents)/100)
	}
	return amountPrinter.Sprintf("%s%.2f", sym, float64(cents)/100)
}

// Vars builds the canonical variable map for a chase item. Every value is a
// display-ready string; optional fields become "" so unknown-key blanking
// and unset-field blanking behave identically.
func Vars(item chase.Item) map[string]string {
	clientName := strings.TrimSpace(deref(item.ClientName))
	contactName := strings.TrimSpace(deref(item.ContactName))
	if contactName == "" {
		contactName = clientName
	}
	if contactName == "" {
		contactName = "there"
	}

	return map[string]string{
		"client.name":             clientName,
		"client.contact_name":     contactName,
		"invoice.number":          strings.TrimSpace(deref(item.InvoiceNumber)),
		"invoice.amount":          FormatAmount(item.AmountCents, item.Currency),
		"invoice.due_date":        item.DueDate,
		"invoice.days_overdue":    strconv.Itoa(item.DaysOverdue),
		"invoice.due_date_plus_3": addDays(item.DueDate, 3),
		"payment.link":            strings.TrimSpace(deref(item.PaymentLink)),
		"signature.name":          strings.TrimSpace(deref(item.SignatureName)),
		"signature.company":       strings.TrimSpace(deref(item.SignatureCompany)),
		"signature.phone":         strings.TrimSpace(deref(item.SignaturePhone)),
		"signature.email":         strings.TrimSpace(deref(item.SignatureEmail)),
	}
}

func addDays(ymd string, days int) string {
	d, err := time.Parse(dateLayout, ymd)
	if err != nil {
		return ymd
	}
	return d.AddDate(0, 0, days).Format(dateLayout)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
