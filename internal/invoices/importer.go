package invoices

import (
	"context"
	"encoding/csv"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ar-copilot/ar-copilot/internal/shared"
)

// ClientDirectory resolves or creates clients by display name during import.
type ClientDirectory interface {
	EnsureClient(ctx context.Context, ownerID, name string, email *string) (string, error)
}

// ImportResult summarizes one CSV import.
type ImportResult struct {
	Created int `json:"created"`
	Errors  int `json:"errors"`
}

// Importer turns CSV rows into invoices, auto-creating clients by name.
type Importer struct {
	invoices *Service
	clients  ClientDirectory
	now      func() time.Time
}

// NewImporter constructs an Importer.
func NewImporter(invoices *Service, clients ClientDirectory) *Importer {
	return &Importer{invoices: invoices, clients: clients, now: time.Now}
}

// ImportCSV reads a headered CSV and creates one invoice per usable row.
// Header names are normalized and matched against the accepted aliases.
// Rows that carry neither a client, an amount, nor a due date are skipped
// silently; rows that fail to persist count as errors.
func (im *Importer) ImportCSV(ctx context.Context, scope shared.Scope, r io.Reader) (ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return ImportResult{}, err
	}
	keys := make([]string, len(header))
	for i, h := range header {
		keys[i] = normalizeHeader(h)
	}

	var result ImportResult
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors++
			continue
		}

		row := map[string]string{}
		for i, key := range keys {
			if i < len(record) {
				row[key] = strings.TrimSpace(record[i])
			}
		}
		if pick(row, "client", "client_name", "company") == "" &&
			pick(row, "amount", "amount_cents") == "" &&
			pick(row, "due_date", "due") == "" {
			continue
		}

		if im.importRow(ctx, scope, row) {
			result.Created++
		} else {
			result.Errors++
		}
	}
	return result, nil
}

func (im *Importer) importRow(ctx context.Context, scope shared.Scope, row map[string]string) bool {
	in := CreateInput{
		AmountCents: parseAmount(row),
	}

	if name := pick(row, "client", "client_name", "company"); name != "" {
		var email *string
		if e := pick(row, "email", "contact_email"); e != "" {
			email = &e
		}
		clientID, err := im.clients.EnsureClient(ctx, scope.OwnerID, name, email)
		if err != nil {
			return false
		}
		in.ClientID = &clientID
	}

	if number := pick(row, "invoice_number", "invoice", "number"); number != "" {
		in.InvoiceNumber = &number
	}
	if desc := pick(row, "description", "desc"); desc != "" {
		in.Description = &desc
	}
	if issued := pick(row, "issue_date", "issued"); issued != "" {
		if _, err := time.Parse(dateLayout, issued); err != nil {
			return false
		}
		in.IssueDate = &issued
	}

	in.DueDate = pick(row, "due_date", "due")
	if in.DueDate == "" {
		in.DueDate = im.now().UTC().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, in.DueDate); err != nil {
		return false
	}

	_, err := im.invoices.Create(ctx, scope, in)
	return err == nil
}

// normalizeHeader lowercases a header cell and collapses anything outside
// [a-z0-9_] to underscores, so "Invoice Number" matches invoice_number.
func normalizeHeader(h string) string {
	h = strings.ToLower(strings.TrimSpace(h))
	return strings.Map(func(r rune) rune {
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_' {
			return r
		}
		return '_'
	}, h)
}

func pick(row map[string]string, keys ...string) string {
	for _, key := range keys {
		if v := row[key]; v != "" {
			return v
		}
	}
	return ""
}

// parseAmount reads amount_cents as integer minor units when present,
// otherwise amount as dollars. Currency symbols and grouping commas are
// stripped. Unparseable amounts fall back to zero rather than failing
// the row.
func parseAmount(row map[string]string) int64 {
	cleaner := strings.NewReplacer("$", "", ",", "")
	if raw := row["amount_cents"]; raw != "" {
		cents, err := strconv.ParseInt(cleaner.Replace(raw), 10, 64)
		if err != nil || cents < 0 {
			return 0
		}
		return cents
	}
	raw := cleaner.Replace(row["amount"])
	if raw == "" {
		return 0
	}
	dollars, err := strconv.ParseFloat(raw, 64)
	if err != nil || dollars < 0 {
		return 0
	}
	return int64(math.Round(dollars * 100))
}
