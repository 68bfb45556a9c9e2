package ledger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/nasmila140/property-lease-management-system/internal/domain/ledger"
	"github.com/nasmila140/property-lease-management-system/internal/domain/shared"
	csvimport "github.com/nasmila140/property-lease-management-system/internal/infrastructure/import"
)

// maxImportErrors caps the row errors returned to the caller
const maxImportErrors = 100

var importRequiredColumns = []string{"tenant_id", "month", "year", "rent"}

// ImportResult reports the outcome of a bulk bill import. Rows that fail
// validation or collide on the (tenant, period) key are skipped; the rest
// are recorded.
type ImportResult struct {
	TotalRows   int                  `json:"total_rows"`
	Imported    int                  `json:"imported"`
	Failed      int                  `json:"failed"`
	Errors      []csvimport.RowError `json:"errors,omitempty"`
	TotalErrors int                  `json:"total_errors"`
	Truncated   bool                 `json:"truncated,omitempty"`
}

// BillImportService loads tenant bills from a CSV export. Expected columns:
// tenant_id, month, year, rent, and optionally water_charge, sewage_charge,
// status. Each accepted row goes through the same add path as the API, so
// duplicates and invariants are enforced identically.
type BillImportService struct {
	billing *BillingService
}

// NewBillImportService creates a new BillImportService
func NewBillImportService(billing *BillingService) *BillImportService {
	return &BillImportService{billing: billing}
}

// ImportBills parses and imports a CSV file of tenant bills
func (s *BillImportService) ImportBills(ctx context.Context, r io.Reader) (*ImportResult, error) {
	parser, err := csvimport.NewParser(r)
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unreadable CSV file: %v", err))
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unreadable CSV file: %v", err))
	}
	if missing := parser.MissingHeaders(importRequiredColumns); len(missing) > 0 {
		return nil, shared.NewDomainError("INVALID_INPUT",
			fmt.Sprintf("CSV file is missing required columns: %s", strings.Join(missing, ", ")))
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Malformed CSV file: %v", err))
	}

	result := &ImportResult{TotalRows: len(rows)}
	collected := csvimport.NewErrorCollection(maxImportErrors)
	seen := make(map[string]bool, len(rows))

	for _, row := range rows {
		req, ok := parseBillRow(row, collected)
		if !ok {
			continue
		}

		key := fmt.Sprintf("%s/%d-%d", req.TenantID, req.Month, req.Year)
		if seen[key] {
			collected.AddDuplicate(row.LineNumber, "tenant_id", key, false)
			continue
		}
		seen[key] = true

		if _, err := s.billing.AddBillingPeriod(ctx, req); err != nil {
			if errors.Is(err, ledger.ErrDuplicateBillingPeriod) {
				collected.AddDuplicate(row.LineNumber, "tenant_id", key, true)
				continue
			}
			var derr *shared.DomainError
			if errors.As(err, &derr) {
				collected.AddInvalid(row.LineNumber, "", derr.Message, "")
				continue
			}
			// Storage failure, not a row problem: abort the import
			return nil, err
		}
		result.Imported++
	}

	result.Failed = result.TotalRows - result.Imported
	result.Errors = collected.Errors()
	result.TotalErrors = collected.TotalCount()
	result.Truncated = collected.IsTruncated()
	return result, nil
}

// parseBillRow converts one CSV row into an add request, recording every
// field problem it finds. A row is only usable when all fields parse.
func parseBillRow(row *csvimport.Row, collected *csvimport.ErrorCollection) (AddBillingPeriodRequest, bool) {
	var req AddBillingPeriodRequest
	ok := true

	if raw := row.Get("tenant_id"); raw == "" {
		collected.AddRequired(row.LineNumber, "tenant_id")
		ok = false
	} else if id, err := uuid.Parse(raw); err != nil {
		collected.AddInvalid(row.LineNumber, "tenant_id", "tenant_id must be a UUID", raw)
		ok = false
	} else {
		req.TenantID = id
	}

	if month, fieldOK := parseInt(row, "month", collected); fieldOK {
		req.Month = month
	} else {
		ok = false
	}
	if year, fieldOK := parseInt(row, "year", collected); fieldOK {
		req.Year = year
	} else {
		ok = false
	}

	if rent, fieldOK := parseDecimal(row, "rent", true, collected); fieldOK {
		req.Rent = rent
	} else {
		ok = false
	}
	if water, fieldOK := parseDecimal(row, "water_charge", false, collected); fieldOK {
		req.WaterCharge = water
	} else {
		ok = false
	}
	if sewage, fieldOK := parseDecimal(row, "sewage_charge", false, collected); fieldOK {
		req.SewageCharge = sewage
	} else {
		ok = false
	}

	req.Status = row.Get("status")

	return req, ok
}

func parseInt(row *csvimport.Row, column string, collected *csvimport.ErrorCollection) (int, bool) {
	raw := row.Get(column)
	if raw == "" {
		collected.AddRequired(row.LineNumber, column)
		return 0, false
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		collected.AddInvalid(row.LineNumber, column, fmt.Sprintf("%s must be a whole number", column), raw)
		return 0, false
	}
	return value, true
}

func parseDecimal(row *csvimport.Row, column string, required bool, collected *csvimport.ErrorCollection) (decimal.Decimal, bool) {
	raw := row.Get(column)
	if raw == "" {
		if required {
			collected.AddRequired(row.LineNumber, column)
			return decimal.Zero, false
		}
		return decimal.Zero, true
	}
	value, err := decimal.NewFromString(raw)
	if err != nil {
		collected.AddInvalid(row.LineNumber, column, fmt.Sprintf("%s must be a decimal amount", column), raw)
		return decimal.Zero, false
	}
	return value, true
}
