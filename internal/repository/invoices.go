package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/kiranatools/gst-agent/internal/common"
	"github.com/kiranatools/gst-agent/internal/gst"
)

// Invoice is one persisted processing result.
type Invoice struct {
	ID           uuid.UUID
	SourcePath   string
	GSTIN        string
	InvoiceDate  string
	TotalAmount  float64
	ValidGSTIN   bool
	State        string
	TaxableValue string
	CGST         string
	SGST         string
	IGST         string
	RawText      string
	CreatedAt    time.Time
}

// InvoiceRepository stores and lists processed invoices.
type InvoiceRepository interface {
	Insert(ctx context.Context, inv *Invoice) error
	List(ctx context.Context) ([]*Invoice, error)
}

type invoiceRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewInvoiceRepository(db *sql.DB, logger *slog.Logger) InvoiceRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &invoiceRepository{db: db, logger: logger}
}

// FromResult builds a persistable row from a processing result.
func FromResult(sourcePath string, res gst.Result) *Invoice {
	var total float64
	if res.Fields.TotalAmount != nil {
		total = *res.Fields.TotalAmount
	}
	return &Invoice{
		ID:           uuid.New(),
		SourcePath:   sourcePath,
		GSTIN:        res.Fields.GSTIN,
		InvoiceDate:  res.Fields.InvoiceDate,
		TotalAmount:  total,
		ValidGSTIN:   res.ValidGSTIN,
		State:        res.State,
		TaxableValue: res.Split.TaxableValue.StringFixed(2),
		CGST:         res.Split.CGST.StringFixed(2),
		SGST:         res.Split.SGST.StringFixed(2),
		IGST:         res.Split.IGST.StringFixed(2),
		RawText:      res.Fields.RawText,
		CreatedAt:    time.Now().UTC(),
	}
}

func (r *invoiceRepository) Insert(ctx context.Context, inv *Invoice) error {
	const q = `INSERT INTO invoices
		(id, source_path, gstin, invoice_date, total_amount, valid_gstin, state,
		 taxable_value, cgst, sgst, igst, raw_text, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q,
		inv.ID.String(), inv.SourcePath, inv.GSTIN, inv.InvoiceDate,
		inv.TotalAmount, boolToInt(inv.ValidGSTIN), inv.State,
		inv.TaxableValue, inv.CGST, inv.SGST, inv.IGST, inv.RawText,
		inv.CreatedAt,
	)
	if err != nil {
		r.logger.Error("insert invoice failed", "id", inv.ID, "error", err)
		return common.WrapError(err, "insert invoice")
	}
	r.logger.Debug("invoice stored", "id", inv.ID, "gstin", inv.GSTIN)
	return nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]*Invoice, error) {
	const q = `SELECT id, source_path, gstin, invoice_date, total_amount,
		valid_gstin, state, taxable_value, cgst, sgst, igst, raw_text, created_at
		FROM invoices ORDER BY created_at, id`

	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, common.WrapError(err, "list invoices")
	}
	defer rows.Close()

	var out []*Invoice
	for rows.Next() {
		var inv Invoice
		var id string
		var valid int
		if err := rows.Scan(&id, &inv.SourcePath, &inv.GSTIN, &inv.InvoiceDate,
			&inv.TotalAmount, &valid, &inv.State, &inv.TaxableValue,
			&inv.CGST, &inv.SGST, &inv.IGST, &inv.RawText, &inv.CreatedAt); err != nil {
			return nil, common.WrapError(err, "scan invoice")
		}
		if inv.ID, err = uuid.Parse(id); err != nil {
			return nil, common.WrapError(err, "parse invoice id")
		}
		inv.ValidGSTIN = valid != 0
		out = append(out, &inv)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
