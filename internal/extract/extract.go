// Package extract recovers structured invoice fields from noisy OCR
// transcripts. All extraction functions are pure and total: malformed,
// empty, or adversarial text never produces an error, only absent fields.
package extract

import "strings"

// Fields is the result record for one transcript. Absence of any field is a
// valid terminal state; fields never influence each other's extraction.
type Fields struct {
	GSTIN       string   `json:"gstin,omitempty"`
	InvoiceDate string   `json:"invoice_date,omitempty"`
	TotalAmount *float64 `json:"total_amount,omitempty"`
	RawText     string   `json:"raw_text"`
}

// TraceFunc receives structured events from an Extractor. It sits outside
// the pure extraction functions; passing nil disables tracing.
type TraceFunc func(stage string, attrs ...any)

// Extractor runs the three field extractors over a transcript. The zero
// value is ready to use.
type Extractor struct {
	trace TraceFunc
}

type Option func(*Extractor)

// WithTrace attaches a trace hook for per-stage events.
func WithTrace(t TraceFunc) Option {
	return func(e *Extractor) { e.trace = t }
}

func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract runs the GSTIN, date, and amount extractors independently over the
// same transcript and assembles the result record. No field's success or
// failure gates another's.
func (e *Extractor) Extract(text string) Fields {
	f := Fields{RawText: text}

	if gstin, ok := ExtractGSTIN(text); ok {
		f.GSTIN = gstin
		e.emit("gstin.found", "value", gstin)
	} else {
		e.emit("gstin.absent")
	}

	if date, ok := ExtractDate(text); ok {
		f.InvoiceDate = date
		e.emit("date.found", "value", date)
	} else {
		e.emit("date.absent")
	}

	if amount, ok := ExtractAmount(text); ok {
		f.TotalAmount = &amount
		e.emit("amount.found", "value", amount)
	} else {
		e.emit("amount.absent")
	}

	return f
}

func (e *Extractor) emit(stage string, attrs ...any) {
	if e.trace != nil {
		e.trace(stage, attrs...)
	}
}

// Extract is the package-level convenience for callers without tracing.
func Extract(text string) Fields {
	return (&Extractor{}).Extract(text)
}

// Normalize produces the canonical uppercase transcript: uppercased with
// runs of whitespace collapsed to single spaces.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToUpper(text)), " ")
}
