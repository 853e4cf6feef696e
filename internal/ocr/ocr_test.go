package ocr

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kiranatools/gst-agent/constants"
)

// fakeRunner answers external commands from a canned table.
type fakeRunner struct {
	stdout map[string]string // keyed by binary name
	calls  []string
}

func (f *fakeRunner) Run(_ context.Context, name string, _ ...string) ([]byte, []byte, error) {
	f.calls = append(f.calls, name)
	if out, ok := f.stdout[name]; ok {
		return []byte(out), nil, nil
	}
	return nil, []byte("not found"), fmt.Errorf("exec %q: not stubbed", name)
}

func TestExtractTxtPassthrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "invoice.txt")
	require.NoError(t, os.WriteFile(path, []byte("gstin 27AABCB1234D1Z5 total 1500.00"), 0o644))

	e := NewExtractor(Config{}, nil)
	res, err := e.Extract(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "GSTIN 27AABCB1234D1Z5 TOTAL 1500.00", res.Text)
	assert.Equal(t, constants.TXT, res.SourceType)
	assert.Equal(t, "txt", res.Method)
	assert.Equal(t, 1, res.Pages)
}

func TestExtractPDFNativeText(t *testing.T) {
	// dense embedded text: pdftotext output is used and rasterization skipped
	dense := strings.Repeat("invoice line total 1,200.00\n", 20)
	fake := &fakeRunner{stdout: map[string]string{"pdftotext": dense}}

	e := NewExtractor(Config{MinTextCharsPerPage: 100}, nil)
	e.runner = fake

	res, err := e.Extract(context.Background(), "statement.pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf-text", res.Method)
	assert.Equal(t, constants.PDF, res.SourceType)
	assert.Equal(t, strings.ToUpper(dense), res.Text)
	assert.Equal(t, []string{"pdftotext"}, fake.calls)
}

func TestExtractPDFSparseTextFallsBackToOCR(t *testing.T) {
	// image-only PDF: the text layer is too thin, so rasterization is attempted
	fake := &fakeRunner{stdout: map[string]string{"pdftotext": "x"}}

	e := NewExtractor(Config{MinTextCharsPerPage: 100}, nil)
	e.runner = fake

	_, err := e.Extract(context.Background(), "scan.pdf")
	require.Error(t, err) // pdftoppm is not stubbed
	assert.Equal(t, []string{"pdftotext", "pdftoppm"}, fake.calls)
}

func TestExtractImageOCR(t *testing.T) {
	fake := &fakeRunner{stdout: map[string]string{"tesseract": "total 968 00"}}

	e := NewExtractor(Config{}, nil)
	e.runner = fake

	res, err := e.Extract(context.Background(), "photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "TOTAL 968 00", res.Text)
	assert.Equal(t, "image-ocr", res.Method)
	assert.Equal(t, "eng", res.Language)
}

func TestExtractUnsupportedExtension(t *testing.T) {
	e := NewExtractor(Config{}, nil)
	_, err := e.Extract(context.Background(), "notes.docx")
	assert.Error(t, err)
}

func TestHeuristicConfidence(t *testing.T) {
	rich := "GSTIN 27AABCB1234D1Z5 DATE 12-JAN-2025 TOTAL INR 1,500.00 " +
		strings.Repeat("line item ", 20)
	assert.Greater(t, heuristicConfidence(rich), heuristicConfidence("zzz"))
	assert.LessOrEqual(t, heuristicConfidence(rich), float32(1.0))
}
