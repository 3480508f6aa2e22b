package document

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go-hris-workflow/internal/request"
	"go-hris-workflow/internal/workflow"

	"github.com/stretchr/testify/assert"
)

func TestRenderer_RenderApprovedDocument(t *testing.T) {
	dir := t.TempDir()
	r := NewRenderer(dir)
	r.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	amount := int64(2500000)
	snap := request.Snapshot{
		ID:          "7f1c",
		Number:      "SEV-000007",
		Type:        workflow.TypeSeverance,
		State:       workflow.StateApproved,
		RequesterID: "emp-1",
		ReviewerID:  "mgr-hr",
		Amount:      &amount,
		Reason:      "Compra de vivienda (cuota inicial)",
	}

	ref, err := r.RenderApprovedDocument(context.Background(), snap)
	assert.NoError(t, err)
	assert.Equal(t, "SEVERANCE/7f1c.pdf", ref)

	data, err := os.ReadFile(filepath.Join(dir, "SEVERANCE", "7f1c.pdf"))
	assert.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-1.4")))
	assert.True(t, bytes.HasSuffix(data, []byte("%%EOF")))
	assert.Contains(t, string(data), `Solicitud: SEV-000007 \(7f1c\)`)
	assert.Contains(t, string(data), `Valor: $2.500.000`)
	assert.Contains(t, string(data), `\(cuota inicial\)`)
	assert.Contains(t, string(data), `cesant\355as`)

	leftovers, err := filepath.Glob(filepath.Join(dir, "SEVERANCE", ".render-*"))
	assert.NoError(t, err)
	assert.Empty(t, leftovers)
}

func TestRenderer_RejectsUnapproved(t *testing.T) {
	r := NewRenderer(t.TempDir())
	_, err := r.RenderApprovedDocument(context.Background(), request.Snapshot{
		ID:    "1",
		Type:  workflow.TypeVacation,
		State: workflow.StateAdminApproved,
	})
	assert.ErrorIs(t, err, ErrNotApproved)
}

func TestPDFEscape(t *testing.T) {
	assert.Equal(t, `a\\b \(c\)`, pdfEscape(`a\b (c)`))
	assert.Equal(t, `Jos\351`, pdfEscape("José"))
	assert.Equal(t, `?`, pdfEscape("€"))
}
