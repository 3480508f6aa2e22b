package document

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-hris-workflow/internal/request"
	"go-hris-workflow/internal/workflow"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var ErrNotApproved = errors.New("document: only approved requests are rendered")

var titles = map[workflow.RequestType]string{
	workflow.TypeVacation:    "Constancia de vacaciones aprobadas",
	workflow.TypeSeverance:   "Constancia de retiro de cesantías",
	workflow.TypeShiftChange: "Constancia de cambio de turno",
}

// Renderer writes approved request documents to <dir>/<TYPE>/<id>.pdf and
// returns the path relative to dir as the document ref.
type Renderer struct {
	dir     string
	printer *message.Printer
	now     func() time.Time
	logger  *zap.Logger
}

func NewRenderer(dir string, logger ...*zap.Logger) *Renderer {
	l := zap.L().Named("document.renderer")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.renderer")
	}
	return &Renderer{
		dir:     dir,
		printer: message.NewPrinter(language.Spanish),
		now:     func() time.Time { return time.Now().UTC() },
		logger:  l,
	}
}

func (r *Renderer) RenderApprovedDocument(ctx context.Context, snap request.Snapshot) (string, error) {
	if snap.State != workflow.StateApproved {
		return "", ErrNotApproved
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	ref := filepath.ToSlash(filepath.Join(string(snap.Type), snap.ID+".pdf"))
	target := filepath.Join(r.dir, filepath.FromSlash(ref))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create document dir: %w", err)
	}

	title, ok := titles[snap.Type]
	if !ok {
		title = "Constancia"
	}
	pdf := buildPDF(title, r.lines(snap))

	// Write then rename so readers never see a partial file.
	tmp, err := os.CreateTemp(filepath.Dir(target), ".render-*")
	if err != nil {
		return "", fmt.Errorf("create temp document: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(pdf); err != nil {
		tmp.Close()
		return "", fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close document: %w", err)
	}
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("store document: %w", err)
	}

	r.logger.Info("document rendered",
		zap.String("request_id", snap.ID),
		zap.String("type", string(snap.Type)),
		zap.String("document_ref", ref),
		zap.Int("bytes", len(pdf)),
	)
	return ref, nil
}

func (r *Renderer) lines(snap request.Snapshot) []string {
	lines := []string{"Solicitud: " + snap.ID}
	if snap.Number != "" {
		lines[0] = "Solicitud: " + snap.Number + " (" + snap.ID + ")"
	}
	lines = append(lines, "Empleado: "+snap.RequesterID)
	switch snap.Type {
	case workflow.TypeVacation:
		lines = append(lines,
			fmt.Sprintf("Periodo: %s a %s", snap.StartDate, snap.EndDate),
			r.printer.Sprintf("Días: %d", snap.TotalDays),
		)
	case workflow.TypeShiftChange:
		lines = append(lines, "Fecha del turno: "+snap.ShiftDate)
		if snap.ReplacementRef != "" {
			lines = append(lines, "Reemplazo: "+snap.ReplacementRef)
		}
	case workflow.TypeSeverance:
		if snap.Amount != nil {
			lines = append(lines, r.printer.Sprintf("Valor: $%d", *snap.Amount))
		}
	}
	if snap.Reason != "" {
		lines = append(lines, "Motivo: "+snap.Reason)
	}
	lines = append(lines,
		"Aprobado por: "+snap.ReviewerID,
		"Emitido: "+r.now().Format("2006-01-02 15:04 MST"),
	)
	return lines
}
