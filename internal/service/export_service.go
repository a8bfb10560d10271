package service

import (
	"context"
	"strconv"
	"strings"
)

// csvHeader is the fixed column order of the export.
const csvHeader = "ts,ip,ua,kind,session_id"

// ExportService renders the full event history as CSV text.
type ExportService interface {
	FormatCSV(ctx context.Context) (string, error)
}

type exportService struct {
	store EventStore
}

// NewExportService creates a new export service.
func NewExportService(store EventStore) ExportService {
	return &exportService{store: store}
}

// FormatCSV renders one line per event, oldest first, header line first.
// The user-agent is the only free-form field: it is always wrapped in double
// quotes with embedded quotes doubled. The remaining fields carry no
// delimiter or quote characters and are written raw, which keeps the output
// byte-compatible with existing consumers. encoding/csv is deliberately not
// used: it quotes conditionally and would change that layout.
func (s *exportService) FormatCSV(ctx context.Context) (string, error) {
	events, err := s.store.ListAll(ctx)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(csvHeader)
	for _, e := range events {
		b.WriteByte('\n')
		b.WriteString(strconv.FormatInt(e.Timestamp, 10))
		b.WriteByte(',')
		b.WriteString(e.ClientIP)
		b.WriteString(`,"`)
		b.WriteString(strings.ReplaceAll(e.UserAgent, `"`, `""`))
		b.WriteString(`",`)
		b.WriteString(e.Kind)
		b.WriteByte(',')
		b.WriteString(e.SessionID)
	}
	return b.String(), nil
}
