package export

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"uepex/internal/logging"
	"uepex/internal/metrics"
	"uepex/internal/student"
)

// Content types of the generated files.
const (
	ContentTypeCSV  = "text/csv; charset=utf-8"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

const fileStamp = "20060102_150405"

// File is a rendered export ready to be served as an attachment.
type File struct {
	Name        string
	ContentType string
	Data        []byte
	Count       int
}

// Lister returns records already sorted for export.
type Lister interface {
	List(ctx context.Context) ([]student.Record, error)
}

// Service renders exports of the whole record set.
type Service struct {
	lister    Lister
	snapshots Snapshots
	now       func() time.Time
	metrics   *metrics.Metrics
}

// NewService builds an export service. snapshots may be nil to always render;
// now defaults to time.Now.
func NewService(lister Lister, snapshots Snapshots, now func() time.Time, m *metrics.Metrics) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{lister: lister, snapshots: snapshots, now: now, metrics: m}
}

// CSV returns the CSV export, served from the snapshot cache when it matches
// the current record set.
func (s *Service) CSV(ctx context.Context) (File, error) {
	logger := logging.FromContext(ctx).With("format", "csv")
	name := "estudiantes_uepex_" + s.now().UTC().Format(fileStamp) + ".csv"

	if s.snapshots != nil {
		snap, ok, err := s.currentSnapshot(ctx)
		if err != nil {
			logger.Warn("csv snapshot unavailable", "error", err)
		} else if ok {
			s.metrics.RecordExport("csv", "snapshot")
			logger.Info("csv export served from snapshot", "count", snap.Count, "version", snap.Version)
			return File{Name: name, ContentType: ContentTypeCSV, Data: snap.Data, Count: snap.Count}, nil
		}
	}

	snap, err := s.RebuildCSV(ctx)
	if err != nil {
		return File{}, err
	}
	s.metrics.RecordExport("csv", "render")
	logger.Info("csv export generated", "count", snap.Count, "bytes", len(snap.Data))
	return File{Name: name, ContentType: ContentTypeCSV, Data: snap.Data, Count: snap.Count}, nil
}

// RebuildCSV renders the CSV and stores it as the snapshot for the version
// current before the records were read.
func (s *Service) RebuildCSV(ctx context.Context) (Snapshot, error) {
	var version int64
	if s.snapshots != nil {
		v, err := s.snapshots.Version(ctx)
		if err != nil {
			logging.FromContext(ctx).Warn("csv snapshot version unavailable", "error", err)
		}
		version = v
	}

	records, err := s.lister.List(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("list students: %w", err)
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return Snapshot{}, fmt.Errorf("render csv: %w", err)
	}
	snap := Snapshot{Version: version, Count: len(records), Data: buf.Bytes()}

	if s.snapshots != nil {
		if err := s.snapshots.Put(ctx, snap); err != nil {
			logging.FromContext(ctx).Warn("csv snapshot not stored", "error", err)
		}
	}
	return snap, nil
}

// XLSX renders the spreadsheet export. It is never cached since the footer
// carries the generation time.
func (s *Service) XLSX(ctx context.Context) (File, error) {
	now := s.now()
	records, err := s.lister.List(ctx)
	if err != nil {
		return File{}, fmt.Errorf("list students: %w", err)
	}
	var buf bytes.Buffer
	if err := WriteXLSX(&buf, records, now); err != nil {
		return File{}, fmt.Errorf("render xlsx: %w", err)
	}
	s.metrics.RecordExport("xlsx", "render")
	logging.FromContext(ctx).Info("xlsx export generated", "count", len(records), "bytes", buf.Len())
	return File{
		Name:        "estudiantes_uepex_" + now.UTC().Format(fileStamp) + ".xlsx",
		ContentType: ContentTypeXLSX,
		Data:        buf.Bytes(),
		Count:       len(records),
	}, nil
}

func (s *Service) currentSnapshot(ctx context.Context) (Snapshot, bool, error) {
	version, err := s.snapshots.Version(ctx)
	if err != nil {
		return Snapshot{}, false, err
	}
	snap, ok, err := s.snapshots.Get(ctx)
	if err != nil || !ok {
		return Snapshot{}, false, err
	}
	if snap.Version != version {
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}
