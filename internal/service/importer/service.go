package importer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/agrisolar/portal/internal/domain"
	"github.com/agrisolar/portal/internal/pkg/constants"
	"github.com/agrisolar/portal/internal/pkg/logger"
	"github.com/agrisolar/portal/internal/pkg/store"
	"github.com/xuri/excelize/v2"
)

// FileStore is the blob backend for uploaded workbooks.
type FileStore interface {
	Save(filename string, r io.Reader) (string, error)
	Open(key string) (io.ReadCloser, error)
	Exists(key string) bool
	Delete(key string) error
}

type Service struct {
	store   store.Store
	files   FileStore
	markers map[string]struct{}
}

// NewService builds the import service. markers is the configurable set of
// summary-row labels ("total", "grand total", ...) skipped during parsing.
func NewService(st store.Store, files FileStore, markers []string) *Service {
	set := make(map[string]struct{}, len(markers))
	for _, m := range markers {
		set[strings.ToLower(strings.TrimSpace(m))] = struct{}{}
	}

	return &Service{store: st, files: files, markers: set}
}

// Import validates the filename, stores the blob, creates the upload record
// and imports the period rows. Any failure after the record exists triggers a
// compensating delete of both the record and the blob, so no orphaned state
// survives a bad file.
func (s *Service) Import(ctx context.Context, r io.Reader, filename, uploadedBy string) (*domain.SolarUpload, int, error) {
	if !domain.ValidFilename(filename) {
		return nil, 0, fmt.Errorf("file name must follow this format: SolarPumpData_YYYY-YY.xlsx: %w", constants.ErrInvalidFormat)
	}

	yearLabel := domain.ExtractYearLabel(filename)

	exists, err := s.store.YearDataExists(ctx, yearLabel)
	if err != nil {
		return nil, 0, fmt.Errorf("check existing year data: %w", err)
	}
	if exists {
		return nil, 0, fmt.Errorf("data for %s already exists, delete that upload before importing again: %w",
			yearLabel, constants.ErrDuplicatePeriod)
	}

	key, err := s.files.Save(filename, r)
	if err != nil {
		return nil, 0, fmt.Errorf("store upload file: %w", err)
	}

	upload, err := s.store.CreateUpload(ctx, &domain.SolarUpload{
		FileKey:          key,
		OriginalFilename: filename,
		YearLabel:        yearLabel,
		UploadedBy:       uploadedBy,
	})
	if err != nil {
		if cleanupErr := s.files.Delete(key); cleanupErr != nil {
			logger.Errorf(ctx, "cleanup blob %s: %s", key, cleanupErr.Error())
		}
		return nil, 0, fmt.Errorf("create upload record: %w", err)
	}

	count, err := s.importYearData(ctx, upload)
	if err != nil {
		s.cleanup(ctx, upload)
		return nil, 0, err
	}

	logger.Infof(ctx, "imported %d rows for %s from %s", count, yearLabel, filename)
	return upload, count, nil
}

func (s *Service) importYearData(ctx context.Context, upload *domain.SolarUpload) (int, error) {
	if !s.files.Exists(upload.FileKey) {
		return 0, fmt.Errorf("upload %s: %w", upload.OriginalFilename, constants.ErrFileMissing)
	}

	f, err := s.files.Open(upload.FileKey)
	if err != nil {
		return 0, fmt.Errorf("open upload file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := parseWorkbook(f, upload.YearLabel, s.markers)
	if err != nil {
		return 0, fmt.Errorf("parse %s: %w", upload.OriginalFilename, err)
	}
	if len(rows) == 0 {
		return 0, fmt.Errorf("no district rows found to import in this file: %w", constants.ErrInvalidFormat)
	}

	count, err := s.store.ImportYearData(ctx, upload.YearLabel, rows)
	if err != nil {
		return 0, fmt.Errorf("import year data: %w", err)
	}

	return count, nil
}

// cleanup undoes a half-finished import: record first, then blob. Best-effort;
// failures are logged, not propagated over the original error.
func (s *Service) cleanup(ctx context.Context, upload *domain.SolarUpload) {
	if err := s.store.DeleteUpload(ctx, upload.ID); err != nil {
		logger.Errorf(ctx, "cleanup upload record %d: %s", upload.ID, err.Error())
		return
	}
	if err := s.files.Delete(upload.FileKey); err != nil {
		logger.Errorf(ctx, "cleanup blob %s: %s", upload.FileKey, err.Error())
	}
}

func (s *Service) List(ctx context.Context) ([]*domain.SolarUpload, error) {
	uploads, err := s.store.ListUploads(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListUploads: %w", err)
	}

	return uploads, nil
}

// Delete removes the upload with its period rows, then the stored blob. The
// blob goes only after the database transaction is confirmed, so a failed
// delete never leaves rows pointing at nothing.
func (s *Service) Delete(ctx context.Context, id int64) error {
	upload, err := s.store.GetUpload(ctx, id)
	if err != nil {
		return fmt.Errorf("store.GetUpload: %w", err)
	}

	if err = s.store.DeleteUpload(ctx, id); err != nil {
		return fmt.Errorf("store.DeleteUpload: %w", err)
	}

	if err = s.files.Delete(upload.FileKey); err != nil {
		logger.Errorf(ctx, "delete blob %s: %s", upload.FileKey, err.Error())
	}

	return nil
}

// Download re-serves the originally uploaded bytes.
func (s *Service) Download(ctx context.Context, id int64) (*domain.SolarUpload, io.ReadCloser, error) {
	upload, err := s.store.GetUpload(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("store.GetUpload: %w", err)
	}

	f, err := s.files.Open(upload.FileKey)
	if err != nil {
		return nil, nil, err
	}

	return upload, f, nil
}

// Template generates an empty import workbook with the expected headers.
func (s *Service) Template() ([]byte, error) {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	sheet := f.GetSheetName(0)
	headers := []string{"Distcode", "District", "Target", "Booking", "Installed", "Rejected"}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, fmt.Errorf("coordinates for header %s: %w", header, err)
		}
		if err = f.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("set header %s: %w", header, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write template: %w", err)
	}

	return buf.Bytes(), nil
}
