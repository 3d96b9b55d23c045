package store

import (
	"context"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/agrisolar/portal/internal/domain"
	"github.com/agrisolar/portal/internal/pkg/store/xpgx"
)

var uploadColumns = []string{"id", "file_key", "original_filename", "year_label", "uploaded_by", "uploaded_at"}

func (s *store) CreateUpload(ctx context.Context, upload *domain.SolarUpload) (*domain.SolarUpload, error) {
	query := builder().Insert(tableUploads).
		Columns("file_key", "original_filename", "year_label", "uploaded_by").
		Values(upload.FileKey, upload.OriginalFilename, upload.YearLabel, upload.UploadedBy).
		Suffix("returning " + strings.Join(uploadColumns, ", "))

	created, err := xpgx.Get[domain.SolarUpload](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return created, nil
}

func (s *store) GetUpload(ctx context.Context, id int64) (*domain.SolarUpload, error) {
	query := builder().Select(uploadColumns...).
		From(tableUploads).
		Where(sq.Eq{"id": id})

	selected, err := xpgx.Get[domain.SolarUpload](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) ListUploads(ctx context.Context) ([]*domain.SolarUpload, error) {
	query := builder().Select(uploadColumns...).
		From(tableUploads).
		OrderBy("uploaded_at desc")

	selected, err := xpgx.Select[domain.SolarUpload](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) DeleteUpload(ctx context.Context, id int64) (err error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	upload, err := xpgx.Get[domain.SolarUpload](ctx, tx, builder().
		Select(uploadColumns...).
		From(tableUploads).
		Where(sq.Eq{"id": id}))
	if err != nil {
		err = wrapErr(err)
		return err
	}

	// Deleting an upload takes its whole period with it; districts stay.
	if _, err = xpgx.Exec(ctx, tx, builder().
		Delete(tableSolarYearData).
		Where(sq.Eq{"year_label": upload.YearLabel})); err != nil {
		err = wrapErr(err)
		return err
	}

	if _, err = xpgx.Exec(ctx, tx, builder().
		Delete(tableUploads).
		Where(sq.Eq{"id": id})); err != nil {
		err = wrapErr(err)
		return err
	}

	return tx.Commit(ctx)
}
