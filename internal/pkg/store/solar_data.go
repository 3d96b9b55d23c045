package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/agrisolar/portal/internal/domain"
	"github.com/agrisolar/portal/internal/domain/dto"
	"github.com/agrisolar/portal/internal/pkg/logger"
	"github.com/agrisolar/portal/internal/pkg/store/xpgx"
)

func (s *store) ImportYearData(ctx context.Context, yearLabel domain.YearLabel, rows []dto.ParsedRow) (count int, err error) {
	if len(rows) == 0 {
		return 0, nil
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Resolve every district first, then insert the period rows in one bulk
	// statement. Both sides share the transaction, so a failed insert also
	// rolls the district upserts back.
	query := builder().Insert(tableSolarYearData).
		Columns("district_id", "year_label", "target", "booking", "installed", "rejected")

	for _, row := range rows {
		district, upsertErr := getOrCreateDistrict(ctx, tx, row.DistrictCode, row.DistrictName)
		if upsertErr != nil {
			err = fmt.Errorf("getOrCreateDistrict, code-%s: %w", row.DistrictCode, upsertErr)
			return 0, err
		}

		query = query.Values(district.ID, yearLabel, row.Target, row.Booking, row.Installed, row.Rejected)
	}

	if _, err = xpgx.Exec(ctx, tx, query); err != nil {
		// The unique constraint on (district_id, year_label) is the
		// authoritative duplicate guard; a race past the pre-check dies here.
		logger.Errorf(ctx, "insert year data, year_label-%s: %s", yearLabel, err.Error())
		err = wrapErr(err)
		return 0, err
	}

	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}

	return len(rows), nil
}

func (s *store) YearDataExists(ctx context.Context, yearLabel domain.YearLabel) (bool, error) {
	type rowCount struct {
		Count int64 `db:"count"`
	}

	query := builder().Select("count(*) as count").
		From(tableSolarYearData).
		Where(sq.Eq{"year_label": yearLabel})

	selected, err := xpgx.Get[rowCount](ctx, s.pool, query)
	if err != nil {
		return false, wrapErr(err)
	}

	return selected.Count > 0, nil
}

func (s *store) DeleteYearData(ctx context.Context, yearLabel domain.YearLabel) (int64, error) {
	query := builder().Delete(tableSolarYearData).
		Where(sq.Eq{"year_label": yearLabel})

	tag, err := xpgx.Exec(ctx, s.pool, query)
	if err != nil {
		return 0, wrapErr(err)
	}

	return tag.RowsAffected(), nil
}

func (s *store) ListSolarRecords(ctx context.Context) ([]*domain.SolarRecord, error) {
	query := builder().Select(
		"d.code as district_code",
		"d.name as district_name",
		"s.year_label",
		"s.target",
		"s.booking",
		"s.installed",
		"s.rejected",
	).
		From(tableSolarYearData + " s").
		Join(tableDistricts + " d on d.id=s.district_id").
		OrderBy("s.year_label, d.name")

	selected, err := xpgx.Select[domain.SolarRecord](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) ListYearLabels(ctx context.Context) ([]domain.YearLabel, error) {
	type yearRow struct {
		YearLabel string `db:"year_label"`
	}

	query := builder().Select("distinct year_label").
		From(tableSolarYearData).
		OrderBy("year_label")

	selected, err := xpgx.Select[yearRow](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	labels := make([]domain.YearLabel, 0, len(selected))
	for _, row := range selected {
		labels = append(labels, row.YearLabel)
	}

	return labels, nil
}
