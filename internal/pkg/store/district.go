package store

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/agrisolar/portal/internal/domain"
	"github.com/agrisolar/portal/internal/pkg/store/xpgx"
)

var districtColumns = []string{"id", "code", "name", "created_at", "updated_at"}

// getOrCreateDistrict upserts by code. A changed name in a later file is
// treated as a correction and overwrites the stored one.
func getOrCreateDistrict(ctx context.Context, q xpgx.Querier, code, name string) (*domain.District, error) {
	query := builder().Insert(tableDistricts).
		Columns("code", "name").
		Values(code, name).
		Suffix(`on conflict (code) do update set name=excluded.name, updated_at=now()`)

	if _, err := xpgx.Exec(ctx, q, query); err != nil {
		return nil, wrapErr(err)
	}

	selectQuery := builder().Select(districtColumns...).
		From(tableDistricts).
		Where(sq.Eq{"code": code})

	selected, err := xpgx.Get[domain.District](ctx, q, selectQuery)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}

func (s *store) ListDistricts(ctx context.Context) ([]*domain.District, error) {
	query := builder().Select(districtColumns...).
		From(tableDistricts).
		OrderBy("name, code")

	selected, err := xpgx.Select[domain.District](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return selected, nil
}
