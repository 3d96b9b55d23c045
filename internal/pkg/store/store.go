package store

import (
	"context"

	"github.com/agrisolar/portal/internal/domain"
	"github.com/agrisolar/portal/internal/domain/dto"
	"github.com/agrisolar/portal/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	// ImportYearData upserts districts and bulk-inserts the period rows inside
	// one transaction; a failure anywhere leaves no partial period data.
	ImportYearData(ctx context.Context, yearLabel domain.YearLabel, rows []dto.ParsedRow) (int, error)
	YearDataExists(ctx context.Context, yearLabel domain.YearLabel) (bool, error)
	DeleteYearData(ctx context.Context, yearLabel domain.YearLabel) (int64, error)

	ListSolarRecords(ctx context.Context) ([]*domain.SolarRecord, error)
	ListDistricts(ctx context.Context) ([]*domain.District, error)
	ListYearLabels(ctx context.Context) ([]domain.YearLabel, error)

	CreateUpload(ctx context.Context, upload *domain.SolarUpload) (*domain.SolarUpload, error)
	GetUpload(ctx context.Context, id int64) (*domain.SolarUpload, error)
	ListUploads(ctx context.Context) ([]*domain.SolarUpload, error)
	// DeleteUpload removes the upload record and its year's data rows in one
	// transaction. Blob cleanup stays with the caller.
	DeleteUpload(ctx context.Context, id int64) error
}

type store struct {
	pool *Pool
}

func NewStore(pool *Pool) Store {
	return &store{pool}
}
