package importer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/agrisolar/portal/internal/domain"
	"github.com/agrisolar/portal/internal/domain/dto"
	"github.com/agrisolar/portal/internal/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

type fakeStore struct {
	nextID     int64
	uploads    map[int64]*domain.SolarUpload
	yearRows   map[domain.YearLabel][]dto.ParsedRow
	failImport error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		uploads:  make(map[int64]*domain.SolarUpload),
		yearRows: make(map[domain.YearLabel][]dto.ParsedRow),
	}
}

func (f *fakeStore) ImportYearData(_ context.Context, yearLabel domain.YearLabel, rows []dto.ParsedRow) (int, error) {
	if f.failImport != nil {
		return 0, f.failImport
	}
	f.yearRows[yearLabel] = rows
	return len(rows), nil
}

func (f *fakeStore) YearDataExists(_ context.Context, yearLabel domain.YearLabel) (bool, error) {
	_, ok := f.yearRows[yearLabel]
	return ok, nil
}

func (f *fakeStore) DeleteYearData(_ context.Context, yearLabel domain.YearLabel) (int64, error) {
	n := int64(len(f.yearRows[yearLabel]))
	delete(f.yearRows, yearLabel)
	return n, nil
}

func (f *fakeStore) ListSolarRecords(context.Context) ([]*domain.SolarRecord, error) {
	var records []*domain.SolarRecord
	for year, rows := range f.yearRows {
		for _, row := range rows {
			records = append(records, &domain.SolarRecord{
				DistrictCode: row.DistrictCode,
				DistrictName: row.DistrictName,
				YearLabel:    year,
				Target:       row.Target,
				Booking:      row.Booking,
				Installed:    row.Installed,
				Rejected:     row.Rejected,
			})
		}
	}
	return records, nil
}

func (f *fakeStore) ListDistricts(context.Context) ([]*domain.District, error) {
	return nil, nil
}

func (f *fakeStore) ListYearLabels(context.Context) ([]domain.YearLabel, error) {
	labels := make([]domain.YearLabel, 0, len(f.yearRows))
	for year := range f.yearRows {
		labels = append(labels, year)
	}
	return labels, nil
}

func (f *fakeStore) CreateUpload(_ context.Context, upload *domain.SolarUpload) (*domain.SolarUpload, error) {
	f.nextID++
	created := *upload
	created.ID = f.nextID
	f.uploads[created.ID] = &created
	return &created, nil
}

func (f *fakeStore) GetUpload(_ context.Context, id int64) (*domain.SolarUpload, error) {
	upload, ok := f.uploads[id]
	if !ok {
		return nil, constants.ErrDBNotFound
	}
	return upload, nil
}

func (f *fakeStore) ListUploads(context.Context) ([]*domain.SolarUpload, error) {
	uploads := make([]*domain.SolarUpload, 0, len(f.uploads))
	for _, upload := range f.uploads {
		uploads = append(uploads, upload)
	}
	return uploads, nil
}

func (f *fakeStore) DeleteUpload(_ context.Context, id int64) error {
	upload, ok := f.uploads[id]
	if !ok {
		return constants.ErrDBNotFound
	}
	delete(f.yearRows, upload.YearLabel)
	delete(f.uploads, id)
	return nil
}

type fakeFiles struct {
	blobs map[string][]byte
}

func newFakeFiles() *fakeFiles {
	return &fakeFiles{blobs: make(map[string][]byte)}
}

func (f *fakeFiles) Save(filename string, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	key := "blob_" + filename
	f.blobs[key] = data
	return key, nil
}

func (f *fakeFiles) Open(key string) (io.ReadCloser, error) {
	data, ok := f.blobs[key]
	if !ok {
		return nil, constants.ErrFileMissing
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeFiles) Exists(key string) bool {
	_, ok := f.blobs[key]
	return ok
}

func (f *fakeFiles) Delete(key string) error {
	delete(f.blobs, key)
	return nil
}

func newTestService(st *fakeStore, files *fakeFiles) *Service {
	return NewService(st, files, constants.DefaultTotalRowMarkers)
}

func validWorkbook(t *testing.T) io.Reader {
	t.Helper()
	return buildWorkbook(t, [][]any{
		{"Distcode", "District", "Target", "Booking", "Installed", "Rejected"},
		{"07", "Alpha", 100, 80, 60, 5},
		{"2", "Beta", 50, 40, 30, 2},
		{"99", "Total", 150, 120, 90, 7},
	})
}

func TestImport_RoundTrip(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	files := newFakeFiles()
	svc := newTestService(st, files)

	upload, count, err := svc.Import(ctx, validWorkbook(t), "SolarPumpData_2024-25.xlsx", "admin")
	require.NoError(t, err)
	require.NotNil(t, upload)

	assert.Equal(t, 2, count)
	assert.Equal(t, "2024-25", upload.YearLabel)
	assert.Equal(t, "SolarPumpData_2024-25.xlsx", upload.OriginalFilename)
	assert.Equal(t, "admin", upload.UploadedBy)
	assert.True(t, files.Exists(upload.FileKey))

	rows := st.yearRows["2024-25"]
	require.Len(t, rows, 2)
	assert.Equal(t, "7", rows[0].DistrictCode)
	assert.Equal(t, "Alpha", rows[0].DistrictName)
	assert.Equal(t, "2", rows[1].DistrictCode)

	require.NoError(t, svc.Delete(ctx, upload.ID))
	assert.Empty(t, st.uploads)
	assert.Empty(t, st.yearRows)
	assert.Empty(t, files.blobs)
}

func TestImport_DuplicatePeriod(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	st.yearRows["2024-25"] = []dto.ParsedRow{{DistrictCode: "1", DistrictName: "Alpha"}}
	files := newFakeFiles()
	svc := newTestService(st, files)

	_, _, err := svc.Import(ctx, validWorkbook(t), "SolarPumpData_2024-25.xlsx", "admin")
	assert.ErrorIs(t, err, constants.ErrDuplicatePeriod)

	// existing period untouched, nothing new stored
	assert.Len(t, st.yearRows["2024-25"], 1)
	assert.Empty(t, st.uploads)
	assert.Empty(t, files.blobs)
}

func TestImport_BadFilename(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	files := newFakeFiles()
	svc := newTestService(st, files)

	for _, filename := range []string{
		"data_2024-25.xlsx",
		"SolarPumpData_2024-25.csv",
		"SolarPumpData_24-25.xlsx",
		"SolarPumpData_2024-25.xlsx.exe",
	} {
		_, _, err := svc.Import(ctx, validWorkbook(t), filename, "admin")
		assert.ErrorIs(t, err, constants.ErrInvalidFormat, filename)
	}

	assert.Empty(t, st.uploads)
	assert.Empty(t, files.blobs)
}

func TestImport_StoreFailureCleansUp(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	st.failImport = errors.New("db down")
	files := newFakeFiles()
	svc := newTestService(st, files)

	_, _, err := svc.Import(ctx, validWorkbook(t), "SolarPumpData_2024-25.xlsx", "admin")
	require.Error(t, err)

	assert.Empty(t, st.uploads)
	assert.Empty(t, st.yearRows)
	assert.Empty(t, files.blobs)
}

func TestImport_MissingColumnsCleansUp(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	files := newFakeFiles()
	svc := newTestService(st, files)

	wb := buildWorkbook(t, [][]any{
		{"Distcode", "District", "Target"},
		{"1", "Alpha", 100},
	})

	_, _, err := svc.Import(ctx, wb, "SolarPumpData_2024-25.xlsx", "admin")
	assert.ErrorIs(t, err, constants.ErrInvalidFormat)

	assert.Empty(t, st.uploads)
	assert.Empty(t, st.yearRows)
	assert.Empty(t, files.blobs)
}

func TestImport_OnlySummaryRows(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	files := newFakeFiles()
	svc := newTestService(st, files)

	wb := buildWorkbook(t, [][]any{
		{"Distcode", "District", "Target", "Booking", "Installed", "Rejected"},
		{"99", "Grand Total", 1, 1, 1, 1},
	})

	_, _, err := svc.Import(ctx, wb, "SolarPumpData_2024-25.xlsx", "admin")
	assert.ErrorIs(t, err, constants.ErrInvalidFormat)
	assert.Empty(t, st.uploads)
	assert.Empty(t, files.blobs)
}

func TestDelete_UnknownUpload(t *testing.T) {
	svc := newTestService(newFakeStore(), newFakeFiles())

	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, constants.ErrDBNotFound)
}

func TestDownload(t *testing.T) {
	ctx := context.Background()
	st := newFakeStore()
	files := newFakeFiles()
	svc := newTestService(st, files)

	created, _, err := svc.Import(ctx, validWorkbook(t), "SolarPumpData_2024-25.xlsx", "admin")
	require.NoError(t, err)

	upload, rc, err := svc.Download(ctx, created.ID)
	require.NoError(t, err)
	defer func() {
		_ = rc.Close()
	}()

	assert.Equal(t, created.ID, upload.ID)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestTemplate(t *testing.T) {
	svc := newTestService(newFakeStore(), newFakeFiles())

	data, err := svc.Template()
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows(f.GetSheetName(0))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"Distcode", "District", "Target", "Booking", "Installed", "Rejected"}, rows[0])
}
