package domain

import (
	"regexp"
	"time"
)

// YearLabel identifies one reporting cycle, e.g. "2024-25". It is always
// derived from the upload filename, never typed by a user.
type YearLabel = string

// District is an administrative unit. Code is the stable identifier; the name
// may be corrected on a later import if the source file spells it differently.
type District struct {
	ID        int64     `db:"id" json:"id"`
	Code      string    `db:"code" json:"code"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// SolarYearData holds the four program counters for one (district, year) pair.
type SolarYearData struct {
	ID         int64     `db:"id" json:"id"`
	DistrictID int64     `db:"district_id" json:"district_id"`
	YearLabel  YearLabel `db:"year_label" json:"year_label"`
	Target     int       `db:"target" json:"target"`
	Booking    int       `db:"booking" json:"booking"`
	Installed  int       `db:"installed" json:"installed"`
	Rejected   int       `db:"rejected" json:"rejected"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// SolarUpload is one ingested workbook with its stored blob key.
type SolarUpload struct {
	ID               int64     `db:"id" json:"id"`
	FileKey          string    `db:"file_key" json:"-"`
	OriginalFilename string    `db:"original_filename" json:"original_filename"`
	YearLabel        YearLabel `db:"year_label" json:"year_label"`
	UploadedBy       string    `db:"uploaded_by" json:"uploaded_by"`
	UploadedAt       time.Time `db:"uploaded_at" json:"uploaded_at"`
}

// SolarRecord is one normalized dataset row: period counters joined with the
// district reference data. The whole analytics layer operates on these.
type SolarRecord struct {
	DistrictCode string    `db:"district_code" json:"distcode"`
	DistrictName string    `db:"district_name" json:"district"`
	YearLabel    YearLabel `db:"year_label" json:"year"`
	Target       int       `db:"target" json:"target"`
	Booking      int       `db:"booking" json:"booking"`
	Installed    int       `db:"installed" json:"installed"`
	Rejected     int       `db:"rejected" json:"rejected"`
}

var (
	fileNamePattern  = regexp.MustCompile(`^SolarPumpData_\d{4}-\d{2}\.xlsx$`)
	yearLabelPattern = regexp.MustCompile(`(\d{4}-\d{2})`)
)

// ValidFilename reports whether the upload filename follows
// SolarPumpData_YYYY-YY.xlsx.
func ValidFilename(filename string) bool {
	return fileNamePattern.MatchString(filename)
}

// ExtractYearLabel pulls the YYYY-YY label out of the filename. Returns ""
// when the filename carries no label.
func ExtractYearLabel(filename string) YearLabel {
	return yearLabelPattern.FindString(filename)
}
