package dto

// ParsedRow is one normalized data row emitted by the workbook parser, before
// districts are resolved against the store.
type ParsedRow struct {
	DistrictCode string
	DistrictName string
	Target       int
	Booking      int
	Installed    int
	Rejected     int
}
