package constants

const (
	CookieKeySecretToken = "secret_token"

	CtxKeyUserID = "user_id"
)

// viper keys
const (
	ViperSecretKey      = "auth.secret"
	ViperAddrKey        = "server.addr"
	ViperDSNKey         = "db.dsn"
	ViperUploadDirKey   = "import.upload_dir"
	ViperTotalRowsKey   = "import.total_row_markers"
	ViperAlertDestKey   = "notify.admin_destination"
	ViperAllowOriginKey = "server.allow_origin"
)

// DefaultTotalRowMarkers are the spreadsheet summary-row labels skipped during
// import. Source files occasionally invent new spellings, so the effective set
// is read from config with these as the fallback.
var DefaultTotalRowMarkers = []string{"total", "grand total", "overall"}
