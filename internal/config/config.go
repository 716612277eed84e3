package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client when fetching remote sheets.
var UserAgent = "Birthday-Panel/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "EkoBrazil Aniversariantes"
	AppID             = "com.github.ekobrazil.birthday-panel"
	KeyringService    = "com.github.ekobrazil.birthday-panel"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	DBFileName        = "panel.db"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	FilePermUserRW fs.FileMode = 0600

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	// ChannelBufferSize defines the standard buffer size for internal signaling channels.
	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion      = "version"
	FlagDebug        = "debug"
	FlagDescVersion  = "Show application version and exit"
	FlagDescDebug    = "Enable debug logging to stdout"
	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// UI Constants & Preferences
// -----------------------------------------------------------------------------

const (
	MainWinWidth  = 760
	MainWinHeight = 560

	SettingsWindowWidth = 600

	LayoutColumnsDouble = 2

	PlaceholderSheetURL = "https://example.com/planilhas/"

	// Preference Keys
	PrefLanguage   = "language"
	PrefServerPort = "server_port"
	PrefSourceMode = "sheet_source_mode"
	PrefSheetDir   = "sheet_dir"
	PrefSheetURL   = "sheet_base_url"
	PrefUsername   = "sheet_username"
	PrefLastRun    = "last_run_version"
)

// SupportedLanguages defines the list of available UI languages.
var SupportedLanguages = []string{"pt-BR", "en"}

// -----------------------------------------------------------------------------
// Roster Window Constants
// -----------------------------------------------------------------------------

const (
	RosterWinWidth  = 520
	RosterWinHeight = 420

	// Table Column IDs
	ColIDName     = 0
	ColIDBirthday = 1
	ColIDPhone    = 2

	// Table Layout
	ColWidthName     = 240
	ColWidthBirthday = 110
	ColWidthPhone    = 150

	TablePlaceholder = "Cell Content"
	LogMsgOpenWin    = "Opening roster window"
	LogMsgSorted     = "Roster sorted"

	// Sorting Indicators
	SortIconAsc  = " ▲"
	SortIconDesc = " ▼"
)

// -----------------------------------------------------------------------------
// Persisted Storage
// -----------------------------------------------------------------------------

const (
	// Storage keys match the original dashboard so an exported browser state
	// can be carried over verbatim.
	StorageKeyContacts  = "ekobrazil_contacts_v1"
	StorageKeySentFlags = "ekobrazil_sent_flags_v1"
)

// -----------------------------------------------------------------------------
// Contact & Date Semantics
// -----------------------------------------------------------------------------

const (
	// DayMonthLayout is the Go time layout for the DD/MM strings that birthdays
	// and reference dates are expressed in. No year component by design.
	DayMonthLayout = "02/01"

	// DayMonthLen is the exact length a birthday string must have.
	DayMonthLen = 5

	// KeySeparator joins the normalized name and phone into the identity key.
	KeySeparator = "__"

	// DateListSeparator joins multiple reference dates for display.
	DateListSeparator = " / "
)

// -----------------------------------------------------------------------------
// Bundled Sheets
// -----------------------------------------------------------------------------

// SheetFiles is the fixed list of monthly roster files shipped alongside the
// application. Filenames are literals, not discovered dynamically.
var SheetFiles = []string{
	"Aniversário Janeiro.csv",
	"Aniversário Fevereiro.csv",
	"Aniversário Março.csv",
	"Aniversário Abril.csv",
	"Aniversário Maio.csv",
	"Aniversário Junho.csv",
	"Aniversário Julho.csv",
	"Aniversário Agosto.csv",
	"Aniversário Setembro.csv",
	"Aniversário Outubro.csv",
	"Aniversário Novembro.csv",
	"Aniversário Dezembro.csv",
}

const (
	SourceModeDir = "dir"
	SourceModeWeb = "web"

	DefaultSheetDir = "assets/planilhas"
)

// Import file extensions accepted by the file picker.
const (
	ExtCSV   = ".csv"
	ExtJSON  = ".json"
	ExtTXT   = ".txt"
	ExtVCF   = ".vcf"
	ExtVCard = ".vcard"
)

// -----------------------------------------------------------------------------
// Outbound Messaging (WhatsApp link)
// -----------------------------------------------------------------------------

const (
	WhatsAppBaseURL   = "https://wa.me/"
	WhatsAppTextParam = "text"

	// CelebrationImageURL is appended to every outbound message.
	CelebrationImageURL = "https://images.pexels.com/photos/2072160/pexels-photo-2072160.jpeg"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyWinTitle      = "win_title"
	TKeyWinRoster     = "win_roster_title"
	TKeyMenuDashboard = "menu_dashboard"
	TKeyMenuRoster    = "menu_roster"
	TKeyMenuSettings  = "menu_settings"

	TKeyLblToday          = "lbl_today"
	TKeyLblSendDates      = "lbl_send_dates"
	TKeyLblSelectedDate   = "lbl_selected_date"
	TKeyLblCounter        = "lbl_counter" // Requires Count
	TKeySearchPlaceholder = "search_placeholder"
	TKeyBtnImport         = "btn_import"
	TKeyBtnWhatsApp       = "btn_whatsapp"
	TKeyBtnClearDate      = "btn_clear_date"
	TKeyLblSent           = "lbl_sent"
	TKeyLblBirthday       = "lbl_birthday" // Requires Date
	TKeyLblPhone          = "lbl_phone"    // Requires Phone
	TKeyEmptyToday        = "empty_today"
	TKeyEmptySearch       = "empty_search"

	// Badge texts per birthday kind
	TKeyBadgeToday    = "badge_today"
	TKeyBadgeTomorrow = "badge_tomorrow"
	TKeyBadgeSaturday = "badge_saturday"
	TKeyBadgeSunday   = "badge_sunday"
	TKeyBadgeTuesday  = "badge_tuesday"
	TKeyBadgeOther    = "badge_other"

	// WhatsApp message templates per birthday kind (Require Name, ImageURL)
	TKeyMsgToday    = "msg_today"
	TKeyMsgTomorrow = "msg_tomorrow"
	TKeyMsgSaturday = "msg_saturday"
	TKeyMsgSunday   = "msg_sunday"
	TKeyMsgTuesday  = "msg_tuesday"
	TKeyMsgOther    = "msg_other"

	// Calendar feed (Requires Name)
	TKeyEvtSummary = "event_summary"

	// Import feedback
	TKeyImportOK        = "import_ok" // Requires Count
	TKeyImportBadFormat = "import_bad_format"
	TKeyImportNoRecords = "import_no_records"
	TKeyImportReadFail  = "import_read_fail"
	TKeyImportTitle     = "import_title"

	// Settings
	TKeyLblLanguage  = "lbl_language"
	TKeyHelpLanguage = "help_language"
	TKeyLblSource    = "lbl_source"
	TKeyModeDir      = "mode_dir"
	TKeyModeWeb      = "mode_web"
	TKeyLblSheetDir  = "lbl_sheet_dir"
	TKeyLblURL       = "lbl_url"
	TKeyHelpURL      = "help_sheet_url"
	TKeyLblUser      = "lbl_user"
	TKeyLblPass      = "lbl_pass"
	TKeyLblPort      = "lbl_server_port"
	TKeyHelpPort     = "help_port"
	TKeyBtnSave      = "btn_save"
	TKeyBtnCancel    = "btn_cancel"
	TKeyBtnBrowse    = "btn_browse"
	TKeyBtnReload    = "btn_reload"

	// Roster columns
	TKeyColName     = "col_name"
	TKeyColBirthday = "col_birthday"
	TKeyColPhone    = "col_phone"

	// Validation Errors (UI)
	TKeyErrPortReq   = "err_port_required"
	TKeyErrPortNum   = "err_port_number"
	TKeyErrPortRange = "err_port_range"
	TKeyErrDateEntry = "err_date_entry"

	// Reload feedback
	TKeyReloadOK   = "reload_ok" // Requires Count
	TKeyReloadFail = "reload_fail"

	TKeyLblFooter = "lbl_footer" // Requires Version
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultPort     = "18080"
	DefaultLanguage = "pt-BR"

	// CalendarYear is the synthetic year used when DD/MM strings must become
	// concrete dates for the ICS feed. A leap year so 29/02 survives.
	CalendarYear = 2000

	UIDSalt       = "birthday-panel-v1-" // Salt for deterministic UID generation
	UIDHashLength = 16
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//EkoBrazil//Birthday Panel//PT"
	ICalCalName = "Aniversariantes"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "birthdaypanel"

	PropUID        = "UID"
	PropSummary    = "SUMMARY"
	PropDTStart    = "DTSTART"
	PropDTStamp    = "DTSTAMP"
	PropRefresh    = "REFRESH-INTERVAL"
	PropVersion    = "VERSION"
	PropProdid     = "PRODID"
	PropXWRCalName = "X-WR-CALNAME"
	PropCalScale   = "CALSCALE"
	PropMethod     = "METHOD"

	FormatHashInput = "%s|%s|%s"
	FormatUID       = "%s-%d@%s"

	DefaultICalRefresh = 1 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when the roster
	// produces no events, so feed clients never see an invalid payload.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	HTTPTimeout         = 30 * time.Second
	ShutdownTimeout     = 5 * time.Second
	ServerReadTimeout   = 10 * time.Second
	ServerWriteTimeout  = 30 * time.Second
	ServerIdleTimeout   = 60 * time.Second
	RetryAfterSeconds   = "10"
	AllowedMethods      = "GET, HEAD"
	MaxHTTPResponseSize = 16 * 1024 * 1024 // 16MB per sheet is already generous
	SchemeHTTP          = "http"
	SchemeHTTPS         = "https"
	RouteCalendar       = "/"
	RouteSelection      = "/selection.json"
	AddrSeparator       = ":"

	MinPort = 1
	MaxPort = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderUserAgent       = "User-Agent"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrUnrecognizedFormat = "unrecognized report format: expected JSON or CSV with name, phone and birth date columns"
	ErrNoValidRecords     = "no valid contact records found in report"
	ErrAllSheetsFailed    = "no bundled sheet produced contacts"
	ErrSheetDirEmpty      = "configuration error: sheet directory is empty"
	ErrSheetURLEmpty      = "configuration error: sheet base URL is empty"
	ErrFetcherMissing     = "internal error: sheet fetcher is not initialized"
	ErrModeUnsupport      = "configuration error: unsupported sheet source mode"
	ErrStorageOpen        = "failed to open storage database"
	ErrStorageRead        = "failed to read from storage"
	ErrStorageWrite       = "failed to write to storage"
	ErrServerStartup      = "server startup failed"
	ErrServerShutdown     = "server shutdown failed"
	ErrPortRequired       = "server port is required"
	ErrInvalidURL         = "invalid URL structure"
	ErrProtocol           = "unsupported protocol scheme (http/https only)"
	ErrICalEncode         = "failed to encode iCalendar data"
	ErrJSONEncode         = "failed to encode selection JSON"
	ErrLogFile            = "failed to open log file"
	ErrCacheDir           = "could not determine user cache dir"
	ErrDataDir            = "could not determine user config dir"
	ErrCreateDir          = "could not create app data dir"
	ErrAppFailed          = "application failed unexpectedly"
	ErrWriteResp          = "failed to write response body"
	ErrLocalesAccess      = "failed to access embedded locales"
	ErrLocaleLoad         = "failed to load locale file"
	ErrTrayNotSupported   = "system tray not supported on this platform/driver"
	ErrLocNotInit         = "localizer not initialized"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Feed initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
)

// -----------------------------------------------------------------------------
// Fallbacks & Defaults
// -----------------------------------------------------------------------------

const (
	FallbackSummary  = "Aniversário: %s"
	FallbackMessage  = "Olá %s! 🎉 A equipe da EkoBrazil deseja um feliz aniversário!"
	FallbackBadge    = "🎈 Enviar mensagem"
	FallbackTrayText = "Aniversariantes (%d)"

	TitleStartupError = "Startup Error"

	MsgPortBusy        = "Port %s is busy or unavailable."
	MsgAppStop         = "Application stopped gracefully"
	MsgCtxCancel       = "Context cancelled, shutting down UI"
	MsgAppStarting     = "Starting application"
	MsgServerListen    = "HTTP feed server listening"
	MsgServerStop      = "Shutting down HTTP feed server..."
	MsgFeedUpdated     = "Feed cache updated"
	MsgLocaleSkip      = "Skipping non-locale file"
	MsgLocaleBadName   = "Skipping malformed locale filename"
	MsgLocaleLoaded    = "Locale loaded successfully"
	MsgTransMissing    = "Missing translation key"
	MsgPassFail        = "Password retrieval failed (might be empty)"
	MsgLogWarning      = "Warning: %s at %s: %v\n"
	MsgSkippedRecord   = "Skipping invalid contact record"
	MsgSkippedCard     = "Skipping malformed vCard"
	MsgSheetSkipped    = "Sheet skipped"
	MsgSheetLoaded     = "Sheet loaded"
	MsgSheetsDone      = "Bundled sheets processed"
	MsgRosterLoaded    = "Roster loaded"
	MsgRosterReplaced  = "Roster replaced by import"
	MsgRosterPersisted = "Roster persisted"
	MsgFlagsLoaded     = "Sent flags loaded"
	MsgFlagsMalformed  = "Persisted sent flags malformed, starting empty"
	MsgFlagToggled     = "Sent flag toggled"
	MsgReferenceSet    = "Reference date override set"
	MsgReferenceClear  = "Reference date override cleared"
	MsgSelection       = "Selection recomputed"
	MsgStorageMiss     = "No persisted roster, falling back to bundled sheets"
	MsgCalendarBuilt   = "Calendar feed generated"
	MsgOpeningWhatsApp = "Opening WhatsApp link"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyURL       = "url"
	LogKeyStatus    = "status_code"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyMode      = "mode"
	LogKeyUser      = "user"
	LogKeyCount     = "count"
	LogKeyTotal     = "total"
	LogKeyLoaded    = "loaded"
	LogKeyFailed    = "failed"
	LogKeyDate      = "date"
	LogKeyDates     = "dates"
	LogKeyName      = "name"
	LogKeyValue     = "value"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyStats     = "stats"
	LogKeySortCol   = "sort_column"
	LogKeySortAsc   = "sort_asc"
	LogKeyDuration  = "duration_ms"
	LogKeySent      = "sent"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompUI        = "ui"
	CompUISet     = "ui_settings"
	CompEngine    = "engine"
	CompDashboard = "dashboard"
	CompServer    = "server"
	CompFetcher   = "fetcher"
	CompStore     = "store"
	CompMain      = "main"
	CompI18n      = "i18n"
)
