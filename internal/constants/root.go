package constants

const (
	AppName           = "habitchain"
	Version           = "v0.1.0"
	DefaultConfigDir  = "~/.config/habitchain"
	DefaultConfigPath = "~/.config/habitchain/config.yaml"
	DefaultDataPath   = "~/.config/habitchain/data.json"

	// DateFormat is the calendar date format used for streaks and history (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DefaultTimezone decides which calendar day "today" is.
	DefaultTimezone = "UTC"

	// Entity defaults
	DefaultCategory = "General"
	DefaultRelation = "Friend"

	// StripDays is the number of days shown in a habit's completion strip
	StripDays = 7

	// Server defaults
	DefaultAddr     = ":4000"
	DefaultBasePath = "/api"
	DefaultAPIURL   = "http://localhost:4000/api"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "habitchain-"
	BackupFileSuffix = ".json"

	// RequestIDHeader carries the per-request correlation id
	RequestIDHeader = "X-Request-ID"
)

// Relations offered by clients when adding a member.
var Relations = []string{"Friend", "Mother", "Father", "Sibling", "Partner", "Coach", "Other"}

// Categories offered by clients when adding a habit.
var Categories = []string{"Health", "Study", "Career", "Personal", "Other"}

// Emojis a user can pick as their avatar at login.
var Emojis = []string{"🔥", "💪", "🚀", "🌱", "🎯", "📚"}
