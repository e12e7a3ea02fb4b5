package blockjournal

// App directory defaults
const (
	DefaultAppDir = ".blockjournal"
	DefaultLogDir = "logs"
)

// Log file defaults
const (
	DefaultLogFileName   = "blockjournal.log"
	DefaultLogMaxSize    = 100
	DefaultLogMaxBackups = 3
	DefaultLogLevel      = "info"
)
