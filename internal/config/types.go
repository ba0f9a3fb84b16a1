package config

import "time"

// Defaults for the CLI.
const (
	DefaultDataFile    = "fish.yaml"
	DefaultDatabase    = ".fishlist/fish.db"
	DefaultSource      = SourceFile
	DefaultRenderer    = "vanilla"
	DefaultAddr        = ":8080"
	DefaultTitle       = "Fish"
	DefaultHTTPTimeout = 10 * time.Second
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
	DefaultEnvFile     = ".env"
	EnvPrefix          = "FISHLIST_"
)

// Source kinds the CLI can read records from.
const (
	SourceFile  = "file"
	SourceStore = "store"
)

// Config is the merged CLI configuration.
type Config struct {
	// Source picks where records come from: "file" reads Data, "store" reads
	// the SQLite database.
	Source   string `koanf:"source"`
	Data     string `koanf:"data"`
	Database string `koanf:"database"`

	Renderer      string `koanf:"renderer"`
	KeyStrategy   string `koanf:"key_strategy"`
	TriggerPrefix string `koanf:"trigger_prefix"`
	DetailPrefix  string `koanf:"detail_prefix"`
	FoodSeparator string `koanf:"food_separator"`
	ListID        string `koanf:"list_id"`
	StrictKeys    bool   `koanf:"strict_keys"`

	Title       string `koanf:"title"`
	ContainerID string `koanf:"container_id"`

	ThemeFile    string `koanf:"theme_file"`
	ThemeVariant string `koanf:"theme_variant"`

	Addr        string        `koanf:"addr"`
	AllowHTTP   bool          `koanf:"allow_http"`
	HTTPTimeout time.Duration `koanf:"http_timeout"`

	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}
