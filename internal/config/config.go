package config

import "github.com/spf13/viper"

// Config holds everything the process needs at startup. It is built once in
// main and passed down explicitly; nothing reads viper after that.
type Config struct {
	AppPort string

	// Backing spreadsheet.
	SpreadsheetID   string
	CredentialsFile string
	// StrictReads controls what a failed full-table read does: false keeps
	// the legacy behavior of logging and returning an empty table, true
	// propagates the error to the caller.
	StrictReads bool

	UploadDir string

	// Optional external prediction service. Empty means the inline
	// heuristic scorer is used exclusively.
	ModelServiceURL string

	// Optional RabbitMQ broker for assessment events. Empty disables
	// event publishing.
	RabbitMQURL string

	AllowOrigins string
}

// Load reads configuration from environment variables, falling back to
// defaults suitable for local development.
func Load() *Config {
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("GOOGLE_SHEETS_ID", "")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "credentials.json")
	viper.SetDefault("SHEETS_STRICT_READS", false)
	viper.SetDefault("UPLOAD_DIR", "./public/uploads")
	viper.SetDefault("MODEL_SERVICE_URL", "")
	viper.SetDefault("RABBITMQ_URL", "")
	viper.SetDefault("ALLOW_ORIGINS", "*")
	viper.AutomaticEnv() // Load environment variables

	return &Config{
		AppPort:         viper.GetString("APP_PORT"),
		SpreadsheetID:   viper.GetString("GOOGLE_SHEETS_ID"),
		CredentialsFile: viper.GetString("GOOGLE_CREDENTIALS_FILE"),
		StrictReads:     viper.GetBool("SHEETS_STRICT_READS"),
		UploadDir:       viper.GetString("UPLOAD_DIR"),
		ModelServiceURL: viper.GetString("MODEL_SERVICE_URL"),
		RabbitMQURL:     viper.GetString("RABBITMQ_URL"),
		AllowOrigins:    viper.GetString("ALLOW_ORIGINS"),
	}
}
