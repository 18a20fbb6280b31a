package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Profile  ProfileConfig
	Storage  StorageConfig
	Worker   WorkerConfig
	Remote   RemoteConfig
	Drive    DriveConfig
	S3       S3Config
	Notion   NotionConfig
	AMQP     AMQPConfig
	Auth     AuthConfig
	Log      LogConfig

	// EnvFileLoaded reports whether a .env file was found.
	EnvFileLoaded bool
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Driver     string
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

type ProfileConfig struct {
	Path string
}

type StorageConfig struct {
	UploadPath   string
	OutputPath   string
	MaxFileSize  int64
	LetterDocx   string
	ResumePath   string
	FetchTimeout time.Duration
	AutoScore    bool
}

type WorkerConfig struct {
	Concurrency  int
	QueueSize    int
	PollInterval time.Duration
	BatchSize    int
}

// RemoteConfig selects the remote document store: "drive", "s3" or "" (disabled).
type RemoteConfig struct {
	Backend    string
	BaseFolder string
}

type DriveConfig struct {
	CredentialsFile string
	RootFolderID    string
	ConvertMarkdown bool
}

type S3Config struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Prefix          string
	LinkExpiry      time.Duration
}

type NotionConfig struct {
	Token               string
	JobsDatabaseID      string
	CompaniesDatabaseID string
	ReadingDatabaseID   string
}

func (n NotionConfig) Enabled() bool {
	return n.Token != "" && n.JobsDatabaseID != ""
}

type AMQPConfig struct {
	URL      string
	Exchange string
}

type AuthConfig struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

type LogConfig struct {
	JSON  bool
	Debug bool
}

func Load() *Config {
	loaded := godotenv.Load() == nil

	return &Config{
		EnvFileLoaded: loaded,
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Driver:     strings.ToLower(getEnv("DB_DRIVER", "postgres")),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", "postgres"),
			DBName:     getEnv("DB_NAME", "job_tracker"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("SQLITE_PATH", "job_tracker.db"),
		},
		Profile: ProfileConfig{
			Path: getEnv("PROFILE_PATH", ""),
		},
		Storage: StorageConfig{
			UploadPath:   getEnv("UPLOAD_PATH", "./uploads"),
			OutputPath:   getEnv("OUTPUT_PATH", "./generated_docs"),
			MaxFileSize:  getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			LetterDocx:   getEnv("LETTER_DOCX_TEMPLATE", ""),
			ResumePath:   getEnv("RESUME_PATH", ""),
			FetchTimeout: getEnvAsDuration("FETCH_TIMEOUT", "20s"),
			AutoScore:    getEnvAsBool("AUTO_SCORE", true),
		},
		Worker: WorkerConfig{
			Concurrency:  getEnvAsInt("WORKER_CONCURRENCY", 3),
			QueueSize:    getEnvAsInt("WORKER_QUEUE_SIZE", 100),
			PollInterval: getEnvAsDuration("WORKER_POLL_INTERVAL", "10s"),
			BatchSize:    getEnvAsInt("WORKER_BATCH_SIZE", 10),
		},
		Remote: RemoteConfig{
			Backend:    strings.ToLower(getEnv("REMOTE_BACKEND", "")),
			BaseFolder: getEnv("REMOTE_BASE_FOLDER", "Job-Opportunities"),
		},
		Drive: DriveConfig{
			CredentialsFile: getEnv("GOOGLE_APPLICATION_CREDENTIALS", ""),
			RootFolderID:    getEnv("DRIVE_ROOT_FOLDER_ID", "root"),
			ConvertMarkdown: getEnvAsBool("DRIVE_CONVERT_MARKDOWN", true),
		},
		S3: S3Config{
			Bucket:          getEnv("S3_BUCKET", ""),
			Region:          getEnv("S3_REGION", "auto"),
			Endpoint:        getEnv("S3_ENDPOINT", ""),
			AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
			Prefix:          getEnv("S3_PREFIX", ""),
			LinkExpiry:      getEnvAsDuration("S3_LINK_EXPIRY", "168h"),
		},
		Notion: NotionConfig{
			Token:               getEnv("NOTION_TOKEN", ""),
			JobsDatabaseID:      getEnv("NOTION_JOBS_DATABASE_ID", ""),
			CompaniesDatabaseID: getEnv("NOTION_COMPANIES_DATABASE_ID", ""),
			ReadingDatabaseID:   getEnv("NOTION_READING_DATABASE_ID", ""),
		},
		AMQP: AMQPConfig{
			URL:      getEnv("AMQP_URL", ""),
			Exchange: getEnv("AMQP_EXCHANGE", "job_tracker.events"),
		},
		Auth: AuthConfig{
			Secret:   getEnv("AUTH_SECRET", ""),
			Issuer:   getEnv("AUTH_ISSUER", "job-tracker"),
			TokenTTL: getEnvAsDuration("AUTH_TOKEN_TTL", "720h"),
		},
		Log: LogConfig{
			JSON:  getEnvAsBool("LOG_JSON", false),
			Debug: getEnvAsBool("LOG_DEBUG", false),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.SQLitePath
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
