package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config stores the application configuration. Values come from the
// environment (optionally via a .env file) with sensible defaults.
type Config struct {
	FFmpegPath   string
	FFprobePath  string
	FontPath     string // TTF used for lyric overlays
	ProfilesPath string // hardware profile table (YAML); defaults used if missing
	TempDir      string // scratch space for intermediate audio files

	LogLevel string
	LogPath  string

	ServerAddr string

	// License settings. RequireLicense gates the server; the render CLI
	// never checks a license.
	LicenseSalt    string
	LicenseFile    string // append-only log of issued keys
	LicenseKey     string
	LicenseExpiry  string // YYYY-MM-DD
	RequireLicense bool

	// Optional artifact upload of finished renders.
	MinioEnabled   bool
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioRegion    string
	MinioUseSSL    bool
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvBool gets an environment variable as bool or returns a default value.
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return fallback
}

// Load loads configuration from environment variables (via .env file) or defaults.
func Load() *Config {
	// godotenv.Load() will not override existing env vars.
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, relying on existing environment variables and defaults.")
	}

	ffmpegPath := getEnv("FFMPEG_PATH", "ffmpeg")
	// ffprobe ships alongside ffmpeg, so derive its default path.
	ffprobePath := getEnv("FFPROBE_PATH", strings.Replace(ffmpegPath, "ffmpeg", "ffprobe", 1))

	return &Config{
		FFmpegPath:   ffmpegPath,
		FFprobePath:  ffprobePath,
		FontPath:     getEnv("FONT_PATH", "assets/DejaVuSans.ttf"),
		ProfilesPath: getEnv("PROFILES_PATH", "profiles.yaml"),
		TempDir:      getEnv("TEMP_DIR", os.TempDir()),

		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogPath:  getEnv("LOG_PATH", ""),

		ServerAddr: getEnv("SERVER_ADDR", ":8080"),

		LicenseSalt:    getEnv("LICENSE_SALT", "NoYa_Remaster_Secret_2024"),
		LicenseFile:    getEnv("LICENSE_FILE", "license_log.txt"),
		LicenseKey:     os.Getenv("LICENSE_KEY"),
		LicenseExpiry:  os.Getenv("LICENSE_EXPIRY"),
		RequireLicense: getEnvBool("REQUIRE_LICENSE", false),

		MinioEnabled:   getEnvBool("MINIO_ENABLED", false),
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "127.0.0.1:9000"),
		MinioAccessKey: os.Getenv("MINIO_ACCESS_KEY"),
		MinioSecretKey: os.Getenv("MINIO_SECRET_KEY"),
		MinioBucket:    getEnv("MINIO_BUCKET", "noya-renders"),
		MinioRegion:    getEnv("MINIO_REGION", "us-east-1"),
		MinioUseSSL:    getEnvBool("MINIO_USE_SSL", false),
	}
}
