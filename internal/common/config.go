package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig
	OCR      OCRConfig
	Engine   EngineConfig
	Docstore DocstoreConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr              string
	ReadHeaderTimeout time.Duration
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	MaxBodyBytes      int64
	MaxConcurrent     int64
	RateLimitEvery    time.Duration
	RateLimitBurst    int
	ExtractTimeout    time.Duration
}

// OCRConfig holds recognizer configuration
type OCRConfig struct {
	Tesseract   string // binary name or absolute path; if empty -> "tesseract"
	Languages   string // default "kor+eng"
	TessdataDir string
	PSM         int // e.g. 6 for a uniform block of text
	OEM         int // 1 = LSTM; 0 = engine default
	Workers     int // recognizer worker count; keep 1 unless the binary is known concurrency-safe
	QueueSize   int
	JobTimeout  time.Duration
}

// EngineConfig holds extraction tunables
type EngineConfig struct {
	BareAmountFloor     int
	RefineRatio         float64
	WholeTextConfidence float64
	MerchantScanLines   int
}

// DocstoreConfig holds the policy-document chunk store configuration
type DocstoreConfig struct {
	Path      string // sqlite file path
	ChunkSize int    // runes per chunk
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:              getEnv("HTTP_ADDR", ":8080"),
			ReadHeaderTimeout: getEnvAsDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second),
			ReadTimeout:       getEnvAsDuration("HTTP_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:      getEnvAsDuration("HTTP_WRITE_TIMEOUT", 60*time.Second),
			IdleTimeout:       getEnvAsDuration("HTTP_IDLE_TIMEOUT", 120*time.Second),
			MaxBodyBytes:      getEnvAsInt64("HTTP_MAX_BODY_BYTES", 20<<20),
			MaxConcurrent:     getEnvAsInt64("HTTP_MAX_CONCURRENT", 16),
			RateLimitEvery:    getEnvAsDuration("HTTP_RATE_LIMIT_EVERY", 600*time.Millisecond),
			RateLimitBurst:    getEnvAsInt("HTTP_RATE_LIMIT_BURST", 20),
			ExtractTimeout:    getEnvAsDuration("HTTP_EXTRACT_TIMEOUT", 90*time.Second),
		},
		OCR: OCRConfig{
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			Languages:   getEnv("TESSERACT_LANG", "kor+eng"),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			PSM:         getEnvAsInt("TESSERACT_PSM", 6),
			OEM:         getEnvAsInt("TESSERACT_OEM", 0),
			Workers:     getEnvAsInt("OCR_WORKERS", 1),
			QueueSize:   getEnvAsInt("OCR_QUEUE_SIZE", 64),
			JobTimeout:  getEnvAsDuration("OCR_JOB_TIMEOUT", 60*time.Second),
		},
		Engine: EngineConfig{
			BareAmountFloor:     getEnvAsInt("ENGINE_BARE_AMOUNT_FLOOR", 1000),
			RefineRatio:         getEnvAsFloat64("ENGINE_REFINE_RATIO", 1.5),
			WholeTextConfidence: getEnvAsFloat64("ENGINE_WHOLE_TEXT_CONFIDENCE", 0.8),
			MerchantScanLines:   getEnvAsInt("ENGINE_MERCHANT_SCAN_LINES", 12),
		},
		Docstore: DocstoreConfig{
			Path:      getEnv("DOCSTORE_PATH", "./docstore.db"),
			ChunkSize: getEnvAsInt("DOCSTORE_CHUNK_SIZE", 500),
			Pdftotext: getEnv("PDFTOTEXT_BIN", "pdftotext"),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.OCR.Tesseract == "" {
		return NewAppError("CONFIG_ERROR", "TESSERACT_BIN is required", ErrInvalidInput)
	}
	if c.OCR.Workers < 1 {
		return NewAppError("CONFIG_ERROR", "OCR_WORKERS must be at least 1", ErrInvalidInput)
	}
	if c.Docstore.ChunkSize < 1 {
		return NewAppError("CONFIG_ERROR", "DOCSTORE_CHUNK_SIZE must be positive", ErrInvalidInput)
	}
	return nil
}
