// Package config loads runtime settings from the environment.
//
// A .env file in the working directory is read first if present; variables
// already set in the environment take precedence over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/ironsheep/sentiment-image-mcp/internal/field"
	"github.com/ironsheep/sentiment-image-mcp/internal/imaging"
	"github.com/ironsheep/sentiment-image-mcp/internal/ocr"
)

const envPrefix = "SENTIMENT_MCP_"

// PipelineConfig sizes follower batches and the number of batches run at once.
type PipelineConfig struct {
	BatchSize int
	Workers   int
}

// RenderConfig holds the default upscale factor and the saturation a cell
// needs to survive a collapsed render.
type RenderConfig struct {
	Scale             int
	CollapseThreshold float64
}

// OCRConfig configures word extraction from images.
type OCRConfig struct {
	Language      string
	TessdataDir   string
	MinConfidence float64
}

// Config is the full runtime configuration.
type Config struct {
	LogLevel  string
	CacheSize int
	Pipeline  PipelineConfig
	Render    RenderConfig
	OCR       OCRConfig
}

// Load reads the configuration. A missing .env file is skipped, but one that
// cannot be parsed is an error. Malformed numeric values fall back to their
// defaults; out-of-range values are reported by Validate.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	return &Config{
		LogLevel:  strings.ToLower(getEnv("LOG_LEVEL", "info")),
		CacheSize: getEnvInt("CACHE_SIZE", 32),
		Pipeline: PipelineConfig{
			BatchSize: getEnvInt("BATCH_SIZE", field.DefaultBatchSize),
			Workers:   getEnvInt("WORKERS", runtime.NumCPU()),
		},
		Render: RenderConfig{
			Scale:             getEnvInt("SCALE", imaging.DefaultScale),
			CollapseThreshold: getEnvFloat("COLLAPSE_THRESHOLD", imaging.DefaultCollapseThreshold),
		},
		OCR: OCRConfig{
			Language:      getEnv("OCR_LANGUAGE", ocr.DefaultLanguage),
			TessdataDir:   getEnv("OCR_TESSDATA_DIR", ""),
			MinConfidence: getEnvFloat("OCR_MIN_CONFIDENCE", 0.5),
		},
	}, nil
}

// Validate reports the first setting that is out of range.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%sLOG_LEVEL must be one of debug, info, warn, error; got %q", envPrefix, c.LogLevel)
	}
	if c.Pipeline.BatchSize <= 0 {
		return fmt.Errorf("%sBATCH_SIZE must be positive, got %d", envPrefix, c.Pipeline.BatchSize)
	}
	if c.Pipeline.Workers <= 0 {
		return fmt.Errorf("%sWORKERS must be positive, got %d", envPrefix, c.Pipeline.Workers)
	}
	if c.Render.Scale <= 0 {
		return fmt.Errorf("%sSCALE must be positive, got %d", envPrefix, c.Render.Scale)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("%sCACHE_SIZE must not be negative, got %d", envPrefix, c.CacheSize)
	}
	if c.Render.CollapseThreshold < 0 || c.Render.CollapseThreshold > 1 {
		return fmt.Errorf("%sCOLLAPSE_THRESHOLD must be in [0,1], got %g", envPrefix, c.Render.CollapseThreshold)
	}
	if c.OCR.MinConfidence < 0 || c.OCR.MinConfidence > 1 {
		return fmt.Errorf("%sOCR_MIN_CONFIDENCE must be in [0,1], got %g", envPrefix, c.OCR.MinConfidence)
	}
	return nil
}

// Params returns the tuned pipeline constants with the configured batching.
func (c *Config) Params() field.Params {
	p := field.DefaultParams()
	p.BatchSize = c.Pipeline.BatchSize
	p.Workers = c.Pipeline.Workers
	return p
}

// OCROptions returns the recognition options for ocr.ExtractWords.
func (c *Config) OCROptions() ocr.Options {
	return ocr.Options{
		Language:      c.OCR.Language,
		TessdataDir:   c.OCR.TessdataDir,
		MinConfidence: c.OCR.MinConfidence,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(envPrefix + key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(envPrefix + key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(envPrefix + key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}
