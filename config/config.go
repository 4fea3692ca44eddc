// Package config loads labscan settings from an optional config file and
// LABSCAN_-prefixed environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/tsawler/labscan/chat"
	"github.com/tsawler/labscan/ocr"
	"github.com/tsawler/labscan/tables"
)

// Supported OCR engines.
const (
	EngineTesseract = "tesseract" // external binary, TSV output
	EngineGosseract = "gosseract" // cgo bindings, needs the ocr build tag
)

// Config holds all labscan configuration.
type Config struct {
	Table     TableConfig
	OCR       OCRConfig
	Chat      ChatConfig
	Log       LogConfig
	Normalize NormalizeConfig
}

// TableConfig holds the geometric reconstruction thresholds.
type TableConfig struct {
	RowThreshold     float64 `mapstructure:"row_threshold"`
	CellGapThreshold float64 `mapstructure:"cell_gap_threshold"`
	MinCells         int     `mapstructure:"min_cells"`
}

// OCRConfig holds token recognizer settings.
type OCRConfig struct {
	Engine        string  `mapstructure:"engine"`
	Tesseract     string  `mapstructure:"tesseract"`
	Language      string  `mapstructure:"language"`
	PSM           int     `mapstructure:"psm"`
	TessdataDir   string  `mapstructure:"tessdata_dir"`
	MinConfidence float64 `mapstructure:"min_confidence"`
}

// ChatConfig holds chat-completion endpoint settings.
type ChatConfig struct {
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Language    string        `mapstructure:"language"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// NormalizeConfig points at an optional YAML file of extra record profiles.
type NormalizeConfig struct {
	ProfilesFile string `mapstructure:"profiles_file"`
}

// Load reads configuration from path (if non-empty) and from environment
// variables with the LABSCAN_ prefix. Environment variables win over the file.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LABSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// The API key is commonly exported under its provider name.
	_ = v.BindEnv("chat.api_key", "LABSCAN_CHAT_API_KEY", "OPENAI_API_KEY")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	cfg.OCR.Engine = strings.ToLower(strings.TrimSpace(cfg.OCR.Engine))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := tables.DefaultConfig()
	v.SetDefault("table.row_threshold", def.RowThreshold)
	v.SetDefault("table.cell_gap_threshold", def.CellGapThreshold)
	v.SetDefault("table.min_cells", def.MinCells)

	v.SetDefault("ocr.engine", EngineTesseract)
	v.SetDefault("ocr.tesseract", "tesseract")
	v.SetDefault("ocr.language", "eng+tur")
	v.SetDefault("ocr.psm", int(ocr.PSM_AUTO))
	v.SetDefault("ocr.tessdata_dir", "")
	v.SetDefault("ocr.min_confidence", 0.0)

	v.SetDefault("chat.api_key", "")
	v.SetDefault("chat.base_url", chat.DefaultBaseURL)
	v.SetDefault("chat.model", chat.DefaultModel)
	v.SetDefault("chat.temperature", chat.DefaultTemperature)
	v.SetDefault("chat.timeout", chat.DefaultTimeout)
	v.SetDefault("chat.max_tokens", 0)
	v.SetDefault("chat.language", "en")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	v.SetDefault("normalize.profiles_file", "")
}

// Validate checks values that would otherwise fail late in the pipeline.
func (c *Config) Validate() error {
	if err := c.Tables().Validate(); err != nil {
		return fmt.Errorf("table: %w", err)
	}
	switch c.OCR.Engine {
	case EngineTesseract, EngineGosseract:
	default:
		return fmt.Errorf("ocr: unknown engine %q", c.OCR.Engine)
	}
	if c.Chat.Timeout < 0 {
		return fmt.Errorf("chat: negative timeout %s", c.Chat.Timeout)
	}
	return nil
}

// Tables returns the reconstruction thresholds.
func (c *Config) Tables() tables.Config {
	return tables.Config{
		RowThreshold:     c.Table.RowThreshold,
		CellGapThreshold: c.Table.CellGapThreshold,
		MinCells:         c.Table.MinCells,
	}
}

// TSV returns settings for ocr.NewTSVRecognizer.
func (c *Config) TSV() ocr.TSVConfig {
	return ocr.TSVConfig{
		Tesseract:     c.OCR.Tesseract,
		Language:      c.OCR.Language,
		PSM:           ocr.PageSegMode(c.OCR.PSM),
		TessdataDir:   c.OCR.TessdataDir,
		MinConfidence: c.OCR.MinConfidence,
	}
}

// ChatClient returns settings for chat.NewClient.
func (c *Config) ChatClient() chat.Config {
	return chat.Config{
		APIKey:      c.Chat.APIKey,
		BaseURL:     c.Chat.BaseURL,
		Model:       c.Chat.Model,
		Temperature: c.Chat.Temperature,
		Timeout:     c.Chat.Timeout,
		MaxTokens:   c.Chat.MaxTokens,
	}
}
