package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/ghodss/yaml"
	validator "gopkg.in/go-playground/validator.v9"
)

const (
	// ConfigPathEnv points to the YAML config file
	ConfigPathEnv = "GREEKS_CONFIG_PATH"
	// OutputDirEnv overrides api.output_dir
	OutputDirEnv = "GREEKS_OUTPUT_DIR"
)

var configPaths = []string{
	"/etc/greeks/config.yml",
	"./utils/config.yml",
}

type GreeksConfig struct {
	API   APIConfig   `json:"api"`
	Audit AuditConfig `json:"audit"`
	Plot  PlotConfig  `json:"plot"`
}

type APIConfig struct {
	Address         string `json:"address" validate:"required"`
	OutputDir       string `json:"output_dir" validate:"required"`
	ReadTimeout     int    `json:"read_timeout" validate:"gte=0"`     // seconds
	WriteTimeout    int    `json:"write_timeout" validate:"gte=0"`    // seconds
	ShutdownTimeout int    `json:"shutdown_timeout" validate:"gte=0"` // seconds
}

type AuditConfig struct {
	Enabled    bool   `json:"enabled"`
	DBPath     string `json:"db_path" validate:"required_with=Enabled"`
	MaxRecords int    `json:"max_records" validate:"gte=0"`
}

type PlotConfig struct {
	OutputDir string           `json:"output_dir" validate:"required"`
	Scenarios []ScenarioConfig `json:"scenarios" validate:"dive"`
}

type ScenarioConfig struct {
	CSV  string `json:"csv" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// Default configuration used when no config file is found
func Default() GreeksConfig {
	return GreeksConfig{
		API: APIConfig{
			Address:         ":8080",
			OutputDir:       "/var/task/output",
			ReadTimeout:     30,
			WriteTimeout:    120,
			ShutdownTimeout: 15,
		},
		Audit: AuditConfig{
			DBPath:     "/var/lib/greeks/audit.db",
			MaxRecords: 10000,
		},
		Plot: PlotConfig{
			OutputDir: "plots",
			Scenarios: []ScenarioConfig{
				{CSV: "bs_fd_vs_complex_scenario1.csv", Name: "Scenario 1 (ATM)"},
				{CSV: "bs_fd_vs_complex_scenario2.csv", Name: "Scenario 2 (Stress)"},
			},
		},
	}
}

// LoadConfig load greeks config from file, falling back to defaults
func LoadConfig() (config GreeksConfig, err error) {
	config = Default()
	// a scenarios list in the file replaces the defaults, it is not merged
	config.Plot.Scenarios = nil

	yamlFile, err := readConfigFile()
	if err != nil {
		return
	}
	if yamlFile != nil {
		err = yaml.Unmarshal(yamlFile, &config)
		if err != nil {
			return
		}
	}

	if len(config.Plot.Scenarios) == 0 {
		config.Plot.Scenarios = Default().Plot.Scenarios
	}

	if outputDir := os.Getenv(OutputDirEnv); outputDir != "" {
		config.API.OutputDir = outputDir
	}

	err = Validate(config)
	return
}

// Validate checks the struct tags of config
func Validate(config GreeksConfig) error {
	validate := validator.New()
	return validate.Struct(config)
}

// Timeout converts a seconds setting to a duration
func Timeout(seconds int) time.Duration {
	return time.Duration(seconds) * time.Second
}

// readConfigFile returns nil content when no config file exists. A path set
// through GREEKS_CONFIG_PATH must exist.
func readConfigFile() ([]byte, error) {
	if configPath := os.Getenv(ConfigPathEnv); configPath != "" {
		return os.ReadFile(configPath)
	}

	for _, path := range configPaths {
		yamlFile, err := os.ReadFile(path)
		if err == nil {
			log.Println("load config from : ", path)
			return yamlFile, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	return nil, nil
}
