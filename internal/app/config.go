package app

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds application configuration
type Config struct {
	BackendURL      string
	ProfileFile     string
	Seed            int64
	HistoryDB       string
	SpreadsheetID   string
	CredentialsFile string
	NotifyListen    string
}

// SetupEnvironment loads .env file and configures zerolog output and log level.
func SetupEnvironment() {
	// Load .env file if it exists
	err := godotenv.Load()

	// Configure logging
	if os.Getenv("ENV") == "production" {
		zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
		log.Logger = log.Output(os.Stderr)
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}

	levelStr := strings.ToLower(os.Getenv("LOGLEVEL"))
	switch levelStr {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "warn", "warning":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "disabled":
		zerolog.SetGlobalLevel(zerolog.Disabled)
	case "":
		// Default based on environment
		if os.Getenv("ENV") == "production" {
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		log.Warn().Msgf("Unknown LOGLEVEL '%s', defaulting to info.", levelStr)
	}

	// wait until now to report on the .env file so we have the chance to set up logging first
	if err == nil {
		log.Debug().Msg("Loaded environment variables from .env file.")
	} else {
		log.Debug().Msg("No .env file found or error loading .env file; proceeding with existing environment variables.")
	}
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	backendURL := strings.TrimSpace(os.Getenv("LOADSHEET_BACKEND_URL"))
	if backendURL == "" {
		return nil, &ConfigurationError{Msg: "LOADSHEET_BACKEND_URL environment variable is required"}
	}

	seed := time.Now().UnixNano()
	if seedStr := os.Getenv("LOADSHEET_SEED"); seedStr != "" {
		parsed, err := strconv.ParseInt(seedStr, 10, 64)
		if err != nil {
			return nil, &ConfigurationError{Msg: fmt.Sprintf("LOADSHEET_SEED must be an integer, got %q", seedStr)}
		}
		seed = parsed
	}

	historyDB := os.Getenv("HISTORY_DB")
	if historyDB == "" {
		historyDB = "loadsheets.db"
	}

	credentialsFile := os.Getenv("GOOGLE_CREDENTIALS_FILE")
	if credentialsFile == "" {
		credentialsFile = "credentials.json"
	}

	return &Config{
		BackendURL:      backendURL,
		ProfileFile:     os.Getenv("AIRCRAFT_PROFILE"),
		Seed:            seed,
		HistoryDB:       historyDB,
		SpreadsheetID:   os.Getenv("SPREADSHEET_ID"),
		CredentialsFile: credentialsFile,
		NotifyListen:    os.Getenv("NOTIFY_LISTEN"),
	}, nil
}

// LoadProfile returns the aircraft profile to use: the built-in A20N profile
// when no profile file is configured, otherwise a profile decoded from JSON.
func (c *Config) LoadProfile() (AircraftProfile, error) {
	if c.ProfileFile == "" {
		return DefaultProfile, nil
	}

	data, err := os.ReadFile(c.ProfileFile)
	if err != nil {
		return AircraftProfile{}, &ConfigurationError{Msg: fmt.Sprintf("failed to read aircraft profile %s: %v", c.ProfileFile, err)}
	}

	var profile AircraftProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		return AircraftProfile{}, &ConfigurationError{Msg: fmt.Sprintf("failed to decode aircraft profile %s: %v", c.ProfileFile, err)}
	}

	if profile.TotalZoneCapacity() == 0 {
		return AircraftProfile{}, &ConfigurationError{Msg: fmt.Sprintf("aircraft profile %s has zero total zone capacity", c.ProfileFile)}
	}

	return profile, nil
}

// LoadFlightPlan decodes a flight plan from a JSON file.
func LoadFlightPlan(path string) (*FlightPlan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read flight plan %s: %w", path, err)
	}

	var plan FlightPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, &ParseError{Source: "flight plan", Err: err}
	}

	if plan.Passengers < 0 {
		return nil, &ParseError{Source: "flight plan", Err: fmt.Errorf("negative passenger count %d", plan.Passengers)}
	}

	return &plan, nil
}

// GetRequiredEnv gets an environment variable or panics if not found
func GetRequiredEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		log.Fatal().Str("key", key).Msg("Required environment variable not set")
	}
	return value
}
