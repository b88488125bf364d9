package settings

import (
	"bufio"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/shauryashaurya/lkci/internal"
)

func NewSettings() *AppSettings {
	settings := AppSettings{
		ProjectPath: getEnvOrDefault("LKCI_PROJECT", internal.ProjectPath),
		ConfigPath:  getEnvOrDefault("LKCI_CONFIG", internal.ConfigPath),
		OutputDir:   getEnvOrDefault("LKCI_OUTPUT_DIR", internal.WorkflowsDir),
		LogLevel:    getEnvOrDefault("LKCI_LOG_LEVEL", "info"),
	}
	settings.OutputDir = filepath.Clean(settings.OutputDir)
	return &settings
}

func getEnvOrDefault(key, defaultValue string) string {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return defaultValue
	}
	return value
}

type AppSettings struct {
	ProjectPath string
	ConfigPath  string
	OutputDir   string
	LogLevel    string
}

// Level parses LogLevel, falling back to info for unknown names
func (as *AppSettings) Level() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(as.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ReadDotenv exports the variables defined in the dotenv file at path.
// A missing file is not an error
func ReadDotenv(path string) error {
	re := regexp.MustCompile(`^[^0-9][A-Z0-9_]+=.+$`)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) > 0 && line[0] != '#' && re.Match(line) {
			name, value, _ := strings.Cut(string(line), "=")
			name = strings.TrimSpace(name)
			value = strings.TrimSpace(value)
			value = strings.Trim(value, `"`)
			if err := os.Setenv(name, value); err != nil {
				return err
			}
		}
	}
	return scanner.Err()
}
