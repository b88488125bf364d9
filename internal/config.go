package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shauryashaurya/lkci/internal/util"
)

type MinutesDuration time.Duration

func NewMinutesDuration(minutes int64) MinutesDuration {
	return MinutesDuration(time.Duration(minutes) * time.Minute)
}

func (md MinutesDuration) Minutes() int {
	return int(time.Duration(md) / time.Minute)
}

func (md MinutesDuration) MarshalJSON() ([]byte, error) {
	minutes := float64(time.Duration(md)) / float64(time.Minute)
	return json.Marshal(minutes)
}

func (md *MinutesDuration) UnmarshalJSON(data []byte) error {
	var minutes float64
	if err := json.Unmarshal(data, &minutes); err != nil {
		return err
	}
	*md = MinutesDuration(minutes * float64(time.Minute))
	return nil
}

// Configuration holds generator defaults that projects may omit
type Configuration struct {
	WorkflowFile  string          `json:"workflow_file"`
	DefaultRunner string          `json:"default_runner"`
	DefaultPython string          `json:"default_python"`
	JobTimeout    MinutesDuration `json:"job_timeout_minutes"`
}

func NewDefaultConfiguration() *Configuration {
	return &Configuration{
		WorkflowFile:  WorkflowFile,
		DefaultRunner: "ubuntu-latest",
		DefaultPython: "3.11",
		JobTimeout:    NewMinutesDuration(30),
	}
}

// InitializeConfiguration reads the configuration file at path. When the
// file does not exist it is created with the defaults. Fields missing
// from an existing file keep their default values
func InitializeConfiguration(path string) (*Configuration, error) {
	config := NewDefaultConfiguration()

	configFileExists, err := util.PathExists(path)
	if err != nil {
		return nil, err
	}
	if !configFileExists {
		if err := UpdateConfiguration(path, config); err != nil {
			return nil, err
		}
		return config, nil
	}

	configBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(configBytes, config); err != nil {
		return nil, fmt.Errorf("err parsing %s: %w", path, err)
	}
	if config.WorkflowFile == "" {
		return nil, fmt.Errorf("err parsing %s: workflow_file is empty", path)
	}
	return config, nil
}

func UpdateConfiguration(path string, config *Configuration) error {
	b, err := json.MarshalIndent(config, "", "    ")
	if err != nil {
		return err
	}
	return util.WriteFile(path, b)
}
