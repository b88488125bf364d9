package store

import (
	"context"
)

// Project is the catalog the workflow is generated from
type Project struct {
	// Workflow display name
	Name string `yaml:"name"`
	// Branches whose pushes trigger the workflow
	Branches []string `yaml:"branches,omitempty"`
	// Additional triggers in cron syntax
	Schedules []string `yaml:"schedules,omitempty"`
	// Packages tested by every job, in install order
	Packages []string `yaml:"packages"`
	// Datasets staged for every job
	Datasets []string     `yaml:"datasets"`
	Jobs     []ProjectJob `yaml:"jobs"`
}

type ProjectJob struct {
	Key     string `yaml:"key"`
	Name    string `yaml:"name"`
	Install string `yaml:"install"`
	Env     string `yaml:"env"`
	Python  string `yaml:"python,omitempty"`
	// Runner label
	Platform string `yaml:"platform,omitempty"`
	// Overrides the project package list
	Packages       []string `yaml:"packages,omitempty"`
	TestArgs       []string `yaml:"test_args,omitempty"`
	SkipCheck      bool     `yaml:"skip_check,omitempty"`
	TimeoutMinutes int      `yaml:"timeout_minutes,omitempty"`
}

type ProjectStore interface {
	ReadProject(context.Context) (*Project, error)
	WriteProject(context.Context, *Project) error
}
