package workflow

import (
	"fmt"
	"slices"
)

// LoginShell makes every run step start a login shell, so environments
// activated by the provisioning steps are visible to later steps
const LoginShell = "bash -el {0}"

type (
	// Job is a complete job description: display name, runner label and
	// the ordered steps to execute
	Job struct {
		Name           string       `yaml:"name"`
		RunsOn         string       `yaml:"runs-on"`
		TimeoutMinutes int          `yaml:"timeout-minutes,omitempty"`
		Defaults       *JobDefaults `yaml:"defaults,omitempty"`
		Steps          []Step       `yaml:"steps"`
	}

	JobDefaults struct {
		Run RunDefaults `yaml:"run"`
	}

	RunDefaults struct {
		Shell string `yaml:"shell,omitempty"`
	}

	// JobSpec is everything a test job is composed from
	JobSpec struct {
		Options  TestOptions
		Datasets []string
	}
)

// NewJob wraps steps with job metadata. The steps are copied
func NewJob(name, runsOn string, steps []Step) (Job, error) {
	if name == "" {
		return Job{}, fmt.Errorf("%w: name is empty", ErrInvalidJob)
	}
	if runsOn == "" {
		return Job{}, fmt.Errorf("%w: %q has no runner", ErrInvalidJob, name)
	}
	if len(steps) == 0 {
		return Job{}, fmt.Errorf("%w: %q has no steps", ErrInvalidJob, name)
	}
	for _, s := range steps {
		if err := s.Validate(); err != nil {
			return Job{}, err
		}
	}
	return Job{
		Name:   name,
		RunsOn: runsOn,
		Steps:  slices.Clone(steps),
	}, nil
}

// TestJob composes a test job. Steps are concatenated in dependency order:
// checkout, environment setup, data staging, tests, coverage. Any
// configuration error aborts the whole composition
func TestJob(spec JobSpec) (Job, error) {
	if err := spec.Options.Validate(); err != nil {
		return Job{}, err
	}
	opts := spec.Options.WithDefaults()

	setup, err := SetupSteps(opts)
	if err != nil {
		return Job{}, err
	}
	data, err := DataSteps(spec.Datasets)
	if err != nil {
		return Job{}, err
	}
	coverage, err := CoverageSteps(opts)
	if err != nil {
		return Job{}, err
	}

	steps := Concat(
		[]Step{CheckoutStep()},
		setup,
		data,
		TestSteps(opts),
		coverage,
	)
	job, err := NewJob(opts.Name, opts.Platform, steps)
	if err != nil {
		return Job{}, err
	}
	job.TimeoutMinutes = opts.Timeout
	job.Defaults = &JobDefaults{Run: RunDefaults{Shell: LoginShell}}
	return job, nil
}

// DefaultJobSpec is the canonical test job of the project
func DefaultJobSpec() JobSpec {
	return JobSpec{
		Options: TestOptions{
			Key:      "test-conda",
			Name:     "Test with Conda",
			Install:  InstallConda,
			Env:      "test-env",
			Packages: []string{"lenskit", "lenskit-hpf"},
		},
		Datasets: []string{"ml-100k", "ml-1m"},
	}
}

// DefaultTestJob composes the canonical test job
func DefaultTestJob() (Job, error) {
	return TestJob(DefaultJobSpec())
}
