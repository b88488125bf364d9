package workflow

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/robfig/cron/v3"

	"github.com/shauryashaurya/lkci/internal/util"
)

// Header is written at the top of every generated workflow file
const Header = "# This file is generated by lkci; do not edit it by hand.\n" +
	"# Regenerate it with `lkci generate`.\n"

type (
	// Workflow is a workflow file: its triggers and its jobs
	Workflow struct {
		Name        string       `yaml:"name"`
		On          Triggers     `yaml:"on"`
		Concurrency *Concurrency `yaml:"concurrency,omitempty"`
		Jobs        JobList      `yaml:"jobs"`
	}

	Triggers struct {
		Push             *BranchFilter `yaml:"push,omitempty"`
		PullRequest      *BranchFilter `yaml:"pull_request,omitempty"`
		Schedule         []Schedule    `yaml:"schedule,omitempty"`
		WorkflowDispatch *struct{}     `yaml:"workflow_dispatch,omitempty"`
	}

	BranchFilter struct {
		Branches []string `yaml:"branches,omitempty"`
	}

	Schedule struct {
		Cron string `yaml:"cron"`
	}

	Concurrency struct {
		Group            string `yaml:"group"`
		CancelInProgress bool   `yaml:"cancel-in-progress"`
	}

	// JobEntry is a job under its workflow-level id
	JobEntry struct {
		ID  string
		Job Job
	}

	// JobList keeps jobs in declaration order when marshaled
	JobList []JobEntry

	// WorkflowSpec is everything a workflow is composed from
	WorkflowSpec struct {
		Name      string
		Branches  []string
		Schedules []string
		Jobs      []JobSpec
	}
)

var scheduleParser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow,
)

func (l JobList) MarshalYAML() (any, error) {
	ms := make(yaml.MapSlice, len(l))
	for i, e := range l {
		ms[i] = yaml.MapItem{Key: e.ID, Value: e.Job}
	}
	return ms, nil
}

// Get returns the job with the given id
func (l JobList) Get(id string) (Job, bool) {
	for _, e := range l {
		if e.ID == id {
			return e.Job, true
		}
	}
	return Job{}, false
}

// JobID derives the workflow-level id of a job from its key
func JobID(key string) string {
	return util.Slugify(key)
}

// NewWorkflow composes every job of spec and assembles them under their
// ids. The first failing job aborts the composition
func NewWorkflow(spec WorkflowSpec) (*Workflow, error) {
	if spec.Name == "" {
		return nil, ConfigError{Field: "name", Reason: "must not be empty"}
	}
	if len(spec.Jobs) == 0 {
		return nil, ConfigError{Field: "jobs", Reason: "must not be empty"}
	}

	wf := &Workflow{
		Name: spec.Name,
		On: Triggers{
			Push:             &BranchFilter{Branches: spec.Branches},
			PullRequest:      &BranchFilter{},
			WorkflowDispatch: &struct{}{},
		},
		Concurrency: &Concurrency{
			Group:            "test-${{ github.ref }}",
			CancelInProgress: true,
		},
		Jobs: make(JobList, 0, len(spec.Jobs)),
	}

	for _, s := range spec.Schedules {
		if _, err := scheduleParser.Parse(s); err != nil {
			return nil, fmt.Errorf("%w: %q: %w", ErrInvalidSchedule, s, err)
		}
		wf.On.Schedule = append(wf.On.Schedule, Schedule{Cron: s})
	}

	seen := map[string]bool{}
	for _, js := range spec.Jobs {
		id := JobID(js.Options.Key)
		if id == "" {
			return nil, ConfigError{Field: "key", Reason: "must not be empty"}
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateJob, id)
		}
		seen[id] = true

		job, err := TestJob(js)
		if err != nil {
			return nil, fmt.Errorf("job %s: %w", id, err)
		}
		wf.Jobs = append(wf.Jobs, JobEntry{ID: id, Job: job})
	}
	return wf, nil
}

// Marshal renders the workflow as YAML, preceded by Header
func (w *Workflow) Marshal() ([]byte, error) {
	b, err := yaml.MarshalWithOptions(w,
		yaml.Indent(2),
		yaml.IndentSequence(true),
		yaml.UseLiteralStyleIfMultiline(true),
	)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(Header)
	buf.Write(b)
	return buf.Bytes(), nil
}
