package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"

	"github.com/shauryashaurya/lkci/internal"
	"github.com/shauryashaurya/lkci/internal/logging"
	"github.com/shauryashaurya/lkci/internal/store"
	"github.com/shauryashaurya/lkci/internal/util"
	"github.com/shauryashaurya/lkci/internal/workflow"
)

type ProjectReader interface {
	ReadProject(context.Context) (*store.Project, error)
}

type ProjectWriter interface {
	WriteProject(context.Context, *store.Project) error
}

type ProjectStore interface {
	ProjectReader
	ProjectWriter
}

type WorkflowService struct {
	projectStore ProjectStore
	config       *internal.Configuration
	logger       *slog.Logger
}

func NewWorkflowService(
	projectStore ProjectStore,
	config *internal.Configuration,
	logger *slog.Logger,
) *WorkflowService {
	if config == nil {
		config = internal.NewDefaultConfiguration()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &WorkflowService{
		projectStore: projectStore,
		config:       config,
		logger:       logger,
	}
}

// WorkflowFile is the file name the workflow is written to
func (s *WorkflowService) WorkflowFile() string {
	return s.config.WorkflowFile
}

// ComposeWorkflow reads the project and composes every job it declares
func (s *WorkflowService) ComposeWorkflow(
	ctx context.Context,
) (*workflow.Workflow, error) {
	p, err := s.projectStore.ReadProject(ctx)
	if err != nil {
		return nil, err
	}

	spec, err := s.workflowSpec(p)
	if err != nil {
		return nil, err
	}

	wf, err := workflow.NewWorkflow(spec)
	if err != nil {
		return nil, err
	}
	for _, e := range wf.Jobs {
		s.logger.Debug("composed job",
			logging.JobID(e.ID),
			logging.Steps(len(e.Job.Steps)),
		)
	}
	return wf, nil
}

// RenderWorkflow composes the workflow and renders it as YAML
func (s *WorkflowService) RenderWorkflow(ctx context.Context) ([]byte, error) {
	wf, err := s.ComposeWorkflow(ctx)
	if err != nil {
		return nil, err
	}
	return wf.Marshal()
}

// WriteWorkflow renders the workflow into dir and returns the file path
func (s *WorkflowService) WriteWorkflow(
	ctx context.Context,
	dir string,
) (string, error) {
	b, err := s.RenderWorkflow(ctx)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, s.config.WorkflowFile)
	if err := util.WriteFile(path, b); err != nil {
		return "", err
	}
	s.logger.Info("wrote workflow", logging.Path(path))
	return path, nil
}

// CheckWorkflow reports a WorkflowOutdatedError when the workflow file in
// dir is missing or differs from a fresh render
func (s *WorkflowService) CheckWorkflow(ctx context.Context, dir string) error {
	want, err := s.RenderWorkflow(ctx)
	if err != nil {
		return err
	}
	path := filepath.Join(dir, s.config.WorkflowFile)
	got, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return NewWorkflowOutdatedError(path, true)
	}
	if err != nil {
		return err
	}
	if !bytes.Equal(got, want) {
		return NewWorkflowOutdatedError(path, false)
	}
	s.logger.Info("workflow is up to date", logging.Path(path))
	return nil
}

// InitProject writes the default project catalog
func (s *WorkflowService) InitProject(ctx context.Context) (*store.Project, error) {
	p := DefaultProject()
	if err := s.projectStore.WriteProject(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// DefaultProject is a catalog holding only the canonical test job
func DefaultProject() *store.Project {
	js := workflow.DefaultJobSpec()
	o := js.Options
	return &store.Project{
		Name:     "Automatic Tests",
		Branches: []string{"main"},
		Packages: slices.Clone(o.Packages),
		Datasets: slices.Clone(js.Datasets),
		Jobs: []store.ProjectJob{
			{
				Key:     o.Key,
				Name:    o.Name,
				Install: string(o.Install),
				Env:     o.Env,
			},
		},
	}
}

func (s *WorkflowService) workflowSpec(
	p *store.Project,
) (workflow.WorkflowSpec, error) {
	spec := workflow.WorkflowSpec{
		Name:      p.Name,
		Branches:  slices.Clone(p.Branches),
		Schedules: slices.Clone(p.Schedules),
		Jobs:      make([]workflow.JobSpec, 0, len(p.Jobs)),
	}
	for _, j := range p.Jobs {
		js, err := s.jobSpec(p, j)
		if err != nil {
			return workflow.WorkflowSpec{}, err
		}
		spec.Jobs = append(spec.Jobs, js)
	}
	return spec, nil
}

func (s *WorkflowService) jobSpec(
	p *store.Project,
	j store.ProjectJob,
) (workflow.JobSpec, error) {
	install, err := workflow.ParseInstallMethod(j.Install)
	if err != nil {
		return workflow.JobSpec{}, fmt.Errorf("job %s: %w", j.Key, err)
	}

	opts := workflow.TestOptions{
		Key:       j.Key,
		Name:      j.Name,
		Install:   install,
		Env:       j.Env,
		Packages:  slices.Clone(p.Packages),
		Python:    firstNonEmpty(j.Python, s.config.DefaultPython),
		Platform:  firstNonEmpty(j.Platform, s.config.DefaultRunner),
		TestArgs:  slices.Clone(j.TestArgs),
		SkipCheck: j.SkipCheck,
		Timeout:   j.TimeoutMinutes,
	}
	if len(j.Packages) > 0 {
		opts.Packages = slices.Clone(j.Packages)
	}
	if opts.Timeout == 0 {
		opts.Timeout = s.config.JobTimeout.Minutes()
	}

	return workflow.JobSpec{
		Options:  opts,
		Datasets: slices.Clone(p.Datasets),
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
