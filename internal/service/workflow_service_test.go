package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/shauryashaurya/lkci/internal"
	"github.com/shauryashaurya/lkci/internal/store"
	"github.com/shauryashaurya/lkci/internal/workflow"
	"github.com/shauryashaurya/lkci/testutil"
)

func testProject() *store.Project {
	return &store.Project{
		Name:      "Automatic Tests",
		Branches:  []string{"main"},
		Schedules: []string{"0 4 * * 0"},
		Packages:  []string{"a", "b"},
		Datasets:  []string{"ml-100k", "ml-1m"},
		Jobs: []store.ProjectJob{
			{Key: "test-conda", Name: "Test with Conda", Install: "conda", Env: "test-env"},
			{
				Key:            "test-pixi",
				Name:           "Test with Pixi",
				Install:        "pixi",
				Env:            "test",
				Python:         "3.12",
				Platform:       "macos-latest",
				Packages:       []string{"b"},
				SkipCheck:      true,
				TimeoutMinutes: 60,
			},
		},
	}
}

func newTestService(p *store.Project, err error) (*WorkflowService, *testutil.MockProjectStore) {
	m := new(testutil.MockProjectStore)
	m.On("ReadProject", mock.Anything).Return(p, err)
	return NewWorkflowService(m, internal.NewDefaultConfiguration(), nil), m
}

func TestWorkflowService_ComposeWorkflow(t *testing.T) {
	t.Run("success - project jobs are composed in order", func(t *testing.T) {
		// arrange
		svc, m := newTestService(testProject(), nil)

		// act
		wf, err := svc.ComposeWorkflow(context.Background())

		// assert
		require.NoError(t, err)
		m.AssertExpectations(t)
		require.Len(t, wf.Jobs, 2)
		assert.Equal(t, "Automatic Tests", wf.Name)

		conda := wf.Jobs[0].Job
		assert.Equal(t, "test-conda", wf.Jobs[0].ID)
		assert.Equal(t, "ubuntu-latest", conda.RunsOn)
		assert.Equal(t, 30, conda.TimeoutMinutes)
		assert.Len(t, conda.Steps, 11)

		pixi := wf.Jobs[1].Job
		assert.Equal(t, "macos-latest", pixi.RunsOn)
		assert.Equal(t, 60, pixi.TimeoutMinutes)
		assert.Equal(t, "Install b", pixi.Steps[3].Name)
		assert.Len(t, pixi.Steps, 10)
	})

	t.Run("success - end-to-end conda job layout", func(t *testing.T) {
		// arrange
		p := testProject()
		p.Jobs = p.Jobs[:1]
		svc, _ := newTestService(p, nil)

		// act
		wf, err := svc.ComposeWorkflow(context.Background())

		// assert
		require.NoError(t, err)
		steps := wf.Jobs[0].Job.Steps
		uses := make([]string, len(steps))
		for i, s := range steps {
			uses[i] = s.Uses
		}
		assert.Equal(t, []string{
			workflow.CheckoutAction,
			workflow.MicromambaAction,
			workflow.CacheAction,
			"", "",
			workflow.DataAction,
			workflow.DataAction,
			"", "", "",
			workflow.UploadAction,
		}, uses)
		ds, _ := steps[5].With.Get("dataset")
		assert.Equal(t, "ml-100k", ds)
		ds, _ = steps[6].With.Get("dataset")
		assert.Equal(t, "ml-1m", ds)
	})

	t.Run("fail - store error is returned", func(t *testing.T) {
		svc, _ := newTestService(nil, errors.New("boom"))

		_, err := svc.ComposeWorkflow(context.Background())

		assert.EqualError(t, err, "boom")
	})

	t.Run("fail - unsupported install method", func(t *testing.T) {
		p := testProject()
		p.Jobs[1].Install = "brew"
		svc, _ := newTestService(p, nil)

		wf, err := svc.ComposeWorkflow(context.Background())

		assert.ErrorIs(t, err, workflow.ErrUnsupportedInstall)
		assert.Contains(t, err.Error(), "job test-pixi")
		assert.Nil(t, wf)
	})

	t.Run("fail - empty dataset list", func(t *testing.T) {
		p := testProject()
		p.Datasets = nil
		svc, _ := newTestService(p, nil)

		_, err := svc.ComposeWorkflow(context.Background())

		assert.ErrorIs(t, err, workflow.ErrNoDatasets)
	})
}

func TestWorkflowService_RenderWorkflow(t *testing.T) {
	t.Run("success - rendering is deterministic", func(t *testing.T) {
		svc, _ := newTestService(testProject(), nil)

		a, err := svc.RenderWorkflow(context.Background())
		require.NoError(t, err)
		b, err := svc.RenderWorkflow(context.Background())
		require.NoError(t, err)

		assert.Equal(t, a, b)
		assert.Contains(t, string(a), "0 4 * * 0")
	})
}

func TestWorkflowService_WriteAndCheckWorkflow(t *testing.T) {
	t.Run("success - written workflow passes the check", func(t *testing.T) {
		// arrange
		svc, _ := newTestService(testProject(), nil)
		dir := filepath.Join(t.TempDir(), ".github", "workflows")

		// act
		path, err := svc.WriteWorkflow(context.Background(), dir)

		// assert
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, internal.WorkflowFile), path)
		assert.NoError(t, svc.CheckWorkflow(context.Background(), dir))
	})

	t.Run("fail - missing workflow", func(t *testing.T) {
		svc, _ := newTestService(testProject(), nil)

		err := svc.CheckWorkflow(context.Background(), t.TempDir())

		assert.ErrorIs(t, err, ErrWorkflowOutdated)
		var outdated *WorkflowOutdatedError
		require.ErrorAs(t, err, &outdated)
		assert.True(t, outdated.Missing)
	})

	t.Run("fail - edited workflow", func(t *testing.T) {
		// arrange
		svc, _ := newTestService(testProject(), nil)
		dir := t.TempDir()
		path, err := svc.WriteWorkflow(context.Background(), dir)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, []byte("name: edited\n"), 0o644))

		// act
		err = svc.CheckWorkflow(context.Background(), dir)

		// assert
		var outdated *WorkflowOutdatedError
		require.ErrorAs(t, err, &outdated)
		assert.False(t, outdated.Missing)
		assert.Equal(t, path, outdated.Path)
	})
}

func TestWorkflowService_InitProject(t *testing.T) {
	t.Run("success - default project is written and composes", func(t *testing.T) {
		// arrange
		m := new(testutil.MockProjectStore)
		m.On("WriteProject", mock.Anything, mock.AnythingOfType("*store.Project")).Return(nil)
		svc := NewWorkflowService(m, nil, nil)

		// act
		p, err := svc.InitProject(context.Background())

		// assert
		require.NoError(t, err)
		m.AssertExpectations(t)
		assert.Equal(t, []string{"lenskit", "lenskit-hpf"}, p.Packages)

		composed, _ := newTestService(p, nil)
		wf, err := composed.ComposeWorkflow(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "test-conda", wf.Jobs[0].ID)
	})

	t.Run("fail - store error is returned", func(t *testing.T) {
		m := new(testutil.MockProjectStore)
		m.On("WriteProject", mock.Anything, mock.Anything).Return(errors.New("read-only"))
		svc := NewWorkflowService(m, nil, nil)

		_, err := svc.InitProject(context.Background())

		assert.EqualError(t, err, "read-only")
	})
}
