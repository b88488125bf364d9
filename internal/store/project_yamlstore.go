package store

import (
	"context"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/shauryashaurya/lkci/internal/util"
)

type ProjectYAMLStore struct {
	path string
}

func NewProjectYAMLStore(path string) *ProjectYAMLStore {
	return &ProjectYAMLStore{path: path}
}

func (store *ProjectYAMLStore) Path() string {
	return store.path
}

func (store *ProjectYAMLStore) ReadProject(ctx context.Context) (*Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(store.path)
	if err != nil {
		return nil, fmt.Errorf("err reading project file: %w", err)
	}

	p := new(Project)
	if err := yaml.UnmarshalWithOptions(
		b, p, yaml.DisallowUnknownField(),
	); err != nil {
		return nil, fmt.Errorf("err parsing project file %s: %w", store.path, err)
	}
	return p, nil
}

func (store *ProjectYAMLStore) WriteProject(ctx context.Context, p *Project) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := yaml.MarshalWithOptions(p, yaml.Indent(2), yaml.IndentSequence(true))
	if err != nil {
		return err
	}
	return util.WriteFile(store.path, b)
}
