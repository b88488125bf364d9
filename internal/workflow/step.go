package workflow

import (
	"fmt"
	"slices"

	"github.com/goccy/go-yaml"
)

// Param is a single named action input or environment variable
type Param struct {
	Name  string
	Value any
}

// Params is an ordered mapping. It marshals as a YAML mapping in insertion
// order so that generated files are stable across runs
type Params []Param

// Get returns the value of the first parameter with the given name
func (p Params) Get(name string) (any, bool) {
	for _, param := range p {
		if param.Name == name {
			return param.Value, true
		}
	}
	return nil, false
}

func (p Params) MarshalYAML() (any, error) {
	ms := make(yaml.MapSlice, len(p))
	for i, param := range p {
		ms[i] = yaml.MapItem{Key: param.Name, Value: param.Value}
	}
	return ms, nil
}

// Step is one action within a job: either an inline script (Run) or a
// reference to a reusable action (Uses) with its inputs (With).
// Steps are values; the constructors copy their parameters and the With
// and Env helpers return modified copies
type Step struct {
	ID   string `yaml:"id,omitempty"`
	Name string `yaml:"name"`
	Uses string `yaml:"uses,omitempty"`
	With Params `yaml:"with,omitempty"`
	Run  string `yaml:"run,omitempty"`
	Env  Params `yaml:"env,omitempty"`
}

// RunStep creates a script step. The commands are rendered with Script
func RunStep(name string, commands ...string) Step {
	return Step{
		Name: name,
		Run:  Script(commands...),
	}
}

// UsesStep creates a step that invokes a reusable action
func UsesStep(name, action string, with ...Param) Step {
	return Step{
		Name: name,
		Uses: action,
		With: slices.Clone(Params(with)),
	}
}

// WithID returns a copy of the step with its id set
func (s Step) WithID(id string) Step {
	res := s
	res.ID = id
	return res
}

// WithEnv returns a copy of the step with the given variables appended to
// its environment
func (s Step) WithEnv(env ...Param) Step {
	res := s
	res.Env = append(slices.Clone(s.Env), env...)
	return res
}

// IsAction reports whether the step references a reusable action
func (s Step) IsAction() bool {
	return s.Uses != ""
}

// Validate checks that the step has a name and exactly one of an inline
// script or an action reference
func (s Step) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: step name is empty", ErrInvalidStep)
	}
	switch {
	case s.Run == "" && s.Uses == "":
		return fmt.Errorf("%w: %q has neither run nor uses", ErrInvalidStep, s.Name)
	case s.Run != "" && s.Uses != "":
		return fmt.Errorf("%w: %q has both run and uses", ErrInvalidStep, s.Name)
	case s.Run != "" && len(s.With) > 0:
		return fmt.Errorf("%w: %q passes inputs to a script", ErrInvalidStep, s.Name)
	}
	return nil
}

// Concat joins step sequences in argument order. The result is always a
// new slice; the inputs are left untouched
func Concat(seqs ...[]Step) []Step {
	n := 0
	for _, seq := range seqs {
		n += len(seq)
	}
	res := make([]Step, 0, n)
	for _, seq := range seqs {
		res = append(res, seq...)
	}
	return res
}

// Names lists the display names of the steps, in order
func Names(steps []Step) []string {
	res := make([]string, len(steps))
	for i, s := range steps {
		res[i] = s.Name
	}
	return res
}
