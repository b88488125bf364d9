package workflow

import (
	"fmt"
	"slices"
	"strings"
)

// InstallMethod selects how a job provisions its Python environment
type InstallMethod string

const (
	InstallConda   InstallMethod = "conda"
	InstallVanilla InstallMethod = "vanilla"
	InstallPixi    InstallMethod = "pixi"
)

const (
	DefaultPython   = "3.11"
	DefaultPlatform = "ubuntu-latest"
	DefaultTimeout  = 30 // minutes
)

// TestOptions parameterizes the composite step factories of a test job.
// Key, Name, Install, Env and Packages are required. Python, Platform and
// Timeout fall back to DefaultPython, DefaultPlatform and DefaultTimeout;
// TestArgs defaults to none and the environment check runs unless
// SkipCheck is set
type TestOptions struct {
	Key       string
	Name      string
	Install   InstallMethod
	Env       string
	Packages  []string
	Python    string
	Platform  string
	TestArgs  []string
	SkipCheck bool
	Timeout   int
}

// InstallMethods lists the supported install methods
func InstallMethods() []InstallMethod {
	return []InstallMethod{InstallConda, InstallVanilla, InstallPixi}
}

// ParseInstallMethod converts a configured install method name
func ParseInstallMethod(s string) (InstallMethod, error) {
	m := InstallMethod(strings.TrimSpace(s))
	if !m.IsValid() {
		return "", ConfigError{
			Field:  "install",
			Reason: fmt.Sprintf("%q", s),
			Err:    ErrUnsupportedInstall,
		}
	}
	return m, nil
}

// IsValid reports whether the method has a provisioning strategy
func (m InstallMethod) IsValid() bool {
	_, ok := provisioners[m]
	return ok
}

// Validate checks that every required field is present
func (o TestOptions) Validate() error {
	required := []struct {
		field, value string
	}{
		{"key", o.Key},
		{"name", o.Name},
		{"env", o.Env},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return ConfigError{Field: r.field, Reason: "must not be empty"}
		}
	}

	if !o.Install.IsValid() {
		return ConfigError{
			Field:  "install",
			Reason: fmt.Sprintf("%q", o.Install),
			Err:    ErrUnsupportedInstall,
		}
	}

	if len(o.Packages) == 0 {
		return ConfigError{Field: "packages", Err: ErrNoPackages}
	}
	for i, pkg := range o.Packages {
		if strings.TrimSpace(pkg) == "" {
			return ConfigError{
				Field:  fmt.Sprintf("packages[%d]", i),
				Reason: "must not be blank",
			}
		}
	}

	if o.Timeout < 0 {
		return ConfigError{Field: "timeout", Reason: "must not be negative"}
	}
	return nil
}

// WithDefaults returns a copy with unset optional fields filled in
func (o TestOptions) WithDefaults() TestOptions {
	res := o
	res.Packages = slices.Clone(o.Packages)
	res.TestArgs = slices.Clone(o.TestArgs)
	if res.Python == "" {
		res.Python = DefaultPython
	}
	if res.Platform == "" {
		res.Platform = DefaultPlatform
	}
	if res.Timeout == 0 {
		res.Timeout = DefaultTimeout
	}
	return res
}
