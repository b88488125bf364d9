package workflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validOptions() TestOptions {
	return TestOptions{
		Key:      "test-conda",
		Name:     "Test with Conda",
		Install:  InstallConda,
		Env:      "test-env",
		Packages: []string{"a", "b"},
	}
}

func TestParseInstallMethod(t *testing.T) {
	t.Run("success - every supported method parses", func(t *testing.T) {
		for _, m := range InstallMethods() {
			got, err := ParseInstallMethod(" " + string(m) + " ")
			assert.NoError(t, err)
			assert.Equal(t, m, got)
		}
	})

	t.Run("fail - unknown method", func(t *testing.T) {
		_, err := ParseInstallMethod("brew")

		assert.ErrorIs(t, err, ErrUnsupportedInstall)
		assert.ErrorIs(t, err, ErrInvalidOptions)
		assert.Contains(t, err.Error(), `"brew"`)
	})
}

func TestInstallMethods_HaveProvisioners(t *testing.T) {
	assert.Len(t, provisioners, len(InstallMethods()))
	for _, m := range InstallMethods() {
		assert.True(t, m.IsValid(), m)
	}
}

func TestTestOptions_Validate(t *testing.T) {
	t.Run("success - complete options", func(t *testing.T) {
		assert.NoError(t, validOptions().Validate())
	})

	cases := []struct {
		name   string
		mutate func(*TestOptions)
		field  string
		target error
	}{
		{"empty key", func(o *TestOptions) { o.Key = "" }, "key", ErrInvalidOptions},
		{"empty name", func(o *TestOptions) { o.Name = " " }, "name", ErrInvalidOptions},
		{"empty env", func(o *TestOptions) { o.Env = "" }, "env", ErrInvalidOptions},
		{"missing install", func(o *TestOptions) { o.Install = "" }, "install", ErrUnsupportedInstall},
		{"unknown install", func(o *TestOptions) { o.Install = "apt" }, "install", ErrUnsupportedInstall},
		{"no packages", func(o *TestOptions) { o.Packages = nil }, "packages", ErrNoPackages},
		{"blank package", func(o *TestOptions) { o.Packages = []string{"a", ""} }, "packages[1]", ErrInvalidOptions},
		{"negative timeout", func(o *TestOptions) { o.Timeout = -1 }, "timeout", ErrInvalidOptions},
	}
	for _, c := range cases {
		t.Run("fail - "+c.name, func(t *testing.T) {
			// arrange
			opts := validOptions()
			c.mutate(&opts)

			// act
			err := opts.Validate()

			// assert
			assert.ErrorIs(t, err, c.target)
			var ce ConfigError
			if assert.ErrorAs(t, err, &ce) {
				assert.Equal(t, c.field, ce.Field)
			}
		})
	}
}

func TestTestOptions_WithDefaults(t *testing.T) {
	t.Run("success - unset optional fields are filled in", func(t *testing.T) {
		opts := validOptions().WithDefaults()

		assert.Equal(t, DefaultPython, opts.Python)
		assert.Equal(t, DefaultPlatform, opts.Platform)
		assert.Equal(t, DefaultTimeout, opts.Timeout)
		assert.False(t, opts.SkipCheck)
	})

	t.Run("success - set fields are kept and slices are copied", func(t *testing.T) {
		// arrange
		orig := validOptions()
		orig.Python = "3.12"
		orig.Platform = "windows-latest"
		orig.Timeout = 45

		// act
		opts := orig.WithDefaults()
		opts.Packages[0] = "changed"

		// assert
		assert.Equal(t, "3.12", opts.Python)
		assert.Equal(t, "windows-latest", opts.Platform)
		assert.Equal(t, 45, opts.Timeout)
		assert.Equal(t, "a", orig.Packages[0])
	})
}
