package workflow

import (
	"strings"

	"github.com/google/uuid"
)

const (
	CacheAction       = "actions/cache@v4"
	MicromambaAction  = "mamba-org/setup-micromamba@v1"
	SetupPythonAction = "actions/setup-python@v5"
	SetupUVAction     = "astral-sh/setup-uv@v3"
	SetupPixiAction   = "prefix-dev/setup-pixi@v0.8.1"
)

// provisioner is the strategy for one install method. Every method emits
// its provisioning steps, a cache step over cachePath, one install script
// and one check script
type provisioner struct {
	label       string
	cachePrefix string
	cachePath   string
	provision   func(TestOptions) []Step
	install     func(TestOptions) string
	check       func(TestOptions) string
}

var provisioners = map[InstallMethod]provisioner{
	InstallConda: {
		label:       "Conda",
		cachePrefix: "conda",
		cachePath:   "~/micromamba/pkgs",
		provision:   provisionConda,
		install:     installConda,
		check: func(TestOptions) string {
			return Script("python -m pip check")
		},
	},
	InstallVanilla: {
		label:       "uv",
		cachePrefix: "uv",
		cachePath:   "~/.cache/uv",
		provision:   provisionVanilla,
		install:     installVanilla,
		check: func(o TestOptions) string {
			return Script("uv pip check --python " + o.Env + "/bin/python")
		},
	},
	InstallPixi: {
		label:       "Pixi",
		cachePrefix: "pixi",
		cachePath:   "~/.cache/rattler/cache",
		provision:   provisionPixi,
		install:     installPixi,
		check: func(o TestOptions) string {
			return Script("pixi run -e " + o.Env + " python -m pip check")
		},
	},
}

var cacheKeyNamespace = uuid.NewSHA1(
	uuid.NameSpaceURL, []byte("https://lenskit.org/lkci/cache-key"),
)

// SetupSteps provisions the environment described by opts: the install
// method's tooling, then the package cache, then the package install, then
// (unless SkipCheck) a dependency check. Invalid options fail before any
// step is built
func SetupSteps(opts TestOptions) ([]Step, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	opts = opts.WithDefaults()
	p := provisioners[opts.Install]

	steps := p.provision(opts)
	steps = append(steps,
		UsesStep("Cache "+p.label+" packages", CacheAction,
			Param{"path", p.cachePath},
			Param{"key", cacheKey(p, opts)},
		),
		RunStep("Install "+strings.Join(opts.Packages, ", "), p.install(opts)).
			WithID("install"),
	)
	if !opts.SkipCheck {
		steps = append(steps, RunStep("Check environment", p.check(opts)))
	}
	return steps, nil
}

// CacheKey derives the dependency cache key for opts. The key is a pure
// function of the install method, Key and Packages (in order)
func CacheKey(opts TestOptions) (string, error) {
	if err := opts.Validate(); err != nil {
		return "", err
	}
	return cacheKey(provisioners[opts.Install], opts), nil
}

func cacheKey(p provisioner, opts TestOptions) string {
	data := strings.Join(append([]string{opts.Key}, opts.Packages...), "\x00")
	digest := uuid.NewSHA1(cacheKeyNamespace, []byte(data))
	return p.cachePrefix + "-" + opts.Key + "-" + digest.String()
}

func provisionConda(o TestOptions) []Step {
	return []Step{
		UsesStep("Set up Micromamba", MicromambaAction,
			Param{"environment-name", o.Env},
			Param{"create-args", "python=" + o.Python},
			Param{"init-shell", "bash"},
		),
	}
}

func installConda(o TestOptions) string {
	return Script(
		"pipx run ./utils/conda-tool.py --env -o ci-environment.yml "+
			pyprojects(o.Packages),
		"micromamba env update -n "+o.Env+" -f ci-environment.yml",
		"python -m pip install --no-deps "+editables(o.Packages),
	)
}

func provisionVanilla(o TestOptions) []Step {
	return []Step{
		UsesStep("Set up Python "+o.Python, SetupPythonAction,
			Param{"python-version", o.Python},
		),
		UsesStep("Set up uv", SetupUVAction),
	}
}

func installVanilla(o TestOptions) string {
	return Script(
		"uv venv --python "+o.Python+" "+o.Env,
		`echo "VIRTUAL_ENV=$PWD/`+o.Env+`" >> "$GITHUB_ENV"`,
		`echo "$PWD/`+o.Env+`/bin" >> "$GITHUB_PATH"`,
		"uv pip install --python "+o.Env+"/bin/python -r requirements-test.txt "+
			editables(o.Packages),
	)
}

func provisionPixi(TestOptions) []Step {
	return []Step{
		UsesStep("Set up Pixi", SetupPixiAction,
			Param{"run-install", false},
			Param{"cache", false},
		),
	}
}

func installPixi(o TestOptions) string {
	return Script(
		"pixi install -e "+o.Env,
		"pixi shell-hook -e "+o.Env+" --shell bash >> ~/.bash_profile",
		"pixi run -e "+o.Env+" python -m pip install --no-deps "+
			editables(o.Packages),
	)
}

func editables(pkgs []string) string {
	args := make([]string, len(pkgs))
	for i, pkg := range pkgs {
		args[i] = "-e " + pkg
	}
	return strings.Join(args, " ")
}

func pyprojects(pkgs []string) string {
	args := make([]string, len(pkgs))
	for i, pkg := range pkgs {
		args[i] = pkg + "/pyproject.toml"
	}
	return strings.Join(args, " ")
}
