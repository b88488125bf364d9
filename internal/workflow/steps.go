package workflow

import (
	"fmt"
	"strings"
)

const (
	CheckoutAction = "actions/checkout@v4"
	DataAction     = "./.github/actions/mldata"
	UploadAction   = "actions/upload-artifact@v4"

	dataCacheVersion = "v1"
	testResultsFile  = "test-results.xml"
)

// CheckoutStep checks out the repository under test
func CheckoutStep() Step {
	return UsesStep("Check out source", CheckoutAction)
}

// DataSteps fetches each dataset through the repository's mldata action,
// one step per identifier in the order given. Duplicates are kept. Each
// dataset's cache key depends on its identifier alone
func DataSteps(datasets []string) ([]Step, error) {
	if len(datasets) == 0 {
		return nil, ConfigError{Field: "datasets", Err: ErrNoDatasets}
	}
	steps := make([]Step, 0, len(datasets))
	for i, ds := range datasets {
		if strings.TrimSpace(ds) == "" {
			return nil, ConfigError{
				Field:  fmt.Sprintf("datasets[%d]", i),
				Reason: "must not be blank",
			}
		}
		steps = append(steps, UsesStep("Fetch "+ds, DataAction,
			Param{"dataset", ds},
			Param{"cache-key", DataCacheKey(ds)},
		))
	}
	return steps, nil
}

// DataCacheKey is the cache key of a single dataset
func DataCacheKey(dataset string) string {
	return "mldata-" + dataCacheVersion + "-" + dataset
}

// TestSteps runs the test suite and the documentation examples with
// coverage enabled for every package
func TestSteps(opts TestOptions) []Step {
	flags := CoverageFlags(opts.Packages)

	args := []string{"python -m pytest", flags, "--junit-xml=" + testResultsFile}
	args = append(args, opts.TestArgs...)
	args = append(args, opts.Packages...)

	return []Step{
		RunStep("Run tests", strings.Join(args, " ")),
		RunStep("Test documentation examples",
			"python -m pytest --cov-append "+flags+" --doctest-glob='*.rst' docs",
		),
	}
}

// CoverageFlags maps each package to a pytest --cov flag for its import
// name, keeping package order
func CoverageFlags(pkgs []string) string {
	flags := make([]string, len(pkgs))
	for i, pkg := range pkgs {
		flags[i] = "--cov=" + strings.ReplaceAll(pkg, "-", "_")
	}
	return strings.Join(flags, " ")
}

// CoverageSteps summarizes coverage and uploads it under an artifact name
// unique to opts.Key. The steps must follow the test steps in a job
func CoverageSteps(opts TestOptions) ([]Step, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return []Step{
		RunStep("Summarize coverage", "coverage xml", "coverage report"),
		UsesStep("Upload coverage", UploadAction,
			Param{"name", CoverageArtifact(opts)},
			Param{"path", Script("coverage.xml", testResultsFile)},
		),
	}, nil
}

// CoverageArtifact names the uploaded coverage artifact of a job
func CoverageArtifact(opts TestOptions) string {
	return "coverage-" + opts.Key
}
