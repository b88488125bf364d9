package internal

const (
	DotEnvPath   = "./.env"
	ConfigPath   = "lkci.json"
	ProjectPath  = "lkci.yaml"
	WorkflowsDir = ".github/workflows"
	WorkflowFile = "test.yml"
)
