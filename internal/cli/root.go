package cli

import (
	"github.com/shauryashaurya/lkci/internal"
	"github.com/shauryashaurya/lkci/internal/logging"
	"github.com/shauryashaurya/lkci/internal/service"
	"github.com/shauryashaurya/lkci/internal/settings"
	"github.com/shauryashaurya/lkci/internal/store"
	"github.com/spf13/cobra"
)

// Version is set at build time with -ldflags
var Version = "dev"

func Execute() error {
	return NewRootCommand(settings.NewSettings()).Execute()
}

// NewRootCommand builds the command tree. Flags default to the values in s
func NewRootCommand(s *settings.AppSettings) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "lkci",
		Short:        "Generate the LensKit test workflow",
		Long:         `lkci composes GitHub Actions test jobs from a project catalog and keeps the generated workflow file in sync.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&s.ProjectPath, "project", s.ProjectPath, "project catalog file")
	flags.StringVar(&s.ConfigPath, "config", s.ConfigPath, "generator configuration file")
	flags.StringVar(&s.OutputDir, "output", s.OutputDir, "directory the workflow file is written to")
	flags.StringVar(&s.LogLevel, "log-level", s.LogLevel, "debug, info, warn or error")

	rootCmd.AddCommand(newGenerateCmd(s))
	rootCmd.AddCommand(newCheckCmd(s))
	rootCmd.AddCommand(newShowCmd(s))
	rootCmd.AddCommand(newInitCmd(s))
	rootCmd.AddCommand(versionCmd)
	return rootCmd
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("lkci %s\n", Version)
	},
}

func newWorkflowService(
	cmd *cobra.Command,
	s *settings.AppSettings,
) (*service.WorkflowService, error) {
	config, err := internal.InitializeConfiguration(s.ConfigPath)
	if err != nil {
		return nil, err
	}
	logger := logging.New(cmd.ErrOrStderr(), s.Level())
	return service.NewWorkflowService(
		store.NewProjectYAMLStore(s.ProjectPath),
		config,
		logger,
	), nil
}
