package cli

import (
	"fmt"

	"github.com/shauryashaurya/lkci/internal/settings"
	"github.com/shauryashaurya/lkci/internal/util"
	"github.com/spf13/cobra"
)

func newInitCmd(s *settings.AppSettings) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a project catalog with the default test job",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			exists, err := util.PathExists(s.ProjectPath)
			if err != nil {
				return err
			}
			if exists {
				return fmt.Errorf("project file %s already exists", s.ProjectPath)
			}

			svc, err := newWorkflowService(cmd, s)
			if err != nil {
				return err
			}
			if _, err := svc.InitProject(cmd.Context()); err != nil {
				return fmt.Errorf("writing project: %w", err)
			}
			cmd.Printf("Created %s\n", s.ProjectPath)
			return nil
		},
	}
}
