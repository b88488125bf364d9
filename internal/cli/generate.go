package cli

import (
	"github.com/shauryashaurya/lkci/internal/settings"
	"github.com/spf13/cobra"
)

func newGenerateCmd(s *settings.AppSettings) *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Write the workflow file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newWorkflowService(cmd, s)
			if err != nil {
				return err
			}
			path, err := svc.WriteWorkflow(cmd.Context(), s.OutputDir)
			if err != nil {
				return err
			}
			cmd.Printf("Wrote %s\n", path)
			return nil
		},
	}
}

func newCheckCmd(s *settings.AppSettings) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Fail when the workflow file is missing or out of date",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newWorkflowService(cmd, s)
			if err != nil {
				return err
			}
			return svc.CheckWorkflow(cmd.Context(), s.OutputDir)
		},
	}
}

func newShowCmd(s *settings.AppSettings) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the workflow to stdout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newWorkflowService(cmd, s)
			if err != nil {
				return err
			}
			b, err := svc.RenderWorkflow(cmd.Context())
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(b)
			return err
		},
	}
}
