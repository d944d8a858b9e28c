package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"depsolve/internal/app"
)

func newExplainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explain <scenario.yaml>",
		Short: "Print the generated CNF rule set for a scenario, in diagnostic form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service := app.NewService()
			lines, err := service.Explain(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, line := range lines {
				fmt.Println(line)
			}
			return nil
		},
	}
}
