package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"depsolve/internal/app"
)

type solveOptions struct {
	Scenario string
	Limit    int
}

func newSolveCommand() *cobra.Command {
	opts := solveOptions{}
	cmd := &cobra.Command{
		Use:   "solve <scenario.yaml>",
		Short: "Solve a dependency scenario and print the resulting install set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Scenario = args[0]
			return runSolve(cmd, opts)
		},
	}
	cmd.Flags().IntVar(&opts.Limit, "limit", 1, "Maximum number of models to print")
	_ = viper.BindPFlag("limit", cmd.Flags().Lookup("limit"))
	return cmd
}

func runSolve(cmd *cobra.Command, opts solveOptions) error {
	service := app.NewService()
	result, err := service.Solve(cmd.Context(), app.SolveRequest{
		ScenarioPath: opts.Scenario,
		Limit:        resolveInt(cmd, opts.Limit, "limit", "limit"),
	})
	if err != nil {
		return err
	}
	for i, model := range result.Models {
		fmt.Printf("model %d:\n", i+1)
		for _, pkg := range model.Installed {
			fmt.Printf("  %s\n", pkg.FullName())
		}
	}
	return nil
}

func resolveInt(cmd *cobra.Command, value int, key, flagName string) int {
	if cmd == nil {
		return value
	}
	if flag := cmd.Flags().Lookup(flagName); flag != nil && flag.Changed {
		return value
	}
	if viper.IsSet(key) {
		return viper.GetInt(key)
	}
	return value
}
