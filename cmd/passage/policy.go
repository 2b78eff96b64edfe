package main

import (
	"github.com/aretw0/passage/internal/cli"
	"github.com/spf13/cobra"
)

var policyCmd = &cobra.Command{
	Use:     "policy <origin> <destination>",
	Short:   "Show the visa policy for a directional country pair",
	Example: "  passage policy india japan",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonMode, _ := cmd.Flags().GetBool("json")

		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		return cli.Policy(rt.Service, args[0], args[1], jsonMode, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(policyCmd)
	policyCmd.Flags().Bool("json", false, "Print the raw JSON result")
}
