package main

import (
	"github.com/aretw0/passage/internal/cli"
	"github.com/spf13/cobra"
)

var checkOpts cli.CheckOptions

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "List the documents required for a trip",
	Example: `  passage check --from Canada --to Japan --days 10
  passage check --from China --to USA --days 20 --purpose business --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		return cli.Check(cmd.Context(), rt.Service, checkOpts, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkOpts.From, "from", "", "Country of citizenship")
	checkCmd.Flags().StringVar(&checkOpts.To, "to", "", "Destination country")
	checkCmd.Flags().StringVarP(&checkOpts.Days, "days", "d", "", "Length of stay in days")
	checkCmd.Flags().StringVarP(&checkOpts.Purpose, "purpose", "p", "tourism", "Trip purpose: tourism, business, transit, study, work, family_visit or other")
	checkCmd.Flags().BoolVar(&checkOpts.JSON, "json", false, "Print the raw JSON result")
	_ = checkCmd.MarkFlagRequired("from")
	_ = checkCmd.MarkFlagRequired("to")
	_ = checkCmd.MarkFlagRequired("days")
}
