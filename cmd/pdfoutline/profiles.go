package main

import (
	"github.com/spf13/cobra"

	"github.com/thywilljoshua/pdf-outline/internal/config"
)

func profilesCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Print the effective profile thresholds as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ps, err := config.LoadProfiles(file)
			if err != nil {
				return err
			}
			out, err := config.MarshalProfiles(ps)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&file, "profiles", "", "YAML file overriding profile thresholds")
	return cmd
}
