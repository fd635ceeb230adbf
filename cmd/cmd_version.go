package cmd

import (
	"fmt"

	"github.com/gaze-network/artifact-registry/modules/registry/constants"
	"github.com/spf13/cobra"
)

func NewVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show artifact-registry version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(constants.Version)
		},
	}
	return cmd
}
