package main

import (
	"fmt"

	"github.com/darrenk196/image-analyzer/internal/codec"
	"github.com/spf13/cobra"
)

var identifyCmd = &cobra.Command{
	Use:   "identify [file]",
	Short: "Inspect image dimensions and format",
	Args:  cobra.ExactArgs(1),
	RunE:  runIdentify,
}

func init() {
	rootCmd.AddCommand(identifyCmd)
}

func runIdentify(cmd *cobra.Command, args []string) error {
	path := args[0]

	info, err := codec.Inspect(path)
	if err != nil {
		return fmt.Errorf("inspecting %s: %w", path, err)
	}

	fmt.Printf("File:       %s\n", path)
	fmt.Printf("Dimensions: %d x %d\n", info.Width, info.Height)
	fmt.Printf("Format:     %s\n", info.Format)
	fmt.Printf("File size:  %d bytes (%.1f KB)\n", info.FileSize, float64(info.FileSize)/1024)
	return nil
}
