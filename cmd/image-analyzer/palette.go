package main

import (
	"fmt"

	"github.com/darrenk196/image-analyzer/internal/codec"
	"github.com/darrenk196/image-analyzer/internal/palette"
	"github.com/spf13/cobra"
)

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Extract the dominant colors of an image",
	RunE:  runPalette,
}

func init() {
	paletteCmd.Flags().StringP("input", "i", "", "Input image file")
	paletteCmd.Flags().Int("count", 5, "Maximum number of colors")
	paletteCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(paletteCmd)
}

func runPalette(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	count, _ := cmd.Flags().GetInt("count")

	buf, err := codec.Decode(inputPath)
	if err != nil {
		return fmt.Errorf("loading input: %w", err)
	}

	colors := palette.Extract(buf, count)
	if len(colors) == 0 {
		fmt.Println("No opaque pixels to sample.")
		return nil
	}

	for i, c := range colors {
		fmt.Printf("%2d. %s  rgb(%d, %d, %d)\n", i+1, c.Hex, c.R, c.G, c.B)
	}
	return nil
}
