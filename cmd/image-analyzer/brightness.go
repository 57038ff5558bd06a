package main

import (
	"fmt"

	"github.com/darrenk196/image-analyzer/internal/codec"
	"github.com/darrenk196/image-analyzer/internal/engine"
	"github.com/spf13/cobra"
)

var brightnessCmd = &cobra.Command{
	Use:   "brightness",
	Short: "Scale image brightness by a multiplier",
	RunE:  runBrightness,
}

func init() {
	brightnessCmd.Flags().StringP("input", "i", "", "Input image file")
	brightnessCmd.Flags().StringP("output", "o", "", "Output image file")
	brightnessCmd.Flags().Float64("amount", 1.0, "Brightness multiplier (0-2 typical)")
	brightnessCmd.Flags().Int("quality", codec.DefaultJPEGQuality, "JPEG quality (1-100)")
	brightnessCmd.MarkFlagRequired("input")
	brightnessCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(brightnessCmd)
}

func runBrightness(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	amount, _ := cmd.Flags().GetFloat64("amount")
	quality, _ := cmd.Flags().GetInt("quality")

	buf, err := codec.Decode(inputPath)
	if err != nil {
		return fmt.Errorf("loading input: %w", err)
	}

	out := engine.AdjustBrightness(buf, amount)

	if err := codec.Encode(out, outputPath, codec.EncodeOptions{JPEGQuality: quality}); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Printf("Adjusted %dx%d brightness x%.2f → %s\n", buf.Width, buf.Height, amount, outputPath)
	return nil
}
