package main

import (
	"fmt"

	"github.com/darrenk196/image-analyzer/internal/codec"
	"github.com/darrenk196/image-analyzer/internal/engine"
	"github.com/spf13/cobra"
)

var contrastCmd = &cobra.Command{
	Use:   "contrast",
	Short: "Stretch image contrast around the 128 midpoint",
	RunE:  runContrast,
}

func init() {
	contrastCmd.Flags().StringP("input", "i", "", "Input image file")
	contrastCmd.Flags().StringP("output", "o", "", "Output image file")
	contrastCmd.Flags().Float64("amount", 1.0, "Contrast multiplier (1.0 = unchanged)")
	contrastCmd.Flags().Int("quality", codec.DefaultJPEGQuality, "JPEG quality (1-100)")
	contrastCmd.MarkFlagRequired("input")
	contrastCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(contrastCmd)
}

func runContrast(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	amount, _ := cmd.Flags().GetFloat64("amount")
	quality, _ := cmd.Flags().GetInt("quality")

	buf, err := codec.Decode(inputPath)
	if err != nil {
		return fmt.Errorf("loading input: %w", err)
	}

	out := engine.AdjustContrast(buf, amount)

	if err := codec.Encode(out, outputPath, codec.EncodeOptions{JPEGQuality: quality}); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Printf("Adjusted %dx%d contrast x%.2f → %s\n", buf.Width, buf.Height, amount, outputPath)
	return nil
}
