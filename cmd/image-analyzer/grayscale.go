package main

import (
	"fmt"

	"github.com/darrenk196/image-analyzer/internal/codec"
	"github.com/darrenk196/image-analyzer/internal/engine"
	"github.com/spf13/cobra"
)

var grayscaleCmd = &cobra.Command{
	Use:   "grayscale",
	Short: "Convert an image to grayscale",
	RunE:  runGrayscale,
}

func init() {
	grayscaleCmd.Flags().StringP("input", "i", "", "Input image file")
	grayscaleCmd.Flags().StringP("output", "o", "", "Output image file")
	grayscaleCmd.Flags().Int("quality", codec.DefaultJPEGQuality, "JPEG quality (1-100)")
	grayscaleCmd.MarkFlagRequired("input")
	grayscaleCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(grayscaleCmd)
}

func runGrayscale(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")
	quality, _ := cmd.Flags().GetInt("quality")

	buf, err := codec.Decode(inputPath)
	if err != nil {
		return fmt.Errorf("loading input: %w", err)
	}

	out := engine.Grayscale(buf)

	if err := codec.Encode(out, outputPath, codec.EncodeOptions{JPEGQuality: quality}); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	fmt.Printf("Converted %dx%d to grayscale → %s\n", buf.Width, buf.Height, outputPath)
	return nil
}
