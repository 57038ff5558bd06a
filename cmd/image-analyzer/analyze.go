package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/darrenk196/image-analyzer/internal/codec"
	"github.com/darrenk196/image-analyzer/internal/engine"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Compute histogram, brightness and contrast statistics",
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringP("input", "i", "", "Input image file")
	analyzeCmd.Flags().Bool("json", false, "Print the full analysis result as JSON")
	analyzeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	inputPath, _ := cmd.Flags().GetString("input")
	asJSON, _ := cmd.Flags().GetBool("json")

	buf, err := codec.Decode(inputPath)
	if err != nil {
		return fmt.Errorf("loading input: %w", err)
	}

	res := engine.Analyze(buf)

	if asJSON {
		out, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		os.Stdout.Write(out)
		fmt.Println()
		return nil
	}

	fmt.Printf("File:       %s\n", inputPath)
	fmt.Printf("Dimensions: %d x %d\n", buf.Width, buf.Height)
	fmt.Printf("Brightness: %.4f\n", res.AverageBrightness)
	fmt.Printf("Contrast:   %.4f\n", res.Contrast)
	fmt.Printf("Peaks:      R=%d G=%d B=%d L=%d\n",
		peak(res.Histogram.Red), peak(res.Histogram.Green),
		peak(res.Histogram.Blue), peak(res.Histogram.Luminosity))
	return nil
}

// peak returns the channel value with the highest count.
func peak(h [256]uint32) int {
	best := 0
	for i := 1; i < len(h); i++ {
		if h[i] > h[best] {
			best = i
		}
	}
	return best
}
