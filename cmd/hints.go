package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bnema/viewkit/internal/ui"
	"github.com/bnema/viewkit/view"
)

// HintValue is one hint as seen before and after the view is shown
type HintValue struct {
	Name   string `json:"name"`
	Before string `json:"before"`
	After  string `json:"after"`
}

var hintsCmd = &cobra.Command{
	Use:   "hints",
	Short: "Print view hints before and after the view is shown",
	Long: `Configure a view from the config file, print its hints, show it and print
them again. Hints such as the refresh rate are only known once the window
system has created the window.`,
	RunE: runHints,
}

func init() {
	rootCmd.AddCommand(hintsCmd)

	hintsCmd.Flags().String("backend", "", "Backend to use: x11 or sim (default from config)")
	hintsCmd.Flags().Bool("json", false, "Output as JSON")
}

// hintNames is the display order of collectHints
var hintNames = []string{
	"resizable", "ignore_key_repeat", "red_bits", "green_bits", "blue_bits",
	"alpha_bits", "depth_bits", "stencil_bits", "samples", "double_buffer",
	"swap_interval", "refresh_rate", "frame", "visible",
}

func collectHints(h view.Handle) map[string]string {
	frame := h.Frame()
	return map[string]string{
		"resizable":         fmt.Sprint(h.IsResizable()),
		"ignore_key_repeat": h.IsIgnoringKeyRepeats().String(),
		"red_bits":          fmt.Sprint(h.RedBits()),
		"green_bits":        fmt.Sprint(h.GreenBits()),
		"blue_bits":         fmt.Sprint(h.BlueBits()),
		"alpha_bits":        fmt.Sprint(h.AlphaBits()),
		"depth_bits":        fmt.Sprint(h.DepthBits()),
		"stencil_bits":      fmt.Sprint(h.StencilBits()),
		"samples":           fmt.Sprint(h.Samples()),
		"double_buffer":     fmt.Sprint(h.DoubleBuffer()),
		"swap_interval":     h.SwapInterval().String(),
		"refresh_rate":      h.RefreshRate().String(),
		"frame": fmt.Sprintf("%.0fx%.0f+%.0f+%.0f",
			frame.Size.W, frame.Size.H, frame.Pos.X, frame.Pos.Y),
		"visible": fmt.Sprint(h.IsVisible()),
	}
}

func runHints(cmd *cobra.Command, args []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}

	v, err := openView(cfg)
	if err != nil {
		return err
	}
	defer v.Close()

	before := collectHints(v.Handle())
	if err := showView(v, cfg); err != nil {
		return err
	}
	// Let the window system deliver the configure that settles the frame
	if _, err := v.Update(0); err != nil {
		return err
	}
	after := collectHints(v.Handle())

	values := make([]HintValue, len(hintNames))
	for i, name := range hintNames {
		values[i] = HintValue{Name: name, Before: before[name], After: after[name]}
	}

	out := cmd.OutOrStdout()
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(values)
	}

	fmt.Fprintln(out, ui.HeaderStyle.Render(fmt.Sprintf("Hints of %q on %s", cfg.View.Title, v.Backend())))
	for _, hv := range values {
		fmt.Fprintln(out, ui.FormatHint(hv.Name, hv.Before, hv.After))
	}
	return nil
}
