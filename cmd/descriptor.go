package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/bnema/vrkit/internal/descriptor"
	"github.com/bnema/vrkit/internal/geom"
	"github.com/bnema/vrkit/internal/logger"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

var descriptorOutput string

var descriptorCmd = &cobra.Command{
	Use:   "descriptor",
	Short: "Work with display descriptors",
}

var descriptorNewCmd = &cobra.Command{
	Use:   "new",
	Short: "Interactively create a display descriptor",
	RunE:  runDescriptorNew,
}

var descriptorCheckCmd = &cobra.Command{
	Use:   "check FILE",
	Short: "Validate a display descriptor",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		d, err := descriptor.Parse(string(data))
		if err != nil {
			return err
		}
		if d.DisplayMode == descriptor.ModeUnknown {
			return fmt.Errorf("unrecognized display mode in %s", args[0])
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %dx%d %s, %d eye(s), %.0fx%.0f degrees\n",
			args[0], d.DisplayWidth, d.DisplayHeight, d.DisplayMode, len(d.Eyes), d.HorizontalFOV, d.VerticalFOV)
		return nil
	},
}

func init() {
	descriptorNewCmd.Flags().StringVarP(&descriptorOutput, "output", "o", "", "write the descriptor to this file instead of stdout")
	descriptorCmd.AddCommand(descriptorNewCmd)
	descriptorCmd.AddCommand(descriptorCheckCmd)
	rootCmd.AddCommand(descriptorCmd)
}

// descriptorAnswers holds the raw form input
type descriptorAnswers struct {
	Mode      string
	Width     string
	Height    string
	HFov      string
	VFov      string
	IPDMM     string
	PitchTilt string
	Eyes      string
	Rotate180 bool
}

func defaultAnswers() descriptorAnswers {
	return descriptorAnswers{
		Mode:      descriptor.HorizontalSideBySide.String(),
		Width:     "1920",
		Height:    "1080",
		HFov:      "90",
		VFov:      "90",
		IPDMM:     strconv.FormatFloat(descriptor.DefaultIPDMeters*1000, 'f', -1, 64),
		PitchTilt: "0",
		Eyes:      "2",
	}
}

func (a descriptorAnswers) build() (*descriptor.Descriptor, error) {
	width, err := strconv.Atoi(a.Width)
	if err != nil {
		return nil, fmt.Errorf("width: %w", err)
	}
	height, err := strconv.Atoi(a.Height)
	if err != nil {
		return nil, fmt.Errorf("height: %w", err)
	}
	floats := make([]float64, 4)
	for i, s := range []string{a.HFov, a.VFov, a.IPDMM, a.PitchTilt} {
		if floats[i], err = strconv.ParseFloat(s, 64); err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", s, err)
		}
	}
	eyes, err := strconv.Atoi(a.Eyes)
	if err != nil {
		return nil, fmt.Errorf("eyes: %w", err)
	}

	d := &descriptor.Descriptor{
		DisplayMode:   descriptor.ParseDisplayMode(a.Mode),
		DisplayWidth:  width,
		DisplayHeight: height,
		HorizontalFOV: floats[0],
		VerticalFOV:   floats[1],
		IPDMeters:     floats[2] / 1000,
		PitchTilt:     geom.DegToRad(floats[3]),
	}
	for i := 0; i < eyes; i++ {
		d.Eyes = append(d.Eyes, descriptor.Eye{Rotate180: a.Rotate180})
	}
	if d.DisplayMode == descriptor.ModeUnknown {
		return nil, fmt.Errorf("unrecognized display mode %q", a.Mode)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

func validateInt(s string) error {
	if _, err := strconv.Atoi(s); err != nil {
		return fmt.Errorf("must be a whole number")
	}
	return nil
}

func validateFloat(s string) error {
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

func runDescriptorNew(cmd *cobra.Command, args []string) error {
	a := defaultAnswers()

	modes := make([]huh.Option[string], 0, len(descriptor.Modes()))
	for _, m := range descriptor.Modes() {
		modes = append(modes, huh.NewOption(m.String(), m.String()))
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Display mode").
				Description("How the eyes share the panel").
				Options(modes...).
				Value(&a.Mode),
			huh.NewSelect[string]().
				Title("Eyes").
				Options(huh.NewOption("Stereo (2)", "2"), huh.NewOption("Mono (1)", "1")).
				Value(&a.Eyes),
		),
		huh.NewGroup(
			huh.NewInput().Title("Panel width (pixels)").Value(&a.Width).Validate(validateInt),
			huh.NewInput().Title("Panel height (pixels)").Value(&a.Height).Validate(validateInt),
			huh.NewInput().Title("Horizontal field of view (degrees)").Value(&a.HFov).Validate(validateFloat),
			huh.NewInput().Title("Vertical field of view (degrees)").Value(&a.VFov).Validate(validateFloat),
		),
		huh.NewGroup(
			huh.NewInput().Title("Interpupillary distance (mm)").Value(&a.IPDMM).Validate(validateFloat),
			huh.NewInput().Title("Pitch tilt (degrees)").Value(&a.PitchTilt).Validate(validateFloat),
			huh.NewConfirm().Title("Panels mounted upside down?").Value(&a.Rotate180),
		),
	)

	if err := form.Run(); err != nil {
		return fmt.Errorf("descriptor creation cancelled: %w", err)
	}

	d, err := a.build()
	if err != nil {
		return err
	}
	data, err := descriptor.Marshal(d)
	if err != nil {
		return err
	}

	if descriptorOutput == "" {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(descriptorOutput, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write descriptor: %w", err)
	}
	logger.Infof("Wrote display descriptor to %s", descriptorOutput)
	return nil
}
