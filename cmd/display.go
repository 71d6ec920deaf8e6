package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bnema/vrkit/internal/client"
	"github.com/bnema/vrkit/internal/clientkit"
	"github.com/bnema/vrkit/internal/config"
	"github.com/bnema/vrkit/internal/geom"
	"github.com/bnema/vrkit/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/image/math/f64"
)

// DisplayReport is the JSON form of a display configuration
type DisplayReport struct {
	Viewers []ViewerReport `json:"viewers"`
}

// ViewerReport describes one viewer
type ViewerReport struct {
	Index int         `json:"index"`
	Eyes  []EyeReport `json:"eyes"`
}

// EyeReport describes one eye
type EyeReport struct {
	Index      int             `json:"index"`
	Offset     geom.Vec3       `json:"offset_meters"`
	Viewport   client.Viewport `json:"viewport"`
	FOV        geom.Rect       `json:"fov_rect"`
	Rotate180  bool            `json:"rotate_180"`
	PitchTilt  float64         `json:"pitch_tilt_radians"`
	Projection *f64.Mat4       `json:"projection,omitempty"`
}

var (
	displayDescriptor string
	displayJSON       bool
	displayNear       float64
	displayFar        float64
)

var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Show the per-eye display configuration",
	Long: `Build the display configuration from a display descriptor and print each
viewer's eyes: head-relative offset, viewport, field of view and projection.`,
	RunE: runDisplay,
}

func init() {
	displayCmd.Flags().StringVarP(&displayDescriptor, "descriptor", "d", "", "display descriptor file (overrides config)")
	displayCmd.Flags().BoolVar(&displayJSON, "json", false, "Output in JSON format")
	displayCmd.Flags().Float64Var(&displayNear, "near", 0.1, "near clipping distance in meters")
	displayCmd.Flags().Float64Var(&displayFar, "far", 100, "far clipping distance in meters")
	rootCmd.AddCommand(displayCmd)
}

// newClientContext prepares a client context holding the display descriptor.
// An explicit file wins over the configuration.
func newClientContext(cfg *config.Config, descriptorFile string) (*client.Context, error) {
	var text string
	if descriptorFile != "" {
		data, err := os.ReadFile(descriptorFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read display descriptor: %w", err)
		}
		text = string(data)
	} else {
		var err error
		text, err = cfg.DescriptorString()
		if err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no display descriptor: pass --descriptor or set display.descriptor_path in %s", config.GetConfigPath())
	}

	ctx := client.NewContext(cfg.Client.AppID)
	ctx.SetStringParameter(client.DisplayPath, text)
	return ctx, nil
}

// buildReport walks the display through the clientkit calls an application
// would make.
func buildReport(d *clientkit.Display, near, far float64) (*DisplayReport, error) {
	viewers, rc := clientkit.GetNumViewers(d)
	if !rc.OK() {
		return nil, fmt.Errorf("failed to get viewer count: %s", rc)
	}

	report := &DisplayReport{}
	for v := 0; v < viewers; v++ {
		eyes, rc := clientkit.GetNumEyesForViewer(d, v)
		if !rc.OK() {
			return nil, fmt.Errorf("failed to get eye count of viewer %d: %s", v, rc)
		}
		vr := ViewerReport{Index: v}
		for e := 0; e < eyes; e++ {
			eye, err := d.Config().ViewerEye(v, e)
			if err != nil {
				return nil, err
			}
			vp, rc := clientkit.GetRelativeViewportForViewerEyeSurface(d, v, e, 0)
			if !rc.OK() {
				return nil, fmt.Errorf("failed to get viewport of eye %d: %s", e, rc)
			}
			m, rc := clientkit.GetProjectionForViewerEyeSurface(d, v, e, 0, near, far)
			if !rc.OK() {
				return nil, fmt.Errorf("failed to get projection of eye %d (near %g, far %g): %s", e, near, far, rc)
			}
			vr.Eyes = append(vr.Eyes, EyeReport{
				Index:      e,
				Offset:     eye.Offset(),
				Viewport:   vp,
				FOV:        eye.FOVRect(),
				Rotate180:  eye.Rotate180(),
				PitchTilt:  eye.PitchTilt(),
				Projection: &m,
			})
		}
		report.Viewers = append(report.Viewers, vr)
	}
	return report, nil
}

func printReport(w io.Writer, r *DisplayReport) {
	fmt.Fprintln(w, ui.FormatHeader("Display configuration"))
	for _, v := range r.Viewers {
		fmt.Fprintln(w, ui.SubheaderStyle.Render(fmt.Sprintf("%s Viewer %d (%s)", ui.IconViewer, v.Index, client.HeadPath)))
		for _, e := range v.Eyes {
			fmt.Fprintln(w, ui.InfoStyle.Render(fmt.Sprintf(" %s Eye %d", ui.IconEye, e.Index)))
			fmt.Fprintln(w, ui.FormatKeyValue("Offset", ui.FormatVec3(e.Offset)))
			fmt.Fprintln(w, ui.FormatKeyValue("Viewport", fmt.Sprintf("%dx%d at (%d, %d)",
				e.Viewport.Width, e.Viewport.Height, e.Viewport.Left, e.Viewport.Bottom)))
			fmt.Fprintln(w, ui.FormatKeyValue("FOV rect", fmt.Sprintf("L %.3f R %.3f B %.3f T %.3f",
				e.FOV.Left, e.FOV.Right, e.FOV.Bottom, e.FOV.Top)))
			if e.Rotate180 {
				fmt.Fprintln(w, ui.FormatKeyValue("Rotated", "180°"))
			}
			if e.PitchTilt != 0 {
				fmt.Fprintln(w, ui.FormatKeyValue("Pitch tilt", fmt.Sprintf("%.3f rad", e.PitchTilt)))
			}
			if e.Projection != nil {
				fmt.Fprintln(w, ui.FormatMatrix(*e.Projection))
			}
		}
		fmt.Fprintln(w)
	}
}

func runDisplay(cmd *cobra.Command, args []string) error {
	ctx, err := newClientContext(config.Get(), displayDescriptor)
	if err != nil {
		return err
	}

	d, err := clientkit.OpenDisplay(ctx)
	if err != nil {
		return fmt.Errorf("failed to create display config (%s): %w", client.KindOf(err), err)
	}
	defer clientkit.FreeDisplay(d)

	report, err := buildReport(d, displayNear, displayFar)
	if err != nil {
		return err
	}

	if displayJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(cmd.OutOrStdout(), report)
	return nil
}
