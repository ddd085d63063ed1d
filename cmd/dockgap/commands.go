package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/1broseidon/dockgap/internal/config"
	"github.com/1broseidon/dockgap/internal/ipc"
	"github.com/1broseidon/dockgap/internal/render"
)

// runSimple handles commands that take no arguments and make a single IPC
// call.
func runSimple(name, help string, args []string, call func(*ipc.Client) error) int {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: dockgap %s\n", name)
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, help)
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintf(os.Stderr, "%s takes no arguments\n", name)
		fs.Usage()
		return 2
	}

	if err := call(ipc.NewClient()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func toggleStruts(client *ipc.Client) error {
	enabled, err := client.ToggleStruts()
	if err != nil {
		return err
	}
	st := render.NewStyler(os.Stdout)
	fmt.Println(st.KV("avoid_struts", st.Flag(enabled)))
	return nil
}

func sendMessage(client *ipc.Client, name string) error {
	changed, err := client.SendMessage(name)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintf(os.Stderr, "%s: active layout unchanged\n", name)
	}
	return nil
}

func runStatus(args []string) int {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dockgap status [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show daemon status via IPC.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output status as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "status takes no arguments")
		fs.Usage()
		return 2
	}

	client := ipc.NewClient()
	status, err := client.GetStatus()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *jsonOut {
		return writeJSON(os.Stdout, status)
	}

	st := render.NewStyler(os.Stdout)
	fmt.Println(st.Title("dockgap"))
	fmt.Println(st.KV("daemon_running", status.DaemonRunning))
	fmt.Println(st.KV("active_layout", status.ActiveLayout))
	fmt.Println(st.KV("description", status.Description))
	fmt.Println(st.KV("avoid_struts", st.Flag(status.StrutsEnabled)))
	fmt.Println(st.KV("window_count", status.WindowCount))
	if status.LastTiledAt.IsZero() {
		fmt.Println(st.KV("last_tiled", st.Dim("never")))
	} else {
		fmt.Println(st.KV("last_tiled", status.LastTiledAt.Format("15:04:05")))
	}
	fmt.Println(st.KV("uptime_seconds", status.UptimeSeconds))
	return 0
}

func runStruts(args []string) int {
	fs := flag.NewFlagSet("struts", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dockgap struts [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the struts of the current dock windows and the remaining usable area.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	jsonOut := fs.Bool("json", false, "Output struts as JSON")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "struts takes no arguments")
		fs.Usage()
		return 2
	}

	data, err := ipc.NewClient().GetStruts()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if *jsonOut {
		return writeJSON(os.Stdout, data)
	}

	st := render.NewStyler(os.Stdout)
	fmt.Println(st.Title("struts"))
	fmt.Println(st.KV("screen", formatRect(data.Screen)))
	fmt.Println(st.KV("usable", formatRect(data.Usable)))
	if len(data.Struts) == 0 {
		fmt.Println(st.Dim("no dock struts"))
		return 0
	}
	for _, s := range data.Struts {
		fmt.Println(st.KV(s.Side, fmt.Sprintf("%dpx %s", s.Thickness, formatRange(s.RangeStart, s.RangeEnd))))
	}
	return 0
}

func formatRect(r ipc.RectData) string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

// formatRange prints a strut range, "full" for the unbounded range of a
// legacy strut.
func formatRange(start, end int) string {
	if start == math.MinInt && end == math.MaxInt {
		return "full"
	}
	return fmt.Sprintf("%d..%d", start, end)
}

func writeJSON(w io.Writer, v any) int {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func printLayoutUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  dockgap layout list [--json]")
	fmt.Fprintln(w, "  dockgap layout apply [--tile] <layout>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'dockgap layout <command> --help' for command-specific options.")
}

func runLayout(args []string) int {
	if len(args) == 0 {
		printLayoutUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printLayoutUsage(os.Stdout)
		return 0
	}

	client := ipc.NewClient()

	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("list", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: dockgap layout list [--json]")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "List available layouts (and current selection when the daemon is running).")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		jsonOut := fs.Bool("json", false, "Output full layout details as JSON")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 0 {
			fmt.Fprintln(os.Stderr, "layout list takes no arguments")
			fs.Usage()
			return 2
		}

		if *jsonOut {
			return layoutListJSON()
		}

		data, err := client.ListLayouts()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		fmt.Printf("default_layout: %s\n", data.DefaultLayout)
		fmt.Printf("active_layout:  %s\n", data.ActiveLayout)
		for _, name := range data.Layouts {
			fmt.Printf("- %s\n", name)
		}
		return 0

	case "apply":
		fs := flag.NewFlagSet("apply", flag.ContinueOnError)
		fs.SetOutput(os.Stderr)
		fs.Usage = func() {
			fmt.Fprintln(os.Stderr, "Usage: dockgap layout apply [--tile] <layout>")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Set the daemon's active layout (optionally tiling immediately).")
			fmt.Fprintln(os.Stderr, "Dock space avoidance is switched back on.")
			fmt.Fprintln(os.Stderr, "")
			fmt.Fprintln(os.Stderr, "Flags:")
			fs.PrintDefaults()
		}
		tileNow := fs.Bool("tile", false, "Tile immediately")
		if err := fs.Parse(args[1:]); err != nil {
			if err == flag.ErrHelp {
				return 0
			}
			return 2
		}
		if fs.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "layout apply requires <layout>")
			fs.Usage()
			return 2
		}
		if err := client.ApplyLayout(fs.Arg(0), *tileNow); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0

	default:
		fmt.Fprintf(os.Stderr, "Unknown layout command: %s\n\n", args[0])
		printLayoutUsage(os.Stderr)
		return 2
	}
}

type layoutJSON struct {
	Name            string           `json:"name"`
	Mode            string           `json:"mode"`
	TileRegion      tileRegionJSON   `json:"tile_region"`
	FixedGrid       *fixedGridJSON   `json:"fixed_grid,omitempty"`
	MasterStack     *masterStackJSON `json:"master_stack,omitempty"`
	MaxWindowWidth  int              `json:"max_window_width"`
	MaxWindowHeight int              `json:"max_window_height"`
	FlexibleLastRow bool             `json:"flexible_last_row"`
}

type tileRegionJSON struct {
	Type          string `json:"type"`
	XPercent      int    `json:"x_percent,omitempty"`
	YPercent      int    `json:"y_percent,omitempty"`
	WidthPercent  int    `json:"width_percent,omitempty"`
	HeightPercent int    `json:"height_percent,omitempty"`
}

type fixedGridJSON struct {
	Rows int `json:"rows"`
	Cols int `json:"cols"`
}

type masterStackJSON struct {
	MasterWidthPercent int `json:"master_width_percent"`
	MaxStackRows       int `json:"max_stack_rows"`
	MaxStackCols       int `json:"max_stack_cols"`
}

func newLayoutJSON(name string, l config.Layout) layoutJSON {
	entry := layoutJSON{
		Name:            name,
		Mode:            string(l.Mode),
		MaxWindowWidth:  l.MaxWindowWidth,
		MaxWindowHeight: l.MaxWindowHeight,
		FlexibleLastRow: l.FlexibleLastRow,
		TileRegion: tileRegionJSON{
			Type:          string(l.TileRegion.Type),
			XPercent:      l.TileRegion.XPercent,
			YPercent:      l.TileRegion.YPercent,
			WidthPercent:  l.TileRegion.WidthPercent,
			HeightPercent: l.TileRegion.HeightPercent,
		},
	}
	switch l.Mode {
	case config.LayoutModeFixed:
		entry.FixedGrid = &fixedGridJSON{Rows: l.FixedGrid.Rows, Cols: l.FixedGrid.Cols}
	case config.LayoutModeMasterStack:
		entry.MasterStack = &masterStackJSON{
			MasterWidthPercent: l.MasterStack.MasterWidthPercent,
			MaxStackRows:       l.MasterStack.MaxStackRows,
			MaxStackCols:       l.MasterStack.MaxStackCols,
		}
	}
	return entry
}

// layoutListJSON prints the configured layouts from the config file, so it
// works without a running daemon.
func layoutListJSON() int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	names := cfg.LayoutNames()
	layouts := make([]layoutJSON, 0, len(names))
	for _, name := range names {
		layouts = append(layouts, newLayoutJSON(name, cfg.Layouts[name]))
	}
	return writeJSON(os.Stdout, layouts)
}
