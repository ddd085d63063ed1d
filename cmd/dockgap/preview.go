package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/1broseidon/dockgap/internal/config"
	"github.com/1broseidon/dockgap/internal/docks"
	"github.com/1broseidon/dockgap/internal/ipc"
	"github.com/1broseidon/dockgap/internal/platform"
	"github.com/1broseidon/dockgap/internal/render"
)

// offlineScreen is used when neither --screen nor a running daemon provides
// the root geometry.
var offlineScreen = platform.Rect{Width: 1920, Height: 1080}

func runPreview(args []string) int {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dockgap preview [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Draw a layout around the current dock struts. Struts come from the")
		fmt.Fprintln(os.Stderr, "running daemon unless --screen or --strut is given.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	layoutName := fs.String("layout", "", "Layout to preview (default: default_layout)")
	windows := fs.Int("windows", 3, "Number of placeholder windows")
	width := fs.Int("width", 0, "Canvas width in cells (default: terminal width)")
	height := fs.Int("height", 0, "Canvas height in cells (default: width/4)")
	noStruts := fs.Bool("no-struts", false, "Preview with dock space avoidance toggled off")
	screenSpec := fs.String("screen", "", "Screen size WIDTHxHEIGHT (offline preview)")
	var struts strutFlags
	fs.Var(&struts, "strut", "Strut side:px[:start:end] (repeatable, offline preview)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "preview takes no arguments")
		fs.Usage()
		return 2
	}
	if *windows < 0 {
		fmt.Fprintln(os.Stderr, "--windows must be >= 0")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	name := *layoutName
	if name == "" {
		name = cfg.DefaultLayout
	}
	l, err := cfg.GetLayout(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	screen, list, source, err := previewScreen(*screenSpec, struts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	w, h := canvasSize(*width, *height)
	lines, err := render.Preview(render.PreviewInput{
		Name:      name,
		Layout:    *l,
		GapSize:   cfg.GapSize,
		Screen:    screen,
		Struts:    list,
		Avoid:     !*noStruts,
		TileCount: *windows,
		Width:     w,
		Height:    h,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	st := render.NewStyler(os.Stdout)
	fmt.Println(st.Title(name))
	fmt.Println(st.Dim(fmt.Sprintf("%dx%d screen, %d strut(s) from %s", screen.Width, screen.Height, len(list), source)))
	fmt.Println(st.Canvas(lines))
	return 0
}

// previewScreen picks the screen and struts to draw: explicit flags first,
// then the daemon, then an empty offline screen.
func previewScreen(screenSpec string, struts strutFlags) (platform.Rect, []docks.Strut, string, error) {
	if screenSpec != "" || len(struts) > 0 {
		screen := offlineScreen
		if screenSpec != "" {
			var err error
			if screen, err = parseScreenSize(screenSpec); err != nil {
				return platform.Rect{}, nil, "", err
			}
		}
		return screen, struts, "flags", nil
	}

	data, err := ipc.NewClient().GetStruts()
	if err != nil {
		return offlineScreen, nil, "offline defaults", nil
	}
	screen, list, err := strutsFromData(data)
	if err != nil {
		return platform.Rect{}, nil, "", err
	}
	return screen, list, "daemon", nil
}

func canvasSize(width, height int) (int, int) {
	if width <= 0 {
		width = 80
		if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
			width = min(w, 120)
		}
	}
	if height <= 0 {
		height = max(width/4, 3)
	}
	return width, height
}
