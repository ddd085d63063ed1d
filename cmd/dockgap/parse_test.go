package main

import (
	"flag"
	"io"
	"math"
	"testing"

	"github.com/1broseidon/dockgap/internal/docks"
	"github.com/1broseidon/dockgap/internal/ipc"
)

func TestParseStrutSpec(t *testing.T) {
	tests := []struct {
		spec    string
		want    docks.Strut
		wantErr bool
	}{
		{spec: "top:30", want: docks.Strut{Side: docks.Top, Thickness: 30, RangeStart: docks.MinCoord, RangeEnd: docks.MaxCoord}},
		{spec: "left:48:0:1079", want: docks.Strut{Side: docks.Left, Thickness: 48, RangeStart: 0, RangeEnd: 1079}},
		{spec: "bottom:0", wantErr: true},
		{spec: "right:0:0:100", wantErr: true},
		{spec: "middle:30", wantErr: true},
		{spec: "top", wantErr: true},
		{spec: "top:x", wantErr: true},
		{spec: "top:-4", wantErr: true},
		{spec: "top:30:0", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := parseStrutSpec(tt.spec)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error, got %+v", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseScreenSize(t *testing.T) {
	r, err := parseScreenSize("2560X1440")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.X != 0 || r.Y != 0 || r.Width != 2560 || r.Height != 1440 {
		t.Fatalf("unexpected screen %+v", r)
	}

	for _, bad := range []string{"", "1920", "0x1080", "axb", "1920x-1"} {
		if _, err := parseScreenSize(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}

func TestStrutFlagsRepeat(t *testing.T) {
	var struts strutFlags
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Var(&struts, "strut", "")
	if err := fs.Parse([]string{"--strut", "top:24", "--strut", "right:10"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(struts) != 2 || struts[0].Side != docks.Top || struts[1].Side != docks.Right {
		t.Fatalf("unexpected struts %+v", struts)
	}
	if struts.String() != "top:24,right:10" {
		t.Fatalf("unexpected String() %q", struts.String())
	}
	if err := fs.Parse([]string{"--strut", "up:1"}); err == nil {
		t.Fatalf("expected invalid strut to fail parsing")
	}
}

func TestStrutsFromData(t *testing.T) {
	data := &ipc.StrutsData{
		Screen: ipc.RectData{Width: 1920, Height: 1080},
		Struts: []ipc.StrutInfo{
			{Side: "top", Thickness: 30, RangeStart: math.MinInt, RangeEnd: math.MaxInt},
			{Side: "left", Thickness: 48, RangeStart: 0, RangeEnd: 539},
		},
	}
	screen, struts, err := strutsFromData(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if screen.Width != 1920 || screen.Height != 1080 {
		t.Fatalf("unexpected screen %+v", screen)
	}
	if len(struts) != 2 || struts[1] != (docks.Strut{Side: docks.Left, Thickness: 48, RangeStart: 0, RangeEnd: 539}) {
		t.Fatalf("unexpected struts %+v", struts)
	}

	data.Struts[0].Side = "sideways"
	if _, _, err := strutsFromData(data); err == nil {
		t.Fatalf("expected unknown side error")
	}
}

func TestFormatRange(t *testing.T) {
	if got := formatRange(math.MinInt, math.MaxInt); got != "full" {
		t.Fatalf("expected full, got %q", got)
	}
	if got := formatRange(0, 99); got != "0..99" {
		t.Fatalf("expected 0..99, got %q", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	if parseLogLevel("debug").String() != "DEBUG" || parseLogLevel("warning").String() != "WARN" {
		t.Fatalf("unexpected level mapping")
	}
	if parseLogLevel("").String() != "INFO" {
		t.Fatalf("expected info fallback")
	}
}
