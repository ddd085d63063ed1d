package mcp

import "github.com/1broseidon/dockgap/internal/ipc"

// GetStatusInput is the input for the get_status tool.
type GetStatusInput struct{}

// GetStatusOutput is the output for the get_status tool.
type GetStatusOutput struct {
	ActiveLayout  string `json:"active_layout"`
	Description   string `json:"description"`
	StrutsEnabled bool   `json:"struts_enabled"`
	WindowCount   int    `json:"window_count"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ListStrutsInput is the input for the list_struts tool.
type ListStrutsInput struct{}

// ListStrutsOutput is the output for the list_struts tool.
type ListStrutsOutput struct {
	Screen ipc.RectData    `json:"screen"`
	Usable ipc.RectData    `json:"usable"`
	Struts []ipc.StrutInfo `json:"struts"`
}

// ToggleStrutsInput is the input for the toggle_struts tool.
type ToggleStrutsInput struct{}

// ToggleStrutsOutput is the output for the toggle_struts tool.
type ToggleStrutsOutput struct {
	StrutsEnabled bool `json:"struts_enabled"`
}

// TileInput is the input for the tile tool.
type TileInput struct{}

// TileOutput is the output for the tile tool.
type TileOutput struct {
	ActiveLayout string `json:"active_layout"`
	WindowCount  int    `json:"window_count"`
}

// ApplyLayoutInput is the input for the apply_layout tool.
type ApplyLayoutInput struct {
	Layout string `json:"layout" jsonschema:"required,Name of a configured layout (see layouts in get_status or the CLI 'layout list')"`
	Tile   *bool  `json:"tile,omitempty" jsonschema:"Tile immediately after switching (default: true)"`
}

// ApplyLayoutOutput is the output for the apply_layout tool.
type ApplyLayoutOutput struct {
	ActiveLayout string   `json:"active_layout"`
	Available    []string `json:"available"`
}

// SendMessageInput is the input for the send_message tool.
type SendMessageInput struct {
	Message string `json:"message" jsonschema:"required,Layout message: shrink or expand the master pane, or toggle-struts"`
}

// SendMessageOutput is the output for the send_message tool.
type SendMessageOutput struct {
	Changed     bool   `json:"changed"`
	Description string `json:"description"`
}
