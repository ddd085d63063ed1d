package ipc

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/1broseidon/dockgap/internal/docks"
	"github.com/1broseidon/dockgap/internal/layout"
	"github.com/1broseidon/dockgap/internal/platform"
	"github.com/1broseidon/dockgap/internal/tiling"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandReload       CommandType = "RELOAD"
	CommandGetStatus    CommandType = "GET_STATUS"
	CommandGetStruts    CommandType = "GET_STRUTS"
	CommandToggleStruts CommandType = "TOGGLE_STRUTS"
	CommandTile         CommandType = "TILE"
	CommandUndo         CommandType = "UNDO"
	CommandListLayouts  CommandType = "LIST_LAYOUTS"
	CommandApplyLayout  CommandType = "APPLY_LAYOUT"
	CommandSendMessage  CommandType = "SEND_MESSAGE"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	ActiveLayout  string    `json:"active_layout"`
	Description   string    `json:"description"`
	StrutsEnabled bool      `json:"struts_enabled"`
	WindowCount   int       `json:"window_count"`
	LastTiledAt   time.Time `json:"last_tiled_at"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	DaemonRunning bool      `json:"daemon_running"`
}

// RectData is a rectangle in root coordinates.
type RectData struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// StrutInfo is one edge reservation. Legacy struts carry the full integer
// range.
type StrutInfo struct {
	Side       string `json:"side"`
	Thickness  int    `json:"thickness"`
	RangeStart int    `json:"range_start"`
	RangeEnd   int    `json:"range_end"`
}

// StrutsData represents the data returned by GET_STRUTS
type StrutsData struct {
	Screen RectData    `json:"screen"`
	Usable RectData    `json:"usable"`
	Struts []StrutInfo `json:"struts"`
}

// ToggleData represents the data returned by TOGGLE_STRUTS
type ToggleData struct {
	StrutsEnabled bool `json:"struts_enabled"`
}

type LayoutsData struct {
	Layouts       []string `json:"layouts"`
	DefaultLayout string   `json:"default_layout"`
	ActiveLayout  string   `json:"active_layout"`
}

type ApplyLayoutPayload struct {
	LayoutName string `json:"layout_name"`
	TileNow    bool   `json:"tile_now,omitempty"`
}

// MessagePayload names a layout message for SEND_MESSAGE.
type MessagePayload struct {
	Message string `json:"message"`
}

// MessageData reports whether the layout changed.
type MessageData struct {
	Changed bool `json:"changed"`
}

// Messages lists the layout message names accepted by SEND_MESSAGE.
var Messages = []string{"shrink", "expand", "toggle-struts"}

// ParseMessage maps a message name onto a layout message.
func ParseMessage(name string) (layout.Message, error) {
	switch name {
	case tiling.Shrink{}.MessageName():
		return tiling.Shrink{}, nil
	case tiling.Expand{}.MessageName():
		return tiling.Expand{}, nil
	case layout.ToggleStruts{}.MessageName():
		return layout.ToggleStruts{}, nil
	default:
		return nil, fmt.Errorf("unknown message %q", name)
	}
}

func rectData(r platform.Rect) RectData {
	return RectData{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
}

// NewStrutsData converts a strut snapshot for the wire.
func NewStrutsData(snap docks.Snapshot) StrutsData {
	struts := make([]StrutInfo, len(snap.Struts))
	for i, s := range snap.Struts {
		struts[i] = StrutInfo{
			Side:       s.Side.String(),
			Thickness:  s.Thickness,
			RangeStart: s.RangeStart,
			RangeEnd:   s.RangeEnd,
		}
	}
	return StrutsData{
		Screen: rectData(snap.Screen),
		Usable: rectData(snap.Usable),
		Struts: struts,
	}
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
