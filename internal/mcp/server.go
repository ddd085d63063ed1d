package mcp

import (
	"context"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/dockgap/internal/ipc"
)

const (
	ServerName    = "dockgap"
	ServerVersion = "0.1.0"
)

// Daemon is the subset of the IPC client the tools call.
type Daemon interface {
	GetStatus() (*ipc.StatusData, error)
	GetStruts() (*ipc.StrutsData, error)
	ToggleStruts() (bool, error)
	Tile() error
	ListLayouts() (*ipc.LayoutsData, error)
	ApplyLayout(layoutName string, tileNow bool) error
	SendMessage(name string) (bool, error)
}

// Server exposes the running daemon to MCP clients.
type Server struct {
	mcpServer *mcpsdk.Server
	daemon    Daemon
}

// NewServer creates an MCP server that forwards tool calls to daemon.
func NewServer(daemon Daemon) *Server {
	s := &Server{daemon: daemon}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_status",
		Description: "Report the daemon's active layout, whether dock space is reserved, and how many windows were tiled by the last pass.",
	}, s.handleGetStatus)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_struts",
		Description: "List the screen edge reservations (struts) declared by docks and panels, the screen geometry, and the usable area left for tiled windows.",
	}, s.handleListStruts)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "toggle_struts",
		Description: "Flip dock space reservation. When disabled, tiled windows may cover panels. Re-tiles immediately and returns the new state.",
	}, s.handleToggleStruts)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "tile",
		Description: "Tile all managed windows on the screen with the active layout. Dock and desktop windows are never moved.",
	}, s.handleTile)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "apply_layout",
		Description: "Switch the active layout by name and tile. Switching layouts re-enables dock space reservation.",
	}, s.handleApplyLayout)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "send_message",
		Description: "Send a message to the active layout: shrink or expand the master pane of a master-stack layout, or toggle-struts.",
	}, s.handleSendMessage)
}
