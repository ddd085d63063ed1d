package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/dockgap/internal/ipc"
)

func (s *Server) handleGetStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetStatusInput) (*mcpsdk.CallToolResult, GetStatusOutput, error) {
	status, err := s.daemon.GetStatus()
	if err != nil {
		return nil, GetStatusOutput{}, err
	}
	return nil, GetStatusOutput{
		ActiveLayout:  status.ActiveLayout,
		Description:   status.Description,
		StrutsEnabled: status.StrutsEnabled,
		WindowCount:   status.WindowCount,
		UptimeSeconds: status.UptimeSeconds,
	}, nil
}

func (s *Server) handleListStruts(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListStrutsInput) (*mcpsdk.CallToolResult, ListStrutsOutput, error) {
	data, err := s.daemon.GetStruts()
	if err != nil {
		return nil, ListStrutsOutput{}, err
	}
	struts := data.Struts
	if struts == nil {
		struts = []ipc.StrutInfo{}
	}
	return nil, ListStrutsOutput{Screen: data.Screen, Usable: data.Usable, Struts: struts}, nil
}

func (s *Server) handleToggleStruts(_ context.Context, _ *mcpsdk.CallToolRequest, _ ToggleStrutsInput) (*mcpsdk.CallToolResult, ToggleStrutsOutput, error) {
	enabled, err := s.daemon.ToggleStruts()
	if err != nil {
		return nil, ToggleStrutsOutput{}, err
	}
	return nil, ToggleStrutsOutput{StrutsEnabled: enabled}, nil
}

func (s *Server) handleTile(_ context.Context, _ *mcpsdk.CallToolRequest, _ TileInput) (*mcpsdk.CallToolResult, TileOutput, error) {
	if err := s.daemon.Tile(); err != nil {
		return nil, TileOutput{}, err
	}
	status, err := s.daemon.GetStatus()
	if err != nil {
		return nil, TileOutput{}, err
	}
	return nil, TileOutput{ActiveLayout: status.ActiveLayout, WindowCount: status.WindowCount}, nil
}

func (s *Server) handleApplyLayout(_ context.Context, _ *mcpsdk.CallToolRequest, args ApplyLayoutInput) (*mcpsdk.CallToolResult, ApplyLayoutOutput, error) {
	if args.Layout == "" {
		return nil, ApplyLayoutOutput{}, fmt.Errorf("layout is required")
	}

	layouts, err := s.daemon.ListLayouts()
	if err != nil {
		return nil, ApplyLayoutOutput{}, err
	}
	found := false
	for _, name := range layouts.Layouts {
		if name == args.Layout {
			found = true
			break
		}
	}
	if !found {
		return nil, ApplyLayoutOutput{}, fmt.Errorf("unknown layout %q (available: %v)", args.Layout, layouts.Layouts)
	}

	tileNow := args.Tile == nil || *args.Tile
	if err := s.daemon.ApplyLayout(args.Layout, tileNow); err != nil {
		return nil, ApplyLayoutOutput{}, err
	}
	return nil, ApplyLayoutOutput{ActiveLayout: args.Layout, Available: layouts.Layouts}, nil
}

func (s *Server) handleSendMessage(_ context.Context, _ *mcpsdk.CallToolRequest, args SendMessageInput) (*mcpsdk.CallToolResult, SendMessageOutput, error) {
	if _, err := ipc.ParseMessage(args.Message); err != nil {
		return nil, SendMessageOutput{}, fmt.Errorf("%w (expected one of %v)", err, ipc.Messages)
	}

	changed, err := s.daemon.SendMessage(args.Message)
	if err != nil {
		return nil, SendMessageOutput{}, err
	}
	status, err := s.daemon.GetStatus()
	if err != nil {
		return nil, SendMessageOutput{}, err
	}
	return nil, SendMessageOutput{Changed: changed, Description: status.Description}, nil
}
