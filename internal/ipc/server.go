package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/1broseidon/dockgap/internal/config"
	"github.com/1broseidon/dockgap/internal/docks"
	"github.com/1broseidon/dockgap/internal/layout"
	"github.com/1broseidon/dockgap/internal/runtimepath"
	"github.com/1broseidon/dockgap/internal/tiling"
)

// Tiler is the daemon state driven over IPC.
type Tiler interface {
	Tile() error
	Undo() error
	ToggleStruts() (bool, error)
	SendMessage(msg layout.Message) (bool, error)
	SetLayout(name string) error
	Status() tiling.Status
	StrutSnapshot() (docks.Snapshot, error)
	UpdateConfig(cfg *config.Config) error
}

// ConfigLoader loads the configuration used by RELOAD.
type ConfigLoader func() (*config.Config, error)

// Server handles IPC requests from clients
type Server struct {
	socketPath   string
	listener     net.Listener
	cfg          *config.Config
	cfgMu        sync.RWMutex
	tiler        Tiler
	loadConfig   ConfigLoader
	startTime    time.Time
	reloadChan   chan struct{}
	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a new IPC server on the default socket path.
func NewServer(cfg *config.Config, tiler Tiler, reloadChan chan struct{}) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}
	return NewServerAt(socketPath, cfg, tiler, reloadChan), nil
}

// NewServerAt creates a new IPC server listening on socketPath.
func NewServerAt(socketPath string, cfg *config.Config, tiler Tiler, reloadChan chan struct{}) *Server {
	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		cfg:        cfg,
		tiler:      tiler,
		loadConfig: config.Load,
		startTime:  time.Now(),
		reloadChan: reloadChan,
	}
}

// SetConfigLoader replaces the loader used by RELOAD.
func (s *Server) SetConfigLoader(load ConfigLoader) {
	s.loadConfig = load
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandReload:
		return s.handleReload()
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetStruts:
		return s.handleGetStruts()
	case CommandToggleStruts:
		return s.handleToggleStruts()
	case CommandTile:
		return s.handleTile()
	case CommandUndo:
		return s.handleUndo()
	case CommandListLayouts:
		return s.handleListLayouts()
	case CommandApplyLayout:
		return s.handleApplyLayout(req.Payload)
	case CommandSendMessage:
		return s.handleSendMessage(req.Payload)
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// Reload loads the configuration again, hands it to the tiler and notifies
// the daemon through the reload channel. The previous config stays in effect
// when loading fails.
func (s *Server) Reload() error {
	newCfg, err := s.loadConfig()
	if err != nil {
		return fmt.Errorf("failed to reload config: %w", err)
	}
	if err := s.tiler.UpdateConfig(newCfg); err != nil {
		return fmt.Errorf("failed to apply config: %w", err)
	}

	s.cfgMu.Lock()
	s.cfg = newCfg
	s.cfgMu.Unlock()

	// Notify the main daemon via channel (non-blocking)
	select {
	case s.reloadChan <- struct{}{}:
	default:
	}
	return nil
}

// handleReload reloads the configuration
func (s *Server) handleReload() *Response {
	log.Println("IPC: Received RELOAD command")

	if err := s.Reload(); err != nil {
		return NewErrorResponse(err.Error())
	}

	log.Println("IPC: Config reloaded successfully")

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleGetStatus returns current daemon status
func (s *Server) handleGetStatus() *Response {
	st := s.tiler.Status()
	status := StatusData{
		ActiveLayout:  st.Layout,
		Description:   st.Description,
		StrutsEnabled: st.StrutsEnabled,
		WindowCount:   st.WindowCount,
		LastTiledAt:   st.LastTiledAt,
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		DaemonRunning: true,
	}

	resp, _ := NewOKResponse(status)
	return resp
}

func (s *Server) handleGetStruts() *Response {
	snap, err := s.tiler.StrutSnapshot()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to read struts: %v", err))
	}
	resp, _ := NewOKResponse(NewStrutsData(snap))
	return resp
}

func (s *Server) handleToggleStruts() *Response {
	enabled, err := s.tiler.ToggleStruts()
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to toggle struts: %v", err))
	}
	resp, _ := NewOKResponse(ToggleData{StrutsEnabled: enabled})
	return resp
}

func (s *Server) handleTile() *Response {
	if err := s.tiler.Tile(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to tile: %v", err))
	}
	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleUndo() *Response {
	if err := s.tiler.Undo(); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to undo: %v", err))
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleListLayouts() *Response {
	s.cfgMu.RLock()
	data := LayoutsData{
		Layouts:       s.cfg.LayoutNames(),
		DefaultLayout: s.cfg.DefaultLayout,
	}
	s.cfgMu.RUnlock()
	data.ActiveLayout = s.tiler.Status().Layout

	resp, _ := NewOKResponse(data)
	return resp
}

func (s *Server) handleApplyLayout(payload json.RawMessage) *Response {
	var req ApplyLayoutPayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid apply payload: %v", err))
	}
	if req.LayoutName == "" {
		return NewErrorResponse("layout_name is required")
	}

	if err := s.tiler.SetLayout(req.LayoutName); err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to set active layout: %v", err))
	}

	if req.TileNow {
		if err := s.tiler.Tile(); err != nil {
			return NewErrorResponse(fmt.Sprintf("Failed to tile with active layout: %v", err))
		}
	}

	resp, _ := NewOKResponse(nil)
	return resp
}

func (s *Server) handleSendMessage(payload json.RawMessage) *Response {
	var req MessagePayload
	if err := json.Unmarshal(payload, &req); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid message payload: %v", err))
	}
	msg, err := ParseMessage(req.Message)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	changed, err := s.tiler.SendMessage(msg)
	if err != nil {
		return NewErrorResponse(fmt.Sprintf("Failed to apply message: %v", err))
	}
	resp, _ := NewOKResponse(MessageData{Changed: changed})
	return resp
}

// sendError sends an error response
func (s *Server) sendError(conn net.Conn, errMsg string) {
	resp := NewErrorResponse(errMsg)
	data, _ := resp.Marshal()
	data = append(data, '\n')
	conn.Write(data)
}

// Stop gracefully shuts down the IPC server
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	s.wg.Wait()
	os.Remove(s.socketPath)
}

// GetConfig returns the current config (thread-safe)
func (s *Server) GetConfig() *config.Config {
	s.cfgMu.RLock()
	defer s.cfgMu.RUnlock()
	return s.cfg
}
