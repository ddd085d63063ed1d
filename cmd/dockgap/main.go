package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/dockgap/internal/config"
	"github.com/1broseidon/dockgap/internal/daemon"
	"github.com/1broseidon/dockgap/internal/hotkeys"
	"github.com/1broseidon/dockgap/internal/ipc"
	"github.com/1broseidon/dockgap/internal/platform"
	"github.com/1broseidon/dockgap/internal/tiling"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "daemon":
		os.Exit(runDaemon(os.Args[2:]))
	case "status":
		os.Exit(runStatus(os.Args[2:]))
	case "struts":
		os.Exit(runStruts(os.Args[2:]))
	case "toggle":
		os.Exit(runSimple("toggle", "Toggle dock space avoidance and re-tile.", os.Args[2:], toggleStruts))
	case "tile":
		os.Exit(runSimple("tile", "Tile all managed windows with the active layout.", os.Args[2:], func(c *ipc.Client) error {
			return c.Tile()
		}))
	case "undo":
		os.Exit(runSimple("undo", "Restore window geometry from before the last tile.", os.Args[2:], func(c *ipc.Client) error {
			return c.Undo()
		}))
	case "shrink", "expand":
		name := os.Args[1]
		os.Exit(runSimple(name, fmt.Sprintf("Send %q to the active layout.", name), os.Args[2:], func(c *ipc.Client) error {
			return sendMessage(c, name)
		}))
	case "layout":
		os.Exit(runLayout(os.Args[2:]))
	case "preview":
		os.Exit(runPreview(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: dockgap <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  daemon              Start the dockgap daemon (foreground)")
	fmt.Fprintln(w, "  status              Show daemon status")
	fmt.Fprintln(w, "  struts              Show dock struts and the usable area")
	fmt.Fprintln(w, "  toggle              Toggle dock space avoidance")
	fmt.Fprintln(w, "  tile                Tile managed windows")
	fmt.Fprintln(w, "  undo                Undo last tiling operation")
	fmt.Fprintln(w, "  shrink              Narrow the master pane")
	fmt.Fprintln(w, "  expand              Widen the master pane")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  layout list         List available layouts")
	fmt.Fprintln(w, "  layout apply        Apply a layout")
	fmt.Fprintln(w, "  preview             Draw a layout around the current docks")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'dockgap <command> --help' for command-specific options.")
}

func runDaemon(args []string) int {
	fs := flag.NewFlagSet("daemon", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: dockgap daemon [--config PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Run the daemon in the foreground: hotkeys, IPC and the strut watcher.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	configPath := fs.String("config", "", "Config file path (default: ~/.config/dockgap/config.yaml)")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "daemon takes no arguments")
		fs.Usage()
		return 2
	}

	loadConfig := config.Load
	if *configPath != "" {
		path := *configPath
		loadConfig = func() (*config.Config, error) {
			res, err := config.LoadFromPath(path)
			if err != nil {
				return nil, err
			}
			return res.Config, nil
		}
	}

	// Load configuration
	cfg, err := loadConfig()
	if err != nil {
		log.Printf("Failed to load configuration: %v", err)
		return 1
	}
	log.Printf("Configuration loaded (hotkey: %s, gap: %dpx, layout: %s)", cfg.Hotkey, cfg.GapSize, cfg.DefaultLayout)

	levelVar := new(slog.LevelVar)
	levelVar.Set(parseLogLevel(cfg.LogLevel))
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar}))

	// Connect to display server
	backend, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		log.Printf("Failed to connect to display: %v", err)
		return 1
	}
	defer backend.Disconnect()

	tiler, err := tiling.NewTiler(backend, cfg)
	if err != nil {
		log.Printf("Failed to create tiler: %v", err)
		return 1
	}
	log.Println("Tiler initialized")

	hotkeyHandler, err := hotkeys.NewHandler(backend, tiler)
	if err != nil {
		log.Printf("Failed to create hotkey handler: %v", err)
		return 1
	}
	if err := hotkeyHandler.RegisterAll(cfg); err != nil {
		log.Printf("Warning: %v", err)
	}

	// Create config reload channel
	reloadChan := make(chan struct{}, 1)

	// Start IPC server
	ipcServer, err := ipc.NewServer(cfg, tiler, reloadChan)
	if err != nil {
		log.Printf("Failed to create IPC server: %v", err)
		return 1
	}
	ipcServer.SetConfigLoader(loadConfig)
	if err := ipcServer.Start(); err != nil {
		log.Printf("Failed to start IPC server: %v", err)
		return 1
	}
	defer ipcServer.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The watcher is restarted on reload so a changed poll interval applies.
	var stopWatcher context.CancelFunc
	startWatcher := func(cfg *config.Config) {
		if stopWatcher != nil {
			stopWatcher()
			stopWatcher = nil
		}
		interval := cfg.StrutPollInterval()
		if interval <= 0 {
			log.Println("Strut watcher disabled")
			return
		}
		watcher := daemon.NewWatcher(daemon.WatcherConfig{
			Interval: interval,
			Logger:   logger,
		}, tiler.StrutSnapshot, tiler.Retile)
		watcherCtx, watcherCancel := context.WithCancel(ctx)
		stopWatcher = watcherCancel
		go watcher.Run(watcherCtx)
	}
	startWatcher(cfg)

	log.Println("dockgap daemon started successfully")

	// Setup signal handlers
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	// Handle signals and config reloads
	go func() {
		for {
			select {
			case sig := <-sigCh:
				switch sig {
				case syscall.SIGHUP:
					log.Println("Received SIGHUP, reloading config...")
					if err := ipcServer.Reload(); err != nil {
						log.Printf("Config reload failed: %v", err)
						continue
					}
					log.Println("Config reloaded successfully")

				case os.Interrupt, syscall.SIGTERM:
					log.Println("Shutting down dockgap daemon...")
					cancel()
					ipcServer.Stop()
					os.Exit(0)
				}

			case <-reloadChan:
				// The tiler already has the new config, rebind what depends on it.
				newCfg := ipcServer.GetConfig()
				levelVar.Set(parseLogLevel(newCfg.LogLevel))
				hotkeyHandler.UnregisterAll()
				if err := hotkeyHandler.RegisterAll(newCfg); err != nil {
					log.Printf("Warning: %v", err)
				}
				startWatcher(newCfg)
			}
		}
	}()

	// Start event loop (blocking)
	log.Println("Entering event loop...")
	backend.EventLoop()
	return 0
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
