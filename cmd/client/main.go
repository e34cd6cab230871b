package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cbodonnell/frontline/client/game"
	"github.com/cbodonnell/frontline/client/network"
	"github.com/cbodonnell/frontline/client/terminal"
	"github.com/cbodonnell/frontline/pkg/config"
	"github.com/cbodonnell/frontline/pkg/log"
	"github.com/cbodonnell/frontline/pkg/queue"
	"github.com/cbodonnell/frontline/pkg/version"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	envFile := flag.String("env-file", "", "Env file to load instead of .env")
	serverURL := flag.String("server", "", "Game server websocket URL")
	logLevel := flag.String("log-level", "", "Log level")
	logFile := flag.String("log-file", "", "Write logs to this file (the terminal UI always needs one)")
	uiKind := flag.String("ui", "", "Front end: ebiten or terminal")
	playerName := flag.String("name", "", "Default player name")
	compress := flag.Bool("compress", false, "Send zstd compressed binary frames")
	debug := flag.Bool("debug", false, "Show the debug overlay")
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "server":
			cfg.ServerURL = *serverURL
		case "log-level":
			cfg.LogLevel = *logLevel
		case "ui":
			cfg.UI = config.UIKind(*uiKind)
		case "name":
			cfg.PlayerName = *playerName
		case "compress":
			cfg.Compress = *compress
		}
	})
	if err := cfg.Validate(); err != nil {
		panic(fmt.Sprintf("Invalid config: %v", err))
	}

	parsedLogLevel, _ := log.ParseLogLevel(cfg.LogLevel)
	logOut, closeLog, err := logOutput(cfg.UI, *logFile)
	if err != nil {
		panic(fmt.Sprintf("Failed to open log file: %v", err))
	}
	defer closeLog()
	logger := log.New(logOut, "", log.DefaultLoggerFlag, parsedLogLevel)
	log.SetDefaultLogger(logger)
	log.Info("Log level set to %s", parsedLogLevel)

	log.Info("Starting client version %s", version.Get())

	serverMessageQueue := queue.NewInMemoryQueue(1024)
	networkManager := network.NewNetworkManager(network.NewNetworkManagerOptions{
		ServerURL:    cfg.ServerURL,
		Compress:     cfg.Compress,
		MessageQueue: serverMessageQueue,
	})
	defer func() {
		if networkManager.IsConnected() {
			if err := networkManager.Stop(); err != nil {
				log.Warn("Failed to stop network manager: %v", err)
			}
		}
	}()

	switch cfg.UI {
	case config.UITerminal:
		runTerminal(networkManager, cfg.PlayerName)
	default:
		runEbiten(networkManager, cfg.PlayerName, *debug)
	}
}

// logOutput keeps the terminal UI's screen clean by sending logs to a file.
func logOutput(ui config.UIKind, path string) (io.Writer, func(), error) {
	if path == "" && ui == config.UITerminal {
		path = "frontline.log"
	}
	if path == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func runEbiten(networkManager *network.NetworkManager, playerName string, debug bool) {
	g, err := game.NewGame(game.NewGameOptions{
		Debug:          debug,
		PlayerName:     playerName,
		NetworkManager: networkManager,
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to create game: %v", err))
	}

	ebiten.SetWindowSize(game.DefaultScreenWidth, game.DefaultScreenHeight)
	ebiten.SetWindowTitle("Frontline")
	if err := ebiten.RunGame(g); err != nil {
		panic(fmt.Sprintf("Failed to run game: %v", err))
	}
}

func runTerminal(networkManager *network.NetworkManager, playerName string) {
	model := terminal.NewModel(terminal.NewModelOptions{
		Connection: networkManager,
		PlayerName: playerName,
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Error("Terminal UI failed: %v", err)
		os.Exit(1)
	}
}
