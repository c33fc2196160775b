// cmd/dupline/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	stlog "log" // Use standard log for FATAL errors before logger is ready
	"os"
	"path/filepath"
	"strings"

	"github.com/bethropolis/dupline/internal/app"
	"github.com/bethropolis/dupline/internal/config"
	"github.com/bethropolis/dupline/internal/logger"
	"github.com/bethropolis/dupline/internal/statusbar"
	"github.com/gdamore/tcell/v2"
)

const version = "0.3.0"

func main() {
	// --- Argument & Flag Parsing ---
	selFlag := flag.String("sel", "", "Selections as LINE:COL or LINE:COL-LINE:COL, comma separated (1-based)")
	cmdFlag := flag.String("cmd", "", "Commands to run in order, comma separated")
	writeFlag := flag.Bool("w", false, "Write the buffer back to the file")
	interactive := flag.Bool("i", false, "Open the file in the terminal view")
	watch := flag.Bool("watch", false, "Reload settings when the config file changes")
	list := flag.Bool("list", false, "List the registered commands and exit")

	var flags config.Flags
	args := flags.ParseFlags()
	if *flags.Version {
		fmt.Printf("%s %s\n", config.AppName, version)
		return
	}

	configPath := *flags.ConfigFilePath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	cfg, err := config.LoadConfig(configPath, &flags)
	if err != nil {
		stlog.Printf("Warning: %v (using defaults)", err)
	}

	// --- Logger Initialization ---
	logOutput, closeLog := openLog(cfg.Logger.LogFilePath)
	defer closeLog()
	logger.InitWithConfig(cfg.Logger, logOutput)
	logger.SetDebugFilter(*flags.DebugLog)
	logger.Infof("Starting %s %s", config.AppName, version)

	filePath := ""
	if len(args) > 0 {
		filePath = args[0]
	}

	opts := app.Options{
		FilePath:   filePath,
		Config:     cfg,
		ConfigPath: configPath,
		Watch:      *watch || *interactive,
	}
	if *interactive {
		screen, err := tcell.NewScreen()
		if err != nil {
			stlog.Fatalf("Failed to create screen: %v", err)
		}
		opts.Screen = screen
	}

	a, err := app.NewApp(opts)
	if err != nil {
		logger.Errorf("Error initializing application: %v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer a.Close()

	if *list {
		fmt.Println(strings.Join(a.Commands(), "\n"))
		return
	}

	if *selFlag != "" {
		sels, err := parseSelections(*selFlag)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		a.SetSelections(sels)
	}

	if *interactive {
		if err := a.Run(); err != nil {
			logger.Errorf("Application exited with error: %v", err)
			os.Exit(1)
		}
		return
	}

	if err := runBatch(a, *cmdFlag, *writeFlag, os.Stdout); err != nil {
		logger.Errorf("%v", err)
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// runBatch runs the commands and prints the buffer, the selections and the
// occurrence indicator.
func runBatch(a *app.App, cmds string, write bool, out io.Writer) error {
	for _, id := range strings.Split(cmds, ",") {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if err := a.RunCommand(id); err != nil {
			return fmt.Errorf("command %s: %w", id, err)
		}
	}
	if write {
		if err := a.Save(); err != nil {
			return err
		}
	}

	a.RefreshOccurrences()
	ed := a.Editor()
	fmt.Fprintln(out, ed.GetText())
	fmt.Fprintf(out, "-- selections: %s\n", formatSelections(ed.ListSelections()))
	if indicator := statusbar.IndicatorText(a.StatusBar().Occurrences()); indicator != "" {
		fmt.Fprintf(out, "-- occurrences: %s\n", indicator)
	}
	return nil
}

// openLog opens the log destination: "-" is stderr, empty is dupline.log
// in the user cache directory.
func openLog(path string) (io.Writer, func()) {
	if path == "-" {
		return os.Stderr, func() {}
	}
	if path == "" {
		dir, err := os.UserCacheDir()
		if err != nil {
			return io.Discard, func() {}
		}
		path = filepath.Join(dir, config.AppName, config.DefaultLogFileName)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		stlog.Printf("Warning: cannot create log dir: %v", err)
		return io.Discard, func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		stlog.Printf("Warning: failed to open log file '%s': %v", path, err)
		return io.Discard, func() {}
	}
	return f, func() { f.Close() }
}
