// kfs-hosted runs the kernel as a regular process on top of emulated
// hardware.
//
// Without flags the kernel console is drawn in the terminal and keystrokes
// are forwarded to the emulated keyboard; Esc or Ctrl-C quits. With -script
// the contents of a file are typed on the emulated keyboard and the final
// screen is printed to stdout.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/Duchemil/Kfs-1/device/video/console"
	"github.com/Duchemil/Kfs-1/hosted"
)

// refreshInterval is how often the terminal is redrawn in interactive mode.
const refreshInterval = 20 * time.Millisecond

var errNoTerminal = errors.New("interactive mode needs a terminal, use -script to run headless")

func main() {
	script := flag.String("script", "", "type the contents of `file` and print the resulting screen")
	logPath := flag.String("log", "", "write logs to `file`")
	debug := flag.Bool("debug", false, "enable debug logging (also enabled by $DEBUG)")
	flag.Parse()

	// Setup our logging level - default to warnings or higher
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelWarn)

	if *debug || os.Getenv("DEBUG") != "" {
		lvl.Set(slog.LevelDebug)
	}

	// Interactive mode owns the terminal so logs are only kept if a file
	// is given.
	var logOut io.Writer = os.Stderr
	if *script == "" {
		logOut = io.Discard
	}

	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "kfs-hosted: %s\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}

	log := slog.New(slog.NewJSONHandler(logOut, &slog.HandlerOptions{
		Level: lvl,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var err error
	if *script != "" {
		err = runScript(ctx, *script, log)
	} else {
		err = runInteractive(ctx, log)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "kfs-hosted: %s\n", err)
		stop()
		os.Exit(1)
	}
}

// runScript types the contents of path on a headless machine and prints the
// screen once every keystroke has been processed.
func runScript(ctx context.Context, path string, log *slog.Logger) error {
	var (
		data []byte
		err  error
	)

	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("reading script: %w", err)
	}

	screen := tcell.NewSimulationScreen("UTF-8")
	if err = screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()
	screen.SetSize(console.Width, console.Height)

	m := hosted.NewMachine(screen, log)
	m.Type(data)
	m.Close()

	log.Debug("running script", "path", path, "bytes", len(data))
	if err = m.Run(ctx); err != nil {
		return err
	}

	fmt.Println(m.Display().Text())
	return nil
}

// runInteractive draws the machine in the terminal and forwards key events
// until Esc or Ctrl-C is pressed.
func runInteractive(ctx context.Context, log *slog.Logger) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err = screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer screen.Fini()

	m := hosted.NewMachine(screen, log)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	runErr := make(chan error, 1)
	go func() { runErr <- m.Run(ctx) }()

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}

			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	ticker := time.NewTicker(refreshInterval)
	defer ticker.Stop()

	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					cancel()
					return <-runErr
				}

				if !m.Key(ev) {
					log.Debug("ignoring key", "key", ev.Name())
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case <-ticker.C:
			screen.Show()
		case err := <-runErr:
			return err
		}
	}
}
