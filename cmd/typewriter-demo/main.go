package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/iw2rmb/typewriter"
	"github.com/iw2rmb/typewriter/editor"
)

const sample = "# Typewriter\n\n" +
	"The line you are typing stays in the middle of the screen.\n" +
	"Markers like *italic*, **bold** and ***both*** stay visible.\n\n" +
	"> Ctrl+S saves, Ctrl+T toggles typewriter mode, Ctrl+C quits."

var statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

type model struct {
	editor editor.Model
	path   string
	status string
}

func (m model) Init() tea.Cmd { return m.editor.Init() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor = m.editor.SetSize(msg.Width, max(msg.Height-1, 0))
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.editor.Close()
			return m, tea.Quit
		case "ctrl+s":
			m.status = m.save()
			return m, nil
		case "ctrl+t":
			m.editor = m.editor.SetTypewriter(!m.editor.Typewriter())
			m.status = fmt.Sprintf("typewriter: %v", m.editor.Typewriter())
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) View() string {
	return m.editor.View() + "\n" + statusStyle.Render(m.status)
}

func (m model) save() string {
	if m.path == "" {
		return "no file to save to"
	}
	if err := os.WriteFile(m.path, []byte(m.editor.Text()), 0o644); err != nil {
		return "save failed: " + err.Error()
	}
	return "saved " + m.path
}

func run() error {
	var (
		plain       = flag.Bool("plain", false, "start with typewriter mode off")
		keepKB      = flag.Bool("keep-keyboard", false, "keep the soft keyboard visible in typewriter mode")
		bias        = flag.Int("bias", 0, "rows added to the centering offset")
		logPath     = flag.String("log", "", "write debug logs to this file")
		showVersion = flag.Bool("version", false, "print the version and exit")
	)
	flag.Parse()

	if *showVersion {
		fmt.Println("typewriter-demo", typewriter.VersionTag())
		return nil
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("typewriter-demo needs a terminal on stdout")
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logger = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	text := sample
	path := flag.Arg(0)
	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case err == nil:
			text = string(b)
		case errors.Is(err, fs.ErrNotExist):
			text = ""
		default:
			return fmt.Errorf("read %s: %w", path, err)
		}
	}

	ed := editor.New(editor.Config{
		Text:             text,
		Typewriter:       !*plain,
		KeepSoftKeyboard: *keepKB,
		CenterBias:       *bias,
		Style:            editor.DefaultStyle(),
		Logger:           logger,
	})
	m := model{editor: ed, path: path, status: "ctrl+s save · ctrl+t typewriter · ctrl+c quit"}

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func main() {
	if err := run(); err != nil {
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
