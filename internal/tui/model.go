package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/rusenback/devicemgr/internal/config"
	"github.com/rusenback/devicemgr/internal/device"
	"github.com/rusenback/devicemgr/internal/logsink"
	"github.com/rusenback/devicemgr/internal/model"
	"github.com/rusenback/devicemgr/internal/tools"
)

// Version is shown in the startup banner
const Version = "2.0.0"

// History is the command journal as the history panel reads it
type History interface {
	Flush()
	Recent(limit int) ([]model.CommandRun, error)
}

// Deps are the collaborators the TUI drives
type Deps struct {
	Devices device.Manager
	Sink    *logsink.Sink
	History History // optional
	Config  config.Config
	Log     zerolog.Logger
}

// Model represents the TUI application state
type Model struct {
	devices device.Manager
	sink    *logsink.Sink
	history History
	cfg     config.Config
	log     zerolog.Logger

	ctx    context.Context
	cancel context.CancelFunc

	report  device.Report
	cursor  int
	quick   int
	tools   tools.Set
	toolsCh chan tools.Set

	scanning   bool
	scanID     int
	scanCancel context.CancelFunc
	busy       int

	autoDetect bool
	tickID     int

	confirm *device.Action
	picking bool
	picker  filepicker.Model

	logs    *logBuffer
	logView viewport.Model
	runs    []model.CommandRun

	spinner spinner.Model
	help    help.Model
	keys    keyMap

	width   int
	height  int
	message string
}

// Message types for Bubbletea update loop
type tickMsg struct {
	id int
	at time.Time
}

type scanMsg struct {
	id     int
	report device.Report
}

type actionMsg struct {
	name string
	err  error
}

type logBatchMsg struct {
	events []logsink.Event
	err    error
}

type historyMsg struct {
	runs []model.CommandRun
	err  error
}

type toolsMsg struct {
	set tools.Set
}

type watchStoppedMsg struct {
	err error
}

type statusMsg string

// NewModel creates the TUI model and posts the startup lines
func NewModel(deps Deps) Model {
	ctx, cancel := context.WithCancel(context.Background())

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#89B4FA"))

	fp := filepicker.New()
	fp.AllowedTypes = device.FirmwareExtensions
	fp.CurrentDirectory = deps.Config.ToolsDir
	fp.Height = 10

	m := Model{
		devices: deps.Devices,
		sink:    deps.Sink,
		history: deps.History,
		cfg:     deps.Config,
		log:     deps.Log.With().Str("module", "tui").Logger(),
		ctx:     ctx,
		cancel:  cancel,
		report:  device.Report{Placeholder: true},
		tools:   deps.Devices.Tools(),
		toolsCh: make(chan tools.Set),
		picker:  fp,
		logs:    &logBuffer{},
		logView: viewport.New(0, 0),
		spinner: s,
		help:    help.New(),
		keys:    defaultKeyMap(),
	}

	m.sink.Post("Samsung Galaxy S23 Device Manager v" + Version + " initialized")
	m.sink.Post("Please ensure ADB drivers are installed and device is connected via USB")
	m.sink.Post("For S23 series: Enable Developer Options > USB Debugging first")
	for _, line := range m.tools.Warnings() {
		m.sink.Post(line)
	}

	return m
}

// Init starts the log consumer and the tools watcher
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForLog(m.ctx, m.sink),
		watchTools(m.ctx, m.cfg.ToolsDir, m.log, m.toolsCh),
		waitForTools(m.ctx, m.toolsCh),
		m.spinner.Tick,
	)
}

// logBuffer is the display side of the log sink
type logBuffer struct {
	entries []model.LogEntry
}

func (b *logBuffer) Append(e model.LogEntry) {
	b.entries = append(b.entries, e)
}

func (b *logBuffer) Clear() {
	b.entries = nil
}

var _ logsink.Surface = (*logBuffer)(nil)
