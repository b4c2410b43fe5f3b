package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rusenback/devicemgr/internal/device"
	"github.com/rusenback/devicemgr/internal/logsink"
	"github.com/rusenback/devicemgr/internal/model"
	"github.com/rusenback/devicemgr/internal/tools"
)

// Update handles messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeLog()
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case m.picking:
			return m.updatePicker(msg)
		case m.confirm != nil:
			return m.updateConfirm(msg)
		}
		return m.handleKey(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tickMsg:
		// Stale ticks from an earlier toggle are dropped
		if msg.id != m.tickID || !m.autoDetect {
			return m, nil
		}
		cmds := []tea.Cmd{tickCmd(m.tickID, m.cfg.AutoDetectInterval)}
		if !m.scanning {
			cmds = append(cmds, m.startScan())
		}
		return m, tea.Batch(cmds...)

	case scanMsg:
		if msg.id != m.scanID {
			return m, nil
		}
		if m.scanCancel != nil {
			m.scanCancel()
			m.scanCancel = nil
		}
		m.scanning = false
		if msg.report.Cancelled {
			return m, nil
		}
		m.report = msg.report
		if m.cursor >= len(m.report.Devices) {
			m.cursor = max(len(m.report.Devices)-1, 0)
		}
		return m, loadHistory(m.history, m.cfg.HistorySize)

	case actionMsg:
		if m.busy > 0 {
			m.busy--
		}
		if msg.err != nil {
			m.message = fmt.Sprintf("%s: %v", msg.name, msg.err)
		}
		return m, loadHistory(m.history, m.cfg.HistorySize)

	case logBatchMsg:
		if msg.err != nil {
			if isShutdown(msg.err) {
				return m, nil
			}
			m.log.Warn().Err(msg.err).Msg("log consumer")
			return m, waitForLog(m.ctx, m.sink)
		}
		logsink.Apply(msg.events, m.logs)
		m.refreshLog()
		return m, waitForLog(m.ctx, m.sink)

	case historyMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("history query")
			return m, nil
		}
		m.runs = msg.runs
		return m, nil

	case toolsMsg:
		for _, line := range tools.Changes(m.tools, msg.set) {
			m.sink.Post(line)
		}
		m.tools = msg.set
		m.devices.SetTools(msg.set)
		return m, waitForTools(m.ctx, m.toolsCh)

	case watchStoppedMsg:
		if msg.err != nil {
			m.log.Warn().Err(msg.err).Msg("tools watcher stopped")
		}
		return m, nil

	case statusMsg:
		m.message = string(msg)
		return m, nil
	}

	// filepicker reads directories through its own messages
	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.message = ""
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.shutdown()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.report.Devices)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if dev, ok := m.selected(); ok {
			m.sink.Post("Selected device: " + dev.Label())
		}

	case key.Matches(msg, m.keys.Prev):
		m.quick = (m.quick + len(device.QuickCommands) - 1) % len(device.QuickCommands)

	case key.Matches(msg, m.keys.Next):
		m.quick = (m.quick + 1) % len(device.QuickCommands)

	case key.Matches(msg, m.keys.Execute):
		quick, serial := device.QuickCommands[m.quick], m.serial()
		cmd = m.act("Execute", func(ctx context.Context, d device.Manager) error {
			d.Execute(ctx, serial, quick)
			return nil
		})

	case key.Matches(msg, m.keys.Detect):
		cmd = m.startScan()

	case key.Matches(msg, m.keys.Auto):
		m.autoDetect = !m.autoDetect
		m.tickID++
		if !m.autoDetect {
			m.sink.Post("Auto-detect disabled")
			return m, nil
		}
		m.sink.Postf("Auto-detect enabled (every %s)", m.cfg.AutoDetectInterval)
		return m, tickCmd(m.tickID, m.cfg.AutoDetectInterval)

	case key.Matches(msg, m.keys.Recovery):
		serial := m.serial()
		cmd = m.act("Reboot recovery", func(ctx context.Context, d device.Manager) error {
			d.RebootRecovery(ctx, serial)
			return nil
		})

	case key.Matches(msg, m.keys.Download):
		serial := m.serial()
		cmd = m.act("Reboot download", func(ctx context.Context, d device.Manager) error {
			d.RebootDownload(ctx, serial)
			return nil
		})

	case key.Matches(msg, m.keys.Fastboot):
		serial := m.serial()
		cmd = m.act("Reboot bootloader", func(ctx context.Context, d device.Manager) error {
			d.RebootBootloader(ctx, serial)
			return nil
		})

	case key.Matches(msg, m.keys.Unlock):
		m.ask(device.ActionUnlock)

	case key.Matches(msg, m.keys.Lock):
		m.ask(device.ActionLock)

	case key.Matches(msg, m.keys.FRP):
		m.ask(device.ActionFRP)

	case key.Matches(msg, m.keys.Shell):
		serial := m.serial()
		cmd = m.act("Shell", func(ctx context.Context, d device.Manager) error {
			d.OpenShell(ctx, serial)
			return nil
		})

	case key.Matches(msg, m.keys.Firmware):
		m.picking = true
		return m, m.picker.Init()

	case key.Matches(msg, m.keys.Clear):
		m.sink.Clear()

	case key.Matches(msg, m.keys.Copy):
		return m, copyLog(m.logs.entries)

	case key.Matches(msg, m.keys.PageUp):
		m.logView.ViewUp()

	case key.Matches(msg, m.keys.PageDown):
		m.logView.ViewDown()

	case key.Matches(msg, m.keys.Top):
		m.logView.GotoTop()

	case key.Matches(msg, m.keys.Bottom):
		m.logView.GotoBottom()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeLog()
	}

	return m, cmd
}

// updateConfirm answers the pending y/n prompt
func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := *m.confirm

	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.confirm = nil
		serial := m.serial()
		cmd := m.act(string(action), func(ctx context.Context, d device.Manager) error {
			switch action {
			case device.ActionUnlock:
				d.UnlockBootloader(ctx, serial)
			case device.ActionLock:
				d.LockBootloader(ctx, serial)
			case device.ActionFRP:
				d.FRPBypass(ctx, serial)
			}
			return nil
		})
		return m, cmd

	case key.Matches(msg, m.keys.Deny), msg.Type == tea.KeyCtrlC:
		m.confirm = nil
		m.devices.Cancelled(action)
	}

	return m, nil
}

// updatePicker drives the firmware file picker
func (m Model) updatePicker(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ClosePick) || msg.Type == tea.KeyCtrlC {
		m.picking = false
		return m, nil
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if ok, path := m.picker.DidSelectFile(msg); ok {
		m.picking = false
		reveal := m.act("Firmware", func(ctx context.Context, d device.Manager) error {
			return d.RevealFirmware(ctx, path)
		})
		return m, tea.Batch(cmd, reveal)
	}
	if ok, path := m.picker.DidSelectDisabledFile(msg); ok {
		m.message = "Not a firmware archive: " + path
	}
	return m, cmd
}

// startScan cancels a running scan and starts a new one
func (m *Model) startScan() tea.Cmd {
	if m.scanCancel != nil {
		m.scanCancel()
	}
	ctx, cancel := context.WithCancel(m.ctx)
	m.scanCancel = cancel
	m.scanID++
	m.scanning = true
	return scanDevices(ctx, m.devices, m.scanID)
}

// act runs fn as a background worker bound to the program lifetime
func (m *Model) act(name string, fn func(ctx context.Context, d device.Manager) error) tea.Cmd {
	m.busy++
	ctx, devices := m.ctx, m.devices
	return runAction(name, func() error { return fn(ctx, devices) })
}

func (m *Model) ask(action device.Action) {
	m.confirm = &action
}

// shutdown cancels every in-flight command
func (m *Model) shutdown() {
	if m.scanCancel != nil {
		m.scanCancel()
		m.scanCancel = nil
	}
	m.cancel()
}

// selected returns the highlighted device, if any
func (m Model) selected() (model.Device, bool) {
	if m.report.Placeholder || m.cursor >= len(m.report.Devices) {
		return model.Device{}, false
	}
	return m.report.Devices[m.cursor], true
}

// serial scopes actions to the highlighted device
func (m Model) serial() string {
	if dev, ok := m.selected(); ok {
		return dev.Serial
	}
	return ""
}
