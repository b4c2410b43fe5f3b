package device

import (
	"context"
	"errors"
	"strings"

	"github.com/rusenback/devicemgr/internal/model"
	"github.com/rusenback/devicemgr/internal/runner"
)

// PlaceholderText is the single device row shown when nothing was found
const PlaceholderText = "No devices detected"

// Report is the result of one scan pass. It replaces the previous one unless
// Cancelled is set, in which case callers keep what they had.
type Report struct {
	Devices     []model.Device
	Placeholder bool
	Cancelled   bool
}

// Rows returns the device list lines for display
func (r Report) Rows() []string {
	if r.Cancelled {
		return nil
	}
	if r.Placeholder {
		return []string{PlaceholderText}
	}
	rows := make([]string, 0, len(r.Devices))
	for _, d := range r.Devices {
		rows = append(rows, d.Label())
	}
	return rows
}

// Scan lists devices from adb and fastboot. Each step degrades on its own and
// an empty result is reported with a placeholder. Once ctx is done the scan
// stops posting and returns a Cancelled report.
func (c *Client) Scan(ctx context.Context) Report {
	c.sink.Post("Scanning for devices...")
	set := c.Tools()

	var devices []model.Device

	if set.HasADB() {
		res, ok := c.scanStep(ctx, set.ADBCommand("", "devices -l"), "adb devices")
		if !ok {
			return c.cancelled()
		}
		for _, serial := range ParseADBDevices(res.Output) {
			dev, ok := c.describe(ctx, serial)
			if !ok {
				return c.cancelled()
			}
			devices = append(devices, dev)
		}
	} else {
		c.log.Debug().Msg("adb missing, skipping adb pass")
	}

	if set.HasFastboot() {
		res, ok := c.scanStep(ctx, set.FastbootCommand("", "devices"), "fastboot devices")
		if !ok {
			return c.cancelled()
		}
		for _, serial := range ParseFastbootDevices(res.Output) {
			devices = append(devices, model.Device{Transport: model.TransportFastboot, Serial: serial})
			c.sink.Post("Device in fastboot mode: " + serial)
		}
	} else {
		c.log.Debug().Msg("fastboot missing, skipping fastboot pass")
	}

	c.log.Info().Int("devices", len(devices)).Msg("scan finished")

	if len(devices) == 0 {
		c.sink.Post("No devices found. Check USB connection and drivers.")
		return Report{Placeholder: true}
	}
	c.sink.Post("Device scan complete")
	return Report{Devices: devices}
}

// scanStep runs one listing command and posts why it produced nothing.
// ok is false when ctx ended the run.
func (c *Client) scanStep(ctx context.Context, command, step string) (runner.Result, bool) {
	res := c.exec.Run(ctx, c.request(command))
	switch {
	case interrupted(res):
		return res, false
	case res.Failed():
		c.sink.Post(res.Output)
	case res.TimedOut:
		c.sink.Postf("ERROR: %s timed out after %s", step, c.timeout)
	}
	return res, true
}

func (c *Client) cancelled() Report {
	c.log.Info().Msg("scan cancelled")
	return Report{Cancelled: true}
}

// describe fetches the model of an adb device and annotates known ones.
// ok is false when ctx ended the lookup.
func (c *Client) describe(ctx context.Context, serial string) (model.Device, bool) {
	dev := model.Device{Transport: model.TransportADB, Serial: serial}

	res := c.exec.Run(ctx, c.request(c.Tools().ADBCommand(serial, "shell getprop ro.product.model")))
	switch {
	case interrupted(res):
		return dev, false
	case res.TimedOut:
		c.sink.Postf("ERROR: model lookup for %s timed out after %s", serial, c.timeout)
	case res.Err != nil || res.ExitCode != 0:
		c.log.Warn().Err(res.Err).Int("exit", res.ExitCode).Str("serial", serial).Msg("model lookup failed")
	default:
		dev.Model = strings.TrimSpace(runner.TrimEOL(res.Output))
	}

	if dev.Model != "" {
		c.sink.Post("Found device: " + dev.Model)
	} else {
		c.sink.Post("Found device: " + serial)
	}

	if known, ok := LookupModel(c.models, dev.Model); ok {
		dev.Marketing = known.Name
		c.sink.Post("Samsung Galaxy S23 series detected: " + known.Name)
	}
	return dev, true
}

// interrupted reports whether the caller's context stopped the run
func interrupted(res runner.Result) bool {
	return errors.Is(res.Err, context.Canceled) || errors.Is(res.Err, context.DeadlineExceeded)
}
