package device

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/rusenback/devicemgr/internal/runner"
	"github.com/rusenback/devicemgr/internal/tools"
)

// Action names a user operation that needs confirmation
type Action string

const (
	ActionUnlock Action = "Bootloader unlock"
	ActionLock   Action = "Bootloader lock"
	ActionFRP    Action = "FRP bypass"
)

// Warning returns the confirmation prompt for an action
func (a Action) Warning() string {
	switch a {
	case ActionUnlock:
		return "WARNING: Unlocking bootloader will WIPE ALL DATA!\n\n" +
			"Samsung Knox will be tripped (permanent).\n" +
			"OEM Unlock must be enabled in Developer Options first.\n\n" +
			"Continue?"
	case ActionLock:
		return "WARNING: Locking bootloader will WIPE ALL DATA!\n\nContinue?"
	case ActionFRP:
		return "FRP Bypass Methods:\n\n" +
			"1. ADB Method (requires USB debugging enabled before reset)\n" +
			"2. Combination File Method (requires specific firmware)\n\n" +
			"Note: This is for legitimate device recovery only.\n" +
			"Proceed with ADB FRP bypass?"
	default:
		return "Continue?"
	}
}

// QuickCommands are the fixed diagnostic commands offered for execution
var QuickCommands = []string{
	"adb devices",
	"adb shell getprop ro.product.model",
	"adb shell getprop ro.build.version.release",
	"adb reboot bootloader",
	"adb reboot recovery",
	"fastboot devices",
	"fastboot oem device-info",
	"fastboot getvar all",
	"adb shell pm list packages",
	"adb logcat -d",
}

// frpSequence is run in order by FRPBypass
var frpSequence = []string{
	"shell am start -n com.google.android.gsf.login/",
	"shell am start -n com.google.android.gsf.login.LoginActivity",
	"shell content insert --uri content://settings/secure --bind name:s:user_setup_complete --bind value:s:1",
}

// FirmwareExtensions are the archive types the firmware picker offers
var FirmwareExtensions = []string{".tar", ".md5", ".tar.md5"}

// IsFirmware reports whether path has a firmware archive extension
func IsFirmware(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range FirmwareExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// RebootRecovery reboots into recovery mode
func (c *Client) RebootRecovery(ctx context.Context, serial string) {
	c.sink.Post("Rebooting to Recovery mode...")
	c.adb(ctx, serial, "reboot recovery")
}

// RebootDownload reboots into Samsung download (Odin) mode
func (c *Client) RebootDownload(ctx context.Context, serial string) {
	c.sink.Post("Rebooting to Download mode (Odin)...")
	c.adb(ctx, serial, "reboot download")
}

// RebootBootloader reboots into bootloader/fastboot mode
func (c *Client) RebootBootloader(ctx context.Context, serial string) {
	c.sink.Post("Rebooting to Bootloader/Fastboot mode...")
	c.adb(ctx, serial, "reboot bootloader")
}

// UnlockBootloader runs `fastboot flashing unlock`. Callers confirm first.
func (c *Client) UnlockBootloader(ctx context.Context, serial string) {
	c.sink.Post("Initiating bootloader unlock sequence...")
	c.fastboot(ctx, serial, "flashing unlock")
}

// LockBootloader runs `fastboot flashing lock`. Callers confirm first.
func (c *Client) LockBootloader(ctx context.Context, serial string) {
	c.sink.Post("Locking bootloader...")
	c.fastboot(ctx, serial, "flashing lock")
}

// FRPBypass runs the adb setup-wizard sequence. Callers confirm first.
func (c *Client) FRPBypass(ctx context.Context, serial string) {
	c.sink.Post("Attempting FRP bypass via ADB...")
	for _, args := range frpSequence {
		if !c.adb(ctx, serial, args) {
			return
		}
	}
	c.sink.Post("FRP bypass commands executed. Check device screen.")
}

// Cancelled logs that the user declined a confirmation
func (c *Client) Cancelled(action Action) {
	c.sink.Post(string(action) + " cancelled")
}

// Execute runs one quick command and logs its output. A non-empty serial
// scopes it to that device like the other actions.
func (c *Client) Execute(ctx context.Context, serial, quick string) {
	c.sink.Post("Executing: " + quick)

	command, ok := c.Tools().Expand(serial, quick)
	if !ok {
		c.sink.Post(missingText(quick))
		return
	}
	res := c.exec.Run(ctx, c.request(command))
	c.sink.Post("Result:\n" + runner.TrimEOL(res.Output))
}

// OpenShell starts `adb shell` in a new terminal window and returns at once
func (c *Client) OpenShell(ctx context.Context, serial string) {
	set := c.Tools()
	if !set.HasADB() {
		c.sink.Post(missingText(tools.ADBName))
		return
	}
	c.sink.Post("Opening ADB Shell...")
	res := c.exec.Run(ctx, runner.Detached(terminalCommand(set.ADBCommand(serial, "shell"))))
	if res.Failed() {
		c.sink.Post(res.Output)
	}
}

// RevealFirmware shows the firmware archive in the host file manager. The
// file itself is never opened.
func (c *Client) RevealFirmware(ctx context.Context, path string) error {
	if !IsFirmware(path) {
		return fmt.Errorf("not a firmware archive: %s", filepath.Base(path))
	}
	c.sink.Post("Selected firmware: " + path)
	c.sink.Post("Use Odin3 to flash this firmware!")

	res := c.exec.Run(ctx, runner.Detached(revealCommand(path)))
	if res.Failed() {
		c.sink.Post(res.Output)
	}
	return nil
}

// adb runs "<adb> [-s serial] args" and posts its output. It returns false
// when nothing could be run.
func (c *Client) adb(ctx context.Context, serial, args string) bool {
	set := c.Tools()
	if !set.HasADB() {
		c.sink.Post(missingText(tools.ADBName))
		return false
	}
	return c.runAndPost(ctx, set.ADBCommand(serial, args))
}

func (c *Client) fastboot(ctx context.Context, serial, args string) bool {
	set := c.Tools()
	if !set.HasFastboot() {
		c.sink.Post(missingText(tools.FastbootName))
		return false
	}
	return c.runAndPost(ctx, set.FastbootCommand(serial, args))
}

func (c *Client) runAndPost(ctx context.Context, command string) bool {
	res := c.exec.Run(ctx, c.request(command))
	if interrupted(res) {
		return false
	}
	if out := runner.TrimEOL(res.Output); strings.TrimSpace(out) != "" {
		c.sink.Post(out)
	}
	return !res.Failed()
}

// missingText is the log line for a command whose tool was not found
func missingText(command string) string {
	if strings.HasPrefix(command, tools.FastbootName) {
		return "ERROR: Fastboot not found!"
	}
	return "ERROR: ADB not found!"
}
