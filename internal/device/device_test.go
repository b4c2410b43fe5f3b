package device

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/rusenback/devicemgr/internal/model"
	"github.com/rusenback/devicemgr/internal/runner"
	"github.com/rusenback/devicemgr/internal/tools"
)

type fakePoster struct {
	mu    sync.Mutex
	lines []string
}

func (p *fakePoster) Post(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lines = append(p.lines, msg)
}

func (p *fakePoster) Postf(format string, args ...any) {
	p.Post(fmt.Sprintf(format, args...))
}

func (p *fakePoster) has(line string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, l := range p.lines {
		if l == line {
			return true
		}
	}
	return false
}

var bothTools = tools.Set{Dir: ".", ADB: "adb", Fastboot: "fastboot"}

func newTestClient(set tools.Set) (*Client, *runner.FakeExecutor, *fakePoster) {
	exec := runner.NewFakeExecutor()
	poster := &fakePoster{}
	c := NewClient(DefaultConfig(set), exec, poster, zerolog.Nop())
	return c, exec, poster
}

func TestParseADBDevices(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []string
	}{
		{"single device", "List of devices attached\nABC123\tdevice\n", []string{"ABC123"}},
		{"long format", "List of devices attached\nR58N1234ABC            device usb:1-1 product:dm3qsq model:SM_S918U device:dm3q transport_id:1\n\n", []string{"R58N1234ABC"}},
		{"crlf", "List of devices attached\r\nABC123\tdevice\r\nDEF456\tdevice\r\n", []string{"ABC123", "DEF456"}},
		{"unauthorized skipped", "List of devices attached\nABC123\tunauthorized\nDEF456\tdevice\n", []string{"DEF456"}},
		{"daemon noise", "* daemon not running; starting now at tcp:5037\n* daemon started successfully\nList of devices attached\n", nil},
		{"empty", "", nil},
		{"header only", "List of devices attached\n\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseADBDevices(tt.out)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFastbootDevices(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want []string
	}{
		{"fastboot device", "R58N1234ABC\tfastboot\n", []string{"R58N1234ABC"}},
		{"two devices", "AAA\tfastboot\r\nBBB\tfastboot\r\n", []string{"AAA", "BBB"}},
		{"no tab", "AAA fastboot\n", nil},
		{"unrelated", "< waiting for any device >\n", nil},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseFastbootDevices(tt.out)
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKnownModels(t *testing.T) {
	models := KnownModels()
	if len(models) != 9 {
		t.Fatalf("got %d models, want 9", len(models))
	}
	if models[0].ID != "SM-S911B" || models[0].Codename != "dm1q" {
		t.Errorf("first row = %+v", models[0])
	}
}

func TestParseModelsRejectsIncompleteRows(t *testing.T) {
	_, err := ParseModels([]byte("[[model]]\nid = \"SM-X\"\n"))
	if err == nil {
		t.Fatal("expected error for row without name")
	}
	if _, err := ParseModels([]byte("not toml [")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLookupModel(t *testing.T) {
	models := KnownModels()

	m, ok := LookupModel(models, "SM-S918U")
	if !ok || m.Name != "Galaxy S23 Ultra (USA)" {
		t.Errorf("SM-S918U = %+v, %v", m, ok)
	}
	if _, ok := LookupModel(models, "Pixel 8"); ok {
		t.Error("unexpected match for Pixel 8")
	}
	if _, ok := LookupModel(models, ""); ok {
		t.Error("unexpected match for empty model")
	}
}

func TestScanAnnotatesKnownModel(t *testing.T) {
	c, exec, poster := newTestClient(bothTools)
	exec.SetOutput("adb devices -l", "List of devices attached\nABC123\tdevice\n")
	exec.SetOutput("adb -s ABC123 shell getprop ro.product.model", "SM-S918U\r\n")

	report := c.Scan(context.Background())

	if report.Placeholder || len(report.Devices) != 1 {
		t.Fatalf("report = %+v", report)
	}
	dev := report.Devices[0]
	if dev.Transport != model.TransportADB || dev.Serial != "ABC123" || dev.Model != "SM-S918U" {
		t.Errorf("device = %+v", dev)
	}
	if dev.Marketing != "Galaxy S23 Ultra (USA)" {
		t.Errorf("marketing = %q", dev.Marketing)
	}
	for _, line := range []string{
		"Scanning for devices...",
		"Found device: SM-S918U",
		"Samsung Galaxy S23 series detected: Galaxy S23 Ultra (USA)",
		"Device scan complete",
	} {
		if !poster.has(line) {
			t.Errorf("missing log line %q in %v", line, poster.lines)
		}
	}
}

func TestScanUnknownModelStillListed(t *testing.T) {
	c, exec, poster := newTestClient(bothTools)
	exec.SetOutput("adb devices -l", "List of devices attached\nXYZ\tdevice\n")
	exec.SetOutput("adb -s XYZ shell getprop ro.product.model", "Pixel 8\n")

	report := c.Scan(context.Background())

	if len(report.Devices) != 1 || report.Devices[0].Marketing != "" {
		t.Fatalf("report = %+v", report)
	}
	for _, l := range poster.lines {
		if strings.HasPrefix(l, "Samsung Galaxy S23 series detected") {
			t.Errorf("unexpected annotation %q", l)
		}
	}
}

func TestScanModelLookupFailureDegrades(t *testing.T) {
	c, exec, poster := newTestClient(bothTools)
	exec.SetOutput("adb devices -l", "List of devices attached\nABC123\tdevice\n")
	exec.SetResult("adb -s ABC123 shell getprop ro.product.model", runner.Result{
		Output: runner.TextSpawnFailed,
		Err:    runner.ErrSpawn,
	})

	report := c.Scan(context.Background())

	if len(report.Devices) != 1 || report.Devices[0].Model != "" {
		t.Fatalf("report = %+v", report)
	}
	if !poster.has("Found device: ABC123") {
		t.Errorf("lines = %v", poster.lines)
	}
}

func TestScanFastbootDevice(t *testing.T) {
	c, exec, poster := newTestClient(bothTools)
	exec.SetOutput("adb devices -l", "List of devices attached\n\n")
	exec.SetOutput("fastboot devices", "R58N1234ABC\tfastboot\n")

	report := c.Scan(context.Background())

	if len(report.Devices) != 1 {
		t.Fatalf("report = %+v", report)
	}
	if d := report.Devices[0]; d.Transport != model.TransportFastboot || d.Serial != "R58N1234ABC" {
		t.Errorf("device = %+v", d)
	}
	if !poster.has("Device in fastboot mode: R58N1234ABC") {
		t.Errorf("lines = %v", poster.lines)
	}
	if got := report.Rows(); len(got) != 1 || got[0] != "[FASTBOOT] R58N1234ABC" {
		t.Errorf("rows = %v", got)
	}
}

func TestScanKeepsDuplicatesAcrossTransports(t *testing.T) {
	c, exec, _ := newTestClient(bothTools)
	exec.SetOutput("adb devices -l", "List of devices attached\nSAME\tdevice\n")
	exec.SetOutput("fastboot devices", "SAME\tfastboot\n")

	report := c.Scan(context.Background())

	if len(report.Devices) != 2 {
		t.Fatalf("devices = %+v", report.Devices)
	}
	if report.Devices[0].Transport != model.TransportADB || report.Devices[1].Transport != model.TransportFastboot {
		t.Errorf("order = %+v", report.Devices)
	}
}

func TestScanNoDevicesIsPlaceholder(t *testing.T) {
	c, exec, poster := newTestClient(bothTools)
	exec.SetOutput("adb devices -l", "List of devices attached\n\n")

	report := c.Scan(context.Background())

	if !report.Placeholder || len(report.Devices) != 0 {
		t.Fatalf("report = %+v", report)
	}
	rows := report.Rows()
	if len(rows) != 1 || rows[0] != PlaceholderText {
		t.Errorf("rows = %v", rows)
	}
	if !poster.has("No devices found. Check USB connection and drivers.") {
		t.Errorf("lines = %v", poster.lines)
	}
	if poster.has("Device scan complete") {
		t.Error("complete line posted for empty scan")
	}
}

func TestScanCancelledMidwayPostsNoVerdict(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("slow tool is a shell script")
	}
	dir := t.TempDir()
	adb := filepath.Join(dir, "adb")
	if err := os.WriteFile(adb, []byte("#!/bin/sh\nsleep 5\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	poster := &fakePoster{}
	c := NewClient(DefaultConfig(tools.Set{Dir: dir, ADB: adb}), runner.New(runner.DefaultConfig(), zerolog.Nop()), poster, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(200 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	report := c.Scan(ctx)
	if elapsed := time.Since(start); elapsed > 3*time.Second {
		t.Errorf("Scan took %v after cancel", elapsed)
	}

	if !report.Cancelled || report.Placeholder || len(report.Rows()) != 0 {
		t.Errorf("report = %+v", report)
	}
	if len(poster.lines) != 1 || poster.lines[0] != "Scanning for devices..." {
		t.Errorf("lines = %q", poster.lines)
	}
}

func TestScanCancelledDuringModelLookup(t *testing.T) {
	c, exec, poster := newTestClient(bothTools)
	exec.SetOutput("adb devices -l", "List of devices attached\nABC123\tdevice\n")
	exec.SetResult("adb -s ABC123 shell getprop ro.product.model", runner.Result{Err: context.Canceled, ExitCode: -1})

	report := c.Scan(context.Background())

	if !report.Cancelled {
		t.Fatalf("report = %+v", report)
	}
	if exec.CallCount("fastboot") != 0 {
		t.Errorf("fastboot pass ran after cancel: %v", exec.Commands())
	}
	for _, line := range poster.lines {
		if strings.HasPrefix(line, "Found device") || strings.HasPrefix(line, "No devices found") {
			t.Errorf("unexpected line %q", line)
		}
	}
}

func TestScanStepTimeoutIsLogged(t *testing.T) {
	c, exec, poster := newTestClient(bothTools)
	exec.SetResult("adb devices -l", runner.Result{Err: runner.ErrTimeout, TimedOut: true, ExitCode: -1})
	exec.SetOutput("fastboot devices", "R58N1234ABC\tfastboot\n")

	report := c.Scan(context.Background())

	if !poster.has("ERROR: adb devices timed out after 10s") {
		t.Errorf("lines = %q", poster.lines)
	}
	if report.Cancelled || len(report.Devices) != 1 {
		t.Errorf("report = %+v", report)
	}
	if !poster.has("Device scan complete") {
		t.Errorf("lines = %q", poster.lines)
	}
}

func TestExecuteQuickCommandScoped(t *testing.T) {
	c, exec, _ := newTestClient(bothTools)

	c.Execute(context.Background(), "ABC123", "fastboot getvar all")

	if got := exec.Commands(); len(got) != 1 || got[0] != "fastboot -s ABC123 getvar all" {
		t.Errorf("commands = %v", got)
	}
}

func TestFRPBypassStopsWhenCancelled(t *testing.T) {
	c, exec, poster := newTestClient(bothTools)
	exec.SetFallback(runner.Result{Err: context.Canceled, ExitCode: -1})

	c.FRPBypass(context.Background(), "")

	if len(exec.Calls) != 1 {
		t.Errorf("commands = %v", exec.Commands())
	}
	if poster.has("FRP bypass commands executed. Check device screen.") {
		t.Error("completion posted after cancel")
	}
}

func TestScanWithoutToolsSpawnsNothing(t *testing.T) {
	c, exec, _ := newTestClient(tools.Set{Dir: "."})

	report := c.Scan(context.Background())

	if !report.Placeholder {
		t.Errorf("report = %+v", report)
	}
	if len(exec.Calls) != 0 {
		t.Errorf("commands run without tools: %v", exec.Commands())
	}
}

func TestRebootCommands(t *testing.T) {
	tests := []struct {
		name   string
		run    func(c *Client)
		intro  string
		expect string
	}{
		{"recovery", func(c *Client) { c.RebootRecovery(context.Background(), "") }, "Rebooting to Recovery mode...", "adb reboot recovery"},
		{"download", func(c *Client) { c.RebootDownload(context.Background(), "") }, "Rebooting to Download mode (Odin)...", "adb reboot download"},
		{"bootloader", func(c *Client) { c.RebootBootloader(context.Background(), "ABC") }, "Rebooting to Bootloader/Fastboot mode...", "adb -s ABC reboot bootloader"},
		{"unlock", func(c *Client) { c.UnlockBootloader(context.Background(), "") }, "Initiating bootloader unlock sequence...", "fastboot flashing unlock"},
		{"lock", func(c *Client) { c.LockBootloader(context.Background(), "") }, "Locking bootloader...", "fastboot flashing lock"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, exec, poster := newTestClient(bothTools)
			tt.run(c)

			cmds := exec.Commands()
			if len(cmds) != 1 || cmds[0] != tt.expect {
				t.Errorf("commands = %v, want [%s]", cmds, tt.expect)
			}
			if !poster.has(tt.intro) {
				t.Errorf("lines = %v", poster.lines)
			}
		})
	}
}

func TestActionsWithMissingTool(t *testing.T) {
	c, exec, poster := newTestClient(tools.Set{Dir: "."})

	c.RebootRecovery(context.Background(), "")
	c.UnlockBootloader(context.Background(), "")

	if len(exec.Calls) != 0 {
		t.Errorf("commands run without tools: %v", exec.Commands())
	}
	if !poster.has("ERROR: ADB not found!") || !poster.has("ERROR: Fastboot not found!") {
		t.Errorf("lines = %v", poster.lines)
	}
}

func TestCommandOutputIsPosted(t *testing.T) {
	c, exec, poster := newTestClient(bothTools)
	exec.SetOutput("adb reboot recovery", "error: no devices/emulators found\n")

	c.RebootRecovery(context.Background(), "")

	if !poster.has("error: no devices/emulators found") {
		t.Errorf("lines = %v", poster.lines)
	}
}

func TestFRPBypassSequence(t *testing.T) {
	c, exec, poster := newTestClient(bothTools)

	c.FRPBypass(context.Background(), "")

	cmds := exec.Commands()
	if len(cmds) != 3 {
		t.Fatalf("commands = %v", cmds)
	}
	for i, args := range frpSequence {
		if cmds[i] != "adb "+args {
			t.Errorf("command %d = %q", i, cmds[i])
		}
	}
	if !poster.has("FRP bypass commands executed. Check device screen.") {
		t.Errorf("lines = %v", poster.lines)
	}
}

func TestCancelledPostsOneLine(t *testing.T) {
	c, exec, poster := newTestClient(bothTools)

	c.Cancelled(ActionUnlock)

	if len(poster.lines) != 1 || poster.lines[0] != "Bootloader unlock cancelled" {
		t.Errorf("lines = %v", poster.lines)
	}
	if len(exec.Calls) != 0 {
		t.Errorf("commands = %v", exec.Commands())
	}
}

func TestExecuteQuickCommand(t *testing.T) {
	c, exec, poster := newTestClient(bothTools)
	exec.SetOutput("adb shell getprop ro.build.version.release", "14\n")

	c.Execute(context.Background(), "", "adb shell getprop ro.build.version.release")

	if len(poster.lines) != 2 {
		t.Fatalf("lines = %v", poster.lines)
	}
	if poster.lines[0] != "Executing: adb shell getprop ro.build.version.release" {
		t.Errorf("first line = %q", poster.lines[0])
	}
	if poster.lines[1] != "Result:\n14" {
		t.Errorf("second line = %q", poster.lines[1])
	}
}

func TestExecuteQuickCommandMissingTool(t *testing.T) {
	c, exec, poster := newTestClient(tools.Set{ADB: "adb"})

	c.Execute(context.Background(), "", "fastboot getvar all")

	if len(exec.Calls) != 0 {
		t.Errorf("commands = %v", exec.Commands())
	}
	if !poster.has("ERROR: Fastboot not found!") {
		t.Errorf("lines = %v", poster.lines)
	}
}

func TestQuickCommandsAreFixed(t *testing.T) {
	if len(QuickCommands) != 10 {
		t.Errorf("got %d quick commands, want 10", len(QuickCommands))
	}
}

func TestOpenShellIsDetached(t *testing.T) {
	c, exec, _ := newTestClient(bothTools)

	c.OpenShell(context.Background(), "")

	if len(exec.Calls) != 1 || exec.Calls[0].Wait {
		t.Fatalf("calls = %+v", exec.Calls)
	}
	if !strings.Contains(exec.Calls[0].Command, "adb shell") {
		t.Errorf("command = %q", exec.Calls[0].Command)
	}
}

func TestRevealFirmware(t *testing.T) {
	c, exec, poster := newTestClient(bothTools)

	if err := c.RevealFirmware(context.Background(), "/tmp/notes.txt"); err == nil {
		t.Error("expected error for non-firmware file")
	}
	if len(exec.Calls) != 0 {
		t.Fatalf("calls = %+v", exec.Calls)
	}

	if err := c.RevealFirmware(context.Background(), "/tmp/AP_S918U.tar.md5"); err != nil {
		t.Fatalf("RevealFirmware: %v", err)
	}
	if len(exec.Calls) != 1 || exec.Calls[0].Wait {
		t.Fatalf("calls = %+v", exec.Calls)
	}
	if !poster.has("Selected firmware: /tmp/AP_S918U.tar.md5") || !poster.has("Use Odin3 to flash this firmware!") {
		t.Errorf("lines = %v", poster.lines)
	}
}

func TestIsFirmware(t *testing.T) {
	for path, want := range map[string]bool{
		"a.tar":     true,
		"a.md5":     true,
		"a.tar.md5": true,
		"A.TAR.MD5": true,
		"a.zip":     false,
		"tar":       false,
	} {
		if got := IsFirmware(path); got != want {
			t.Errorf("IsFirmware(%q) = %v", path, got)
		}
	}
}
