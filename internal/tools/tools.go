// Package tools finds the adb and fastboot executables next to the program.
package tools

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rusenback/devicemgr/internal/runner"
)

const (
	ADBName      = "adb"
	FastbootName = "fastboot"
)

// Set holds the located tool paths. An empty path means the tool is missing.
type Set struct {
	Dir      string
	ADB      string
	Fastboot string
}

// HasADB reports whether adb was found
func (s Set) HasADB() bool { return s.ADB != "" }

// HasFastboot reports whether fastboot was found
func (s Set) HasFastboot() bool { return s.Fastboot != "" }

// Locate looks for the fixed tool filenames inside dir
func Locate(dir string) Set {
	return Set{
		Dir:      dir,
		ADB:      find(dir, ADBName),
		Fastboot: find(dir, FastbootName),
	}
}

// Executable returns the platform filename for a tool
func Executable(name string) string {
	if runtime.GOOS == "windows" {
		return name + ".exe"
	}
	return name
}

func find(dir, name string) string {
	path := filepath.Join(dir, Executable(name))
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return ""
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

// Warnings returns the startup log lines for missing tools
func (s Set) Warnings() []string {
	var lines []string
	if !s.HasADB() {
		lines = append(lines,
			"WARNING: "+Executable(ADBName)+" not found in "+s.Dir+"!",
			"Please download Android SDK Platform Tools and place "+Executable(ADBName)+" here",
		)
	}
	if !s.HasFastboot() {
		lines = append(lines, "WARNING: "+Executable(FastbootName)+" not found in "+s.Dir+"!")
	}
	return lines
}

// Expand rewrites the leading "adb" or "fastboot" word of a quick command
// to the located path, adding "-s serial" when serial is set. Commands for
// a missing tool are returned unchanged with ok=false.
func (s Set) Expand(serial, command string) (string, bool) {
	command = strings.TrimSpace(command)
	head, rest, _ := strings.Cut(command, " ")

	var path string
	switch head {
	case ADBName, Executable(ADBName):
		path = s.ADB
	case FastbootName, Executable(FastbootName):
		path = s.Fastboot
	default:
		return command, true
	}
	if path == "" {
		return command, false
	}
	cmd := runner.Quote(path)
	if serial != "" {
		cmd += " -s " + runner.Quote(serial)
	}
	if rest != "" {
		cmd += " " + rest
	}
	return cmd, true
}

// ADBCommand builds "<adb> [-s serial] args"
func (s Set) ADBCommand(serial, args string) string {
	return toolCommand(s.ADB, serial, args)
}

// FastbootCommand builds "<fastboot> [-s serial] args"
func (s Set) FastbootCommand(serial, args string) string {
	return toolCommand(s.Fastboot, serial, args)
}

func toolCommand(path, serial, args string) string {
	cmd := runner.Quote(path)
	if serial != "" {
		cmd += " -s " + runner.Quote(serial)
	}
	return cmd + " " + args
}
