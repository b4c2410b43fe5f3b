package device

import (
	"path/filepath"
	"runtime"

	"github.com/rusenback/devicemgr/internal/runner"
)

// terminalCommand wraps command so it runs in a new terminal window
func terminalCommand(command string) string {
	switch runtime.GOOS {
	case "windows":
		return "start cmd.exe /k " + command
	case "darwin":
		return "osascript -e " + runner.Quote(`tell application "Terminal" to do script "`+command+`"`)
	default:
		return "x-terminal-emulator -e " + command
	}
}

// revealCommand opens the host file manager at path
func revealCommand(path string) string {
	switch runtime.GOOS {
	case "windows":
		return `explorer.exe /select,"` + path + `"`
	case "darwin":
		return "open -R " + runner.Quote(path)
	default:
		return "xdg-open " + runner.Quote(filepath.Dir(path))
	}
}
