// internal/device/interface.go
package device

import (
	"context"

	"github.com/rusenback/devicemgr/internal/model"
	"github.com/rusenback/devicemgr/internal/tools"
)

// Manager is what the TUI and CLI use. Allows a fake in tests.
type Manager interface {
	Scan(ctx context.Context) Report
	Tools() tools.Set
	SetTools(set tools.Set)
	Models() []model.KnownModel

	RebootRecovery(ctx context.Context, serial string)
	RebootDownload(ctx context.Context, serial string)
	RebootBootloader(ctx context.Context, serial string)
	UnlockBootloader(ctx context.Context, serial string)
	LockBootloader(ctx context.Context, serial string)
	FRPBypass(ctx context.Context, serial string)
	Execute(ctx context.Context, serial, quick string)
	OpenShell(ctx context.Context, serial string)
	RevealFirmware(ctx context.Context, path string) error
	Cancelled(action Action)
}

var _ Manager = (*Client)(nil)
