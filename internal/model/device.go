package model

import "fmt"

// Transport tells which tool reported a device
type Transport int

const (
	TransportADB Transport = iota
	TransportFastboot
)

func (t Transport) String() string {
	switch t {
	case TransportADB:
		return "ADB"
	case TransportFastboot:
		return "FASTBOOT"
	default:
		return "UNKNOWN"
	}
}

// Device represents one connected unit found during a scan
type Device struct {
	Transport Transport
	Serial    string
	Model     string // ro.product.model, ADB only
	Marketing string // matched KnownModel name, empty when unknown
}

// Label renders the device the way the device list shows it
func (d Device) Label() string {
	label := fmt.Sprintf("[%s] %s", d.Transport, d.Serial)
	if d.Model != "" {
		label += " " + d.Model
	}
	return label
}

// KnownModel is a row of the static model table
type KnownModel struct {
	ID       string `toml:"id"`
	Codename string `toml:"codename"`
	Name     string `toml:"name"`
}
