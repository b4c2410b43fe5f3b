package views

import (
	"strings"
	"testing"

	"github.com/rusenback/devicemgr/internal/model"
)

func TestRenderDevice(t *testing.T) {
	models := []model.KnownModel{{ID: "SM-S918U", Codename: "dm3q", Name: "Galaxy S23 Ultra (USA)"}}
	dev := &model.Device{
		Transport: model.TransportADB,
		Serial:    "R58N1234ABC",
		Model:     "SM-S918U",
		Marketing: "Galaxy S23 Ultra (USA)",
	}

	out := RenderDevice(dev, models)
	for _, want := range []string{"Galaxy S23 Ultra (USA)", "R58N1234ABC", "ADB", "dm3q"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if out := RenderDevice(nil, models); !strings.Contains(out, "No device selected") {
		t.Errorf("nil device = %q", out)
	}
}

func TestRenderOutcomes(t *testing.T) {
	runs := []model.CommandRun{{Outcome: "ok"}, {Outcome: "timeout"}, {Outcome: "detached"}, {Outcome: "exit"}}
	if out := RenderOutcomes(runs, 10); !strings.Contains(out, "2/4 ok") {
		t.Errorf("outcomes = %q", out)
	}
	if out := RenderOutcomes(nil, 10); out != "" {
		t.Errorf("empty outcomes = %q", out)
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[int]string{
		0:           "0B",
		512:         "512B",
		2048:        "2.0K",
		3 * 1048576: "3.0M",
	}
	for in, want := range tests {
		if got := FormatBytes(in); got != want {
			t.Errorf("FormatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}
