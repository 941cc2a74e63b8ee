package system

import (
	"strings"
	"testing"

	"github.com/chrisbataille/hoards/internal/inventory"
)

func TestInstallArgsPerSource(t *testing.T) {
	cases := []struct {
		source inventory.Source
		want   string
	}{
		{inventory.SourceCargo, "cargo install ripgrep"},
		{inventory.SourceNpm, "npm install -g ripgrep@latest --no-fund --no-audit"},
		{inventory.SourcePip, "pip3 install --upgrade ripgrep"},
		{inventory.SourceApt, "sudo apt-get install -y ripgrep"},
		{inventory.SourceBrew, "brew install ripgrep"},
	}
	for _, c := range cases {
		name, args, err := installArgs(inventory.Tool{Name: "ripgrep", Source: c.source})
		if err != nil {
			t.Fatalf("%s: %v", c.source, err)
		}
		got := strings.Join(append([]string{name}, args...), " ")
		if got != c.want {
			t.Errorf("%s: got %q, want %q", c.source, got, c.want)
		}
	}
}

func TestInstallArgsCustomCommandWins(t *testing.T) {
	name, args, err := installArgs(inventory.Tool{
		Name:           "zellij",
		Source:         inventory.SourceCargo,
		InstallCommand: "cargo install --locked zellij",
	})
	if err != nil {
		t.Fatal(err)
	}
	if name != "cargo" || strings.Join(args, " ") != "install --locked zellij" {
		t.Errorf("got %s %v", name, args)
	}
}

func TestInstallArgsUnknownSource(t *testing.T) {
	if _, _, err := installArgs(inventory.Tool{Name: "x", Source: inventory.SourceUnknown}); err == nil {
		t.Fatal("expected error for unknown source")
	}
	if _, _, err := uninstallArgs(inventory.Tool{Name: "x", Source: inventory.SourceUnknown}); err == nil {
		t.Fatal("expected error for unknown source")
	}
}
