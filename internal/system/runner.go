package system

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/version"
)

// runCmd executes a command and returns combined output as string.
func runCmd(ctx context.Context, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	// Avoid opening pager or interactive prompts
	cmd.Env = append(os.Environ(), "NO_COLOR=1")
	out, err := cmd.CombinedOutput()
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	return string(out), err
}

// Runner executes package-manager commands out of process. It implements
// inventory.ActionRunner; every call is bounded by Timeout on top of the
// caller's context.
type Runner struct {
	Timeout time.Duration
}

// NewRunner returns a Runner with the default per-command timeout.
func NewRunner() *Runner {
	return &Runner{Timeout: 5 * time.Minute}
}

func (r *Runner) Install(ctx context.Context, t inventory.Tool) (inventory.Delta, error) {
	name, args, err := installArgs(t)
	if err != nil {
		return inventory.Delta{Name: t.Name}, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()
	out, err := runCmd(ctx, name, args...)
	if err != nil {
		return inventory.Delta{Name: t.Name}, fmt.Errorf("install %s: %w (%s)", t.Name, err, firstLine(out))
	}
	ver := r.installedVersion(ctx, t)
	return inventory.Delta{Name: t.Name, Installed: true, InstalledVersion: ver}, nil
}

func (r *Runner) Uninstall(ctx context.Context, t inventory.Tool) (inventory.Delta, error) {
	name, args, err := uninstallArgs(t)
	if err != nil {
		return inventory.Delta{Name: t.Name}, err
	}
	ctx, cancel := context.WithTimeout(ctx, r.Timeout)
	defer cancel()
	out, err := runCmd(ctx, name, args...)
	if err != nil {
		return inventory.Delta{Name: t.Name, Installed: t.Installed, InstalledVersion: t.InstalledVersion},
			fmt.Errorf("uninstall %s: %w (%s)", t.Name, err, firstLine(out))
	}
	return inventory.Delta{Name: t.Name, Installed: false}, nil
}

func (r *Runner) Update(ctx context.Context, t inventory.Tool) (inventory.Delta, error) {
	// For every supported source, installing again moves to the latest
	// version, so update shares the install command.
	return r.Install(ctx, t)
}

// installedVersion re-queries the package manager for the version that
// ended up installed. Best effort: empty on failure.
func (r *Runner) installedVersion(ctx context.Context, t inventory.Tool) string {
	bin := t.Binary
	if bin == "" {
		bin = t.Name
	}
	if _, err := exec.LookPath(bin); err == nil {
		vctx, cancel := context.WithTimeout(ctx, 3*time.Second)
		out, err := runCmd(vctx, bin, "--version")
		cancel()
		if err == nil {
			return version.Extract(out)
		}
	}
	return ""
}

func installArgs(t inventory.Tool) (string, []string, error) {
	if t.InstallCommand != "" {
		fields := strings.Fields(t.InstallCommand)
		return fields[0], fields[1:], nil
	}
	switch t.Source {
	case inventory.SourceCargo:
		return "cargo", []string{"install", t.Name}, nil
	case inventory.SourceApt:
		return "sudo", []string{"apt-get", "install", "-y", t.Name}, nil
	case inventory.SourceSnap:
		return "sudo", []string{"snap", "install", t.Name}, nil
	case inventory.SourceFlatpak:
		return "flatpak", []string{"install", "-y", t.Name}, nil
	case inventory.SourceNpm:
		return "npm", []string{"install", "-g", t.Name + "@latest", "--no-fund", "--no-audit"}, nil
	case inventory.SourcePip:
		return "pip3", []string{"install", "--upgrade", t.Name}, nil
	case inventory.SourceBrew:
		return "brew", []string{"install", t.Name}, nil
	default:
		return "", nil, fmt.Errorf("no install command for %s (source %s)", t.Name, t.Source)
	}
}

func uninstallArgs(t inventory.Tool) (string, []string, error) {
	switch t.Source {
	case inventory.SourceCargo:
		return "cargo", []string{"uninstall", t.Name}, nil
	case inventory.SourceApt:
		return "sudo", []string{"apt-get", "remove", "-y", t.Name}, nil
	case inventory.SourceSnap:
		return "sudo", []string{"snap", "remove", t.Name}, nil
	case inventory.SourceFlatpak:
		return "flatpak", []string{"uninstall", "-y", t.Name}, nil
	case inventory.SourceNpm:
		return "npm", []string{"uninstall", "-g", t.Name}, nil
	case inventory.SourcePip:
		return "pip3", []string{"uninstall", "-y", t.Name}, nil
	case inventory.SourceBrew:
		return "brew", []string{"uninstall", t.Name}, nil
	default:
		return "", nil, fmt.Errorf("no uninstall command for %s (source %s)", t.Name, t.Source)
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
