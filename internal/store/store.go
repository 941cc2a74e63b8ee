// Package store is the JSON file-backed inventory provider. Tools and
// bundles live in tools.json and bundles.json under the hoards config
// directory; policy defaults come from the user config.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/chrisbataille/hoards/internal/config"
	"github.com/chrisbataille/hoards/internal/inventory"
	"github.com/chrisbataille/hoards/internal/policy"
)

// Store implements inventory.Provider over JSON files in dir.
type Store struct {
	dir string
	now func() time.Time
}

// Open returns a store rooted at the hoards config directory.
func Open() (*Store, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// OpenAt returns a store rooted at an explicit directory (tests, --data-dir).
func OpenAt(dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("empty store directory")
	}
	return &Store{dir: dir, now: time.Now}, nil
}

// Dir exposes the backing directory, e.g. for the change watcher.
func (s *Store) Dir() string { return s.dir }

func (s *Store) toolsPath() string   { return filepath.Join(s.dir, "tools.json") }
func (s *Store) bundlesPath() string { return filepath.Join(s.dir, "bundles.json") }

// LoadSnapshot assembles the console's inventory snapshot from the tool and
// bundle files plus the policy defaults in user config.
func (s *Store) LoadSnapshot() (inventory.Snapshot, error) {
	tools, err := s.LoadTools()
	if err != nil {
		return inventory.Snapshot{}, err
	}
	bundles, err := s.LoadBundles()
	if err != nil {
		return inventory.Snapshot{}, err
	}
	cfg, err := config.Load()
	if err != nil {
		return inventory.Snapshot{}, err
	}
	defaults := make(map[inventory.Source]policy.Policy, len(cfg.SourcePolicies))
	for tag, p := range cfg.SourcePolicies {
		if src := inventory.ParseSource(tag); src != inventory.SourceUnknown {
			defaults[src] = p
		}
	}
	// Slide usage windows to today so sparklines decay while idle. Only the
	// snapshot copy is rolled; the anchor on disk moves on Touch.
	for i := range tools {
		if len(tools[i].Daily) > 0 {
			tools[i].RollUsage(s.now())
		}
	}
	return inventory.Snapshot{
		Tools:          tools,
		Bundles:        bundles,
		SourceDefaults: defaults,
		GlobalDefault:  cfg.GlobalPolicy,
	}, nil
}

// LoadTools reads tools.json; a missing file yields an empty inventory.
func (s *Store) LoadTools() ([]inventory.Tool, error) {
	var tools []inventory.Tool
	if err := readJSON(s.toolsPath(), &tools); err != nil {
		return nil, fmt.Errorf("load tools: %w", err)
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools, nil
}

// LoadBundles reads bundles.json; membership lists are deduplicated on load
// so the no-duplicate invariant holds regardless of how the file was edited.
func (s *Store) LoadBundles() ([]inventory.Bundle, error) {
	var bundles []inventory.Bundle
	if err := readJSON(s.bundlesPath(), &bundles); err != nil {
		return nil, fmt.Errorf("load bundles: %w", err)
	}
	for i := range bundles {
		bundles[i].Tools = dedupe(bundles[i].Tools)
	}
	sort.Slice(bundles, func(i, j int) bool { return bundles[i].Name < bundles[j].Name })
	return bundles, nil
}

func (s *Store) saveTools(tools []inventory.Tool) error {
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return writeJSON(s.toolsPath(), tools)
}

func (s *Store) saveBundles(bundles []inventory.Bundle) error {
	sort.Slice(bundles, func(i, j int) bool { return bundles[i].Name < bundles[j].Name })
	return writeJSON(s.bundlesPath(), bundles)
}

// RefreshTool re-reads a single tool from disk.
func (s *Store) RefreshTool(name string) (inventory.Tool, error) {
	tools, err := s.LoadTools()
	if err != nil {
		return inventory.Tool{}, err
	}
	for _, t := range tools {
		if t.Name == name {
			return t, nil
		}
	}
	return inventory.Tool{}, fmt.Errorf("tool not found: %s", name)
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return json.Unmarshal(b, v)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// dedupe trims and removes duplicate names while preserving order.
func dedupe(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// touchUpdated stamps a tool mutation time.
func touchUpdated(t *inventory.Tool) { t.UpdatedAt = time.Now().UTC() }
