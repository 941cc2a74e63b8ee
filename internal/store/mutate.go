package store

import (
	"fmt"

	"github.com/chrisbataille/hoards/internal/inventory"
)

// ApplyMutation persists one inventory change. Mutations are idempotent:
// reapplying after a partial failure converges on the same state.
func (s *Store) ApplyMutation(m inventory.Mutation) error {
	switch m.Kind {
	case inventory.MutationInstall:
		return s.updateTool(m.Tool, func(t *inventory.Tool) {
			t.Installed = true
			if m.Version != "" {
				t.InstalledVersion = m.Version
			}
		})
	case inventory.MutationUninstall:
		return s.updateTool(m.Tool, func(t *inventory.Tool) {
			t.Installed = false
			t.InstalledVersion = ""
		})
	case inventory.MutationUpdate:
		return s.updateTool(m.Tool, func(t *inventory.Tool) {
			if m.Version != "" {
				t.InstalledVersion = m.Version
			}
		})
	case inventory.MutationSetPolicy:
		return s.updateTool(m.Tool, func(t *inventory.Tool) {
			t.Policy = m.Policy
		})
	case inventory.MutationTrack, inventory.MutationUntrack:
		return s.trackMutation(m)
	case inventory.MutationBundleAdd, inventory.MutationBundleRemove:
		return s.bundleMutation(m)
	default:
		return fmt.Errorf("unknown mutation kind %q", m.Kind)
	}
}

func (s *Store) updateTool(name string, fn func(*inventory.Tool)) error {
	tools, err := s.LoadTools()
	if err != nil {
		return err
	}
	for i := range tools {
		if tools[i].Name == name {
			fn(&tools[i])
			touchUpdated(&tools[i])
			return s.saveTools(tools)
		}
	}
	return fmt.Errorf("tool not found: %s", name)
}

// AddTool tracks a new tool. Adding an already-tracked name is an error;
// names are globally unique within the inventory.
func (s *Store) AddTool(t inventory.Tool) error {
	tools, err := s.LoadTools()
	if err != nil {
		return err
	}
	for _, existing := range tools {
		if existing.Name == t.Name {
			return fmt.Errorf("tool already tracked: %s", t.Name)
		}
	}
	touchUpdated(&t)
	return s.saveTools(append(tools, t))
}

// RemoveTool stops tracking a tool and drops it from every bundle's
// membership list. Removing an unknown name is a no-op.
func (s *Store) RemoveTool(name string) error {
	tools, err := s.LoadTools()
	if err != nil {
		return err
	}
	kept := tools[:0]
	for _, t := range tools {
		if t.Name != name {
			kept = append(kept, t)
		}
	}
	if err := s.saveTools(kept); err != nil {
		return err
	}
	bundles, err := s.LoadBundles()
	if err != nil {
		return err
	}
	changed := false
	for i := range bundles {
		members := bundles[i].Tools[:0]
		for _, m := range bundles[i].Tools {
			if m != name {
				members = append(members, m)
			} else {
				changed = true
			}
		}
		bundles[i].Tools = members
	}
	if !changed {
		return nil
	}
	return s.saveBundles(bundles)
}

func (s *Store) trackMutation(m inventory.Mutation) error {
	if m.Kind == inventory.MutationUntrack {
		return s.RemoveTool(m.Tool)
	}
	err := s.AddTool(inventory.Tool{Name: m.Tool})
	if err != nil && m.Kind == inventory.MutationTrack {
		// tracking an existing tool is idempotent
		if _, found := s.findTool(m.Tool); found {
			return nil
		}
	}
	return err
}

func (s *Store) findTool(name string) (inventory.Tool, bool) {
	tools, err := s.LoadTools()
	if err != nil {
		return inventory.Tool{}, false
	}
	for _, t := range tools {
		if t.Name == name {
			return t, true
		}
	}
	return inventory.Tool{}, false
}

// AddBundle creates a bundle; membership is deduplicated, tools are
// referenced by name and need not be tracked yet.
func (s *Store) AddBundle(b inventory.Bundle) error {
	bundles, err := s.LoadBundles()
	if err != nil {
		return err
	}
	for _, existing := range bundles {
		if existing.Name == b.Name {
			return fmt.Errorf("bundle already exists: %s", b.Name)
		}
	}
	b.Tools = dedupe(b.Tools)
	return s.saveBundles(append(bundles, b))
}

// RemoveBundle deletes a bundle. Member tools are untouched: bundles
// reference tools, they do not own them.
func (s *Store) RemoveBundle(name string) error {
	bundles, err := s.LoadBundles()
	if err != nil {
		return err
	}
	kept := bundles[:0]
	for _, b := range bundles {
		if b.Name != name {
			kept = append(kept, b)
		}
	}
	return s.saveBundles(kept)
}

func (s *Store) bundleMutation(m inventory.Mutation) error {
	bundles, err := s.LoadBundles()
	if err != nil {
		return err
	}
	for i := range bundles {
		if bundles[i].Name != m.Bundle {
			continue
		}
		switch m.Kind {
		case inventory.MutationBundleAdd:
			bundles[i].Tools = dedupe(append(bundles[i].Tools, m.Tool))
		case inventory.MutationBundleRemove:
			members := bundles[i].Tools[:0]
			for _, t := range bundles[i].Tools {
				if t != m.Tool {
					members = append(members, t)
				}
			}
			bundles[i].Tools = members
		}
		if m.Policy != nil {
			bundles[i].Policy = m.Policy
		}
		return s.saveBundles(bundles)
	}
	return fmt.Errorf("bundle not found: %s", m.Bundle)
}

// Touch records one usage of a tool today, maintaining the trailing 7-day
// window that feeds the sparkline. Days elapsed since the previous use are
// zero-filled before today's bucket is incremented.
func (s *Store) Touch(name string) error {
	now := s.now()
	return s.updateTool(name, func(t *inventory.Tool) {
		t.RollUsage(now)
		t.Daily[6]++
		t.UseCount++
		t.LastUsedAt = now
	})
}
