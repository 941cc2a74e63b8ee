package inventory

import (
	"context"

	"github.com/chrisbataille/hoards/internal/policy"
)

// MutationKind enumerates the persisted mutations the console can request.
type MutationKind string

const (
	MutationInstall      MutationKind = "install"
	MutationUninstall    MutationKind = "uninstall"
	MutationUpdate       MutationKind = "update"
	MutationSetPolicy    MutationKind = "set-policy"
	MutationTrack        MutationKind = "track"
	MutationUntrack      MutationKind = "untrack"
	MutationBundleAdd    MutationKind = "bundle-add"
	MutationBundleRemove MutationKind = "bundle-remove"
)

// Mutation describes one persisted change. Fields are used according to
// Kind; Policy is nil to clear a tool override.
type Mutation struct {
	Kind    MutationKind
	Tool    string
	Bundle  string
	Policy  *policy.Policy
	Version string // resulting installed version for install/update
}

// Provider loads and persists the inventory. Implementations are
// idempotent-safe to retry on failure.
type Provider interface {
	LoadSnapshot() (Snapshot, error)
	RefreshTool(name string) (Tool, error)
	ApplyMutation(m Mutation) error
}

// Delta is the tool-level outcome of an external action: the fields the
// console folds back into its snapshot.
type Delta struct {
	Name             string
	Installed        bool
	InstalledVersion string
}

// ActionRunner executes install/uninstall/update commands out of process.
// Calls honor ctx for cancellation; the console discards results that
// arrive after it cancelled.
type ActionRunner interface {
	Install(ctx context.Context, t Tool) (Delta, error)
	Uninstall(ctx context.Context, t Tool) (Delta, error)
	Update(ctx context.Context, t Tool) (Delta, error)
}
