// Package toolchain models the JavaScript build tooling the pipeline drives:
// the node runtime, the configured package manager and the exact invocations
// each build step issues.
package toolchain

import (
	"fmt"

	"git.home.luguber.info/inful/uibuilder/internal/runner"
)

// NodeBinary is the JavaScript runtime every supported manager needs.
const NodeBinary = "node"

// CorepackBinary ships with node and provisions yarn and pnpm shims.
const CorepackBinary = "corepack"

// Manager is a supported JavaScript package manager.
type Manager string

const (
	NPM  Manager = "npm"
	Yarn Manager = "yarn"
	Pnpm Manager = "pnpm"
)

// Parse validates a configured manager name.
func Parse(name string) (Manager, error) {
	switch m := Manager(name); m {
	case NPM, Yarn, Pnpm:
		return m, nil
	default:
		return "", fmt.Errorf("unsupported package manager %q (expected npm, yarn or pnpm)", name)
	}
}

func (m Manager) String() string { return string(m) }

// CorepackManaged reports whether the manager is provisioned through
// corepack rather than bundled with node itself.
func (m Manager) CorepackManaged() bool { return m == Yarn || m == Pnpm }

// NodeVersionInvocation probes the JavaScript runtime.
func NodeVersionInvocation(dir string) runner.Invocation {
	return runner.Invocation{Path: NodeBinary, Args: []string{"--version"}, Dir: dir}
}

// CorepackEnableInvocation activates corepack shims for yarn and pnpm.
func CorepackEnableInvocation(dir string) runner.Invocation {
	return runner.Invocation{Path: CorepackBinary, Args: []string{"enable"}, Dir: dir}
}

// VersionInvocation probes the manager itself.
func (m Manager) VersionInvocation(dir string) runner.Invocation {
	return runner.Invocation{Path: string(m), Args: []string{"--version"}, Dir: dir}
}

// InstallInvocation installs the frontend's declared dependencies.
func (m Manager) InstallInvocation(dir string) runner.Invocation {
	return runner.Invocation{Path: string(m), Args: []string{"install"}, Dir: dir}
}

// AuditInvocation runs the manager's dependency audit.
func (m Manager) AuditInvocation(dir string) runner.Invocation {
	return runner.Invocation{Path: string(m), Args: []string{"audit"}, Dir: dir}
}

// BuildInvocation runs the named script from package.json.
func (m Manager) BuildInvocation(dir, script string) runner.Invocation {
	return runner.Invocation{Path: string(m), Args: []string{"run", script}, Dir: dir}
}
