package toolchain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAcceptsKnownManagers(t *testing.T) {
	for _, name := range []string{"npm", "yarn", "pnpm"} {
		m, err := Parse(name)
		require.NoError(t, err)
		assert.Equal(t, name, m.String())
	}
}

func TestParseRejectsUnknownManager(t *testing.T) {
	_, err := Parse("bower")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bower")
}

func TestCorepackManaged(t *testing.T) {
	assert.False(t, NPM.CorepackManaged())
	assert.True(t, Yarn.CorepackManaged())
	assert.True(t, Pnpm.CorepackManaged())
}

func TestInvocationShapes(t *testing.T) {
	dir := "/work/frontend"

	inv := NodeVersionInvocation(dir)
	assert.Equal(t, "node --version", inv.Command())
	assert.Equal(t, dir, inv.Dir)

	inv = NPM.VersionInvocation(dir)
	assert.Equal(t, "npm --version", inv.Command())

	inv = NPM.InstallInvocation(dir)
	assert.Equal(t, "npm install", inv.Command())

	inv = NPM.AuditInvocation(dir)
	assert.Equal(t, "npm audit", inv.Command())

	inv = Yarn.BuildInvocation(dir, "build")
	assert.Equal(t, "yarn run build", inv.Command())

	inv = CorepackEnableInvocation(dir)
	assert.Equal(t, "corepack enable", inv.Command())
}

func TestParseVersion(t *testing.T) {
	cases := []struct {
		output string
		want   string
	}{
		{"v20.11.1\n", "20.11.1"},
		{"10.2.4\n", "10.2.4"},
		{"1.22.19", "1.22.19"},
		{"yarn version v1.22.19 linux", "1.22.19"},
		{"  weird output  ", "weird output"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := ParseVersion(tc.output); got != tc.want {
			t.Errorf("ParseVersion(%q) = %q, want %q", tc.output, got, tc.want)
		}
	}
}
