package version

import (
	"bytes"
	"runtime/debug"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

// TestVersionStrings ensures Short and Full return non-empty consistent information.
func TestVersionStrings(t *testing.T) {
	t.Parallel()

	require.NotEmpty(t, Short())
	require.Contains(t, Full("clockd"), Short())
	require.Contains(t, Full("clockd"), "clockd version")
}

// TestShort_BuildInfoFallback reports the module version for plain builds.
//
//nolint:paralleltest // Swaps a package variable.
func TestShort_BuildInfoFallback(t *testing.T) {
	original := readBuildInfo

	t.Cleanup(func() {
		readBuildInfo = original
	})

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "v1.2.3"}}, true
	}
	require.Equal(t, "v1.2.3", Short())

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
	}
	require.Equal(t, "dev", Short())
}

// TestAttachCobraVersionCommand prints the root command name.
//
//nolint:paralleltest // Reads the package variable swapped above.
func TestAttachCobraVersionCommand(t *testing.T) {
	root := &cobra.Command{Use: "clockctl"}
	AttachCobraVersionCommand(root)

	var out bytes.Buffer

	root.SetOut(&out)
	root.SetArgs([]string{"version"})

	require.NoError(t, root.Execute())
	require.Contains(t, out.String(), "clockctl version:")
}
