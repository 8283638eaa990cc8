package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

// ProjectRoot walks up from the working directory to the directory holding go.mod
func ProjectRoot(t testing.TB) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatal("could not find project root (go.mod)")
		}
		dir = parent
	}
}

// SharedLibraryExt is the platform's shared library file extension
func SharedLibraryExt() string {
	switch runtime.GOOS {
	case "darwin":
		return ".dylib"
	case "windows":
		return ".dll"
	default:
		return ".so"
	}
}

// BuildSharedLibrary compiles testdata/<fixture>.c into a shared library in a
// temp dir and returns its path. The test is skipped when no C compiler is
// available.
func BuildSharedLibrary(t testing.TB, fixture string) string {
	t.Helper()

	if runtime.GOOS == "windows" {
		t.Skip("native fixtures are not built on windows")
	}

	cc := os.Getenv("CC")
	if cc == "" {
		cc = "cc"
	}
	ccPath, err := exec.LookPath(cc)
	if err != nil {
		t.Skipf("no C compiler (%s) available: %v", cc, err)
	}

	src := filepath.Join(ProjectRoot(t), "testdata", fixture+".c")
	out := filepath.Join(t.TempDir(), "lib"+fixture+SharedLibraryExt())

	cmd := exec.Command(ccPath, "-shared", "-fPIC", "-o", out, src)
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to compile %s: %s", src, string(output))

	return out
}
