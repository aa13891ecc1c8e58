package bridge

import (
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/funvibe/irisbridge/internal/value"
)

const crasherEnv = "IRISBRIDGE_BOX_CRASHER"

// TestMustBoxTerminatesProcess runs MustBox with the default exit function in
// a child copy of the test binary and checks the child's status.
func TestMustBoxTerminatesProcess(t *testing.T) {
	if tag := os.Getenv(crasherEnv); tag != "" {
		v := value.Function(nil)
		if tag == "unknown" {
			v = value.WithTag(77)
		}
		New(Options{}).MustBox(v)
		// not reached when MustBox exits
		os.Exit(0)
	}

	tests := []struct {
		mode string
		line string
	}{
		{"function", "Don't know how to box type: 4"},
		{"unknown", "Don't know how to box type: 77"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			cmd := exec.Command(os.Args[0], "-test.run=^TestMustBoxTerminatesProcess$")
			cmd.Env = append(os.Environ(), crasherEnv+"="+tt.mode)
			out, err := cmd.CombinedOutput()

			var exitErr *exec.ExitError
			require.True(t, errors.As(err, &exitErr), "child did not fail: err = %v, output:\n%s", err, out)
			require.Equal(t, 1, exitErr.ExitCode())
			require.Contains(t, string(out), tt.line)
		})
	}
}
