package version

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrintVersion(t *testing.T) {
	saved := []string{Version, GitCommit, BuildOS, BuildArch}
	t.Cleanup(func() {
		Version, GitCommit, BuildOS, BuildArch = saved[0], saved[1], saved[2], saved[3]
	})

	Version, GitCommit, BuildOS, BuildArch = "", "", "", ""
	var buf bytes.Buffer
	PrintVersion(&buf)
	assert.Equal(t, "Aiion version dev\n", buf.String())

	Version = "v1.2.0"
	GitCommit = "0123456789abcdef"
	BuildOS, BuildArch = "linux", "amd64"
	buf.Reset()
	PrintVersion(&buf)
	assert.Contains(t, buf.String(), "Aiion version v1.2.0")
	assert.Contains(t, buf.String(), "Git commit: 0123456")
	assert.Contains(t, buf.String(), "Built for: linux/amd64")
}
