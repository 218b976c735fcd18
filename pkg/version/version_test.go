package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFull(t *testing.T) {
	orig := gitCommit
	t.Cleanup(func() { gitCommit = orig })

	gitCommit = ""
	assert.Equal(t, GetVersion(), Full())

	gitCommit = "abc123"
	assert.Equal(t, GetVersion()+" (abc123)", Full())
	assert.Equal(t, "abc123", GetGitCommit())
	assert.Empty(t, GetBuildDate())
}
