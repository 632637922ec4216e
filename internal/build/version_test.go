package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserAgent(t *testing.T) {
	assert.True(t, IsDevBuild())
	assert.Equal(t, "agentos/dev", UserAgent())
}
