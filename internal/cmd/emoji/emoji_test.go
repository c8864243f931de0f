package emoji

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentstation/astromap/internal/pages"
)

func TestForStatus(t *testing.T) {
	assert.Equal(t, Success, ForStatus(pages.StatusSuccess))
	assert.Equal(t, Optional, ForStatus(pages.StatusNotImplemented))
	assert.Equal(t, Error, ForStatus(pages.StatusFailed))
}
