package kinds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKnownName(t *testing.T) {
	assert.True(t, KnownName("function"))
	assert.True(t, KnownName("class"))
	assert.False(t, KnownName("definitelyNotAKind"))
}
