package glctx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCstr(t *testing.T) {
	assert.Equal(t, "main\x00", cstr("main"))
	assert.Equal(t, "main\x00", cstr("main\x00"))
	assert.Equal(t, "\x00", cstr(""))
}
