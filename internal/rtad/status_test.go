package rtad

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusClassFor(t *testing.T) {
	tests := []struct {
		code int
		want StatusClass
	}{
		{200, StatusOK},
		{201, StatusNone},
		{301, StatusRedirect},
		{399, StatusRedirect},
		{400, StatusClientError},
		{403, StatusClientError},
		{404, StatusClientError},
		{499, StatusClientError},
		{500, StatusServerError},
		{502, StatusNone},
		{999, StatusNone},
		{0, StatusNone},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusClassFor(tt.code), "code %d", tt.code)
	}
}

func TestProxyEntry_Status(t *testing.T) {
	assert.Equal(t, StatusClientError, ProxyEntry{ErrorCode: 404}.Status())
	assert.Equal(t, StatusNone, LastbEntry{}.Status())
}
