package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewAPIResponseStampsTimestamp(t *testing.T) {
	resp := NewAPIResponse(SuccessResponse{Message: "ok"})

	assert.Equal(t, SuccessResponse{Message: "ok"}, resp.Data)
	assert.False(t, resp.Timestamp.IsZero(), "success envelopes carry a timestamp like error envelopes do")
	assert.Nil(t, resp.Error)
}
