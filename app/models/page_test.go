package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     PageRequest
		wantErr string
	}{
		{name: "defaults", req: NewPageRequest()},
		{name: "max limit", req: PageRequest{Page: 3, Limit: MaxLimit}},
		{name: "zero page", req: PageRequest{Page: 0, Limit: 5}, wantErr: "page must be at least 1"},
		{name: "negative page", req: PageRequest{Page: -2, Limit: 5}, wantErr: "page must be at least 1"},
		{name: "zero limit", req: PageRequest{Page: 1, Limit: 0}, wantErr: "limit must be at least 1"},
		{name: "limit too large", req: PageRequest{Page: 1, Limit: 51}, wantErr: "limit must be at most 50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}

func TestPageRequestOffset(t *testing.T) {
	assert.Equal(t, 0, PageRequest{Page: 1, Limit: 5}.Offset())
	assert.Equal(t, 5, PageRequest{Page: 2, Limit: 5}.Offset())
	assert.Equal(t, 40, PageRequest{Page: 3, Limit: 20}.Offset())
}

func TestPageRequestOffsetSaturates(t *testing.T) {
	assert.Equal(t, math.MaxInt, PageRequest{Page: 4611686018427387905, Limit: 4}.Offset())
	assert.Equal(t, math.MaxInt, PageRequest{Page: math.MaxInt, Limit: 2}.Offset())
	assert.Equal(t, math.MaxInt-1, PageRequest{Page: math.MaxInt, Limit: 1}.Offset())
}
