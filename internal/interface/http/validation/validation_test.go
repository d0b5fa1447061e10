package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string          `json:"name" binding:"required,notblank"`
	Price decimal.Decimal `json:"price" binding:"required,gt=0"`
}

func TestRegister(t *testing.T) {
	require.NoError(t, Register())
	require.NoError(t, Register())

	tests := []struct {
		name    string
		in      sample
		wantErr string
	}{
		{"合法", sample{Name: "Go", Price: decimal.RequireFromString("0.01")}, ""},
		{"空白名称", sample{Name: "   ", Price: decimal.NewFromInt(1)}, "notblank"},
		{"价格为0", sample{Name: "Go", Price: decimal.Zero}, "price"},
		{"负价格", sample{Name: "Go", Price: decimal.NewFromInt(-3)}, "gt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := binding.Validator.ValidateStruct(&tt.in)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
