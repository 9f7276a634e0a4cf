package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDatasetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		errMsg  string
		wantErr bool
	}{
		{name: "valid - lowercase", input: "orders", wantErr: false},
		{name: "valid - with dash and digits", input: "orders-2024", wantErr: false},
		{name: "valid - max length", input: strings.Repeat("a", MaxDatasetNameLen), wantErr: false},
		{name: "invalid - empty", input: "", wantErr: true, errMsg: "dataset name cannot be empty"},
		{name: "invalid - too long", input: strings.Repeat("a", MaxDatasetNameLen+1), wantErr: true, errMsg: "must not exceed"},
		{name: "invalid - space", input: "my orders", wantErr: true, errMsg: "can only contain"},
		{name: "invalid - slash", input: "a/b", wantErr: true, errMsg: "can only contain"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatasetName(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestValidateFieldName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid - simple", input: "amount", wantErr: false},
		{name: "valid - publisher prefix", input: "cr123_amount", wantErr: false},
		{name: "valid - leading underscore", input: "_id", wantErr: false},
		{name: "valid - dotted", input: "account.name", wantErr: false},
		{name: "invalid - empty", input: "", wantErr: true},
		{name: "invalid - leading digit", input: "1amount", wantErr: true},
		{name: "invalid - quote", input: `amount"`, wantErr: true},
		{name: "invalid - too long", input: "a" + strings.Repeat("b", MaxFieldNameLen), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFieldName(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateRowKeyField(t *testing.T) {
	columns := []string{"code", "amount"}

	assert.NoError(t, ValidateRowKeyField("", columns))
	assert.NoError(t, ValidateRowKeyField("code", columns))
	assert.Error(t, ValidateRowKeyField("missing", columns))
}
