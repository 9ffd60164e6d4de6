package mapper

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japb1998/wacrm/internal/dto"
)

func TestParsePhoneNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "(321) 277-0753", want: "3212770753"},
		{in: "+38 067 123 45 67", want: "380671234567"},
		{in: "12345", wantErr: true},
		{in: "1234567890123456", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParsePhoneNumber(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrInvalidPhone, tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestMapSeedContactToModel(t *testing.T) {
	c, err := MapSeedContactToModel(context.Background(), "owner@example.com", dto.SeedContactDto{
		PhoneNumber: "+380 67 123 4567",
		Name:        " Olena ",
		CustomData:  map[string]string{"city": "Lviv"},
	})

	require.NoError(t, err)
	assert.Equal(t, "380671234567", c.PhoneNumber)
	assert.Equal(t, "Olena", c.Name)
	assert.Equal(t, "import_json", c.Source)
	assert.Equal(t, []string{}, c.Tags)
	assert.NotEmpty(t, c.Id)

	d := MapContactModelToDto(context.Background(), c)
	assert.Nil(t, d.LastMessageAt)
	assert.Equal(t, "Lviv", d.CustomData["city"])
}
