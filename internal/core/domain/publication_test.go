package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReference(t *testing.T) {
	ref := Reference{ID: "p1", Name: "trinity"}
	assert.True(t, ref.Complete())
	assert.Equal(t, "trinity(p1)", ref.String())

	assert.False(t, (&Reference{ID: "p1"}).Complete())
	assert.False(t, (&Reference{Name: "trinity"}).Complete())

	var missing *Reference
	assert.False(t, missing.Complete())
}

func TestLookup_Validate(t *testing.T) {
	tests := []struct {
		name    string
		lookup  Lookup
		wantErr bool
	}{
		{"id", Lookup{ID: "p1"}, false},
		{"name", Lookup{Name: "trinity"}, false},
		{"neither", Lookup{}, true},
		{"both", Lookup{ID: "p1", Name: "trinity"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.lookup.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
