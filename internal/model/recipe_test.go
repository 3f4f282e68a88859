package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalTime(t *testing.T) {
	tests := []struct {
		name string
		prep int
		cook int
		want string
	}{
		{"under an hour", 10, 35, "45 minutes"},
		{"exactly an hour", 20, 40, "1h"},
		{"over an hour", 30, 75, "1h 45m"},
		{"zero", 0, 0, "0 minutes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Recipe{PrepTimeMinutes: tt.prep, CookTimeMinutes: tt.cook}
			assert.Equal(t, tt.want, r.TotalTime())
		})
	}
}

func TestJSONBStringArrayRoundTrip(t *testing.T) {
	a := JSONBStringArray{"spaghetti", "garlic"}

	v, err := a.Value()
	assert.NoError(t, err)

	var out JSONBStringArray
	assert.NoError(t, out.Scan(v))
	assert.Equal(t, a, out)

	var empty JSONBStringArray
	v, err = empty.Value()
	assert.NoError(t, err)
	assert.Equal(t, "[]", v)

	assert.NoError(t, out.Scan(nil))
	assert.Empty(t, out)
}
