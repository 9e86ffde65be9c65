package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/collegecounselor/counselor/mockdata"
)

var testRecs = []Recommendation{
	{ID: 1, Name: "Ivy University", Location: "Massachusetts", TrustScore: 85, Category: "Reach"},
	{ID: 2, Name: "State University", Location: "California", TrustScore: 92, Category: "Target"},
	{ID: 3, Name: "Liberal Arts College", Location: "Vermont", TrustScore: 78, Category: "Target"},
	{ID: 5, Name: "Community College", Location: "New York", TrustScore: 95, Category: "Safety"},
}

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{name: "simple comparison", expression: "TrustScore > 80"},
		{name: "boolean combination", expression: `Category == "Target" && TrustScore >= 90`},
		{name: "string helper", expression: `Location contains "Cali"`},
		{name: "empty expression", expression: "   ", wantErr: true},
		{name: "unknown field", expression: "Ranking > 3", wantErr: true},
		{name: "not boolean", expression: "TrustScore + 1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.True(t, errors.As(err, &compErr))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestApply(t *testing.T) {
	f, err := Compile("TrustScore > 80")
	require.NoError(t, err)

	matched, err := f.Apply(testRecs)
	require.NoError(t, err)

	names := make([]string, 0, len(matched))
	for _, rec := range matched {
		names = append(names, rec.Name)
	}
	assert.Equal(t, []string{"Ivy University", "State University", "Community College"}, names)
}

func TestMatch(t *testing.T) {
	f, err := Compile(`Category == "Safety"`)
	require.NoError(t, err)

	ok, err := f.Match(testRecs[3])
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Match(testRecs[0])
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFromPayload(t *testing.T) {
	recs := FromPayload(mockdata.Lookup("colleges/recommendations"))
	require.Len(t, recs, 5)
	assert.Equal(t, "Ivy University", recs[0].Name)
	assert.Equal(t, float64(85), recs[0].TrustScore)
	assert.Equal(t, "Reach", recs[0].Category)
}

func TestFromPayloadMissingKey(t *testing.T) {
	assert.Empty(t, FromPayload(map[string]any{}))
	assert.Empty(t, FromPayload(map[string]any{"recommendations": "not a list"}))
}
