package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/saju/internal/chart"
	"github.com/roach88/saju/internal/ganji"
)

func TestMarshalBasic(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		expected string
	}{
		{"string", "hello", `"hello"`},
		{"int", 42, "42"},
		{"negative", -100, "-100"},
		{"bool", true, "true"},
		{"empty array", []int{}, "[]"},
		{"empty object", map[string]int{}, "{}"},
		{"sorted keys", map[string]int{"zebra": 1, "alpha": 2, "beta": 3}, `{"alpha":2,"beta":3,"zebra":1}`},
		{"no html escape", "<a&b>", `"<a&b>"`},
		{"hanja", ganji.MustParsePillar("甲子"), `{"branch":"子","stem":"甲"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, string(got))
		})
	}
}

func TestMarshalUTF16Ordering(t *testing.T) {
	// UTF-16 puts the surrogate pair of U+10000 before U+E000.
	got, err := Marshal(map[string]int{"\uE000": 1, "\U00010000": 2})
	require.NoError(t, err)
	assert.Equal(t, "{\"\U00010000\":2,\"\uE000\":1}", string(got))
}

func TestMarshalNFC(t *testing.T) {
	// "e" + combining acute normalises to U+00E9.
	got, err := Marshal("e\u0301")
	require.NoError(t, err)
	assert.Equal(t, "\"\u00e9\"", string(got))
}

func TestMarshalLineSeparatorsStayLiteral(t *testing.T) {
	got, err := Marshal("a\u2028b")
	require.NoError(t, err)
	assert.Equal(t, "\"a\u2028b\"", string(got))

	got, err = Marshal(`a\u2028b`)
	require.NoError(t, err)
	assert.Equal(t, `"a\\u2028b"`, string(got))
}

func TestMarshalRejectsFloatsAndNulls(t *testing.T) {
	_, err := Marshal(1.5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "floats are forbidden")

	_, err = Marshal(nil)
	require.Error(t, err)

	_, err = Marshal([]any{1, nil})
	require.Error(t, err)
}

func TestMarshalDropsNullMembers(t *testing.T) {
	type withOptional struct {
		A int   `json:"a"`
		B []int `json:"b"`
	}
	got, err := Marshal(withOptional{A: 1})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}

func TestFingerprint(t *testing.T) {
	p := chart.BirthProfile{
		BirthYear: 1990,
		Year:      ganji.MustParsePillar("庚午"),
		Month:     ganji.MustParsePillar("戊寅"),
		Day:       ganji.MustParsePillar("甲子"),
		Hour:      ganji.MustParsePillar("丙寅"),
	}
	id1, err := Fingerprint(DomainProfile, p)
	require.NoError(t, err)
	assert.Len(t, id1, 64)
	assert.Equal(t, id1, MustFingerprint(DomainProfile, p.Clone()))

	// Same bytes under another domain hash differently.
	assert.NotEqual(t, id1, MustFingerprint(DomainReport, p))

	q := p
	q.Hour = ganji.MustParsePillar("丁卯")
	assert.NotEqual(t, id1, MustFingerprint(DomainProfile, q))
}
