package interfaces

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected Version
		wantErr  bool
	}{
		{input: "0.1.0", expected: Version{0, 1, 0}},
		{input: "1.2.3", expected: Version{1, 2, 3}},
		{input: "v10.0.42", expected: Version{10, 0, 42}},
		{input: "1.2", wantErr: true},
		{input: "1.2.3.4", wantErr: true},
		{input: "1.-2.3", wantErr: true},
		{input: "a.b.c", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v, err := ParseVersion(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	assert.True(t, Version{0, 1, 0}.Less(Version{0, 1, 1}))
	assert.True(t, Version{0, 9, 9}.Less(Version{1, 0, 0}))
	assert.True(t, Version{1, 2, 3}.Less(Version{1, 3, 0}))
	assert.False(t, Version{1, 2, 3}.Less(Version{1, 2, 3}))
	assert.Equal(t, 0, Version{1, 2, 3}.Compare(Version{1, 2, 3}))
	assert.Equal(t, 1, Version{2, 0, 0}.Compare(Version{1, 9, 9}))
}

func TestVersion_StringRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := Version{
			Major: rapid.Uint64().Draw(t, "major"),
			Minor: rapid.Uint64().Draw(t, "minor"),
			Build: rapid.Uint64().Draw(t, "build"),
		}
		parsed, err := ParseVersion(v.String())
		if err != nil {
			t.Fatalf("parse %q: %v", v.String(), err)
		}
		if parsed != v {
			t.Fatalf("round trip mismatch: %v != %v", parsed, v)
		}
	})
}

func TestVersion_CompareAntisymmetric(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		gen := rapid.Uint64Range(0, 3)
		a := Version{gen.Draw(t, "a.major"), gen.Draw(t, "a.minor"), gen.Draw(t, "a.build")}
		b := Version{gen.Draw(t, "b.major"), gen.Draw(t, "b.minor"), gen.Draw(t, "b.build")}
		if a.Compare(b) != -b.Compare(a) {
			t.Fatalf("compare not antisymmetric for %v and %v", a, b)
		}
		if (a.Compare(b) == 0) != (a == b) {
			t.Fatalf("compare equality mismatch for %v and %v", a, b)
		}
	})
}

func TestPackageHandle_Hex(t *testing.T) {
	handle := PackageHandle{0xde, 0xad, 0xbe, 0xef}
	parsed, err := NewPackageHandleFromHex("0x" + handle.String())
	require.NoError(t, err)
	assert.Equal(t, handle, parsed)
	assert.False(t, parsed.IsZero())
	assert.True(t, PackageHandle{}.IsZero())

	_, err = NewPackageHandleFromHex("abcd")
	assert.Error(t, err)

	encoded, err := json.Marshal(Release{Handle: handle})
	require.NoError(t, err)
	assert.Contains(t, string(encoded), handle.String())
}

func TestContractAddress_Hex(t *testing.T) {
	addr, err := NewContractAddressFromHex("0x57147069B117fD911Da6c43F3fBdC54a7A7D8C1d")
	require.NoError(t, err)
	assert.Equal(t, "57147069b117fd911da6c43f3fbdc54a7a7d8c1d", addr.String())

	_, err = NewContractAddressFromHex("0x1234")
	assert.Error(t, err)
}
