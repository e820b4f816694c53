package identifier

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrefixFor(t *testing.T) {
	cases := []struct {
		hint string
		want string
	}{
		{"Violin", "VI"},
		{"old italian violin", "VI"},
		{"바이올린", "VI"},
		{"Viola", "VA"},
		{"Cello", "CE"},
		{"첼로", "CE"},
		{"Double Bass", "DB"},
		{"bass", "DB"},
		{"Bow", "BO"},
		{"활", "BO"},
		{"mandolin", "IN"},
		{"", "IN"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, PrefixFor(c.hint), "hint %q", c.hint)
	}
}

func TestGenerateIncrementsMaxSuffix(t *testing.T) {
	existing := []string{"VI001", "VI007", "VI0000123", "CE002"}
	assert.Equal(t, "VI124", Generate("violin", existing))
	assert.Equal(t, "CE003", Generate("cello", existing))
}

func TestGenerateEmptyExisting(t *testing.T) {
	assert.Equal(t, "VI001", Generate("violin", nil))
	assert.Equal(t, "IN001", Generate("", nil))
}

func TestGenerateIgnoresOtherPrefixesAndJunk(t *testing.T) {
	existing := []string{"CE099", "VIOLD", "vi005", " vi009 "}
	// lowercase and padded codes still count for the VI family
	assert.Equal(t, "VI010", Generate("violin", existing))
}

func TestGenerateWithClientPrefix(t *testing.T) {
	existing := []string{"CL0000041", "CL003"}
	assert.Equal(t, "CL042", GenerateWithPrefix(ClientPrefix, existing))
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("vi123")
	assert.NoError(t, err)
	assert.Equal(t, "VI0000123", got)

	got, err = Normalize(" VI0000123 ")
	assert.NoError(t, err)
	assert.Equal(t, "VI0000123", got)

	_, err = Normalize("V123")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = Normalize("VI12345678")
	assert.ErrorIs(t, err, ErrInvalidFormat)

	_, err = Normalize("")
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestValidateUnique(t *testing.T) {
	existing := []string{"VI0000123", "CL0000001"}

	err := ValidateUnique("VI0000124", existing)
	assert.NoError(t, err)

	err = ValidateUnique("vi0000123", existing)
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate, got %v", err)
	}
}

func TestValidateUniqueAcrossSpellings(t *testing.T) {
	// CL1, CL001 and CL0000001 are the same logical number
	err := ValidateUnique("CL0000001", []string{"CL001"})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = ValidateUnique("cl1", []string{"CL0000001"})
	assert.ErrorIs(t, err, ErrDuplicate)

	err = ValidateUnique("CL002", []string{"CL0000001"})
	assert.NoError(t, err)
}

func TestNextCode(t *testing.T) {
	got, err := NextCode(ClientPrefix, nil)
	require.NoError(t, err)
	assert.Equal(t, "CL0000001", got)

	got, err = NextCode(ClientPrefix, []string{"CL003", "CL0000041"})
	require.NoError(t, err)
	assert.Equal(t, "CL0000042", got)
}
