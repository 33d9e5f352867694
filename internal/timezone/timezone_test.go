package timezone

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("America/Sao_Paulo"))
	assert.True(t, IsValid("Europe/Lisbon"))
	assert.True(t, IsValid("UTC"))

	assert.False(t, IsValid(""))
	assert.False(t, IsValid("Marte/Olympus_Mons"))
}

func TestLocation_FallsBackToDefault(t *testing.T) {
	loc := Location("nao-existe")
	require.NotNil(t, loc)
	assert.Equal(t, Default(), loc.String())
}

func TestSetDefault(t *testing.T) {
	original := Default()
	defer SetDefault(original)

	SetDefault("Europe/Lisbon")
	assert.Equal(t, "Europe/Lisbon", Default())
	assert.Equal(t, "Europe/Lisbon", Location("").String())

	// inválido não derruba o padrão vigente
	SetDefault("Marte/Olympus_Mons")
	assert.Equal(t, "Europe/Lisbon", Default())
}
