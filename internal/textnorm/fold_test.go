package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	assert.Equal(t, "mama", Fold("Mamá"))
	assert.Equal(t, "aprendi algo", Fold("  APRENDÍ algo "))
	assert.Equal(t, "nino", Fold("Niño"))
}
