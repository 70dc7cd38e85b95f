package textnorm_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/roi-admin-api/pkg/textnorm"
)

func TestClean_NormalizaNFC(t *testing.T) {
	decomposed := "Cafe\u0301"
	precomposed := "Caf\u00e9"
	assert.Equal(t, precomposed, textnorm.Clean("  "+decomposed+"\t"))
	assert.Equal(t, 4, textnorm.Len(textnorm.Clean(decomposed)))
}

func TestClean_Vacio(t *testing.T) {
	assert.Equal(t, "", textnorm.Clean("   "))
}
