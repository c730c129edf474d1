package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadGrammarMissingFile(t *testing.T) {
	_, err := loadGrammar(filepath.Join(t.TempDir(), "missing.so"))
	assert.Error(t, err)
}
