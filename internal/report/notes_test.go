package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotes(t *testing.T) {
	out := Notes()

	assert.Contains(t, out, NotesTitle)
	assert.Contains(t, out, "Low risk (RPN ≤ 100)")
	assert.Contains(t, out, "Medium risk (101 ≤ RPN ≤ 200)")
	assert.Contains(t, out, "High risk (RPN > 200)")
	assert.Contains(t, out, "    - ")
}
