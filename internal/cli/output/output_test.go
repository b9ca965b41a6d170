package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderer_PlainWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer(&buf)

	r.Println(r.Styles().Header1.Render("restaurants"))
	r.Pass("name (text)")
	r.Fail("rating missing")
	r.Warn("table is empty")
	r.Printf("%d rows\n", 3)

	assert.Equal(t, "restaurants\n  ✓ name (text)\n  ✗ rating missing\n  ! table is empty\n3 rows\n", buf.String())
}
