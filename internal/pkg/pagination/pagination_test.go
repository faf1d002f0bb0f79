package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	p := Params{}
	assert.Empty(t, p.Normalize())
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, DefaultLimit, p.Limit)

	p = Params{Page: -1, Limit: 500}
	errs := p.Normalize()
	assert.Len(t, errs, 2)
}

func TestNewPage(t *testing.T) {
	page := NewPage(Params{Page: 2, Limit: 10}, 25, 10)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, "11-20 of 25", page.Showing)

	empty := NewPage(Params{Page: 1, Limit: 10}, 0, 0)
	assert.Equal(t, 0, empty.TotalPages)
	assert.Equal(t, "0 of 0", empty.Showing)
}
