package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leapstack-labs/restoreport/pkg/core"
)

func TestTableMetadata_Column(t *testing.T) {
	meta := &core.TableMetadata{
		Name: "restaurants",
		Columns: []core.Column{
			{Name: "name", Type: "text", Position: 1},
			{Name: "DISTANCE_MILES", Type: "numeric", Position: 2},
		},
	}

	col, ok := meta.Column("name")
	assert.True(t, ok)
	assert.Equal(t, 1, col.Position)

	col, ok = meta.Column("distance_miles")
	assert.True(t, ok, "lookup is case-insensitive")
	assert.Equal(t, "numeric", col.Type)

	assert.False(t, meta.HasColumn("cuisine"))
}
