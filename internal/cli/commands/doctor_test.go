package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorCommand(t *testing.T) {
	tests := []struct {
		name      string
		stmts     []string
		wantOut   []string
		errSubstr string
	}{
		{
			name:  "healthy table",
			stmts: []string{createRestaurants, insertCafeA, insertCafeB},
			wantOut: []string{
				"✓ connected (sqlite)",
				"✓ name (text)",
				"✓ distance_miles (real)",
				"✓ cuisine (text)",
				"✓ 2 rows",
			},
		},
		{
			name:    "empty table",
			stmts:   []string{createRestaurants},
			wantOut: []string{"✓ avg_cost (real)", "! table is empty"},
		},
		{
			name:      "missing column",
			stmts:     []string{"CREATE TABLE restaurants (name TEXT, distance_miles REAL, rating REAL, avg_cost REAL)"},
			wantOut:   []string{"✓ rating (real)", "✗ cuisine missing"},
			errSubstr: "restaurants is missing required column(s): cuisine",
		},
		{
			name:      "missing table",
			stmts:     []string{"CREATE TABLE other (id INTEGER)"},
			wantOut:   []string{"✗ table restaurants"},
			errSubstr: "failed to read restaurants metadata",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDB(t, tt.stmts...)

			out, err := execute(t, NewDoctorCommand(), sqliteConfig(path))
			if tt.errSubstr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
			} else {
				require.NoError(t, err)
			}

			assert.Contains(t, out, "Checking "+path)
			for _, want := range tt.wantOut {
				assert.Contains(t, out, want)
			}
		})
	}
}
