// Package adapter provides the database adapter contract used by restoreport
// and the shared database/sql plumbing the concrete adapters embed.
//
// Concrete adapter implementations are in pkg/adapters/ subdirectories and
// register themselves from init().
package adapter

import (
	"github.com/leapstack-labs/restoreport/pkg/core"
)

// Type aliases so adapter implementations only need to import this package.
type (
	// Adapter is an alias for core.Adapter.
	Adapter = core.Adapter

	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Column is an alias for core.Column.
	Column = core.Column

	// Metadata is an alias for core.TableMetadata.
	Metadata = core.TableMetadata

	// Rows is an alias for core.Rows.
	Rows = core.Rows
)
