// Package core defines the types shared between the report runner, the CLI
// and the database adapters.
//
// pkg/core imports only the standard library. Everything else depends on
// core, not the reverse.
package core
