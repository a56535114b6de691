// Package core defines the shared language of leadsunifier.
//
// This package contains:
//   - Domain entities (Contact, Value, FieldType)
//   - Run results (RunSummary, FieldStats)
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
