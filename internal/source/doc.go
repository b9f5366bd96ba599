// Package source defines the read-only definition store that backs schema
// resolution: SchemaPath/<namespace dirs>/<name><ext> files. It reads whole
// files, reports file info (size, modtime) for diagnostics, and enumerates
// definition files for bulk loading. Nothing in this package ever writes to
// the schema tree.
package source
