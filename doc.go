// Package chartview is an embeddable chart configuration engine.
//
// An Editor lets a host pick a chart type, edit that type's visual
// configuration through a schema of field groups, edit its data rows, and
// obtain a renderer-ready option tree reflecting both. Configuration and rows
// are persisted per chart type through a pluggable storage backend, so a new
// Editor over the same backend resumes where the previous one left off.
//
// Every failure past construction is absorbed: storage errors are logged and
// dropped, malformed rows are repaired, and unknown chart types yield empty
// results.
package chartview
