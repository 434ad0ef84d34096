// Package sqlite implements the employee, attendance and dashboard repositories on an embedded
// SQLite database. It backs local development and the test suite, and mirrors the PostgreSQL
// repositories statement for statement where the dialects allow.
//
// Dates are stored as TEXT in YYYY-MM-DD form and timestamps as fixed-width UTC TEXT, so
// lexical comparison and ordering agree with chronological order.
package sqlite
