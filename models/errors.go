package models

import "fmt"

// SchemaError means no usable text column could be located in an
// uploaded table. It is fatal to the whole ingestion and surfaced to
// the caller with a human-readable reason.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return "schema inference failed: " + e.Reason
}

// UnsupportedFormatError means the uploaded file's extension is not
// one of the supported tabular formats. Fatal, surfaced.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported file format %q: use csv, xlsx or xls", e.Extension)
}
