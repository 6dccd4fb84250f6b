package db

import "encoding/json"

// AliasActionType selects an alias mutation.
type AliasActionType int

const (
	// AliasAdd points an alias at an index.
	AliasAdd AliasActionType = iota
	// AliasRemove detaches an alias from an index.
	AliasRemove
)

// AliasAction is one step of an atomic alias update.
type AliasAction struct {
	Type  AliasActionType
	Alias string
	Index string
}

// BulkItem is a document to create in a bulk request.
type BulkItem struct {
	ID     string
	Source json.RawMessage
}

// BulkFailure describes a rejected bulk item.
type BulkFailure struct {
	ID     string
	Reason string
}

// BulkResult summarizes a bulk request.
type BulkResult struct {
	Processed int
	Failed    []BulkFailure
}
