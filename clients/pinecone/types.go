package pinecone

import (
	"github.com/pinecone-io/go-pinecone/pinecone"
)

// Service provides access to Pinecone indexes through the official SDK.
type Service struct {
	client *pinecone.Client
}

// IndexOperations provides operations for a specific Pinecone index.
type IndexOperations struct {
	index *pinecone.IndexConnection
}

// Vector represents a vector with metadata (re-exported from the SDK).
type Vector = pinecone.Vector

// QueryMatch represents a match from query results (re-exported from the SDK).
type QueryMatch = pinecone.ScoredVector

// Metadata represents the metadata for a vector (re-exported from the SDK).
type Metadata = pinecone.Metadata
