// Package vectordb defines the database-agnostic abstraction for hybrid
// vector similarity search.
//
// It holds only contracts and plain data types: the Service interface,
// SearchRequest/Hit/Point/Collection, and the centralized payload field
// accessors (PayloadID, PayloadName). Concrete database wrappers, the
// qdrant package here, implement Service and convert their SDK types at
// the boundary, so application packages can switch databases without
// changing code.
package vectordb
