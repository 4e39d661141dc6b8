package qdrant

import (
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/searchlab/recipebench/vectordb"
)

// validateQueryInput validates common query parameters.
func validateQueryInput(collection string, limit int) error {
	if collection == "" {
		return fmt.Errorf("collection name cannot be empty")
	}
	if limit <= 0 {
		return fmt.Errorf("limit must be greater than 0")
	}
	return nil
}

// parseHits converts Qdrant scored points into the database-agnostic
// hit type used by the rest of the application.
func parseHits(resp []*qdrant.ScoredPoint) ([]vectordb.Hit, error) {
	hits := make([]vectordb.Hit, 0, len(resp))
	for _, r := range resp {
		id, err := extractPointID(r.Id)
		if err != nil {
			return nil, err
		}

		hits = append(hits, vectordb.Hit{
			ID:      id,
			Score:   r.Score,
			Payload: convertPayload(r.Payload),
		})
	}
	return hits, nil
}

// extractPointID extracts a string ID from Qdrant's PointId type.
func extractPointID(id *qdrant.PointId) (string, error) {
	if id == nil {
		return "", fmt.Errorf("nil point ID")
	}
	switch v := id.PointIdOptions.(type) {
	case *qdrant.PointId_Num:
		return fmt.Sprintf("%d", v.Num), nil
	case *qdrant.PointId_Uuid:
		return v.Uuid, nil
	default:
		return "", fmt.Errorf("unexpected PointId type: %T", v)
	}
}

// convertPayload converts Qdrant's protobuf payload to a generic map.
func convertPayload(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return nil
	}
	result := make(map[string]any, len(payload))
	for k, v := range payload {
		result[k] = extractValue(v)
	}
	return result
}

// extractValue recursively converts a Qdrant Value to a Go native type.
func extractValue(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch val := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return val.StringValue
	case *qdrant.Value_IntegerValue:
		return val.IntegerValue
	case *qdrant.Value_DoubleValue:
		return val.DoubleValue
	case *qdrant.Value_BoolValue:
		return val.BoolValue
	case *qdrant.Value_NullValue:
		return nil
	case *qdrant.Value_StructValue:
		if val.StructValue == nil {
			return nil
		}
		return convertPayload(val.StructValue.Fields)
	case *qdrant.Value_ListValue:
		if val.ListValue == nil {
			return nil
		}
		items := make([]any, len(val.ListValue.Values))
		for i, item := range val.ListValue.Values {
			items[i] = extractValue(item)
		}
		return items
	default:
		return nil
	}
}

// extractVectorDetails safely extracts the dense vector size and distance
// metric from a Qdrant CollectionInfo.
//
// Qdrant represents vector configuration data using a deeply nested protobuf
// structure with "oneof" wrappers. Hybrid collections use the named-vectors
// form (ParamsMap), so this helper looks up the dense field there, falling
// back to the single-vector form for legacy collections.
//
// If any nested field is missing or of an unexpected type, the function
// gracefully returns default values (0, "").
func extractVectorDetails(info *qdrant.CollectionInfo) (int, string) {
	if info == nil ||
		info.Config == nil ||
		info.Config.Params == nil ||
		info.Config.Params.VectorsConfig == nil ||
		info.Config.Params.VectorsConfig.Config == nil {
		return 0, ""
	}

	switch cfg := info.Config.Params.VectorsConfig.Config.(type) {
	case *qdrant.VectorsConfig_ParamsMap:
		if cfg.ParamsMap == nil {
			return 0, ""
		}
		if params, ok := cfg.ParamsMap.Map[denseUsing]; ok && params != nil {
			return int(params.Size), params.Distance.String()
		}
	case *qdrant.VectorsConfig_Params:
		return int(cfg.Params.Size), cfg.Params.Distance.String()
	}

	return 0, ""
}
