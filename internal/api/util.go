package api

import (
	"encoding/json"
	"strconv"
)

const (
	defaultLeaderboardLimit = 10
	maxLeaderboardLimit     = 100
)

// gormKeys are the untagged gorm.Model fields and their snake_case names.
var gormKeys = map[string]string{
	"ID":        "id",
	"CreatedAt": "created_at",
	"UpdatedAt": "updated_at",
	"DeletedAt": "deleted_at",
}

// normalizeTimestamps recursively renames the CamelCase keys that gorm.Model
// contributes (ID, CreatedAt, UpdatedAt, DeletedAt) to snake_case so clients
// consistently receive snake_case keys.
func normalizeTimestamps(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		for k, val := range vv {
			vv[k] = normalizeTimestamps(val)
		}
		for from, to := range gormKeys {
			if val, ok := vv[from]; ok {
				vv[to] = val
				delete(vv, from)
			}
		}
		return vv
	case []interface{}:
		for i := range vv {
			vv[i] = normalizeTimestamps(vv[i])
		}
		return vv
	default:
		return v
	}
}

// MarshalIntoSnakeTimestamps marshals the given value into JSON, then decodes
// into an interface{} and normalizes gorm keys to snake_case. It is used
// to produce API responses with consistent snake_case keys.
func MarshalIntoSnakeTimestamps(v interface{}) (interface{}, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return normalizeTimestamps(out), nil
}

// parseLimit reads an optional ?limit=N. Missing or out-of-range values
// fall back to the default.
func parseLimit(s string) int {
	if s == "" {
		return defaultLeaderboardLimit
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= maxLeaderboardLimit {
		return n
	}
	return defaultLeaderboardLimit
}
