package gitscribe

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeSchema(t *testing.T, raw json.RawMessage) map[string]any {
	t.Helper()
	var result map[string]any
	require.NoError(t, json.Unmarshal(raw, &result))
	return result
}

func TestSchemaFrom_SimpleTypes(t *testing.T) {
	type Args struct {
		Name   string  `json:"name"`
		Count  int64   `json:"count"`
		Score  float64 `json:"score"`
		Active bool    `json:"active"`
	}

	result := decodeSchema(t, SchemaFrom[Args]().Build())

	assert.Equal(t, "object", result["type"])
	props := result["properties"].(map[string]any)
	assert.Equal(t, "string", props["name"].(map[string]any)["type"])
	assert.Equal(t, "integer", props["count"].(map[string]any)["type"])
	assert.Equal(t, "number", props["score"].(map[string]any)["type"])
	assert.Equal(t, "boolean", props["active"].(map[string]any)["type"])
}

func TestSchemaFrom_CommitFields(t *testing.T) {
	type fields struct {
		SummaryLine string   `json:"summary_line"`
		ExtraLines  []string `json:"extra_lines"`
		ignored     string
		Skipped     string `json:"-"`
	}

	result := decodeSchema(t, SchemaFrom[fields]().
		Desc("summary_line", "first line").
		Required("summary_line", "extra_lines", "missing").
		Build())

	props := result["properties"].(map[string]any)
	assert.Len(t, props, 2)
	assert.Equal(t, "first line", props["summary_line"].(map[string]any)["description"])

	extra := props["extra_lines"].(map[string]any)
	assert.Equal(t, "array", extra["type"])
	assert.Equal(t, "string", extra["items"].(map[string]any)["type"])

	assert.Equal(t, []any{"summary_line", "extra_lines"}, result["required"])
}

func TestSchemaFrom_RequiredDeduplicates(t *testing.T) {
	type Args struct {
		A string `json:"a"`
	}

	result := decodeSchema(t, SchemaFrom[Args]().Required("a", "a").Build())
	assert.Equal(t, []any{"a"}, result["required"])
}

func TestSchemaFrom_NestedAndPointer(t *testing.T) {
	type Inner struct {
		City string `json:"city"`
	}
	type Args struct {
		Where *Inner `json:"where"`
	}

	result := decodeSchema(t, SchemaFrom[*Args]().Build())

	where := result["properties"].(map[string]any)["where"].(map[string]any)
	assert.Equal(t, "object", where["type"])
	city := where["properties"].(map[string]any)["city"].(map[string]any)
	assert.Equal(t, "string", city["type"])
}

func TestSchemaFrom_NonStruct(t *testing.T) {
	result := decodeSchema(t, SchemaFrom[string]().Build())
	assert.Equal(t, "object", result["type"])
	assert.Empty(t, result["properties"])
}
