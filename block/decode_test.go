package block

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeProps(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want map[string]any
	}{
		{"nil", nil, map[string]any{}},
		{"object passthrough", map[string]any{"k": "v"}, map[string]any{"k": "v"}},
		{"json string", `{"language":"go"}`, map[string]any{"language": "go"}},
		{"malformed json", `{not json`, map[string]any{}},
		{"empty string", "", map[string]any{}},
		{"json null string", "null", map[string]any{}},
		{"array not object", `[1,2]`, map[string]any{}},
		{"unexpected type", 42, map[string]any{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeProps(tt.in))
		})
	}
}

func TestDecodePropsRawMessage(t *testing.T) {
	assert.Equal(t, map[string]any{"a": "b"}, DecodeProps(json.RawMessage(`{"a":"b"}`)))

	// Double-encoded: a JSON string holding an encoded object.
	assert.Equal(t, map[string]any{"votes": map[string]any{"x": 1.0}},
		DecodeProps(json.RawMessage(`"{\"votes\":{\"x\":1}}"`)))

	assert.Equal(t, map[string]any{}, DecodeProps(json.RawMessage(`{broken`)))
	assert.Equal(t, map[string]any{}, DecodeProps(json.RawMessage(nil)))
}

func TestDecodeTags(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want []string
	}{
		{"comma string sorted", "b, a", []string{"a", "b"}},
		{"array input", []any{"web", "go"}, []string{"go", "web"}},
		{"string slice", []string{"z", "a"}, []string{"a", "z"}},
		{"empties dropped", "go,, ,web", []string{"go", "web"}},
		{"empty string", "", []string{}},
		{"raw json string", json.RawMessage(`"c,b"`), []string{"b", "c"}},
		{"raw json array", json.RawMessage(`["y","x"]`), []string{"x", "y"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DecodeTags(tt.in)
			assert.Len(t, got, len(tt.want))
			for i := range tt.want {
				assert.Equal(t, tt.want[i], got[i])
			}
		})
	}
}

func TestOptionsIgnoresMalformedEntries(t *testing.T) {
	opts := Options(map[string]any{"options": []any{
		map[string]any{"id": "1", "text": "ok"},
		"not an option",
		map[string]any{"id": "2", "text": "also ok"},
	}})
	assert.Len(t, opts, 2)
	assert.Equal(t, "ok", opts[0].Text)

	assert.Nil(t, Options(map[string]any{"options": "garbage"}))
	assert.Nil(t, Options(map[string]any{}))
}

func TestVotes(t *testing.T) {
	votes := Votes(map[string]any{"votes": map[string]any{"a": 3.0, "b": 0.0}})
	assert.Equal(t, 3, votes["a"])
	assert.Equal(t, 0, votes["b"])

	assert.Empty(t, Votes(map[string]any{"votes": "broken"}))
	assert.Empty(t, Votes(map[string]any{}))
}

func TestPropAccessors(t *testing.T) {
	props := map[string]any{"width": "half", "height": 48.0}
	assert.Equal(t, "half", PropString(props, "width", "full"))
	assert.Equal(t, "full", PropString(props, "missing", "full"))
	assert.Equal(t, 48, PropInt(props, "height", 24))
	assert.Equal(t, 24, PropInt(props, "missing", 24))
	assert.Equal(t, 24, PropInt(map[string]any{"height": "tall"}, "height", 24))
}
