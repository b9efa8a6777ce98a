package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ModelID string `json:"model_id"`
}

func TestJSONStrict_RejectsUnknownFields(t *testing.T) {
	var s sample
	err := JSONStrict.Unmarshal([]byte(`{"model_id": "a", "extra": 1}`), &s)
	assert.Error(t, err)
}

func TestJSONLenient_AllowsUnknownFields(t *testing.T) {
	var s sample
	err := JSONLenient.Unmarshal([]byte(`{"model_id": "a", "extra": 1}`), &s)
	require.NoError(t, err)
	assert.Equal(t, "a", s.ModelID)
}

func TestUnmarshal_RejectsTrailingContent(t *testing.T) {
	var s sample
	assert.Error(t, JSONStrict.Unmarshal([]byte(`{"model_id": "a"} {"model_id": "b"}`), &s))
	assert.Error(t, JSONLenient.Unmarshal([]byte(`{} trailing`), &s))
}

func TestMarshal_NoHTMLEscapeNoNewline(t *testing.T) {
	out, err := JSONStrict.Marshal(map[string]string{"q": "a<b>&c"})
	require.NoError(t, err)
	assert.Equal(t, `{"q":"a<b>&c"}`, string(out))
}

func TestContentType(t *testing.T) {
	assert.Equal(t, "application/json", JSONStrict.ContentType())
}
