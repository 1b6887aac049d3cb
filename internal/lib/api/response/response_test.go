package response

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvelopes(t *testing.T) {
	data, err := json.Marshal(Error("boom"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":false,"error":"boom"}`, string(data))

	data, err = json.Marshal(Ok("done"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"message":"done"}`, string(data))

	data, err = json.Marshal(Conversations(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"conversations":[]}`, string(data))

	data, err = json.Marshal(Messages(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"messages":[]}`, string(data))
}
