package webhook

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pet-tag-registry/internal/ports/notify"
)

type captureTransport struct {
	req  *http.Request
	body []byte

	status int
}

func (c *captureTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.req = req
	if req.Body != nil {
		c.body, _ = io.ReadAll(req.Body)
	}
	status := c.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader("")),
		Header:     http.Header{},
	}, nil
}

func TestNew_ValidatesURL(t *testing.T) {
	_, err := New("", nil)
	assert.Error(t, err)

	_, err = New("not a url", nil)
	assert.Error(t, err)

	n, err := New("https://hooks.example.com/pet-tags", nil)
	require.NoError(t, err)
	assert.NotNil(t, n)
}

func TestTagStatusChanged_PostsEnvelope(t *testing.T) {
	tr := &captureTransport{}
	n, err := NewWithTransport("https://hooks.example.com/pet-tags", nil, tr)
	require.NoError(t, err)

	err = n.TagStatusChanged(context.Background(), notify.TagStatusChanged{
		PetID: "PET000123",
		Old:   "ordered",
		New:   "printed",
	})
	require.NoError(t, err)

	require.NotNil(t, tr.req)
	assert.Equal(t, http.MethodPost, tr.req.Method)
	assert.Equal(t, "application/json", tr.req.Header.Get("Content-Type"))

	var env struct {
		Type string          `json:"type"`
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(tr.body, &env))
	assert.Equal(t, "tag_status_changed", env.Type)

	var data struct {
		PetID string `json:"pet_id"`
		Old   string `json:"old"`
		New   string `json:"new"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &data))
	assert.Equal(t, "PET000123", data.PetID)
	assert.Equal(t, "ordered", data.Old)
	assert.Equal(t, "printed", data.New)
}

func TestPost_Non2xxReturnsError(t *testing.T) {
	tr := &captureTransport{status: http.StatusBadGateway}
	n, err := NewWithTransport("https://hooks.example.com/pet-tags", nil, tr)
	require.NoError(t, err)

	err = n.ShippingBatchCreated(context.Background(), notify.ShippingBatchCreated{
		ShippingID: "abc",
		Courier:    "DHL",
	})
	assert.Error(t, err)
}
