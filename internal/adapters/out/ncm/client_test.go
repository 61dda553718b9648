package ncm_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"backoffice/internal/adapters/out/ncm"
	"backoffice/internal/core/domain/model/lookup"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := ncm.NewClient("")
	require.Error(t, err)
}

func TestClient_Branches_AcceptsBothKeyShapes(t *testing.T) {
	var path string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"value": "br-ktm", "label": "Kathmandu Hub"},
			{"id": "br-pkr", "label": "Pokhara"}
		]`))
	}))
	defer server.Close()

	client, err := ncm.NewClient(server.URL + "/")
	require.NoError(t, err)

	options, err := client.Branches(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/branches", path)
	assert.Equal(t, []lookup.Option{
		{Value: "br-ktm", Label: "Kathmandu Hub"},
		{Value: "br-pkr", Label: "Pokhara"},
	}, options)
}

func TestClient_Branches_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client, err := ncm.NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Branches(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "503")
}

func TestClient_Branches_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	server.Close()

	client, err := ncm.NewClient(server.URL)
	require.NoError(t, err)

	_, err = client.Branches(context.Background())
	require.Error(t, err)
}
