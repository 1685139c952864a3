package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRemoteNotifier_PostsToEmailService(t *testing.T) {
	var gotPath string
	var gotBody sendRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	n := NewRemoteNotifier(srv.URL + "/")
	n.Notify("User connected", "alice is now online")

	require.Equal(t, "/api/email/send", gotPath)
	require.Equal(t, "User connected", gotBody.Subject)
	require.Equal(t, "alice is now online", gotBody.Body)
}

func TestRemoteNotifier_SwallowsServiceFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	// Failure must be logged only, never panic or propagate.
	n := NewRemoteNotifier(srv.URL)
	n.Notify("subject", "body")
}
