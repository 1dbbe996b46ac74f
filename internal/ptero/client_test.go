package ptero

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func newFakePanel(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)
	return NewClient(ts.URL, "test-key"), ts
}

func TestGetServer(t *testing.T) {
	c, _ := newFakePanel(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/application/servers/5", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		fmt.Fprint(w, `{"object":"server","attributes":{"id":5,"name":"mc-lobby","suspended":true}}`)
	})

	srv, err := c.GetServer(context.Background(), "5")
	require.NoError(t, err)
	require.Equal(t, "5", srv.ID)
	require.Equal(t, "mc-lobby", srv.Name)
	require.True(t, srv.Suspended)
}

func TestGetServer_NotFound(t *testing.T) {
	c, _ := newFakePanel(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.GetServer(context.Background(), "999")
	require.Error(t, err)
	require.Contains(t, err.Error(), "404")
}

func TestListServers_Paginated(t *testing.T) {
	c, _ := newFakePanel(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("page") {
		case "1":
			fmt.Fprint(w, `{"data":[{"attributes":{"id":1,"name":"a","suspended":false}}],
				"meta":{"pagination":{"current_page":1,"total_pages":2}}}`)
		case "2":
			fmt.Fprint(w, `{"data":[{"attributes":{"id":2,"name":"b","suspended":true}}],
				"meta":{"pagination":{"current_page":2,"total_pages":2}}}`)
		default:
			t.Errorf("unexpected page %q", r.URL.Query().Get("page"))
		}
	})

	servers, err := c.ListServers(context.Background())
	require.NoError(t, err)
	require.Len(t, servers, 2)
	require.Equal(t, "1", servers[0].ID)
	require.Equal(t, "2", servers[1].ID)
	require.True(t, servers[1].Suspended)
}

func TestUserServers(t *testing.T) {
	c, _ := newFakePanel(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/application/users/12", r.URL.Path)
		require.Equal(t, "servers", r.URL.Query().Get("include"))
		fmt.Fprint(w, `{"attributes":{"id":12,"relationships":{"servers":{
			"data":[{"attributes":{"id":7,"name":"owned","suspended":false}}]}}}}`)
	})

	servers, err := c.UserServers(context.Background(), "12")
	require.NoError(t, err)
	require.Len(t, servers, 1)
	require.Equal(t, "7", servers[0].ID)
}

func TestSuspendUnsuspend(t *testing.T) {
	var calls []string
	c, _ := newFakePanel(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		calls = append(calls, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, c.Suspend(context.Background(), "3"))
	require.NoError(t, c.Unsuspend(context.Background(), "3"))
	require.Equal(t, []string{
		"/api/application/servers/3/suspend",
		"/api/application/servers/3/unsuspend",
	}, calls)
}

func TestSuspend_Failure(t *testing.T) {
	c, _ := newFakePanel(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	require.Error(t, c.Suspend(context.Background(), "3"))
}
