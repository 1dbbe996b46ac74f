// Package ptero is a thin client for the Pterodactyl application API.
// The panel owns server state; this add-on only reads server details and
// flips suspension.
package ptero

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Server is the slice of a panel server this add-on cares about.
type Server struct {
	ID        string
	Name      string
	Suspended bool
}

type Client struct {
	baseURL    string
	key        string
	httpClient *http.Client
}

// NewClient builds a client for the given panel domain and application API
// key. Calls are bounded by a conservative timeout so a stalled panel does
// not hang the sweep.
func NewClient(domain, key string) *Client {
	return &Client{
		baseURL: strings.TrimRight(domain, "/"),
		key:     key,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// wire shapes of the application API

type serverAttributes struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Suspended bool   `json:"suspended"`
}

type serverObject struct {
	Attributes serverAttributes `json:"attributes"`
}

type serverList struct {
	Data []serverObject `json:"data"`
	Meta struct {
		Pagination struct {
			CurrentPage int `json:"current_page"`
			TotalPages  int `json:"total_pages"`
		} `json:"pagination"`
	} `json:"meta"`
}

type userObject struct {
	Attributes struct {
		ID            int64 `json:"id"`
		Relationships struct {
			Servers serverList `json:"servers"`
		} `json:"relationships"`
	} `json:"attributes"`
}

func (a serverAttributes) toServer() Server {
	return Server{
		ID:        strconv.FormatInt(a.ID, 10),
		Name:      a.Name,
		Suspended: a.Suspended,
	}
}

// GetServer fetches current details for one server.
func (c *Client) GetServer(ctx context.Context, id string) (*Server, error) {
	var obj serverObject
	if err := c.get(ctx, "/api/application/servers/"+id, &obj); err != nil {
		return nil, err
	}
	srv := obj.Attributes.toServer()
	return &srv, nil
}

// ListServers walks every page of the server list.
func (c *Client) ListServers(ctx context.Context) ([]Server, error) {
	var out []Server
	page := 1
	for {
		var list serverList
		path := fmt.Sprintf("/api/application/servers?page=%d", page)
		if err := c.get(ctx, path, &list); err != nil {
			return nil, err
		}
		for _, obj := range list.Data {
			out = append(out, obj.Attributes.toServer())
		}
		if page >= list.Meta.Pagination.TotalPages {
			break
		}
		page++
	}
	return out, nil
}

// UserServers returns the servers owned by a panel user. Backs the
// ownership check on the renewal endpoints.
func (c *Client) UserServers(ctx context.Context, userID string) ([]Server, error) {
	var obj userObject
	if err := c.get(ctx, "/api/application/users/"+userID+"?include=servers", &obj); err != nil {
		return nil, err
	}
	servers := make([]Server, 0, len(obj.Attributes.Relationships.Servers.Data))
	for _, s := range obj.Attributes.Relationships.Servers.Data {
		servers = append(servers, s.Attributes.toServer())
	}
	return servers, nil
}

// Suspend disables a server. Safe to repeat; the panel treats a suspend of
// an already-suspended server as a no-op.
func (c *Client) Suspend(ctx context.Context, id string) error {
	return c.post(ctx, "/api/application/servers/"+id+"/suspend")
}

// Unsuspend re-enables a server.
func (c *Client) Unsuspend(ctx context.Context, id string) error {
	return c.post(ctx, "/api/application/servers/"+id+"/unsuspend")
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("panel API %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, out)
}

func (c *Client) post(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("panel API %s: unexpected status %d", path, resp.StatusCode)
	}
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
}
