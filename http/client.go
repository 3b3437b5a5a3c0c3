// Package http provides the HTTP implementation of pageflat.PageService and
// pageflat.Downloader against the Confluence Cloud REST API.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/fwojciec/pageflat"
	"golang.org/x/time/rate"
)

// restPrefix is the REST API route prefix under the site base URL.
const restPrefix = "/wiki/rest/api"

// Ensure Client implements the domain interfaces at compile time.
var (
	_ pageflat.PageService = (*Client)(nil)
	_ pageflat.Downloader  = (*Client)(nil)
)

// Client talks to one Confluence site using basic authentication
// (email + API token). Each call makes exactly one request; there are no
// hidden retries or timeouts.
type Client struct {
	baseURL string
	email   string
	token   string

	client  *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.client = c
	}
}

// WithRateLimit caps outgoing requests at rps requests per second.
// Off by default: resilience policies are opt-in wrappers, never hidden
// defaults.
func WithRateLimit(rps float64) Option {
	return func(cl *Client) {
		cl.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a Client for the site at baseURL (scheme://host).
func NewClient(baseURL, email, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		email:   email,
		token:   token,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// CurrentUser probes authentication via the user/current endpoint and
// returns the authenticated user's display name.
func (c *Client) CurrentUser(ctx context.Context) (string, error) {
	var user struct {
		DisplayName string `json:"displayName"`
	}
	if err := c.getJSON(ctx, c.baseURL+restPrefix+"/user/current", &user); err != nil {
		if pageflat.ErrorCode(err) == pageflat.EUNAVAILABLE {
			return "", err
		}
		return "", pageflat.Errorf(pageflat.EUNAUTHORIZED, "authentication failed, please check your credentials: %v", pageflat.ErrorMessage(err))
	}
	return user.DisplayName, nil
}

// contentResponse is the wire shape of a content entity.
type contentResponse struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Body   struct {
		Storage struct {
			Value string `json:"value"`
		} `json:"storage"`
	} `json:"body"`
	Version struct {
		When string `json:"when"`
		By   struct {
			DisplayName string `json:"displayName"`
		} `json:"by"`
	} `json:"version"`
	Ancestors []struct {
		Title string `json:"title"`
	} `json:"ancestors"`
}

// FindPageByID fetches a page with its storage-format body.
func (c *Client) FindPageByID(ctx context.Context, pageID string) (*pageflat.Page, error) {
	endpoint := fmt.Sprintf("%s%s/content/%s?expand=body.storage", c.baseURL, restPrefix, url.PathEscape(pageID))

	req, err := c.newRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, pageflat.Errorf(pageflat.EUNAVAILABLE, "error fetching content: %v", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusForbidden:
		return nil, pageflat.Errorf(pageflat.EUNAUTHORIZED,
			"403 Forbidden fetching page %s; possible causes: the page does not exist or was deleted, the user lacks permission to view it, the page is in a restricted space, or the API token is invalid", pageID)
	case resp.StatusCode == http.StatusNotFound:
		return nil, pageflat.Errorf(pageflat.ENOTFOUND, "error fetching content: page %s not found (HTTP 404)", pageID)
	case resp.StatusCode != http.StatusOK:
		return nil, pageflat.Errorf(pageflat.EUNAVAILABLE, "error fetching content: HTTP %d for page %s", resp.StatusCode, pageID)
	}

	var cr contentResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, pageflat.Errorf(pageflat.EINTERNAL, "error decoding content response: %v", err)
	}

	page := &pageflat.Page{
		ID:       cr.ID,
		Title:    cr.Title,
		Type:     cr.Type,
		Status:   cr.Status,
		BodyHTML: cr.Body.Storage.Value,
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	return page, nil
}

// FindComments fetches the top-level comments attached to a page, with
// version info for author/timestamp and ancestors for context titles.
func (c *Client) FindComments(ctx context.Context, pageID string) ([]*pageflat.Comment, error) {
	endpoint := fmt.Sprintf("%s%s/content/%s/child/comment?expand=body.storage,version,ancestors", c.baseURL, restPrefix, url.PathEscape(pageID))
	return c.findComments(ctx, endpoint, false)
}

// FindReplies fetches the replies attached to a comment.
func (c *Client) FindReplies(ctx context.Context, commentID string) ([]*pageflat.Comment, error) {
	endpoint := fmt.Sprintf("%s%s/content/%s/child/comment?expand=body.storage,version", c.baseURL, restPrefix, url.PathEscape(commentID))
	return c.findComments(ctx, endpoint, true)
}

func (c *Client) findComments(ctx context.Context, endpoint string, asReplies bool) ([]*pageflat.Comment, error) {
	var list struct {
		Results []contentResponse `json:"results"`
	}
	if err := c.getJSON(ctx, endpoint, &list); err != nil {
		return nil, err
	}

	comments := make([]*pageflat.Comment, 0, len(list.Results))
	for _, r := range list.Results {
		comment := &pageflat.Comment{
			ID:       r.ID,
			Author:   r.Version.By.DisplayName,
			Created:  r.Version.When,
			BodyHTML: r.Body.Storage.Value,
			IsReply:  asReplies,
		}
		if len(r.Ancestors) > 0 {
			comment.Context = r.Ancestors[len(r.Ancestors)-1].Title
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

// Download retrieves raw bytes from the given URL with the site credentials.
func (c *Client) Download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := c.newRequest(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	req.Header.Del("Accept")

	resp, err := c.do(req)
	if err != nil {
		return nil, pageflat.Errorf(pageflat.EUNAVAILABLE, "download failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, pageflat.Errorf(pageflat.EUNAVAILABLE, "download failed: HTTP %d for %s", resp.StatusCode, rawURL)
	}

	return io.ReadAll(resp.Body)
}

func (c *Client) newRequest(ctx context.Context, endpoint string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, pageflat.Errorf(pageflat.EINVALID, "invalid request URL %q: %v", endpoint, err)
	}
	req.SetBasicAuth(c.email, c.token)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	return c.client.Do(req)
}

func (c *Client) getJSON(ctx context.Context, endpoint string, v any) error {
	req, err := c.newRequest(ctx, endpoint)
	if err != nil {
		return err
	}

	resp, err := c.do(req)
	if err != nil {
		return pageflat.Errorf(pageflat.EUNAVAILABLE, "request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return pageflat.Errorf(pageflat.EINTERNAL, "HTTP %d for %s", resp.StatusCode, endpoint)
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return pageflat.Errorf(pageflat.EINTERNAL, "error decoding response: %v", err)
	}
	return nil
}
