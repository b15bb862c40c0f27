// Package jira implements the JiraClient port against the Jira Cloud REST API.
package jira

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gregjones/httpcache"
	"github.com/gregjones/httpcache/diskcache"

	"github.com/promptutils/jirabranch/internal/domain/model"
	"github.com/promptutils/jirabranch/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.JiraClient = (*Client)(nil)

// Client implements the driven.JiraClient port over plain HTTPS with basic
// auth. Every call is a single attempt; the shell prompt re-renders soon
// enough that retries would only add latency.
type Client struct {
	httpClient *http.Client
	baseURL    string // Overrides the https://<domain>.atlassian.net base when non-empty; set by tests.
}

// NewClient creates a new Jira Cloud client with the following transport stack:
//  1. httpcache over a disk cache (conditional-request caching that survives
//     one-shot invocations)
//  2. net/http with a hard request timeout so a slow network never stalls
//     the prompt
func NewClient(cacheDir string, timeout time.Duration) *Client {
	transport := httpcache.NewTransport(diskcache.New(cacheDir))

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
	}
}

// NewClientWithBaseURL creates a Client that sends all requests to baseURL
// regardless of credential domain. This constructor is intended for testing,
// allowing injection of an httptest server.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string) (*Client, error) {
	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	return &Client{httpClient: httpClient, baseURL: baseURL}, nil
}

// issueResponse is the subset of the Jira issue payload this client reads.
type issueResponse struct {
	Key    string `json:"key"`
	Fields struct {
		Summary *string `json:"summary"`
	} `json:"fields"`
}

// tenantInfoResponse is the payload of the _edge/tenant_info endpoint.
type tenantInfoResponse struct {
	CloudID string `json:"cloudId"`
}

// FetchSummary retrieves the summary field of the given issue with a single
// GET to /rest/api/3/issue/<key>?fields=summary, authenticated with the
// credential's email and API key.
func (c *Client) FetchSummary(ctx context.Context, cred model.Credential, issueKey string) (string, error) {
	reqURL := fmt.Sprintf("%s/rest/api/3/issue/%s?fields=summary", c.siteURL(cred.Domain), url.PathEscape(issueKey))

	body, err := c.get(ctx, reqURL, cred.Email, cred.APIKey, issueKey)
	if err != nil {
		return "", err
	}

	var issue issueResponse
	if err := json.Unmarshal(body, &issue); err != nil {
		return "", fmt.Errorf("decode issue %s: %w", issueKey, driven.ErrUnexpectedResponse)
	}
	if issue.Fields.Summary == nil {
		return "", fmt.Errorf("issue %s has no summary field: %w", issueKey, driven.ErrUnexpectedResponse)
	}

	return *issue.Fields.Summary, nil
}

// LookupTenant validates the credentials against the site's tenant info
// endpoint and returns the Atlassian cloud id.
func (c *Client) LookupTenant(ctx context.Context, domain, email, apiKey string) (string, error) {
	reqURL := c.siteURL(domain) + "/_edge/tenant_info"

	body, err := c.get(ctx, reqURL, email, apiKey, domain)
	if err != nil {
		return "", err
	}

	var info tenantInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return "", fmt.Errorf("decode tenant info for %s: %w", domain, driven.ErrUnexpectedResponse)
	}
	if info.CloudID == "" {
		return "", fmt.Errorf("tenant info for %s has no cloudId: %w", domain, driven.ErrUnexpectedResponse)
	}

	return info.CloudID, nil
}

// get performs a single authenticated GET and maps HTTP status codes onto
// the port's error sentinels. subject names what was requested, for error text.
func (c *Client) get(ctx context.Context, reqURL, email, apiKey, subject string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", subject, err)
	}
	req.SetBasicAuth(email, apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", subject, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%s: %w", subject, driven.ErrAuth)
	case http.StatusNotFound:
		return nil, fmt.Errorf("%s: %w", subject, driven.ErrIssueNotFound)
	default:
		return nil, fmt.Errorf("%s: status %d: %w", subject, resp.StatusCode, driven.ErrUnexpectedResponse)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response for %s: %w", subject, err)
	}
	return body, nil
}

// siteURL returns the base URL for a Jira Cloud site, honoring the test
// override when set.
func (c *Client) siteURL(domain string) string {
	if c.baseURL != "" {
		return c.baseURL
	}
	return fmt.Sprintf("https://%s.atlassian.net", domain)
}
