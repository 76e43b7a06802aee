// Package client provides an HTTP client for the selector-manager API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/selector-project/selector-manager/api/v1alpha1"
)

// Client talks to a selector-manager instance over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client. baseURL points at the API root,
// e.g. "http://localhost:8080/api/v1alpha1".
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Health checks the service health endpoint.
func (c *Client) Health(ctx context.Context) error {
	resp, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: health check returned %d", ErrServiceUnavailable, resp.StatusCode)
	}
	return nil
}

// CreateSelector creates a selector. A non-nil clientID requests a
// client-chosen ID.
func (c *Client) CreateSelector(ctx context.Context, sel v1alpha1.Selector, clientID *string) (*v1alpha1.Selector, error) {
	path := "/selectors"
	if clientID != nil && *clientID != "" {
		path += "?id=" + url.QueryEscape(*clientID)
	}
	resp, err := c.do(ctx, http.MethodPost, path, sel)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var created v1alpha1.Selector
	if err := c.decodeResponse(resp, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetSelector retrieves a selector by ID.
func (c *Client) GetSelector(ctx context.Context, id string) (*v1alpha1.Selector, error) {
	resp, err := c.do(ctx, http.MethodGet, "/selectors/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var sel v1alpha1.Selector
	if err := c.decodeResponse(resp, http.StatusOK, &sel); err != nil {
		return nil, err
	}
	return &sel, nil
}

// ListSelectorsOptions holds the optional list parameters.
type ListSelectorsOptions struct {
	Filter    string
	OrderBy   string
	PageToken string
	PageSize  int32
}

// ListSelectors lists selectors.
func (c *Client) ListSelectors(ctx context.Context, opts *ListSelectorsOptions) (*v1alpha1.SelectorList, error) {
	query := url.Values{}
	if opts != nil {
		if opts.Filter != "" {
			query.Set("filter", opts.Filter)
		}
		if opts.OrderBy != "" {
			query.Set("order_by", opts.OrderBy)
		}
		if opts.PageToken != "" {
			query.Set("page_token", opts.PageToken)
		}
		if opts.PageSize > 0 {
			query.Set("page_size", fmt.Sprintf("%d", opts.PageSize))
		}
	}
	path := "/selectors"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}

	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var list v1alpha1.SelectorList
	if err := c.decodeResponse(resp, http.StatusOK, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateSelector applies a merge-patch to a selector.
func (c *Client) UpdateSelector(ctx context.Context, id string, patch v1alpha1.Selector) (*v1alpha1.Selector, error) {
	resp, err := c.do(ctx, http.MethodPatch, "/selectors/"+url.PathEscape(id), patch)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var updated v1alpha1.Selector
	if err := c.decodeResponse(resp, http.StatusOK, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteSelector deletes a selector by ID.
func (c *Client) DeleteSelector(ctx context.Context, id string) error {
	resp, err := c.do(ctx, http.MethodDelete, "/selectors/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return c.errorFromResponse(resp)
	}
	return nil
}

// EvaluateSelector asks whether labels satisfy the stored selector.
func (c *Client) EvaluateSelector(ctx context.Context, id string, labels map[string]string) (bool, error) {
	body := v1alpha1.EvaluateRequest{Labels: labels}
	resp, err := c.do(ctx, http.MethodPost, "/selectors/"+url.PathEscape(id)+":evaluate", body)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var result v1alpha1.EvaluateResponse
	if err := c.decodeResponse(resp, http.StatusOK, &result); err != nil {
		return false, err
	}
	return result.Matched, nil
}

// EvaluateAdHoc asks whether labels satisfy an inline selector.
func (c *Client) EvaluateAdHoc(ctx context.Context, req v1alpha1.AdHocEvaluateRequest) (bool, error) {
	resp, err := c.do(ctx, http.MethodPost, "/selectors:evaluate", req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	var result v1alpha1.EvaluateResponse
	if err := c.decodeResponse(resp, http.StatusOK, &result); err != nil {
		return false, err
	}
	return result.Matched, nil
}

// MatchLabels returns the IDs of the enabled stored selectors the
// labels satisfy.
func (c *Client) MatchLabels(ctx context.Context, labels map[string]string) ([]string, error) {
	body := v1alpha1.LabelMatchRequest{Labels: labels}
	resp, err := c.do(ctx, http.MethodPost, "/labels:match", body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result v1alpha1.LabelMatchResponse
	if err := c.decodeResponse(resp, http.StatusOK, &result); err != nil {
		return nil, err
	}
	return result.MatchingSelectors, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrClientInternal, err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrClientInternal, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	return resp, nil
}

func (c *Client) decodeResponse(resp *http.Response, wantStatus int, target any) error {
	if resp.StatusCode != wantStatus {
		return c.errorFromResponse(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrClientInternal, err)
	}
	return nil
}

// errorFromResponse maps a problem response to a sentinel error with
// the server's detail attached.
func (c *Client) errorFromResponse(resp *http.Response) error {
	var problem v1alpha1.Problem
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &problem)

	apiErr := &APIError{
		Status: resp.StatusCode,
		Title:  problem.Title,
	}
	if problem.Detail != nil {
		apiErr.Detail = *problem.Detail
	}

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %v", ErrSelectorNotFound, apiErr)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %v", ErrInvalidRequest, apiErr)
	case http.StatusConflict:
		return fmt.Errorf("%w: %v", ErrAlreadyExists, apiErr)
	}
	return fmt.Errorf("%w: %v", ErrServiceUnavailable, apiErr)
}
