// Package apiclient talks to the wacrm REST api on behalf of the CLI.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/mapping"
)

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized, run 'wacrm config set --token'")
	ErrBadRequest   = errors.New("bad request")
)

// APIError is a non 2xx answer from the api.
type APIError struct {
	Status  int
	Message string
	Fields  []FieldError
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e *APIError) Error() string {
	if len(e.Fields) > 0 {
		parts := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			parts[i] = f.Field + ": " + f.Message
		}
		return fmt.Sprintf("api error status=%d %s", e.Status, strings.Join(parts, ", "))
	}
	return fmt.Sprintf("api error status=%d %s", e.Status, e.Message)
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Status == http.StatusNotFound
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	case ErrBadRequest:
		return e.Status == http.StatusBadRequest
	}
	return false
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

type Option func(*Client)

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

func New(baseURL, token string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, r)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s %s failed error=%w", method, path, err)
	}
	defer res.Body.Close()

	if res.StatusCode >= 300 {
		return decodeError(res)
	}

	if out == nil || res.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from %s error=%w", path, err)
	}
	return nil
}

func decodeError(res *http.Response) error {
	apiErr := &APIError{Status: res.StatusCode, Message: http.StatusText(res.StatusCode)}

	var body struct {
		Error  string       `json:"error"`
		Errors []FieldError `json:"errors"`
	}
	b, _ := io.ReadAll(io.LimitReader(res.Body, 1<<16))
	if err := json.Unmarshal(b, &body); err == nil {
		if body.Error != "" {
			apiErr.Message = body.Error
		}
		apiErr.Fields = body.Errors
	}
	return apiErr
}

func (c *Client) ListTemplates(ctx context.Context, page, limit int) (dto.PaginatedResponse[dto.TemplateListDto], error) {
	var out dto.PaginatedResponse[dto.TemplateListDto]

	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	err := c.do(ctx, http.MethodGet, "/templates?"+q.Encode(), nil, &out)
	return out, err
}

func (c *Client) GetTemplate(ctx context.Context, id string) (dto.TemplateDto, error) {
	var out dto.TemplateDto
	err := c.do(ctx, http.MethodGet, "/templates/"+url.PathEscape(id), nil, &out)
	return out, err
}

// Variables returns the placeholder indices of the template body.
func (c *Client) Variables(ctx context.Context, id string) ([]string, error) {
	var out dto.VariablesDto
	if err := c.do(ctx, http.MethodGet, "/templates/"+url.PathEscape(id)+"/variables", nil, &out); err != nil {
		return nil, err
	}
	return out.Variables, nil
}

func (c *Client) FieldCatalog(ctx context.Context) (dto.FieldCatalog, error) {
	var out dto.FieldCatalog
	err := c.do(ctx, http.MethodGet, "/contacts/fields", nil, &out)
	return out, err
}

// SaveMapping replaces the mapping of a template. An absent mapping is sent as null.
func (c *Client) SaveMapping(ctx context.Context, templateId string, m mapping.Mapping) (mapping.Mapping, error) {
	var out dto.TemplateDto

	if err := c.do(ctx, http.MethodPut, "/templates/"+url.PathEscape(templateId)+"/mapping", dto.UpdateMappingDto{VariableMapping: m}, &out); err != nil {
		return mapping.Mapping{}, err
	}
	return out.VariableMapping, nil
}

func (c *Client) Prefill(ctx context.Context, templateId, contactId string) (dto.PrefillDto, error) {
	var out dto.PrefillDto
	err := c.do(ctx, http.MethodGet, "/templates/"+url.PathEscape(templateId)+"/prefill/"+url.PathEscape(contactId), nil, &out)
	return out, err
}
