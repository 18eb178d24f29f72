// Package github pushes saved documents to a GitHub repository as labeled
// issues over the REST v3 API.
package github

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/kbtools/kb/pkg/sync"
)

const defaultBaseURL = "https://api.github.com"

// TitlePrefix marks issues created by the tool.
const TitlePrefix = "[KB-SAVE] "

// Labels applied to every created issue.
var Labels = []string{"kb-save-doc", "automated"}

// Provider implements sync.Provider against the GitHub issues API. Without a
// token it degrades to returning a prefilled new-issue URL the user submits
// by hand.
type Provider struct {
	cfg     *sync.Config
	client  *http.Client
	baseURL string
	webURL  string
}

// NewProvider creates a GitHub provider for the given configuration.
func NewProvider(cfg *sync.Config) *Provider {
	return &Provider{
		cfg:     cfg,
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultBaseURL,
		webURL:  "https://github.com",
	}
}

// Name returns the name of the provider.
func (p *Provider) Name() string {
	return "github"
}

// CreateItem creates a "[KB-SAVE] filename" issue carrying the document
// content. With no token configured, it returns a manual item whose URL
// opens GitHub's new-issue form prefilled with the same title and body.
func (p *Provider) CreateItem(ctx context.Context, filename, content, message string) (*sync.Item, error) {
	if !p.cfg.Enabled() {
		return nil, fmt.Errorf("github sync is not configured: owner and repo are required")
	}

	title := TitlePrefix + filename
	if p.cfg.Token == "" {
		return p.manualItem(title, content), nil
	}

	body, err := json.Marshal(map[string]any{
		"title":  title,
		"body":   content,
		"labels": Labels,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal issue: %w", err)
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/issues", p.baseURL, p.cfg.Owner, p.cfg.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	p.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("create issue: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		var issue struct {
			Number  int    `json:"number"`
			HTMLURL string `json:"html_url"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&issue); err != nil {
			return nil, fmt.Errorf("decode issue response: %w", err)
		}
		return &sync.Item{
			ID:        fmt.Sprintf("%d", issue.Number),
			Title:     title,
			URL:       issue.HTMLURL,
			CreatedAt: time.Now(),
		}, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		// Bad token: fall back to the manual path instead of failing the
		// push outright.
		return p.manualItem(title, content), nil
	default:
		return nil, fmt.Errorf("github api: %s", apiError(resp))
	}
}

// TestConnection checks that the configured repository is reachable and
// reports whether it is private and whether a token is in use.
func (p *Provider) TestConnection(ctx context.Context) (*sync.ConnectionInfo, error) {
	if !p.cfg.Enabled() {
		return nil, fmt.Errorf("github sync is not configured: owner and repo are required")
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s", p.baseURL, p.cfg.Owner, p.cfg.Repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	p.setHeaders(req)

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("reach github: %w", err)
	}
	defer resp.Body.Close()

	info := &sync.ConnectionInfo{HasToken: p.cfg.Token != ""}
	switch resp.StatusCode {
	case http.StatusOK:
		var repo struct {
			Private bool `json:"private"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&repo); err != nil {
			return nil, fmt.Errorf("decode repo response: %w", err)
		}
		info.Reachable = true
		info.Private = repo.Private
		if info.Private && !info.HasToken {
			info.Detail = "private repository: token required for sync"
		}
		return info, nil
	case http.StatusNotFound:
		info.Detail = "repository not found"
		return info, nil
	case http.StatusUnauthorized, http.StatusForbidden:
		info.Detail = "token rejected: manual issue creation will be used"
		return info, nil
	default:
		return nil, fmt.Errorf("github api: %s", apiError(resp))
	}
}

// manualItem builds the prefilled new-issue URL used when no usable token is
// available.
func (p *Provider) manualItem(title, content string) *sync.Item {
	values := url.Values{}
	values.Set("title", title)
	values.Set("body", content)
	values.Set("labels", "kb-save-doc,automated")
	manualURL := fmt.Sprintf("%s/%s/%s/issues/new?%s", p.webURL, p.cfg.Owner, p.cfg.Repo, values.Encode())
	return &sync.Item{
		Title:     title,
		URL:       manualURL,
		Manual:    true,
		CreatedAt: time.Now(),
	}
}

func (p *Provider) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if p.cfg.Token != "" {
		req.Header.Set("Authorization", "token "+p.cfg.Token)
	}
}

func apiError(resp *http.Response) string {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var apiErr struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
		return fmt.Sprintf("%s (%s)", apiErr.Message, resp.Status)
	}
	return resp.Status
}
