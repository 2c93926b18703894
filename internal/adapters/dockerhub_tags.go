package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"container-os/internal/ports"
	"container-os/internal/shared"
	"container-os/internal/types"
)

const defaultHubURL = "https://hub.docker.com"
const defaultHubTimeout = 30 * time.Second
const hubPageSize = 100

// hubMaxPages bounds pagination in case a server keeps returning next links.
const hubMaxPages = 200

// DockerHubTagsAdapter lists repository tags through the Docker Hub v2 API.
type DockerHubTagsAdapter struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

func NewDockerHubTagsAdapter(baseURL string, timeoutSec int) DockerHubTagsAdapter {
	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		base = defaultHubURL
	}
	timeout := time.Duration(timeoutSec) * time.Second
	if timeout <= 0 {
		timeout = defaultHubTimeout
	}
	return DockerHubTagsAdapter{
		BaseURL:   base,
		Timeout:   timeout,
		UserAgent: "container-os/1.0",
	}
}

type hubTagPage struct {
	Next    *string     `json:"next"`
	Results []hubTagRaw `json:"results"`
}

type hubTagRaw struct {
	Name        string        `json:"name"`
	LastUpdated string        `json:"last_updated"`
	Images      []hubTagImage `json:"images"`
}

type hubTagImage struct {
	Architecture string `json:"architecture"`
	OS           string `json:"os"`
	Variant      string `json:"variant"`
	Digest       string `json:"digest"`
}

// ListTags returns every tag of repository whose name contains prefix, as
// filtered server side, following pagination.
func (a DockerHubTagsAdapter) ListTags(ctx context.Context, repository string, prefix string) ([]types.Tag, error) {
	repository = strings.Trim(strings.TrimSpace(repository), "/")
	if repository == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("repository is empty")
	}
	query := url.Values{}
	query.Set("page_size", fmt.Sprintf("%d", hubPageSize))
	if prefix != "" {
		query.Set("name", prefix)
	}
	next := fmt.Sprintf("%s/v2/repositories/%s/tags?%s", a.BaseURL, repository, query.Encode())

	client := &http.Client{Timeout: a.Timeout}
	var tags []types.Tag
	for page := 0; next != "" && page < hubMaxPages; page++ {
		payload, err := a.fetchPage(ctx, client, next)
		if err != nil {
			return nil, err
		}
		for _, raw := range payload.Results {
			tags = append(tags, convertHubTag(raw))
		}
		next = ""
		if payload.Next != nil {
			next = strings.TrimSpace(*payload.Next)
		}
	}
	return tags, nil
}

func (a DockerHubTagsAdapter) fetchPage(ctx context.Context, client *http.Client, pageURL string) (hubTagPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return hubTagPage{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create tag list request").
			WithCause(err)
	}
	req.Header.Set("Accept", "application/json")
	if a.UserAgent != "" {
		req.Header.Set("User-Agent", a.UserAgent)
	}
	resp, err := client.Do(req)
	if err != nil {
		return hubTagPage{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("tag list request failed").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusTooManyRequests {
		return hubTagPage{}, fmt.Errorf("%w: %s", types.ErrRateLimited, shared.HTTPStatusError(resp.StatusCode, pageURL))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return hubTagPage{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("tag list request failed").
			WithCause(shared.HTTPStatusErrorWithBody(resp.StatusCode, pageURL, strings.TrimSpace(string(body))))
	}
	var payload hubTagPage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return hubTagPage{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to parse tag list").
			WithCause(err)
	}
	return payload, nil
}

func convertHubTag(raw hubTagRaw) types.Tag {
	tag := types.Tag{Name: raw.Name, Digests: map[string]string{}, LastUpdated: parseTimestamp(raw.LastUpdated)}
	for _, image := range raw.Images {
		if image.OS == "" || image.Architecture == "" || image.Digest == "" {
			continue
		}
		platform := image.OS + "/" + image.Architecture
		if image.Variant != "" {
			platform += "/" + image.Variant
		}
		tag.Digests[platform] = image.Digest
	}
	return tag
}

var _ ports.TagListerPort = DockerHubTagsAdapter{}
