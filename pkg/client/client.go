package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-github/v72/github"
	"golang.org/x/oauth2"

	"github.com/naveenspark/gitone/pkg/domain"
)

const (
	// DefaultBaseURL is the public GitHub REST endpoint.
	DefaultBaseURL = "https://api.github.com/"

	reposPerPage   = 100
	suggestPerPage = 6
)

// Client is the GitHub API client used by the dashboard.
type Client struct {
	baseURL *url.URL
	logger  *log.Logger

	mu sync.RWMutex
	gh *github.Client
}

// New creates a new API client. An empty token sends anonymous requests.
func New(baseURL, token string, logger *log.Logger) (*Client, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("client.New: parse base url: %w", err)
	}
	if logger == nil {
		logger = log.Default()
	}
	c := &Client{baseURL: u, logger: logger}
	c.SetToken(token)
	return c, nil
}

// SetToken replaces the bearer token used for subsequent requests.
func (c *Client) SetToken(token string) {
	token = strings.TrimSpace(token)
	httpClient := &http.Client{Timeout: 30 * time.Second}
	if token != "" {
		httpClient.Transport = &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}),
			Base:   http.DefaultTransport,
		}
	}
	gh := github.NewClient(httpClient)
	gh.BaseURL = c.baseURL

	c.mu.Lock()
	c.gh = gh
	c.mu.Unlock()
}

func (c *Client) current() *github.Client {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gh
}

// FetchProfileAndRepos loads the profile and the most recently pushed
// repositories of username. Both requests run concurrently; if either fails
// the whole fetch fails. A 404 on the profile wins over any other error.
func (c *Client) FetchProfileAndRepos(ctx context.Context, username string) (*domain.Profile, []domain.Repository, error) {
	gh := c.current()
	escaped := url.PathEscape(username)
	start := time.Now()

	var (
		wg       sync.WaitGroup
		user     *github.User
		userResp *github.Response
		userErr  error
		repos    []*github.Repository
		repoResp *github.Response
		repoErr  error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		user, userResp, userErr = gh.Users.Get(ctx, escaped)
	}()
	go func() {
		defer wg.Done()
		repos, repoResp, repoErr = gh.Repositories.ListByUser(ctx, escaped, &github.RepositoryListByUserOptions{
			Sort:        "pushed",
			ListOptions: github.ListOptions{PerPage: reposPerPage},
		})
	}()
	wg.Wait()

	c.logger.Debug("fetched profile and repos", "user", username, "took", time.Since(start))

	if userErr != nil {
		if statusOf(userResp, userErr) == http.StatusNotFound {
			return nil, nil, fmt.Errorf("client.FetchProfileAndRepos: %w", ErrUserNotFound)
		}
		return nil, nil, fmt.Errorf("client.FetchProfileAndRepos: profile: %w", classify(userResp, userErr))
	}
	if repoErr != nil {
		return nil, nil, fmt.Errorf("client.FetchProfileAndRepos: repos: %w", classify(repoResp, repoErr))
	}

	profile := toProfile(user)
	out := make([]domain.Repository, 0, len(repos))
	for _, r := range repos {
		out = append(out, toRepository(r))
	}
	return &profile, out, nil
}

// SearchUsers returns up to six logins matching query.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]domain.Suggestion, error) {
	res, resp, err := c.current().Search.Users(ctx, query+" in:login", &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: suggestPerPage},
	})
	if err != nil {
		return nil, fmt.Errorf("client.SearchUsers: %w", classify(resp, err))
	}
	out := make([]domain.Suggestion, 0, len(res.Users))
	for _, u := range res.Users {
		out = append(out, domain.Suggestion{
			Login:      u.GetLogin(),
			AvatarURL:  u.GetAvatarURL(),
			ProfileURL: u.GetHTMLURL(),
		})
	}
	return out, nil
}

// LatestRelease returns the tag of the newest published release of
// owner/repo.
func (c *Client) LatestRelease(ctx context.Context, owner, repo string) (string, error) {
	rel, resp, err := c.current().Repositories.GetLatestRelease(ctx, owner, repo)
	if err != nil {
		return "", fmt.Errorf("client.LatestRelease: %w", classify(resp, err))
	}
	return rel.GetTagName(), nil
}

// classify maps a go-github failure onto APIError or NetworkError.
func classify(resp *github.Response, err error) error {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) && errResp.Response != nil {
		return &APIError{Status: errResp.Response.StatusCode, Message: messageOr(errResp.Message, errResp.Response.StatusCode)}
	}
	var rateErr *github.RateLimitError
	if errors.As(err, &rateErr) && rateErr.Response != nil {
		return &APIError{Status: rateErr.Response.StatusCode, Message: messageOr(rateErr.Message, rateErr.Response.StatusCode)}
	}
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &abuseErr) && abuseErr.Response != nil {
		return &APIError{Status: abuseErr.Response.StatusCode, Message: messageOr(abuseErr.Message, abuseErr.Response.StatusCode)}
	}
	if resp == nil || resp.Response == nil {
		return &NetworkError{Err: err}
	}
	// A response arrived but its body could not be decoded.
	return &APIError{Status: resp.StatusCode, Message: "malformed response: " + err.Error()}
}

func statusOf(resp *github.Response, err error) int {
	var apiErr *APIError
	if errors.As(classify(resp, err), &apiErr) {
		return apiErr.Status
	}
	return 0
}

func messageOr(msg string, status int) string {
	if msg != "" {
		return msg
	}
	return http.StatusText(status)
}

func toProfile(u *github.User) domain.Profile {
	return domain.Profile{
		Login:           u.GetLogin(),
		DisplayName:     u.GetName(),
		AvatarURL:       u.GetAvatarURL(),
		Location:        u.GetLocation(),
		Followers:       u.GetFollowers(),
		Following:       u.GetFollowing(),
		PublicRepoCount: u.GetPublicRepos(),
		ProfileURL:      u.GetHTMLURL(),
	}
}

func toRepository(r *github.Repository) domain.Repository {
	repo := domain.Repository{
		ID:             r.GetID(),
		Name:           r.GetName(),
		StarCount:      r.GetStargazersCount(),
		ForkCount:      r.GetForksCount(),
		OpenIssueCount: r.GetOpenIssuesCount(),
		Description:    r.GetDescription(),
		PushedAt:       r.GetPushedAt().Time,
		UpdatedAt:      r.GetUpdatedAt().Time,
		IsPrivate:      r.GetPrivate(),
		IsArchived:     r.GetArchived(),
		HTMLURL:        r.GetHTMLURL(),
	}
	if r.Language != nil {
		lang := *r.Language
		repo.PrimaryLanguage = &lang
	}
	return repo
}
