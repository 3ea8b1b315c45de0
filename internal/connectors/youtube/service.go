package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/custodia-labs/tssearch/internal/core/domain"
)

// NewService creates a YouTube API client from settings. An API key takes
// precedence; otherwise the client secret and token files are used.
// Extra options are appended, which tests use to point at a fake server.
func NewService(ctx context.Context, cfg domain.YouTubeSettings, extra ...option.ClientOption) (*youtube.Service, error) {
	var opts []option.ClientOption
	switch {
	case cfg.APIKey != "":
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	case cfg.ClientSecretPath != "" && cfg.TokenPath != "":
		ts, err := NewTokenSource(ctx, cfg.ClientSecretPath, cfg.TokenPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, option.WithTokenSource(ts))
	default:
		return nil, fmt.Errorf("%w: set youtube.api_key or youtube.client_secret_path and youtube.token_path",
			domain.ErrAuthRequired)
	}
	opts = append(opts, extra...)

	svc, err := youtube.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return svc, nil
}

// NewTokenSource builds a refreshing token source from an installed-app
// client secret and a token obtained earlier. Refreshed tokens are written
// back to tokenPath.
func NewTokenSource(ctx context.Context, clientSecretPath, tokenPath string) (oauth2.TokenSource, error) {
	secret, err := os.ReadFile(clientSecretPath)
	if err != nil {
		return nil, fmt.Errorf("read client secret: %w", err)
	}
	config, err := google.ConfigFromJSON(secret, youtube.YoutubeReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("%w: parse client secret: %w", domain.ErrAuthRequired, err)
	}

	token, err := readToken(tokenPath)
	if err != nil {
		return nil, err
	}

	return &persistingTokenSource{
		base: config.TokenSource(ctx, token),
		path: tokenPath,
		last: token.AccessToken,
	}, nil
}

func readToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: read token: %w", domain.ErrAuthRequired, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("%w: parse token %s: %w", domain.ErrAuthRequired, path, err)
	}
	if token.AccessToken == "" && token.RefreshToken == "" {
		return nil, fmt.Errorf("%w: token %s has no credentials", domain.ErrAuthRequired, path)
	}
	return &token, nil
}

// persistingTokenSource saves the token whenever the access token changes.
type persistingTokenSource struct {
	mu   sync.Mutex
	base oauth2.TokenSource
	path string
	last string
}

// Token implements oauth2.TokenSource.
func (p *persistingTokenSource) Token() (*oauth2.Token, error) {
	token, err := p.base.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: refresh token: %w", domain.ErrAuthRequired, err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if token.AccessToken != p.last {
		data, err := json.Marshal(token)
		if err != nil {
			return nil, fmt.Errorf("encode token: %w", err)
		}
		if err := os.WriteFile(p.path, data, 0o600); err != nil {
			return nil, fmt.Errorf("save token: %w", err)
		}
		p.last = token.AccessToken
	}
	return token, nil
}
