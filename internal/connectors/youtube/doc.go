// Package youtube implements driven.VideoProvider on the YouTube Data API v3.
//
// The package contains:
//   - Service construction from an API key or a client secret plus a
//     previously authorised token file
//   - Error mapping from googleapi.Error onto domain errors
//   - A token bucket rate limiter shared by all calls
//   - Conversion of API resources into domain.Video
//
// # Usage
//
//	svc, err := youtube.NewService(ctx, settings.YouTube)
//	provider := youtube.NewProvider(svc, youtube.NewRateLimiter(settings.YouTube.RequestsPerSecond))
//
// The provider never retries. Retrying with backoff is done by
// services.Fetcher, which classifies the mapped errors.
package youtube
