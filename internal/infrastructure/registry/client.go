// Package registry fetches the protocol's public reference data: the list
// of known trade groups and the token metadata cache. Both are plain JSON
// documents served from object storage; responses are cached with a short
// TTL so repeated searches do not hammer the bucket. The engine itself still
// sees an immutable snapshot per request.
package registry

import (
	"context"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// httpFetcher is the shared fasthttp plumbing for the registry clients.
type httpFetcher struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

func newHTTPFetcher(timeout time.Duration, logger *zap.Logger) httpFetcher {
	return httpFetcher{
		client:  &fasthttp.Client{},
		timeout: timeout,
		logger:  logger,
	}
}

func (f httpFetcher) fetch(ctx context.Context, url string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		if err := f.client.DoDeadline(req, resp, deadline); err != nil {
			return nil, errors.Wrapf(err, "failed to execute request to %s", url)
		}
	} else {
		if err := f.client.DoTimeout(req, resp, f.timeout); err != nil {
			return nil, errors.Wrapf(err, "failed to execute request to %s with default timeout", url)
		}
	}

	if resp.StatusCode() != fasthttp.StatusOK {
		f.logger.Error("Registry request failed",
			zap.String("url", url),
			zap.Int("statusCode", resp.StatusCode()))
		return nil, errors.Errorf("request to %s failed with status %d", url, resp.StatusCode())
	}

	// The response body is pooled by fasthttp; copy it out before release.
	body := make([]byte, len(resp.Body()))
	copy(body, resp.Body())
	return body, nil
}
