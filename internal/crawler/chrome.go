package crawler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"sjsage522/wishlistwatcher/helpers"
	"sjsage522/wishlistwatcher/pkg/errors"
)

// renderScript loads the page in a headless browser and returns the settled DOM
const renderScript = `module.exports = async ({ page, context }) => {
	if (context.userAgent) {
		await page.setUserAgent(context.userAgent);
	}
	await page.goto(context.url, { waitUntil: 'networkidle2', timeout: context.timeout });
	await new Promise((resolve) => setTimeout(resolve, context.settle));
	return { data: await page.content(), type: 'text/html; charset=utf-8' };
}`

// fetchWithChromeDB renders the page through a browserless /function endpoint
func (c *WishlistCrawler) fetchWithChromeDB(ctx context.Context) (io.Reader, error) {
	return c.guard(func() (io.Reader, error) {
		timeoutMs := int64(30000)
		if c.Client != nil && c.Client.Timeout > 0 {
			timeoutMs = c.Client.Timeout.Milliseconds()
		}

		payload, err := json.Marshal(map[string]interface{}{
			"code": renderScript,
			"context": map[string]interface{}{
				"url":       c.URL,
				"userAgent": c.UserAgent,
				"timeout":   timeoutMs,
				"settle":    c.SettleDelay.Milliseconds(),
			},
		})
		if err != nil {
			return nil, errors.NewFetch(c.URL, "failed to encode render request", err)
		}

		endpoint := strings.TrimRight(c.ChromeAddr, "/") + "/function"
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, errors.NewFetch(c.URL, "failed to create render request", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.Client.Do(req)
		if err != nil {
			return nil, errors.NewFetch(c.URL, "render request failed", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, errors.NewRateLimit(c.URL, helpers.RetryAfter(resp.Header.Get("Retry-After")))
		}
		if resp.StatusCode != http.StatusOK {
			return nil, errors.NewFetch(c.URL, fmt.Sprintf("renderer returned status %d", resp.StatusCode), nil)
		}

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, errors.NewFetch(c.URL, "failed to read rendered page", err)
		}
		return helpers.ToUTF8(body, resp.Header.Get("Content-Type"))
	})
}
