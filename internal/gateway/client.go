package gateway

import (
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// Client forwards validated requests to the backend server and relays the
// response untouched.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zerolog.Logger
}

func NewClient(baseURL string, logger *zerolog.Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		logger:     logger,
	}
}

func (c *Client) Forward(w http.ResponseWriter, r *http.Request) {
	target := c.baseURL + r.URL.RequestURI()

	req, err := http.NewRequestWithContext(r.Context(), r.Method, target, r.Body)
	if err != nil {
		c.logger.Error().Err(err).Str("target", target).Msg("failed to build upstream request")
		writeError(w, http.StatusBadGateway, "upstream unavailable")
		return
	}
	req.Header = r.Header.Clone()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error().Err(err).Str("target", target).Msg("upstream request failed")
		writeError(w, http.StatusBadGateway, "upstream unavailable")
		return
	}
	defer resp.Body.Close()

	for key, values := range resp.Header {
		for _, v := range values {
			w.Header().Add(key, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		c.logger.Warn().Err(err).Msg("failed to relay upstream body")
	}
}
