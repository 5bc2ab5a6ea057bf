// Package verify looks customers and recharges up in the upstream recharge
// API and classifies every lookup into found, not-found or timeout.
package verify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/yosoybienestar/chat-bienestar/backend/internal/metrics"
	modelverify "github.com/yosoybienestar/chat-bienestar/backend/internal/model/verify"
)

// Outcome classifies a lookup against the recharge API.
type Outcome int

const (
	// OutcomeNotFound covers empty results and every non-timeout failure:
	// the dialog degrades those to "not a customer" instead of crashing.
	OutcomeNotFound Outcome = iota
	OutcomeFound
	OutcomeTimeout
)

func (o Outcome) String() string {
	switch o {
	case OutcomeFound:
		return "found"
	case OutcomeTimeout:
		return "timeout"
	default:
		return "not_found"
	}
}

const (
	DefaultBaseURL = "https://recargasyventassims.yosoybienestar.com/YSB"
	DefaultTimeout = 60 * time.Second
)

// Client performs the two read-only lookups the dialog needs. It is stateless
// and safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient builds a client for the given API base URL. The timeout covers
// the whole request, body read included.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// CustomerByPhone resolves a 10-digit MSISDN to a customer record. The
// upstream usually answers with an array but a bare object is tolerated.
func (c *Client) CustomerByPhone(ctx context.Context, msisdn string) (modelverify.Customer, Outcome) {
	var raw json.RawMessage
	outcome := c.get(ctx, fmt.Sprintf("%s/sim/%s/msisdn", c.baseURL, url.PathEscape(msisdn)), &raw)
	if outcome != OutcomeFound {
		return modelverify.Customer{}, outcome
	}

	body := bytes.TrimSpace(raw)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return modelverify.Customer{}, OutcomeNotFound
	}

	if body[0] == '[' {
		var records []modelverify.Customer
		if err := json.Unmarshal(body, &records); err != nil || len(records) == 0 {
			return modelverify.Customer{}, OutcomeNotFound
		}
		return records[0], OutcomeFound
	}

	var record modelverify.Customer
	if err := json.Unmarshal(body, &record); err != nil {
		return modelverify.Customer{}, OutcomeNotFound
	}
	return record, OutcomeFound
}

// PaymentByReference resolves a recharge reference to its transaction
// envelope. Whether the envelope reports success is the caller's call: the
// success code semantics belong to the dialog, not the transport.
func (c *Client) PaymentByReference(ctx context.Context, reference string) (modelverify.Transaction, Outcome) {
	var tx modelverify.Transaction
	outcome := c.get(ctx, fmt.Sprintf("%s/payment/%s", c.baseURL, url.PathEscape(reference)), &tx)
	if outcome != OutcomeFound {
		return modelverify.Transaction{}, outcome
	}
	return tx, OutcomeFound
}

// get issues the GET and folds every failure mode into an Outcome. Only
// timeouts keep their identity; anything else degrades to not-found so a
// flaky upstream cannot take a conversation down.
func (c *Client) get(ctx context.Context, rawURL string, into any) (outcome Outcome) {
	defer func() {
		metrics.VerifyRequests.WithLabelValues(outcome.String()).Inc()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		log.Warn().Err(err).Str("component", "verify").Msg("building recharge api request failed")
		return OutcomeNotFound
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		if isTimeout(err) {
			log.Error().Err(err).Str("component", "verify").Msg("recharge api request timed out")
			return OutcomeTimeout
		}
		log.Warn().Err(err).Str("component", "verify").Msg("recharge api request failed")
		return OutcomeNotFound
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Str("component", "verify").Msg("recharge api returned non-200")
		return OutcomeNotFound
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			log.Error().Err(err).Str("component", "verify").Msg("recharge api body read timed out")
			return OutcomeTimeout
		}
		log.Warn().Err(err).Str("component", "verify").Msg("reading recharge api response failed")
		return OutcomeNotFound
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return OutcomeNotFound
	}

	if err := json.Unmarshal(body, into); err != nil {
		log.Warn().Err(err).Str("component", "verify").Msg("decoding recharge api response failed")
		return OutcomeNotFound
	}
	return OutcomeFound
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
