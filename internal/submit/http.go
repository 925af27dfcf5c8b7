package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/Leganyst/calendar-scheduler/internal/booking"
)

// HTTPSubmitter шлёт заявку одним POST в обёрнутом формате.
type HTTPSubmitter struct {
	url    string
	client *http.Client
}

// При client == nil используется http.Client без таймаута.
func NewHTTPSubmitter(url string, client *http.Client) *HTTPSubmitter {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPSubmitter{url: url, client: client}
}

func (s *HTTPSubmitter) Submit(ctx context.Context, p booking.Payload) (booking.Ack, error) {
	body, err := booking.EncodeEnveloped(p)
	if err != nil {
		return booking.Ack{}, fmt.Errorf("encode booking: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return booking.Ack{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return booking.Ack{}, fmt.Errorf("%w: %v", ErrNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return booking.Ack{}, fmt.Errorf("%w: read response: %v", ErrNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return booking.Ack{}, fmt.Errorf("%w: status %d: %s", ErrNetwork, resp.StatusCode, bytes.TrimSpace(respBody))
	}

	var ack booking.Ack
	if len(bytes.TrimSpace(respBody)) == 0 {
		return ack, nil
	}
	if err := json.Unmarshal(respBody, &ack); err != nil {
		return booking.Ack{}, fmt.Errorf("decode ack: %w", err)
	}
	return ack, nil
}
