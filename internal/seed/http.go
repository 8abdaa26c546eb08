package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"partyconnect/internal/domain/model"
	"partyconnect/pkg/logger"
)

// Poster seeds a running instance through its HTTP API.
type Poster struct {
	baseURL string
	client  *http.Client
	log     logger.Logger
}

// NewPoster creates a poster for the given base URL, e.g.
// "http://localhost:8080".
func NewPoster(baseURL string, timeout time.Duration) *Poster {
	return &Poster{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		log:     logger.Named("seed"),
	}
}

// Post submits every catalog event to POST /events. Conflicts on already
// seeded ids are skipped so the command is safe to rerun.
func (p *Poster) Post(ctx context.Context) (int, error) {
	n := 0
	for _, ev := range Catalog() {
		created, err := p.postOne(ctx, ev)
		if err != nil {
			return n, err
		}
		if created {
			n++
		}
	}
	return n, nil
}

func (p *Poster) postOne(ctx context.Context, ev model.Event) (bool, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return false, fmt.Errorf("encode event %s: %w", ev.ID, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/events", bytes.NewReader(body))
	if err != nil {
		return false, fmt.Errorf("build request for %s: %w", ev.ID, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("post event %s: %w", ev.ID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusCreated:
		p.log.Info(ctx, "seeded event", logger.String("id", ev.ID), logger.String("title", ev.Title))
		return true, nil
	case http.StatusConflict:
		p.log.Info(ctx, "event already present; skipping", logger.String("id", ev.ID))
		return false, nil
	default:
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return false, fmt.Errorf("post event %s: status %d: %s", ev.ID, resp.StatusCode, msg)
	}
}
