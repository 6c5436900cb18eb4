package lever

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"jobintel-engine/internal/config"
	"jobintel-engine/internal/domain"
	"jobintel-engine/internal/hashing"
	"jobintel-engine/internal/ingest"
)

// Connector pulls postings from the public Lever postings API:
// api.lever.co/v0/postings/<slug>?mode=json
type Connector struct {
	companies []config.Company
	workers   int
	hc        *http.Client
	limiter   *ingest.HostLimiter
	baseURL   string
}

func New(companies []config.Company, workers int, timeout time.Duration, limiter *ingest.HostLimiter) *Connector {
	return &Connector{
		companies: companies,
		workers:   workers,
		hc:        &http.Client{Timeout: timeout},
		limiter:   limiter,
		baseURL:   "https://api.lever.co/v0/postings",
	}
}

func (c *Connector) Name() string { return "lever" }

type leverPosting struct {
	ID          string `json:"id"`
	Text        string `json:"text"` // title
	HostedURL   string `json:"hostedUrl"`
	CreatedAt   int64  `json:"createdAt"` // ms epoch
	Description string `json:"description"`
	Categories  struct {
		Location   string `json:"location"`
		Team       string `json:"team"`
		Commitment string `json:"commitment"`
	} `json:"categories"`
}

func (c *Connector) Fetch(ctx context.Context) (ingest.Result, error) {
	postingsCh := make(chan []domain.RawJobPosting, len(c.companies))
	workCh := make(chan config.Company)

	var wg sync.WaitGroup
	wg.Add(c.workers)

	for i := 0; i < c.workers; i++ {
		go func() {
			defer wg.Done()
			for co := range workCh {
				jobs, err := c.fetchCompany(ctx, co)
				if err != nil {
					log.Printf("[ingest:lever] company=%q slug=%q err=%v", co.Name, co.Slug, err)
					continue
				}
				if len(jobs) > 0 {
					postingsCh <- jobs
				}
			}
		}()
	}

	go func() {
		defer close(workCh)
		for _, co := range c.companies {
			select {
			case <-ctx.Done():
				return
			case workCh <- co:
			}
		}
	}()

	wg.Wait()
	close(postingsCh)

	var out []domain.RawJobPosting
	for batch := range postingsCh {
		out = append(out, batch...)
	}

	log.Printf("[ingest:lever] fetched %d postings from %d boards", len(out), len(c.companies))
	return ingest.Result{Source: "lever", Postings: out}, nil
}

func (c *Connector) fetchCompany(ctx context.Context, co config.Company) ([]domain.RawJobPosting, error) {
	apiURL := fmt.Sprintf("%s/%s?mode=json", c.baseURL, co.Slug)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", "jobintel/1.0 (+research)")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, apiURL); err != nil {
			return nil, err
		}
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lever get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("lever status %d", res.StatusCode)
	}

	var postings []leverPosting
	if err := json.NewDecoder(res.Body).Decode(&postings); err != nil {
		return nil, fmt.Errorf("lever decode: %w", err)
	}

	companyID := hashing.CompanyID(co.Name, "")
	out := make([]domain.RawJobPosting, 0, len(postings))
	for _, p := range postings {
		if p.ID == "" {
			continue
		}
		posting := domain.RawJobPosting{
			Source:         "lever",
			SourceJobID:    p.ID,
			Title:          strings.TrimSpace(p.Text),
			Description:    p.Description,
			LocationRaw:    strings.TrimSpace(p.Categories.Location),
			Department:     p.Categories.Team,
			EmploymentType: p.Categories.Commitment,
			CompanyName:    co.Name,
			CompanyID:      companyID,
			JobURL:         p.HostedURL,
		}
		if p.CreatedAt > 0 {
			t := time.UnixMilli(p.CreatedAt).UTC()
			posting.DatePosted = &t
		}
		out = append(out, posting)
	}
	return out, nil
}
