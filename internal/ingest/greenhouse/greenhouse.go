package greenhouse

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"jobintel-engine/internal/config"
	"jobintel-engine/internal/domain"
	"jobintel-engine/internal/hashing"
	"jobintel-engine/internal/ingest"
)

// Connector pulls postings from the public Greenhouse board API:
// boards-api.greenhouse.io/v1/boards/<slug>/jobs?content=true
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
		baseURL:   "https://boards-api.greenhouse.io/v1/boards",
	}
}

func (c *Connector) Name() string { return "greenhouse" }

type boardResponse struct {
	Jobs []boardJob `json:"jobs"`
}

type boardJob struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	AbsoluteURL string `json:"absolute_url"`
	UpdatedAt   string `json:"updated_at"`
	Content     string `json:"content"`
	Location    struct {
		Name string `json:"name"`
	} `json:"location"`
	Departments []struct {
		Name string `json:"name"`
	} `json:"departments"`
	Metadata []struct {
		Name  string `json:"name"`
		Value any    `json:"value"`
	} `json:"metadata"`
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
					log.Printf("[ingest:greenhouse] company=%q slug=%q err=%v", co.Name, co.Slug, err)
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

	log.Printf("[ingest:greenhouse] fetched %d postings from %d boards", len(out), len(c.companies))
	return ingest.Result{Source: "greenhouse", Postings: out}, nil
}

func (c *Connector) fetchCompany(ctx context.Context, co config.Company) ([]domain.RawJobPosting, error) {
	apiURL := fmt.Sprintf("%s/%s/jobs?content=true", c.baseURL, co.Slug)

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	req.Header.Set("User-Agent", "jobintel/1.0 (+research)")

	if c.limiter != nil {
		if err := c.limiter.WaitURL(ctx, apiURL); err != nil {
			return nil, err
		}
	}
	res, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("greenhouse get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("greenhouse status %d", res.StatusCode)
	}

	var board boardResponse
	if err := json.NewDecoder(res.Body).Decode(&board); err != nil {
		return nil, fmt.Errorf("greenhouse decode: %w", err)
	}

	companyID := hashing.CompanyID(co.Name, "")
	out := make([]domain.RawJobPosting, 0, len(board.Jobs))
	for _, j := range board.Jobs {
		if j.ID == 0 {
			continue
		}
		p := domain.RawJobPosting{
			Source:      "greenhouse",
			SourceJobID: strconv.FormatInt(j.ID, 10),
			Title:       strings.TrimSpace(j.Title),
			Description: j.Content,
			LocationRaw: strings.TrimSpace(j.Location.Name),
			CompanyName: co.Name,
			CompanyID:   companyID,
			JobURL:      j.AbsoluteURL,
		}
		if len(j.Departments) > 0 {
			p.Department = j.Departments[0].Name
		}
		if v := metadataString(j.Metadata, "employment_type"); v != "" {
			p.EmploymentType = v
		}
		if t, err := time.Parse(time.RFC3339, j.UpdatedAt); err == nil {
			p.DatePosted = &t
		}
		out = append(out, p)
	}
	return out, nil
}

func metadataString(meta []struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}, key string) string {
	for _, m := range meta {
		if strings.EqualFold(m.Name, key) {
			if s, ok := m.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}
