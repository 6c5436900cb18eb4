package discovery

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"jobintel-engine/internal/domain"
	"jobintel-engine/internal/ingest"

	"github.com/PuerkitoBio/goquery"
)

// Prober detects which ATS backs a careers page. It first tries to read
// the board slug straight out of the URL, then falls back to scanning the
// page's anchors for greenhouse/lever board links.
type Prober struct {
	hc      *http.Client
	limiter *ingest.HostLimiter
}

func New(timeout time.Duration, limiter *ingest.HostLimiter) *Prober {
	return &Prober{
		hc:      &http.Client{Timeout: timeout},
		limiter: limiter,
	}
}

func (p *Prober) Discover(ctx context.Context, companyName, careersURL string) (*domain.DiscoveredCompany, error) {
	if ats, slug := boardFromURL(careersURL); ats != "" {
		return &domain.DiscoveredCompany{
			CompanyName:     companyName,
			CareersURL:      careersURL,
			ATSType:         ats,
			Slug:            slug,
			DiscoveryMethod: "url_pattern",
			DiscoveredAt:    time.Now().UTC(),
		}, nil
	}

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, careersURL, nil)
	req.Header.Set("User-Agent", "jobintel/1.0 (+research)")

	if p.limiter != nil {
		if err := p.limiter.WaitURL(ctx, careersURL); err != nil {
			return nil, err
		}
	}
	res, err := p.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("discovery get: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("discovery status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return nil, fmt.Errorf("discovery parse html: %w", err)
	}

	var found *domain.DiscoveredCompany
	doc.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok {
			return true
		}
		ats, slug := boardFromURL(strings.TrimSpace(href))
		if ats == "" {
			return true
		}
		found = &domain.DiscoveredCompany{
			CompanyName:     companyName,
			CompanyDomain:   hostOf(careersURL),
			CareersURL:      href,
			ATSType:         ats,
			Slug:            slug,
			DiscoveryMethod: "page_link",
			DiscoveredAt:    time.Now().UTC(),
		}
		return false
	})

	if found == nil {
		return nil, fmt.Errorf("no greenhouse/lever board link on %s", careersURL)
	}
	return found, nil
}

// boardFromURL recognizes boards.greenhouse.io/<slug>,
// boards-api variants, and jobs.lever.co/<slug>.
func boardFromURL(raw string) (ats, slug string) {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "", ""
	}
	host := strings.ToLower(u.Host)
	seg := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch {
	case host == "boards.greenhouse.io" || host == "job-boards.greenhouse.io":
		if len(seg) > 0 && seg[0] != "" && seg[0] != "embed" {
			return "greenhouse", seg[0]
		}
	case host == "boards-api.greenhouse.io":
		// /v1/boards/<slug>/...
		if len(seg) >= 3 && seg[0] == "v1" && seg[1] == "boards" {
			return "greenhouse", seg[2]
		}
	case host == "jobs.lever.co":
		if len(seg) > 0 && seg[0] != "" {
			return "lever", seg[0]
		}
	}
	return "", ""
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Host), "www.")
}
