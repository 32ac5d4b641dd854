package compliance

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jeaninek74/therapycarenow-ai-sub000/app/database"
)

// FeedAdapter polls one or more public policy feeds for a single source.
type FeedAdapter struct {
	source     database.Source
	name       string
	category   string
	feedURLs   []string
	httpClient *http.Client
	parser     *Parser
	policyRepo database.PolicyUpdateRepository
	alerts     *AlertService
	userAgent  string
}

var _ Adapter = (*FeedAdapter)(nil)

var cmsFeedURLs = []string{
	"https://www.cms.gov/newsroom/rss-feeds",
	"https://www.cms.gov/about-cms/contact/newsroom/rss.xml",
}

var samhsaFeedURLs = []string{
	"https://www.samhsa.gov/rss/news.xml",
}

func NewFeedAdapter(source database.Source, name, category string, feedURLs []string,
	httpClient *http.Client, parser *Parser, policyRepo database.PolicyUpdateRepository,
	alerts *AlertService, userAgent string) *FeedAdapter {
	return &FeedAdapter{
		source:     source,
		name:       name,
		category:   category,
		feedURLs:   feedURLs,
		httpClient: httpClient,
		parser:     parser,
		policyRepo: policyRepo,
		alerts:     alerts,
		userAgent:  userAgent,
	}
}

func NewCMSFeedAdapter(httpClient *http.Client, parser *Parser,
	policyRepo database.PolicyUpdateRepository, alerts *AlertService, userAgent string) *FeedAdapter {
	return NewFeedAdapter(database.SourceCMS, "CMS", "federal_policy", cmsFeedURLs,
		httpClient, parser, policyRepo, alerts, userAgent)
}

func NewSAMHSAFeedAdapter(httpClient *http.Client, parser *Parser,
	policyRepo database.PolicyUpdateRepository, alerts *AlertService, userAgent string) *FeedAdapter {
	return NewFeedAdapter(database.SourceSAMHSA, "SAMHSA", "behavioral_health", samhsaFeedURLs,
		httpClient, parser, policyRepo, alerts, userAgent)
}

func (a *FeedAdapter) Name() string            { return a.name }
func (a *FeedAdapter) Source() database.Source { return a.source }
func (a *FeedAdapter) SyncType() string        { return SyncTypePolicyFeed }

// Run fetches every configured feed, filters items for domain relevance, and
// inserts unseen ones. A single unreachable feed degrades the run to partial;
// the remaining feeds are still processed.
func (a *FeedAdapter) Run(ctx context.Context) SyncResult {
	result := SyncResult{
		Source:   a.source,
		SyncType: SyncTypePolicyFeed,
		Status:   database.SyncStatusSuccess,
	}

	var errMsgs []string
	failedFeeds := 0

	for _, feedURL := range a.feedURLs {
		data, err := a.fetchFeed(ctx, feedURL)
		if err != nil {
			slog.Warn("Feed fetch failed", "adapter", a.name, "url", feedURL, "error", err)
			errMsgs = append(errMsgs, fmt.Sprintf("%s: %v", feedURL, err))
			failedFeeds++
			continue
		}

		items := a.parser.Run(data)
		result.RecordsChecked += len(items)

		for _, item := range items {
			if !IsRelevant(item.Title + " " + item.Description) {
				continue
			}
			if item.Link == "" {
				continue
			}

			inserted, err := a.policyRepo.InsertIfNew(database.PolicyUpdate{
				Source:      a.source,
				Title:       item.Title,
				Summary:     item.Description,
				Category:    a.category,
				SourceURL:   item.Link,
				PublishedAt: item.PublishedAt,
			})
			if err != nil {
				slog.Error("Failed to store policy update", "adapter", a.name, "url", item.Link, "error", err)
				errMsgs = append(errMsgs, fmt.Sprintf("store %s: %v", item.Link, err))
				continue
			}
			if !inserted {
				continue
			}

			result.RecordsUpdated++
			result.ChangesDetected++

			severity := ClassifySeverity(item.Title + " " + item.Description)
			if severity == database.SeverityInfo {
				continue
			}

			a.alerts.Create(ctx, database.Alert{
				Source:      a.source,
				Severity:    severity,
				Category:    a.category,
				Title:       item.Title,
				Description: item.Description,
				SourceURL:   item.Link,
			})
		}
	}

	if len(errMsgs) > 0 {
		result.ErrorMessage = strings.Join(errMsgs, "; ")
		if failedFeeds == len(a.feedURLs) {
			result.Status = database.SyncStatusFailed
		} else {
			result.Status = database.SyncStatusPartial
		}
	}

	return result
}

func (a *FeedAdapter) fetchFeed(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, nil
}
