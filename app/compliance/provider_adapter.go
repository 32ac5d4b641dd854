package compliance

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/jeaninek74/therapycarenow-ai-sub000/app/cfg"
	"github.com/jeaninek74/therapycarenow-ai-sub000/app/database"
)

// ProviderAdapter queries a paid regulatory-intelligence provider's search
// API. The adapter is enabled purely by credential presence, checked on every
// run, so adding a key takes effect on the next run without a restart.
type ProviderAdapter struct {
	source         database.Source
	name           string
	credentialName string
	credential     func() string
	searchURL      string
	query          string
	httpClient     *http.Client
	policyRepo     database.PolicyUpdateRepository
	alerts         *AlertService
	userAgent      string
}

var _ Adapter = (*ProviderAdapter)(nil)

// providerSearchResponse is the common result envelope both providers return.
type providerSearchResponse struct {
	Results []struct {
		Title         string   `json:"title"`
		Summary       string   `json:"summary"`
		URL           string   `json:"url"`
		PublishedAt   string   `json:"published_at"`
		Jurisdictions []string `json:"jurisdictions"`
	} `json:"results"`
}

func NewProviderAdapter(source database.Source, name, credentialName string, credential func() string,
	searchURL, query string, httpClient *http.Client, policyRepo database.PolicyUpdateRepository,
	alerts *AlertService, userAgent string) *ProviderAdapter {
	return &ProviderAdapter{
		source:         source,
		name:           name,
		credentialName: credentialName,
		credential:     credential,
		searchURL:      searchURL,
		query:          query,
		httpClient:     httpClient,
		policyRepo:     policyRepo,
		alerts:         alerts,
		userAgent:      userAgent,
	}
}

func NewLexisNexisAdapter(httpClient *http.Client, policyRepo database.PolicyUpdateRepository,
	alerts *AlertService, userAgent string) *ProviderAdapter {
	return NewProviderAdapter(database.SourceLexisNexis, "LexisNexis", "LEXISNEXIS_API_KEY",
		func() string { return cfg.Get().LexisNexisAPIKey },
		"https://services.lexisnexis.com/regulatory/v1/search",
		"behavioral health compliance",
		httpClient, policyRepo, alerts, userAgent)
}

func NewComplianceAIAdapter(httpClient *http.Client, policyRepo database.PolicyUpdateRepository,
	alerts *AlertService, userAgent string) *ProviderAdapter {
	return NewProviderAdapter(database.SourceComplianceAI, "ComplianceAI", "COMPLIANCE_AI_API_KEY",
		func() string { return cfg.Get().ComplianceAIAPIKey },
		"https://api.compliance.ai/v1/documents/search",
		"mental health telehealth",
		httpClient, policyRepo, alerts, userAgent)
}

func (a *ProviderAdapter) Name() string            { return a.name }
func (a *ProviderAdapter) Source() database.Source { return a.source }
func (a *ProviderAdapter) SyncType() string        { return SyncTypeProviderSearch }

// Run searches the provider for recent regulatory items. Discovered items are
// capped at warning severity: paid sources are less triaged than the free
// government feeds.
func (a *ProviderAdapter) Run(ctx context.Context) SyncResult {
	apiKey := a.credential()
	if apiKey == "" {
		return failedResult(a.source, SyncTypeProviderSearch,
			fmt.Sprintf("missing credential: %s is not configured", a.credentialName))
	}

	results, err := a.search(ctx, apiKey)
	if err != nil {
		return failedResult(a.source, SyncTypeProviderSearch,
			fmt.Sprintf("provider search failed: %v", err))
	}

	result := SyncResult{
		Source:         a.source,
		SyncType:       SyncTypeProviderSearch,
		Status:         database.SyncStatusSuccess,
		RecordsChecked: len(results.Results),
	}

	var errMsgs []string

	for _, item := range results.Results {
		if item.URL == "" || !IsRelevant(item.Title+" "+item.Summary) {
			continue
		}

		publishedAt := time.Now().UTC()
		if item.PublishedAt != "" {
			if parsed, err := time.Parse(time.RFC3339, item.PublishedAt); err == nil {
				publishedAt = parsed.UTC()
			}
		}

		inserted, err := a.policyRepo.InsertIfNew(database.PolicyUpdate{
			Source:      a.source,
			Title:       item.Title,
			Summary:     item.Summary,
			Category:    "regulatory_intelligence",
			SourceURL:   item.URL,
			PublishedAt: publishedAt,
		})
		if err != nil {
			slog.Error("Failed to store provider result", "adapter", a.name, "url", item.URL, "error", err)
			errMsgs = append(errMsgs, fmt.Sprintf("store %s: %v", item.URL, err))
			continue
		}
		if !inserted {
			continue
		}

		result.RecordsUpdated++
		result.ChangesDetected++

		a.alerts.Create(ctx, database.Alert{
			Source:        a.source,
			Severity:      database.SeverityWarning,
			Category:      "regulatory_intelligence",
			Title:         item.Title,
			Description:   item.Summary,
			Jurisdictions: item.Jurisdictions,
			SourceURL:     item.URL,
		})
	}

	if len(errMsgs) > 0 {
		result.Status = database.SyncStatusPartial
		result.ErrorMessage = strings.Join(errMsgs, "; ")
	}

	return result
}

func (a *ProviderAdapter) search(ctx context.Context, apiKey string) (*providerSearchResponse, error) {
	searchURL := fmt.Sprintf("%s?q=%s", a.searchURL, url.QueryEscape(a.query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", a.userAgent)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	var parsed providerSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse provider response: %w", err)
	}

	return &parsed, nil
}
