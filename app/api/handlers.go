package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jeaninek74/therapycarenow-ai-sub000/app/cfg"
	"github.com/jeaninek74/therapycarenow-ai-sub000/app/compliance"
	"github.com/jeaninek74/therapycarenow-ai-sub000/app/database"
)

func NewHandler(policyRepo database.PolicyUpdateRepository, alertRepo database.AlertRepository,
	syncLogRepo database.SyncLogRepository, runner compliance.SyncRunner) *Handler {
	return &Handler{
		policyRepo:  policyRepo,
		alertRepo:   alertRepo,
		syncLogRepo: syncLogRepo,
		runner:      runner,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   cfg.Get().Version,
	}

	if lastSync, err := h.syncLogRepo.LastSyncedAt(); err == nil && lastSync != nil {
		health["last_sync_at"] = lastSync.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) ListAlerts(c *gin.Context) {
	alerts, err := h.alertRepo.GetActive(pageSize)
	if err != nil {
		slog.Error("Database error", "operation", "get_active_alerts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	items := make([]gin.H, 0, len(alerts))
	for _, a := range alerts {
		item := gin.H{
			"id":          a.ID,
			"source":      a.Source,
			"severity":    a.Severity,
			"category":    a.Category,
			"title":       a.Title,
			"description": a.Description,
			"created_at":  a.CreatedAt,
		}
		if len(a.Jurisdictions) > 0 {
			item["jurisdictions"] = a.Jurisdictions
		}
		if a.SourceURL != "" {
			item["source_url"] = a.SourceURL
		}
		if a.EffectiveAt != nil {
			item["effective_at"] = a.EffectiveAt
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"alerts": items,
		"total":  len(items),
	})
}

func (h *Handler) ListSyncLogs(c *gin.Context) {
	entries, err := h.syncLogRepo.GetRecent(pageSize)
	if err != nil {
		slog.Error("Database error", "operation", "get_sync_logs", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	items := make([]gin.H, 0, len(entries))
	for _, e := range entries {
		item := gin.H{
			"id":               e.ID,
			"source":           e.Source,
			"sync_type":        e.SyncType,
			"status":           e.Status,
			"records_checked":  e.RecordsChecked,
			"records_updated":  e.RecordsUpdated,
			"changes_detected": e.ChangesDetected,
			"synced_at":        e.SyncedAt,
		}
		if e.ErrorMessage != "" {
			item["error_message"] = e.ErrorMessage
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"sync_logs": items,
		"total":     len(items),
	})
}

func (h *Handler) ListPolicyUpdates(c *gin.Context) {
	updates, err := h.policyRepo.GetRecent(pageSize)
	if err != nil {
		slog.Error("Database error", "operation", "get_policy_updates", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	items := make([]gin.H, 0, len(updates))
	for _, u := range updates {
		item := gin.H{
			"id":           u.ID,
			"source":       u.Source,
			"title":        u.Title,
			"summary":      u.Summary,
			"category":     u.Category,
			"source_url":   u.SourceURL,
			"published_at": u.PublishedAt,
			"is_read":      u.IsRead,
		}
		if u.EffectiveAt != nil {
			item["effective_at"] = u.EffectiveAt
		}
		items = append(items, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"policy_updates": items,
		"total":          len(items),
	})
}

// GetSummary aggregates alert counts, sync freshness, and per-source
// integration status for the admin dashboard. Disabled paid providers show up
// as degraded status here rather than as errors anywhere else.
func (h *Handler) GetSummary(c *gin.Context) {
	appCfg := cfg.Get()

	summary := gin.H{
		"sources": gin.H{
			"cms":          gin.H{"enabled": true},
			"samhsa":       gin.H{"enabled": true},
			"lexisnexis":   providerStatus(appCfg.LexisNexisEnabled(), "LEXISNEXIS_API_KEY"),
			"complianceai": providerStatus(appCfg.ComplianceAIEnabled(), "COMPLIANCE_AI_API_KEY"),
		},
	}

	if count, err := h.alertRepo.CountActiveBySeverity(database.SeverityCritical); err == nil {
		summary["critical_alerts"] = count
	}
	if count, err := h.alertRepo.CountActiveBySeverity(database.SeverityWarning); err == nil {
		summary["warning_alerts"] = count
	}
	if count, err := h.policyRepo.CountUnread(); err == nil {
		summary["unread_policy_updates"] = count
	}
	if lastSync, err := h.syncLogRepo.LastSyncedAt(); err == nil && lastSync != nil {
		summary["last_sync_at"] = lastSync.Format(time.RFC3339)
	}

	c.JSON(http.StatusOK, summary)
}

func providerStatus(enabled bool, credentialName string) gin.H {
	if enabled {
		return gin.H{"enabled": true}
	}
	return gin.H{
		"enabled": false,
		"reason":  "missing credential: " + credentialName,
	}
}

// TriggerSync synchronously runs the full pipeline and returns one result per
// attempted adapter.
func (h *Handler) TriggerSync(c *gin.Context) {
	results := h.runner.RunFull(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"total":   len(results),
	})
}

// MarkPolicyUpdateRead flags one policy update as reviewed; the unread count
// in the summary shrinks accordingly.
func (h *Handler) MarkPolicyUpdateRead(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing policy update id"})
		return
	}

	if err := h.policyRepo.MarkRead(id); err != nil {
		slog.Error("Database error", "operation", "mark_policy_update_read", "policy_update_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"policy_update_id": id,
	})
}

type dismissRequest struct {
	DismissedBy string `json:"dismissed_by" binding:"required"`
}

func (h *Handler) DismissAlert(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing alert id"})
		return
	}

	var req dismissRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dismissed_by is required"})
		return
	}

	if err := h.alertRepo.Dismiss(id, req.DismissedBy); err != nil {
		slog.Error("Database error", "operation", "dismiss_alert", "alert_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"alert_id": id,
	})
}
