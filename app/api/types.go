package api

import (
	"github.com/jeaninek74/therapycarenow-ai-sub000/app/compliance"
	"github.com/jeaninek74/therapycarenow-ai-sub000/app/database"
)

// pageSize caps every list endpoint.
const pageSize = 50

type Handler struct {
	policyRepo  database.PolicyUpdateRepository
	alertRepo   database.AlertRepository
	syncLogRepo database.SyncLogRepository
	runner      compliance.SyncRunner
}
