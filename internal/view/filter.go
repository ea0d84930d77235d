package view

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hashicorp/go-bexpr"

	"github.com/liyang960414/erp/pkg/sdk"
)

// auditFields exposes an audit entry to filter expressions.
func auditFields(l sdk.AuditLog) map[string]any {
	return map[string]any{
		"id":           strconv.FormatInt(l.ID, 10),
		"username":     l.Username,
		"action":       l.Action,
		"module":       l.Module,
		"resourceType": l.ResourceType,
		"resourceId":   l.ResourceID,
		"method":       l.RequestMethod,
		"uri":          l.RequestURI,
		"ip":           l.IPAddress,
		"status":       l.Status,
		"description":  l.Description,
	}
}

// FilterAuditLogs keeps the entries matching a go-bexpr expression such as
// `module == "user" and status == "FAILURE"`. An empty expression keeps everything.
// Entries the expression cannot be evaluated against are dropped.
func FilterAuditLogs(expr string, logs []sdk.AuditLog) ([]sdk.AuditLog, error) {
	if strings.TrimSpace(expr) == "" {
		return logs, nil
	}
	evaluator, err := bexpr.CreateEvaluator(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter %q: %w", expr, err)
	}

	matched := make([]sdk.AuditLog, 0, len(logs))
	for _, l := range logs {
		ok, err := evaluator.Evaluate(auditFields(l))
		if err != nil || !ok {
			continue
		}
		matched = append(matched, l)
	}
	return matched, nil
}
