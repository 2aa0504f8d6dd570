package handlers

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/socialdesk/socialdesk-api/internal/middleware"
	"github.com/socialdesk/socialdesk-api/internal/services"
)

// tenantScope resolves the caller's tenant. Writes a 401/403 and returns
// false when the caller has no tenant association.
func tenantScope(c *drift.Context) (uuid.UUID, bool) {
	if middleware.GetUserID(c) == uuid.Nil {
		c.Unauthorized("not authenticated")
		return uuid.Nil, false
	}
	tenantID := middleware.GetTenantID(c)
	if tenantID == nil {
		c.Forbidden("no tenant association")
		return uuid.Nil, false
	}
	return *tenantID, true
}

func pageIDParam(c *drift.Context) (uuid.UUID, bool) {
	pageID, err := uuid.Parse(c.Param("pageId"))
	if err != nil {
		c.BadRequest("invalid page id")
		return uuid.Nil, false
	}
	return pageID, true
}

// timeQuery parses an optional RFC 3339 query parameter.
func timeQuery(c *drift.Context, name string) (*time.Time, bool) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.BadRequest("invalid " + name + " timestamp, expected RFC 3339")
		return nil, false
	}
	return &t, true
}

func limitQuery(c *drift.Context) int {
	if raw := c.QueryParam("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return 0
}

func refreshQuery(c *drift.Context) bool {
	return c.QueryParam("refresh") == "true"
}

// postQuery collects the shared window/refresh parameters for post listings.
func postQuery(c *drift.Context) (services.PostQuery, bool) {
	since, ok := timeQuery(c, "since")
	if !ok {
		return services.PostQuery{}, false
	}
	until, ok := timeQuery(c, "until")
	if !ok {
		return services.PostQuery{}, false
	}
	return services.PostQuery{
		Since:   since,
		Until:   until,
		Limit:   limitQuery(c),
		Refresh: refreshQuery(c),
	}, true
}
