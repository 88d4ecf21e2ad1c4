package api

import (
	"context"
	"net/http"
	"net/url"
)

func (c *HTTPClient) AdminUsers(ctx context.Context) ([]AdminUser, error) {
	var users []AdminUser
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *HTTPClient) AdminReports(ctx context.Context) ([]Report, error) {
	var reports []Report
	if err := c.do(ctx, http.MethodGet, "/admin/reports", nil, nil, &reports); err != nil {
		return nil, err
	}
	return reports, nil
}

func (c *HTTPClient) AdminJobs(ctx context.Context) ([]Job, error) {
	var jobs []Job
	if err := c.do(ctx, http.MethodGet, "/admin/jobs", nil, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

// AdminDeleteUser removes a user account; userType disambiguates the
// candidate and employer collections.
func (c *HTTPClient) AdminDeleteUser(ctx context.Context, id, userType string) error {
	q := url.Values{}
	q.Set("type", userType)
	return c.do(ctx, http.MethodDelete, "/admin/users/"+id, q, nil, nil)
}

func (c *HTTPClient) AdminDeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/jobs/"+id, nil, nil, nil)
}
