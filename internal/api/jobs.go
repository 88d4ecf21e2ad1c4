package api

import (
	"context"
	"net/http"
	"net/url"
)

// ListJobs fetches the public job feed, optionally filtered.
func (c *HTTPClient) ListJobs(ctx context.Context, filter JobFilter) ([]Job, error) {
	q := url.Values{}
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.JobType != "" {
		q.Set("jobType", filter.JobType)
	}
	if filter.Location != "" {
		q.Set("location", filter.Location)
	}

	var jobs []Job
	if err := c.do(ctx, http.MethodGet, "/jobs", q, nil, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *HTTPClient) GetJob(ctx context.Context, id string) (*Job, error) {
	var job Job
	if err := c.do(ctx, http.MethodGet, "/jobs/"+id, nil, nil, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

// CreateJob posts a new listing. Employer only; the server enforces it.
func (c *HTTPClient) CreateJob(ctx context.Context, job Job) (*Job, error) {
	var created Job
	if err := c.do(ctx, http.MethodPost, "/jobs", nil, job, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (c *HTTPClient) UpdateJob(ctx context.Context, id string, job Job) (*Job, error) {
	var updated Job
	if err := c.do(ctx, http.MethodPut, "/jobs/"+id, nil, job, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

func (c *HTTPClient) DeleteJob(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/jobs/"+id, nil, nil, nil)
}
