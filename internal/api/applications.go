package api

import (
	"context"
	"net/http"
)

// Apply submits an application for a job with a previously uploaded resume
// and an optional cover letter. The server responds with the created record
// in status "applied".
func (c *HTTPClient) Apply(ctx context.Context, req ApplyRequest) (*Application, error) {
	var app Application
	if err := c.do(ctx, http.MethodPost, "/applications", nil, req, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// MyApplications lists the authenticated candidate's applications.
func (c *HTTPClient) MyApplications(ctx context.Context) ([]Application, error) {
	var apps []Application
	if err := c.do(ctx, http.MethodGet, "/applications/my", nil, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *HTTPClient) MyApplication(ctx context.Context, id string) (*Application, error) {
	var app Application
	if err := c.do(ctx, http.MethodGet, "/applications/my/"+id, nil, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateApplicationStatus moves an application to the given status. The
// returned record carries the server's view, which is the only one the
// client ever renders.
func (c *HTTPClient) UpdateApplicationStatus(ctx context.Context, id string, status Status) (*Application, error) {
	in := struct {
		Status Status `json:"status"`
	}{Status: status}

	var app Application
	if err := c.do(ctx, http.MethodPut, "/applications/"+id+"/status", nil, in, &app); err != nil {
		return nil, err
	}
	return &app, nil
}

// EmployerApplications lists applications to the employer's jobs for review.
func (c *HTTPClient) EmployerApplications(ctx context.Context) ([]Application, error) {
	var apps []Application
	if err := c.do(ctx, http.MethodGet, "/employer/applications", nil, nil, &apps); err != nil {
		return nil, err
	}
	return apps, nil
}

func (c *HTTPClient) EmployerApplication(ctx context.Context, id string) (*Application, error) {
	var app Application
	if err := c.do(ctx, http.MethodGet, "/employer/applications/"+id, nil, nil, &app); err != nil {
		return nil, err
	}
	return &app, nil
}
