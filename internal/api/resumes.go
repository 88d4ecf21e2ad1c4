package api

import (
	"context"
	"io"
	"net/http"
)

// UploadResume uploads a resume file as multipart form data under the
// "resume" field, matching the backend's upload middleware.
func (c *HTTPClient) UploadResume(ctx context.Context, filename string, r io.Reader) (*Resume, error) {
	var resume Resume
	if err := c.upload(ctx, "/resumes", "resume", filename, r, &resume); err != nil {
		return nil, err
	}
	return &resume, nil
}

func (c *HTTPClient) MyResumes(ctx context.Context) ([]Resume, error) {
	var resumes []Resume
	if err := c.do(ctx, http.MethodGet, "/resumes/my", nil, nil, &resumes); err != nil {
		return nil, err
	}
	return resumes, nil
}

func (c *HTTPClient) DeleteResume(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/resumes/"+id, nil, nil, nil)
}
