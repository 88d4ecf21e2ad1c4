package api

import "time"

// Role selects the auth endpoint family a request is routed to.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleEmployer  Role = "employer"
)

// Status is the server-authoritative application status. The client never
// infers a transition locally; it only renders what the server returns.
type Status string

const (
	StatusApplied     Status = "applied"
	StatusReviewed    Status = "reviewed"
	StatusShortlisted Status = "shortlisted"
	StatusAccepted    Status = "accepted"
	StatusRejected    Status = "rejected"
)

// SalaryRange carries optional bounds; a zero bound means "not specified".
type SalaryRange struct {
	Min int `json:"min,omitempty"`
	Max int `json:"max,omitempty"`
}

type Job struct {
	ID          string       `json:"_id"`
	Title       string       `json:"title"`
	CompanyName string       `json:"companyName"`
	Location    string       `json:"location"`
	JobType     string       `json:"jobType"`
	Description string       `json:"description"`
	SalaryRange *SalaryRange `json:"salaryRange,omitempty"`
	EmployerID  string       `json:"employerId,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
}

// JobFilter narrows GET /jobs. Zero values are omitted from the query.
type JobFilter struct {
	Search   string
	JobType  string
	Location string
}

type Resume struct {
	ID        string    `json:"_id"`
	FileName  string    `json:"fileName"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// Application is a read-only projection; everything here comes from the
// server, including Status.
type Application struct {
	ID          string    `json:"_id"`
	Job         *Job      `json:"job,omitempty"`
	Status      Status    `json:"status"`
	CoverLetter string    `json:"coverLetter,omitempty"`
	Resume      *Resume   `json:"resume,omitempty"`
	AppliedAt   time.Time `json:"appliedAt"`
}

type ApplyRequest struct {
	JobID       string `json:"jobId"`
	ResumeID    string `json:"resumeId"`
	CoverLetter string `json:"coverLetter,omitempty"`
}

type Notification struct {
	ID        string    `json:"_id"`
	Message   string    `json:"message"`
	Read      bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// PushEvent is the single push-event class delivered over the realtime
// channel: a human-readable message plus, usually, the full notification
// record it announces.
type PushEvent struct {
	Message      string        `json:"message"`
	Notification *Notification `json:"notification,omitempty"`
}

// RegisterRequest covers both roles; CompanyName is employer-only.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"companyName,omitempty"`
}

type AdminUser struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Type      string    `json:"type"` // candidate | employer
	CreatedAt time.Time `json:"createdAt"`
}

type Report struct {
	ID         string    `json:"_id"`
	Reason     string    `json:"reason"`
	TargetType string    `json:"targetType"`
	TargetID   string    `json:"targetId"`
	CreatedAt  time.Time `json:"createdAt"`
}
