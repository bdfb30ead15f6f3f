package types

import "time"

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type PreferencesResponse struct {
	PreferredRole     string `json:"preferred_role"`
	PreferredLocation string `json:"preferred_location"`
	EmailAlerts       bool   `json:"email_alerts"`
}

type JobResponse struct {
	ID       uint     `json:"id"`
	Source   string   `json:"source"`
	Title    string   `json:"title"`
	Company  string   `json:"company"`
	Location string   `json:"location"`
	JobType  string   `json:"job_type"`
	Salary   string   `json:"salary"`
	Posted   string   `json:"posted"`
	Summary  string   `json:"summary"`
	Benefits []string `json:"benefits"`
	Link     string   `json:"link"`
}

type SavedJobResponse struct {
	JobResponse
	SavedAt time.Time `json:"saved_at"`
}
