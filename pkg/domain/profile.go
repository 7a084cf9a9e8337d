package domain

// Profile is the public part of a GitHub account shown on the dashboard.
type Profile struct {
	Login           string `json:"login"`
	DisplayName     string `json:"name,omitempty"`
	AvatarURL       string `json:"avatar_url"`
	Location        string `json:"location,omitempty"`
	Followers       int    `json:"followers"`
	Following       int    `json:"following"`
	PublicRepoCount int    `json:"public_repos"`
	ProfileURL      string `json:"html_url"`
}

// Name returns the display name, falling back to the login.
func (p Profile) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.Login
}
