package domain

// Suggestion is a login returned by the user search used for autocomplete.
type Suggestion struct {
	Login      string `json:"login"`
	AvatarURL  string `json:"avatar_url,omitempty"`
	ProfileURL string `json:"html_url,omitempty"`
}
