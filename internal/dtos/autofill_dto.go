package dtos

type AutofillParseRequest struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

// AutofillResult is what the extractor hands back before an application
// row is created from it.
type AutofillResult struct {
	CompanyName string `json:"company_name"`
	RoleTitle   string `json:"role_title"`
	Location    string `json:"location,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Success     bool   `json:"success"`
	Message     string `json:"message"`
}
