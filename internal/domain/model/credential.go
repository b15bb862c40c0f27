package model

import "time"

// Credential holds the Jira Cloud API credential for one site. Domain is the
// subdomain segment of the site URL ("acme" for acme.atlassian.net) and is
// the unique key. CloudID is the Atlassian tenant id captured when the
// credential was registered and validated.
type Credential struct {
	Domain    string
	Email     string
	APIKey    string
	CloudID   string
	UpdatedAt time.Time
}
