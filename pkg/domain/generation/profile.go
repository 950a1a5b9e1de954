package generation

import (
	"fmt"
	"strings"
)

// CompanyProfile describes the organization a document is generated for.
// Variable substitution inside templates is out of scope; the profile is
// rendered as plain context appended to the template outline.
type CompanyProfile struct {
	OrganizationID string   `json:"organization_id"`
	Name           string   `json:"name"`
	Industry       string   `json:"industry"`
	EmployeeCount  int      `json:"employee_count"`
	Jurisdictions  []string `json:"jurisdictions,omitempty"`
	DataCategories []string `json:"data_categories,omitempty"`
}

func (p CompanyProfile) Context() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Organization: %s\nIndustry: %s\nEmployees: %d\n", p.Name, p.Industry, p.EmployeeCount)
	if len(p.Jurisdictions) > 0 {
		fmt.Fprintf(&b, "Jurisdictions: %s\n", strings.Join(p.Jurisdictions, ", "))
	}
	if len(p.DataCategories) > 0 {
		fmt.Fprintf(&b, "Data processed: %s\n", strings.Join(p.DataCategories, ", "))
	}
	return b.String()
}
