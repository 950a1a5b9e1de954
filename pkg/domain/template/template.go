package template

// Category drives automatic provider selection: analytical work, policy
// drafting and procedural writing route to different providers.
type Category string

const (
	CategoryAssessment Category = "assessment"
	CategoryAudit      Category = "audit"
	CategoryPolicy     Category = "policy"
	CategoryNotice     Category = "notice"
	CategoryProcedure  Category = "procedure"
	CategoryPlan       Category = "plan"
	CategoryRegister   Category = "register"
)

type Template struct {
	Name      string   `json:"name"`
	Framework string   `json:"framework"`
	Category  Category `json:"category"`
	Outline   string   `json:"outline"`
}

var catalog = map[string][]Template{
	"gdpr": {
		{Name: "Data Protection Policy", Framework: "gdpr", Category: CategoryPolicy,
			Outline: "Draft a GDPR data protection policy covering lawful bases, data subject rights, retention and international transfers."},
		{Name: "Privacy Notice", Framework: "gdpr", Category: CategoryNotice,
			Outline: "Draft a public-facing GDPR privacy notice describing categories of data collected, purposes, recipients and retention periods."},
		{Name: "Data Breach Response Procedure", Framework: "gdpr", Category: CategoryProcedure,
			Outline: "Draft a step-by-step personal data breach response procedure including the 72-hour supervisory authority notification."},
		{Name: "Data Protection Impact Assessment", Framework: "gdpr", Category: CategoryAssessment,
			Outline: "Draft a DPIA assessing processing risks, necessity, proportionality and mitigations."},
		{Name: "Record of Processing Activities", Framework: "gdpr", Category: CategoryRegister,
			Outline: "Draft an Article 30 record of processing activities with purposes, categories and safeguards."},
	},
	"soc2": {
		{Name: "Information Security Policy", Framework: "soc2", Category: CategoryPolicy,
			Outline: "Draft an information security policy aligned with the SOC 2 trust services criteria."},
		{Name: "Access Control Procedure", Framework: "soc2", Category: CategoryProcedure,
			Outline: "Draft an access provisioning, review and revocation procedure covering least privilege and periodic recertification."},
		{Name: "Risk Assessment Report", Framework: "soc2", Category: CategoryAssessment,
			Outline: "Draft an annual risk assessment identifying threats, likelihood, impact and treatment decisions."},
		{Name: "Incident Response Plan", Framework: "soc2", Category: CategoryPlan,
			Outline: "Draft an incident response plan with severity tiers, escalation paths and post-incident review."},
		{Name: "Vendor Management Policy", Framework: "soc2", Category: CategoryPolicy,
			Outline: "Draft a third-party vendor management policy covering due diligence, contracts and ongoing monitoring."},
	},
	"iso27001": {
		{Name: "Statement of Applicability", Framework: "iso27001", Category: CategoryRegister,
			Outline: "Draft a statement of applicability mapping Annex A controls to implementation status and justification."},
		{Name: "ISMS Scope Document", Framework: "iso27001", Category: CategoryPolicy,
			Outline: "Draft an ISMS scope document defining boundaries, interfaces and dependencies."},
		{Name: "Internal Audit Programme", Framework: "iso27001", Category: CategoryAudit,
			Outline: "Draft an internal audit programme with audit criteria, frequency, methods and reporting."},
		{Name: "Business Continuity Plan", Framework: "iso27001", Category: CategoryPlan,
			Outline: "Draft a business continuity plan covering recovery objectives, roles and exercise schedules."},
	},
	"hipaa": {
		{Name: "Privacy Rule Policy", Framework: "hipaa", Category: CategoryPolicy,
			Outline: "Draft a HIPAA privacy rule policy covering permitted uses and disclosures of PHI and minimum necessary standards."},
		{Name: "Security Risk Analysis", Framework: "hipaa", Category: CategoryAssessment,
			Outline: "Draft a security risk analysis of ePHI systems per the security rule's administrative safeguards."},
		{Name: "Contingency Plan", Framework: "hipaa", Category: CategoryPlan,
			Outline: "Draft a contingency plan with data backup, disaster recovery and emergency mode operation procedures."},
		{Name: "Sanction Procedure", Framework: "hipaa", Category: CategoryProcedure,
			Outline: "Draft a workforce sanction procedure for privacy and security violations."},
	},
}

// ForFramework returns the fixed, ordered template list for a framework.
// Batch generation iterates this list sequentially.
func ForFramework(framework string) []Template {
	return catalog[framework]
}

func Frameworks() []string {
	return []string{"gdpr", "soc2", "iso27001", "hipaa"}
}

// Find looks a template up by framework and name.
func Find(framework, name string) (Template, bool) {
	for _, tmpl := range catalog[framework] {
		if tmpl.Name == name {
			return tmpl, true
		}
	}
	return Template{}, false
}
