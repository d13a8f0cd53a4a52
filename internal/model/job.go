package model

// JobPosting is the structured result of classifying a job posting page.
// The schema is fixed: the classifier must return every field, using null
// (nil pointers here) or "Unknown" when it cannot determine a value.
type JobPosting struct {
	IsValidJobPosting bool   `json:"is_valid_job_posting"`
	ValidityReason    string `json:"validity_reason"`

	JobTitle    *string `json:"job_title"`
	CompanyName *string `json:"company_name"`
	Location    *string `json:"location"`

	WorkModel           string   `json:"work_model"`
	SalaryCurrency      *string  `json:"salary_currency"`
	SalaryMin           *float64 `json:"salary_min"`
	SalaryMax           *float64 `json:"salary_max"`
	SalaryInterval      string   `json:"salary_interval"`
	EmploymentType      string   `json:"employment_type"`
	ApplicationDeadline *string  `json:"application_deadline"`
	JobURL              string   `json:"job_url"`

	// Internship / co-op timing, when the posting specifies a term.
	JobStartMonth *int `json:"job_start_month"`
	JobStartYear  *int `json:"job_start_year"`
	JobEndMonth   *int `json:"job_end_month"`
	JobEndYear    *int `json:"job_end_year"`

	RedFlags     []string `json:"red_flags"`
	QuickSummary string   `json:"quick_summary"`
	RawSnippet   string   `json:"raw_snippet"`
}

// JobSummary is the compact, move-oriented view of a classified posting
// folded into a move plan. Missing values carry the "NA" sentinel.
type JobSummary struct {
	JobTitle          string `json:"job_title"`
	MoveToDestination string `json:"move_to_destination"`
	StartMonth        string `json:"start_month"`
	EndMonth          string `json:"end_month"`
	DurationMonths    string `json:"duration_months"`
}
