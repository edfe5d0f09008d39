package messages

// Code is a stable symbolic message identifier.
type Code string

const (
	DossierAlreadyExists       Code = "DOSSIER_ALREADY_EXISTS"
	DossierNotFound            Code = "DOSSIER_NOT_FOUND"
	InvalidBirthDate           Code = "INVALID_BIRTH_DATE"
	InvalidName                Code = "INVALID_NAME"
	InvalidSalary              Code = "INVALID_SALARY"
	InvalidPartTimeFactor      Code = "INVALID_PART_TIME_FACTOR"
	DuplicatePolicy            Code = "DUPLICATE_POLICY"
	NoPolicies                 Code = "NO_POLICIES"
	NoMatchingPolicies         Code = "NO_MATCHING_POLICIES"
	NegativeSalaryClamped      Code = "NEGATIVE_SALARY_CLAMPED"
	NotEligible                Code = "NOT_ELIGIBLE"
	RetirementBeforeEmployment Code = "RETIREMENT_BEFORE_EMPLOYMENT"
	UnknownMutation            Code = "UNKNOWN_MUTATION"
	InvalidMutationProperties  Code = "INVALID_MUTATION_PROPERTIES"
)

var defaultText = map[Code]string{
	DossierAlreadyExists:       "Dossier already exists",
	DossierNotFound:            "Dossier not found",
	InvalidBirthDate:           "Invalid birth date - cannot be in the future",
	InvalidName:                "Name cannot be empty",
	InvalidSalary:              "Salary must be greater than or equal to 0",
	InvalidPartTimeFactor:      "Part time factor must be between 0 and 1",
	DuplicatePolicy:            "Policy with same scheme_id and employment_start_date already exists",
	NoPolicies:                 "No policies found in dossier",
	NoMatchingPolicies:         "No policies match the filter criteria",
	NegativeSalaryClamped:      "Salary after indexation was negative and has been clamped to 0",
	NotEligible:                "Not eligible for retirement - must be 65+ years old OR have 40+ years of service",
	RetirementBeforeEmployment: "Retirement date is before employment start date",
	UnknownMutation:            "Unknown mutation",
	InvalidMutationProperties:  "Mutation properties are invalid",
}

// Text returns the default human-readable text for c.
func (c Code) Text() string {
	if t, ok := defaultText[c]; ok {
		return t
	}
	return string(c)
}
