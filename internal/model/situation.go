package model

import "slices"

type DossierStatus string

const (
	StatusActive  DossierStatus = "ACTIVE"
	StatusRetired DossierStatus = "RETIRED"
)

type PersonRole string

const RoleParticipant PersonRole = "PARTICIPANT"

// Situation is the case state threaded through the mutation pipeline.
// A nil Dossier is the valid "no case yet" state.
type Situation struct {
	Dossier *Dossier `json:"dossier"`
}

// WithDossier returns a situation holding d. The receiver is left untouched.
func (s Situation) WithDossier(d *Dossier) Situation {
	return Situation{Dossier: d}
}

// Dossier values are never modified after construction; every change goes
// through one of the With* methods which build a new value.
type Dossier struct {
	DossierID      string        `json:"dossier_id"`
	Status         DossierStatus `json:"status"`
	RetirementDate *string       `json:"retirement_date"`
	Persons        []Person      `json:"persons"`
	Policies       []Policy      `json:"policies"`
}

func (d *Dossier) clone() *Dossier {
	c := *d
	return &c
}

func (d *Dossier) WithStatus(status DossierStatus) *Dossier {
	c := d.clone()
	c.Status = status
	return c
}

// WithRetirement records the retirement date and moves the dossier to RETIRED.
func (d *Dossier) WithRetirement(date string) *Dossier {
	c := d.clone()
	c.Status = StatusRetired
	c.RetirementDate = &date
	return c
}

// AddPolicy appends p to a fresh copy of the policy sequence.
func (d *Dossier) AddPolicy(p Policy) *Dossier {
	c := d.clone()
	policies := make([]Policy, 0, len(d.Policies)+1)
	policies = append(policies, d.Policies...)
	c.Policies = append(policies, p)
	return c
}

// WithPolicies replaces the whole policy sequence. The slice is copied so the
// caller may keep using its own.
func (d *Dossier) WithPolicies(policies []Policy) *Dossier {
	c := d.clone()
	c.Policies = slices.Clone(policies)
	if c.Policies == nil {
		c.Policies = []Policy{}
	}
	return c
}

// Participant returns the first person with the PARTICIPANT role.
func (d *Dossier) Participant() (Person, bool) {
	for _, p := range d.Persons {
		if p.Role == RoleParticipant {
			return p, true
		}
	}
	return Person{}, false
}

type Person struct {
	PersonID  string     `json:"person_id"`
	Role      PersonRole `json:"role"`
	Name      string     `json:"name"`
	BirthDate string     `json:"birth_date"`
}

type Policy struct {
	PolicyID            string       `json:"policy_id"`
	SchemeID            string       `json:"scheme_id"`
	EmploymentStartDate string       `json:"employment_start_date"`
	Salary              float64      `json:"salary"`
	PartTimeFactor      float64      `json:"part_time_factor"`
	AttainablePension   *float64     `json:"attainable_pension"`
	Projections         []Projection `json:"projections"`
}

func (p Policy) WithSalary(salary float64) Policy {
	p.Salary = salary
	return p
}

func (p Policy) WithAttainablePension(pension float64) Policy {
	p.AttainablePension = &pension
	return p
}

// Projection is part of the wire format only; no processor fills it.
type Projection struct {
	Date             string  `json:"date"`
	ProjectedPension float64 `json:"projected_pension"`
}

// NewDossier returns an ACTIVE dossier holding a single participant and no
// policies.
func NewDossier(dossierID string, participant Person) *Dossier {
	return &Dossier{
		DossierID: dossierID,
		Status:    StatusActive,
		Persons:   []Person{participant},
		Policies:  []Policy{},
	}
}
