package client

import (
	"context"
	"errors"
	"fmt"
)

// WizardStep is one state of the four-step registration flow.
type WizardStep int

const (
	StepPersonalInfo WizardStep = iota + 1
	StepAddress
	StepDocuments
	StepVerification
)

func (s WizardStep) String() string {
	switch s {
	case StepPersonalInfo:
		return "PersonalInfo"
	case StepAddress:
		return "Address"
	case StepDocuments:
		return "Documents"
	case StepVerification:
		return "Verification"
	default:
		return fmt.Sprintf("WizardStep(%d)", int(s))
	}
}

var ErrSubmitNotReady = errors.New("wizard must be on the verification step to submit")

// StepIncompleteError reports the fields blocking a forward transition.
type StepIncompleteError struct {
	Step    WizardStep
	Missing []string
}

func (e *StepIncompleteError) Error() string {
	return fmt.Sprintf("step %s incomplete, missing: %v", e.Step, e.Missing)
}

// WizardData accumulates the form across steps. Entered values survive
// backward transitions; nothing is persisted beyond the wizard lifetime.
type WizardData struct {
	// PersonalInfo
	FullName    string
	Email       string
	Phone       string
	DateOfBirth string

	// Address
	Address    string
	City       string
	Province   string
	PostalCode string

	// Documents
	Occupation     string
	EducationLevel string

	// Verification
	MembershipType    string
	ContactPreference string
	AcceptedTerms     bool
}

// RegistrationWizard walks PersonalInfo, Address, Documents and
// Verification in order. Next is gated on the current step's required
// fields; Back always succeeds.
type RegistrationWizard struct {
	client *Client
	step   WizardStep
	data   WizardData
}

func NewRegistrationWizard(c *Client) *RegistrationWizard {
	return &RegistrationWizard{client: c, step: StepPersonalInfo}
}

func (w *RegistrationWizard) Step() WizardStep {
	return w.step
}

func (w *RegistrationWizard) Data() WizardData {
	return w.data
}

// Update merges non-empty fields into the wizard data. Any step's fields
// may be set at any time; only the current step's are validated on Next.
func (w *RegistrationWizard) Update(data WizardData) {
	merge := func(dst *string, src string) {
		if src != "" {
			*dst = src
		}
	}
	merge(&w.data.FullName, data.FullName)
	merge(&w.data.Email, data.Email)
	merge(&w.data.Phone, data.Phone)
	merge(&w.data.DateOfBirth, data.DateOfBirth)
	merge(&w.data.Address, data.Address)
	merge(&w.data.City, data.City)
	merge(&w.data.Province, data.Province)
	merge(&w.data.PostalCode, data.PostalCode)
	merge(&w.data.Occupation, data.Occupation)
	merge(&w.data.EducationLevel, data.EducationLevel)
	merge(&w.data.MembershipType, data.MembershipType)
	merge(&w.data.ContactPreference, data.ContactPreference)
	if data.AcceptedTerms {
		w.data.AcceptedTerms = true
	}
}

func (w *RegistrationWizard) missingFields() []string {
	required := func(pairs ...[2]string) []string {
		var missing []string
		for _, p := range pairs {
			if p[1] == "" {
				missing = append(missing, p[0])
			}
		}
		return missing
	}

	switch w.step {
	case StepPersonalInfo:
		return required(
			[2]string{"fullName", w.data.FullName},
			[2]string{"email", w.data.Email},
			[2]string{"phone", w.data.Phone},
			[2]string{"dateOfBirth", w.data.DateOfBirth},
		)
	case StepAddress:
		return required(
			[2]string{"address", w.data.Address},
			[2]string{"city", w.data.City},
			[2]string{"province", w.data.Province},
		)
	case StepDocuments:
		return required(
			[2]string{"occupation", w.data.Occupation},
			[2]string{"educationLevel", w.data.EducationLevel},
		)
	case StepVerification:
		missing := required([2]string{"membershipType", w.data.MembershipType})
		if !w.data.AcceptedTerms {
			missing = append(missing, "acceptedTerms")
		}
		return missing
	default:
		return nil
	}
}

// Next advances to the following step if the current step's required
// fields are filled.
func (w *RegistrationWizard) Next() error {
	if missing := w.missingFields(); len(missing) > 0 {
		return &StepIncompleteError{Step: w.step, Missing: missing}
	}
	if w.step < StepVerification {
		w.step++
	}
	return nil
}

// Back returns to the previous step. Data entered so far is preserved.
func (w *RegistrationWizard) Back() {
	if w.step > StepPersonalInfo {
		w.step--
	}
}

// Submit creates the checkout session and hands off to the provider's
// hosted checkout page. Only valid from the verification step.
func (w *RegistrationWizard) Submit(ctx context.Context) (*CheckoutResponse, error) {
	if w.step != StepVerification {
		return nil, ErrSubmitNotReady
	}
	if missing := w.missingFields(); len(missing) > 0 {
		return nil, &StepIncompleteError{Step: w.step, Missing: missing}
	}
	return w.client.CreateCheckoutSession(ctx, w.data.Email, w.data.FullName, w.data.MembershipType)
}
