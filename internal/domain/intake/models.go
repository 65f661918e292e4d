package intake

// Submission holds one onboarding form payload as it will be persisted.
// Text fields are pointers so that a field absent from the form inserts as
// NULL while a present-but-empty field inserts as an empty string, matching
// what the production table already contains.
type Submission struct {
	FullName         *string
	Gender           *string
	DateOfBirth      *string // normalized YYYY-MM-DD, nil when absent or malformed
	Position         *string
	StartDate        *string // normalized YYYY-MM-DD
	WorkType         *string
	Role             *string
	Department       *string
	MemberOf         *string
	WorkPlace        *string
	UnitName         *string
	Phone            *string
	Email            *string
	Facebook         *string
	BankAccount      *string
	BankOwner        *string
	BankBranch       *string
	CitizenID        *string
	PermanentAddress *string
	CurrentAddress   *string
	VehiclePlate     *string

	// Durable CDN URLs, nil when the corresponding attachment was not sent.
	StaffPhotoURL   *string
	CitizenFrontURL *string
	CitizenBackURL  *string

	// The schema stores these two flags with different encodings: an integer
	// column and a one-character string column. Both are kept as-is; unifying
	// them would be a schema change this service has no authority over.
	JoinInternalGroup int16
	Confirm           string
}
