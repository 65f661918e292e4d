package intake

import "strings"

// FromForm maps the multipart text-field set onto a Submission. Attachment
// URLs are filled in by the caller after the uploads complete.
func FromForm(values map[string][]string) Submission {
	field := func(name string) *string {
		vals, ok := values[name]
		if !ok || len(vals) == 0 {
			return nil
		}
		v := vals[0]
		return &v
	}

	return Submission{
		FullName:          field("fullName"),
		Gender:            field("gender"),
		DateOfBirth:       ConvertDateFormat(field("dob")),
		Position:          field("position"),
		StartDate:         ConvertDateFormat(field("startDate")),
		WorkType:          field("workType"),
		Role:              field("role"),
		Department:        field("department"),
		MemberOf:          field("memberOf"),
		WorkPlace:         field("workPlace"),
		UnitName:          field("unitName"),
		Phone:             field("phone"),
		Email:             field("email"),
		Facebook:          field("facebook"),
		BankAccount:       field("vpBankAccount"),
		BankOwner:         field("vpBankOwner"),
		BankBranch:        field("vpBankBranch"),
		CitizenID:         field("citizenId"),
		PermanentAddress:  field("permanentAddress"),
		CurrentAddress:    field("currentAddress"),
		VehiclePlate:      field("vehiclePlate"),
		JoinInternalGroup: EncodeJoinInternalGroup(field("joinInternalGroup")),
		Confirm:           EncodeConfirm(field("confirm")),
	}
}

// ConvertDateFormat turns a DD/MM/YYYY value into YYYY-MM-DD, zero-padding
// day and month. Anything that does not split into exactly three components
// yields nil rather than an error; existing data entry tolerates malformed
// dates and they land as NULL.
func ConvertDateFormat(raw *string) *string {
	if raw == nil || *raw == "" {
		return nil
	}
	parts := strings.Split(*raw, "/")
	if len(parts) != 3 {
		return nil
	}
	normalized := parts[2] + "-" + padComponent(parts[1]) + "-" + padComponent(parts[0])
	return &normalized
}

func padComponent(v string) string {
	for len(v) < 2 {
		v = "0" + v
	}
	return v
}

// EncodeJoinInternalGroup stores 1 only for the literal "Yes" the form sends.
func EncodeJoinInternalGroup(value *string) int16 {
	if value != nil && *value == "Yes" {
		return 1
	}
	return 0
}

// EncodeConfirm stores '1' for any non-empty value, '0' otherwise. The
// column is a one-character string, not an integer; see Submission.
func EncodeConfirm(value *string) string {
	if value != nil && *value != "" {
		return "1"
	}
	return "0"
}
