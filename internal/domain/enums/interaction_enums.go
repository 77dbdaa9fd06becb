package enums

type SenderRole string

const (
	SenderRoleCompany       SenderRole = "company"
	SenderRoleRegular       SenderRole = "regular"
	SenderRoleCourseCreator SenderRole = "course_creator"
)

func (s SenderRole) Valid() bool {
	switch s {
	case SenderRoleCompany, SenderRoleRegular, SenderRoleCourseCreator:
		return true
	}
	return false
}

type InteractionStatus string

const (
	InteractionPending  InteractionStatus = "pending"
	InteractionAccepted InteractionStatus = "accepted"
	InteractionRejected InteractionStatus = "rejected"
)

func (s InteractionStatus) Valid() bool {
	switch s {
	case InteractionPending, InteractionAccepted, InteractionRejected:
		return true
	}
	return false
}
