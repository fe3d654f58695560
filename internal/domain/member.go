package domain

type MemberRole string

const (
	MemberRoleOwner  MemberRole = "OWNER"
	MemberRoleAdmin  MemberRole = "ADMIN"
	MemberRoleAgent  MemberRole = "AGENT"
	MemberRoleMember MemberRole = "MEMBER"
)

type ApprovalStatus string

const (
	ApprovalStatusPending  ApprovalStatus = "PENDING"
	ApprovalStatusApproved ApprovalStatus = "APPROVED"
	ApprovalStatusRejected ApprovalStatus = "REJECTED"
)

// Member is the directory view of an earning account holder. The member
// directory is owned by the wider platform; this service only reads it.
type Member struct {
	ID                 string
	Role               MemberRole
	ApprovalStatus     ApprovalStatus
	WithdrawPrivilege  bool
	TransactionPinHash *string
}

func (m Member) IsStaff() bool {
	return m.Role == MemberRoleOwner || m.Role == MemberRoleAdmin || m.Role == MemberRoleAgent
}
