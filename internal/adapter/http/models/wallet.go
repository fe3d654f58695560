package models

type WalletResponse struct {
	MemberID      string `json:"memberId"`
	Balance       string `json:"balance"`
	LockedBalance string `json:"lockedBalance"`
	UpdatedAt     string `json:"updatedAt"`
}
