package models

import (
	"errors"
	"strings"
)

type ResolveRequest struct {
	Action    string `json:"action"`
	AdminNote string `json:"adminNote,omitempty"`
}

func (r ResolveRequest) Validate() error {
	action := strings.ToUpper(strings.TrimSpace(r.Action))
	if action != "APPROVE" && action != "REJECT" {
		return errors.New("action must be one of APPROVE, REJECT")
	}

	return nil
}

func (r ResolveRequest) IsApprove() bool {
	return strings.ToUpper(strings.TrimSpace(r.Action)) == "APPROVE"
}
