package model

import (
	"time"
)

type AssignmentOrigin string

const (
	OriginBuiltin AssignmentOrigin = "builtin"
	OriginCustom  AssignmentOrigin = "custom"
)

type Assignment struct {
	ID          int              `json:"id"`
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Details     []string         `json:"details"`
	Origin      AssignmentOrigin `json:"origin"`
	CreatorID   *int             `json:"createdBy,omitempty"` // Custom only
	CreatedAt   *time.Time       `json:"createdAt,omitempty"` // Custom only
}

func (a Assignment) IsCustom() bool { return a.Origin == OriginCustom }
