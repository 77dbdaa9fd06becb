package model

import "time"

type Subscription struct {
	PlanID           string     `json:"planId"`
	Role             string     `json:"role"`
	JobLimit         int        `json:"jobLimit"`
	VisibilityDays   int        `json:"visibilityDays"`
	CanTop           bool       `json:"canTop"`
	TopDays          int        `json:"topDays"`
	Status           string     `json:"status"`
	CurrentPeriodEnd *time.Time `json:"currentPeriodEnd,omitempty"`
}

type User struct {
	ID                int64         `json:"id"`
	Username          string        `json:"username"`
	Email             string        `json:"email"`
	RegNumber         string        `json:"regNumber,omitempty"`
	RegisteredAddress string        `json:"registeredAddress,omitempty"`
	Roles             []string      `json:"roles"`
	Subscription      *Subscription `json:"subscription,omitempty"`
	CreatedAt         time.Time     `json:"createdAt"`
	UpdatedAt         time.Time     `json:"updatedAt"`
}
