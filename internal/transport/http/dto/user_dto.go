package dto

import "github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"

type UpdateUserRequest struct {
	Username          string `json:"username"`
	Email             string `json:"email"`
	RegNumber         string `json:"regNumber"`
	RegisteredAddress string `json:"registeredAddress"`
}

type UserResponse struct {
	ID                int64               `json:"id"`
	Username          string              `json:"username"`
	Email             string              `json:"email"`
	RegNumber         string              `json:"regNumber,omitempty"`
	RegisteredAddress string              `json:"registeredAddress,omitempty"`
	Roles             []string            `json:"roles"`
	Subscription      *model.Subscription `json:"subscription,omitempty"`
}

func NewUserResponse(user model.User) UserResponse {
	return UserResponse{
		ID:                user.ID,
		Username:          user.Username,
		Email:             user.Email,
		RegNumber:         user.RegNumber,
		RegisteredAddress: user.RegisteredAddress,
		Roles:             user.Roles,
		Subscription:      user.Subscription,
	}
}
