package dto

import "github.com/BorisVilhard/IT-MAXI-BE/internal/services/profiles"

type ProfileUpdateResponse struct {
	Message string               `json:"message"`
	Profile profiles.ProfileView `json:"profile"`
}
