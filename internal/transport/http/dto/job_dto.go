package dto

import (
	"time"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/services/profiles"
)

type JobRequest struct {
	Position        string    `json:"position"`
	WageRange       string    `json:"wageRange"`
	Location        string    `json:"location"`
	ExperienceLevel string    `json:"experienceLevel"`
	RemoteOption    string    `json:"remoteOption"`
	Description     string    `json:"description"`
	JobDescription  string    `json:"jobDescription"`
	DatePosted      time.Time `json:"datePosted"`
	RoleType        string    `json:"roleType"`
	PostActivity    *bool     `json:"postActivity"`
}

func (r JobRequest) Input() profiles.JobInput {
	return profiles.JobInput{
		Position:        r.Position,
		WageRange:       r.WageRange,
		Location:        r.Location,
		ExperienceLevel: r.ExperienceLevel,
		RemoteOption:    r.RemoteOption,
		Description:     r.Description,
		JobDescription:  r.JobDescription,
		DatePosted:      r.DatePosted,
		RoleType:        r.RoleType,
		PostActivity:    r.PostActivity,
	}
}

type JobResponse struct {
	Message string               `json:"message"`
	Job     model.JobDescription `json:"job"`
}
