package profiles

import (
	"fmt"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
)

// ProfileView is the wire projection of a profile: the stored document
// plus computed asset URLs. Image URLs carry the update timestamp as a
// cache-busting query so a replaced image is fetched fresh.
type ProfileView struct {
	model.Profile
	Username        string         `json:"username"`
	AvatarURL       *string        `json:"avatarUrl"`
	BackgroundURL   *string        `json:"backgroundUrl"`
	CVURL           *string        `json:"cvUrl"`
	CVFileName      *string        `json:"cvFileName"`
	Carousel        []CarouselView `json:"carousel"`
	Courses         []CourseView   `json:"courses"`
	JobDescriptions []model.JobDescription `json:"jobDescriptions"`
}

type CarouselView struct {
	model.CarouselItem
	ImageURL *string `json:"imageUrl"`
}

type CourseView struct {
	model.Course
	ThumbnailURL *string `json:"thumbnailUrl"`
}

func (s *Service) project(profile *model.Profile, username string) ProfileView {
	userID := profile.UserID
	version := profile.UpdatedAt.UnixMilli()
	base := fmt.Sprintf("%s/profile/%d", s.baseURL, userID)

	view := ProfileView{
		Profile:         *profile,
		Username:        username,
		Carousel:        make([]CarouselView, 0, len(profile.Carousel)),
		Courses:         make([]CourseView, 0, len(profile.Courses)),
		JobDescriptions: profile.JobDescriptions,
	}
	if view.JobDescriptions == nil {
		view.JobDescriptions = []model.JobDescription{}
	}

	if profile.Avatar != nil {
		view.AvatarURL = strPtr(fmt.Sprintf("%s/avatar?v=%d", base, version))
	}
	if profile.Background != nil {
		view.BackgroundURL = strPtr(fmt.Sprintf("%s/background?v=%d", base, version))
	}
	if profile.CV != nil {
		view.CVURL = strPtr(base + "/cv")
		view.CVFileName = strPtr(profile.CV.FileName)
	}

	for _, item := range profile.Carousel {
		cv := CarouselView{CarouselItem: item}
		if item.Image != nil {
			cv.ImageURL = strPtr(fmt.Sprintf("%s/carousel/%s/image?v=%d", base, item.ID, version))
		}
		view.Carousel = append(view.Carousel, cv)
	}
	for _, course := range profile.Courses {
		cw := CourseView{Course: course}
		if course.Thumbnail != nil {
			cw.ThumbnailURL = strPtr(fmt.Sprintf("%s/courses/%s/thumbnail?v=%d", base, course.ID, version))
		}
		view.Courses = append(view.Courses, cw)
	}

	return view
}

func strPtr(s string) *string {
	return &s
}
