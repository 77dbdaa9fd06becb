package model

import (
	"time"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/enums"
)

// AssetRef marks a binary asset as present without carrying its bytes.
// The bytes live in object storage under a key derived from the owner
// and the asset kind; the profile document only records what exists.
type AssetRef struct {
	ContentType string `json:"contentType"`
	Size        int64  `json:"size"`
}

type FileRef struct {
	ContentType string `json:"contentType"`
	FileName    string `json:"fileName"`
	Size        int64  `json:"size"`
}

type AuthorSnapshot struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

type Money struct {
	Amount   float64        `json:"amount"`
	Currency enums.Currency `json:"currency"`
}

type CarouselItem struct {
	ID       string    `json:"id"`
	Category string    `json:"category"`
	Title    string    `json:"title"`
	Content  string    `json:"content"`
	Image    *AssetRef `json:"image,omitempty"`
}

type Course struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	LinkToVideo string         `json:"linkToVideo"`
	Tags        []string       `json:"tags"`
	Price       Money          `json:"price"`
	WebsiteLink string         `json:"websiteLink"`
	Thumbnail   *AssetRef      `json:"thumbnail,omitempty"`
	Author      AuthorSnapshot `json:"author"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

type JobDescription struct {
	ID              string                `json:"id"`
	Position        string                `json:"position"`
	WageRange       string                `json:"wageRange"`
	Location        string                `json:"location"`
	ExperienceLevel enums.ExperienceLevel `json:"experienceLevel"`
	RemoteOption    enums.RemoteOption    `json:"remoteOption"`
	Description     string                `json:"description"`
	JobDescription  string                `json:"jobDescription"`
	DatePosted      time.Time             `json:"datePosted"`
	RoleType        enums.RoleType        `json:"roleType"`
	PostActivity    bool                  `json:"postActivity"`
	Author          AuthorSnapshot        `json:"author"`
}

// Profile is the per-user aggregate document. It is persisted whole:
// every update is a read-modify-write of the entire document, so
// concurrent writers to the same profile are last-write-wins.
type Profile struct {
	UserID            int64            `json:"userId"`
	Tagline           string           `json:"tagline"`
	Industry          string           `json:"industry"`
	Location          string           `json:"location"`
	Size              string           `json:"size"`
	Bio               string           `json:"bio"`
	Phone             string           `json:"phone"`
	Email             string           `json:"email"`
	Website           string           `json:"website"`
	GitHub            string           `json:"github"`
	ActiveRole        string           `json:"activeRole"`
	PublishedRoles    map[string]bool  `json:"publishedRoles"`
	JobPostVisibility bool             `json:"jobPostVisibility"`
	Avatar            *AssetRef        `json:"avatar,omitempty"`
	Background        *AssetRef        `json:"background,omitempty"`
	CV                *FileRef         `json:"cv,omitempty"`
	Carousel          []CarouselItem   `json:"carousel"`
	Courses           []Course         `json:"courses"`
	JobDescriptions   []JobDescription `json:"jobDescriptions"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

func (p *Profile) FindCarouselItem(id string) *CarouselItem {
	for i := range p.Carousel {
		if p.Carousel[i].ID == id {
			return &p.Carousel[i]
		}
	}
	return nil
}

func (p *Profile) FindCourse(id string) *Course {
	for i := range p.Courses {
		if p.Courses[i].ID == id {
			return &p.Courses[i]
		}
	}
	return nil
}

func (p *Profile) FindJob(id string) *JobDescription {
	for i := range p.JobDescriptions {
		if p.JobDescriptions[i].ID == id {
			return &p.JobDescriptions[i]
		}
	}
	return nil
}
