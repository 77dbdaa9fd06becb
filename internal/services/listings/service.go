package listings

import (
	"context"
	"errors"
	"fmt"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/enums"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
	pgrepo "github.com/BorisVilhard/IT-MAXI-BE/internal/repo/postgres"
)

var (
	ErrInvalidRoleType = errors.New("invalid role type")
	ErrCourseNotFound  = errors.New("course not found")
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

type ProfileStore interface {
	ListVisible(ctx context.Context) ([]*model.Profile, error)
	ListWithCourses(ctx context.Context) ([]*model.Profile, error)
	FindByCourseID(ctx context.Context, courseID string) (*model.Profile, error)
}

type UserStore interface {
	Get(ctx context.Context, userID int64) (model.User, error)
}

// Service flattens the embedded job and course lists of all profiles
// into public, paginated listings.
type Service struct {
	profiles ProfileStore
	users    UserStore
	baseURL  string
}

func NewService(profiles ProfileStore, users UserStore, baseURL string) *Service {
	return &Service{
		profiles: profiles,
		users:    users,
		baseURL:  baseURL,
	}
}

type JobListing struct {
	model.JobDescription
	UserID            int64  `json:"userId"`
	Username          string `json:"username"`
	ProfileActiveRole string `json:"profileActiveRole"`
}

type CourseListing struct {
	model.Course
	UserID       int64   `json:"userId"`
	ThumbnailURL *string `json:"thumbnailUrl"`
}

type Page[T any] struct {
	Items       []T `json:"items"`
	Total       int `json:"total"`
	CurrentPage int `json:"currentPage"`
	TotalPages  int `json:"totalPages"`
}

// Jobs lists the postings of every profile that opted into the public
// board, newest-profile order as stored. An empty roleType lists all.
func (s *Service) Jobs(ctx context.Context, page, limit int, roleType string) (Page[JobListing], error) {
	if roleType != "" && !enums.RoleType(roleType).Valid() {
		return Page[JobListing]{}, ErrInvalidRoleType
	}

	profiles, err := s.profiles.ListVisible(ctx)
	if err != nil {
		return Page[JobListing]{}, fmt.Errorf("list visible profiles: %w", err)
	}

	var all []JobListing
	for _, profile := range profiles {
		username := s.username(ctx, profile.UserID)
		for _, job := range profile.JobDescriptions {
			if roleType != "" && string(job.RoleType) != roleType {
				continue
			}
			all = append(all, JobListing{
				JobDescription:    job,
				UserID:            profile.UserID,
				Username:          username,
				ProfileActiveRole: profile.ActiveRole,
			})
		}
	}

	return paginate(all, page, limit), nil
}

// Courses lists every profile's courses with resolved thumbnail and
// author avatar URLs.
func (s *Service) Courses(ctx context.Context, page, limit int) (Page[CourseListing], error) {
	profiles, err := s.profiles.ListWithCourses(ctx)
	if err != nil {
		return Page[CourseListing]{}, fmt.Errorf("list profiles with courses: %w", err)
	}

	var all []CourseListing
	for _, profile := range profiles {
		for _, course := range profile.Courses {
			all = append(all, s.projectCourse(profile, course))
		}
	}

	return paginate(all, page, limit), nil
}

// GetCourse resolves a single course by id across all profiles.
func (s *Service) GetCourse(ctx context.Context, courseID string) (CourseListing, error) {
	profile, err := s.profiles.FindByCourseID(ctx, courseID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return CourseListing{}, ErrCourseNotFound
		}
		return CourseListing{}, fmt.Errorf("find course owner: %w", err)
	}

	course := profile.FindCourse(courseID)
	if course == nil {
		return CourseListing{}, ErrCourseNotFound
	}

	return s.projectCourse(profile, *course), nil
}

func (s *Service) projectCourse(profile *model.Profile, course model.Course) CourseListing {
	out := CourseListing{Course: course, UserID: profile.UserID}
	version := profile.UpdatedAt.UnixMilli()

	if course.Thumbnail != nil {
		url := fmt.Sprintf("%s/profile/%d/courses/%s/thumbnail?v=%d", s.baseURL, profile.UserID, course.ID, version)
		out.ThumbnailURL = &url
	}
	if out.Author.AvatarURL == "" && profile.Avatar != nil {
		out.Author.AvatarURL = fmt.Sprintf("%s/profile/%d/avatar?v=%d", s.baseURL, profile.UserID, version)
	}
	return out
}

func (s *Service) username(ctx context.Context, userID int64) string {
	if s.users == nil {
		return ""
	}
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return ""
	}
	return user.Username
}

func paginate[T any](all []T, page, limit int) Page[T] {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}

	total := len(all)
	totalPages := (total + limit - 1) / limit

	start := (page - 1) * limit
	if start > total {
		start = total
	}
	end := start + limit
	if end > total {
		end = total
	}

	items := all[start:end]
	if items == nil {
		items = []T{}
	}

	return Page[T]{
		Items:       items,
		Total:       total,
		CurrentPage: page,
		TotalPages:  totalPages,
	}
}
