package profiles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/enums"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
	"github.com/BorisVilhard/IT-MAXI-BE/internal/services/assets"
)

// FileMarkerNew is the sentinel a list item carries in its src or
// thumbnail field to claim the next uploaded file in its bucket.
const FileMarkerNew = "new_file"

type FileUpload struct {
	Data        []byte
	ContentType string
	FileName    string
}

type Files struct {
	Avatar           *FileUpload
	Background       *FileUpload
	CV               *FileUpload
	CarouselImages   []FileUpload
	CourseThumbnails []FileUpload
}

type CarouselInput struct {
	ID       string `json:"id"`
	Category string `json:"category"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Src      string `json:"src"`
}

type AuthorInput struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatarUrl"`
}

type CourseInput struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	URL           string       `json:"url"`
	Tags          []string     `json:"tags"`
	PriceAmount   float64      `json:"priceAmount"`
	PriceCurrency string       `json:"priceCurrency"`
	WebsiteLink   string       `json:"websiteLink"`
	Thumbnail     string       `json:"thumbnail"`
	Author        *AuthorInput `json:"author"`
}

type JobInput struct {
	ID              string       `json:"id"`
	Position        string       `json:"position"`
	WageRange       string       `json:"wageRange"`
	Location        string       `json:"location"`
	ExperienceLevel string       `json:"experienceLevel"`
	RemoteOption    string       `json:"remoteOption"`
	Description     string       `json:"description"`
	JobDescription  string       `json:"jobDescription"`
	DatePosted      time.Time    `json:"datePosted"`
	RoleType        string       `json:"roleType"`
	PostActivity    *bool        `json:"postActivity"`
	Author          *AuthorInput `json:"author"`
}

// UpdateInput is one multipart create-or-update request, parsed.
// ProfileData keeps raw JSON values so an explicit null (clear the
// field) stays distinguishable from an absent key (keep the field).
// Courses are only touched when the request carried the field; the
// carousel is always replaced with whatever came in, an absent field
// meaning an empty list.
type UpdateInput struct {
	ProfileData     map[string]json.RawMessage
	Carousel        []CarouselInput
	Courses         []CourseInput
	CoursesProvided bool
	JobDescriptions []JobInput
	Files           Files
}

type assetWrite struct {
	key  assets.Key
	file processedFile
}

// Apply reconciles one partial update against the stored aggregate and
// persists the result. All uploaded images go through the pipeline
// before anything is written; a single undecodable file aborts the
// whole update. The returned bool reports whether the profile was
// created by this call.
func (s *Service) Apply(ctx context.Context, userID int64, in UpdateInput) (ProfileView, bool, error) {
	user, err := s.lookupUser(ctx, userID)
	if err != nil {
		return ProfileView{}, false, err
	}

	profile, created, err := s.loadOrInit(ctx, userID)
	if err != nil {
		return ProfileView{}, false, err
	}

	avatar, err := s.processImage(in.Files.Avatar)
	if err != nil {
		return ProfileView{}, false, err
	}
	background, err := s.processImage(in.Files.Background)
	if err != nil {
		return ProfileView{}, false, err
	}
	carouselFiles, err := s.processImages(in.Files.CarouselImages)
	if err != nil {
		return ProfileView{}, false, err
	}
	thumbnailFiles, err := s.processImages(in.Files.CourseThumbnails)
	if err != nil {
		return ProfileView{}, false, err
	}

	if err := applyProfileData(profile, in.ProfileData); err != nil {
		return ProfileView{}, false, err
	}

	var writes []assetWrite
	var removals []assets.Key
	avatarChanged := false

	switch {
	case avatar != nil:
		writes = append(writes, assetWrite{key: assets.AvatarKey(userID), file: *avatar})
		profile.Avatar = &model.AssetRef{ContentType: avatar.contentType, Size: int64(len(avatar.data))}
		avatarChanged = true
	case boolFlag(in.ProfileData, "removeAvatar"):
		removals = append(removals, assets.AvatarKey(userID))
		profile.Avatar = nil
		avatarChanged = true
	}

	switch {
	case background != nil:
		writes = append(writes, assetWrite{key: assets.BackgroundKey(userID), file: *background})
		profile.Background = &model.AssetRef{ContentType: background.contentType, Size: int64(len(background.data))}
	case boolFlag(in.ProfileData, "removeBackground"):
		removals = append(removals, assets.BackgroundKey(userID))
		profile.Background = nil
	}

	switch {
	case in.Files.CV != nil:
		cv := in.Files.CV
		writes = append(writes, assetWrite{
			key:  assets.CVKey(userID),
			file: processedFile{data: cv.Data, contentType: cv.ContentType},
		})
		profile.CV = &model.FileRef{ContentType: cv.ContentType, FileName: cv.FileName, Size: int64(len(cv.Data))}
	case nullFlag(in.ProfileData, "cvUrl"):
		removals = append(removals, assets.CVKey(userID))
		profile.CV = nil
	}

	now := s.now()
	defaultAuthor := model.AuthorSnapshot{
		ID:        userID,
		Username:  user.Username,
		AvatarURL: s.avatarURL(profile),
	}

	s.reconcileCarousel(profile, in.Carousel, carouselFiles, &writes, &removals)
	if in.CoursesProvided {
		s.reconcileCourses(profile, in.Courses, thumbnailFiles, defaultAuthor, now, &writes, &removals)
	}
	s.reconcileJobs(profile, in.JobDescriptions, defaultAuthor, now)

	if avatarChanged {
		RefreshAuthorSnapshots(profile, user.Username, s.avatarURL(profile))
	}

	for _, key := range removals {
		if err := s.assets.Remove(ctx, key); err != nil {
			return ProfileView{}, false, fmt.Errorf("remove asset %s: %w", key.CacheKey(), err)
		}
	}
	for _, w := range writes {
		if err := s.assets.Put(ctx, w.key, w.file.data, w.file.contentType); err != nil {
			return ProfileView{}, false, fmt.Errorf("store asset %s: %w", w.key.CacheKey(), err)
		}
	}

	profile.UpdatedAt = now
	if err := s.profiles.Save(ctx, profile); err != nil {
		return ProfileView{}, false, fmt.Errorf("save profile: %w", err)
	}

	return s.project(profile, user.Username), created, nil
}

func (s *Service) reconcileCarousel(profile *model.Profile, incoming []CarouselInput, files []processedFile, writes *[]assetWrite, removals *[]assets.Key) {
	userID := profile.UserID
	cursor := &fileCursor{files: files}

	next := reconcileList(incoming, profile.Carousel, listOptions[CarouselInput, model.CarouselItem]{
		incomingID: func(in CarouselInput) string { return in.ID },
		existingID: func(item model.CarouselItem) string { return item.ID },
		merge: func(in CarouselInput, prev *model.CarouselItem) model.CarouselItem {
			item := model.CarouselItem{ID: s.newID(), Category: in.Category, Title: in.Title, Content: in.Content}
			if prev != nil {
				item.ID = prev.ID
				item.Category = fallback(in.Category, prev.Category)
				item.Title = fallback(in.Title, prev.Title)
				item.Content = fallback(in.Content, prev.Content)
				item.Image = prev.Image
			}
			if in.Src == FileMarkerNew {
				if f, ok := cursor.take(); ok {
					*writes = append(*writes, assetWrite{key: assets.CarouselKey(userID, item.ID), file: f})
					item.Image = &model.AssetRef{ContentType: f.contentType, Size: int64(len(f.data))}
				}
			}
			return item
		},
	})

	for _, old := range profile.Carousel {
		if old.Image == nil {
			continue
		}
		kept := false
		for _, item := range next {
			if item.ID == old.ID {
				kept = true
				break
			}
		}
		if !kept {
			*removals = append(*removals, assets.CarouselKey(userID, old.ID))
		}
	}

	profile.Carousel = next
}

func (s *Service) reconcileCourses(profile *model.Profile, incoming []CourseInput, files []processedFile, author model.AuthorSnapshot, now time.Time, writes *[]assetWrite, removals *[]assets.Key) {
	userID := profile.UserID
	cursor := &fileCursor{files: files}

	next := reconcileList(incoming, profile.Courses, listOptions[CourseInput, model.Course]{
		incomingID: func(in CourseInput) string { return in.ID },
		existingID: func(c model.Course) string { return c.ID },
		merge: func(in CourseInput, prev *model.Course) model.Course {
			course := model.Course{
				ID:          s.newID(),
				Title:       in.Title,
				Description: in.Description,
				LinkToVideo: in.URL,
				Tags:        in.Tags,
				WebsiteLink: in.WebsiteLink,
				Price:       coursePrice(in, prev),
				Author:      author,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if prev != nil {
				course.ID = prev.ID
				course.Title = fallback(in.Title, prev.Title)
				course.Description = fallback(in.Description, prev.Description)
				course.LinkToVideo = fallback(in.URL, prev.LinkToVideo)
				course.WebsiteLink = fallback(in.WebsiteLink, prev.WebsiteLink)
				if len(in.Tags) == 0 {
					course.Tags = prev.Tags
				}
				course.Thumbnail = prev.Thumbnail
				course.CreatedAt = prev.CreatedAt
			}
			if in.Author != nil {
				course.Author.Username = fallback(in.Author.Username, course.Author.Username)
				course.Author.AvatarURL = fallback(in.Author.AvatarURL, course.Author.AvatarURL)
			}
			if in.Thumbnail == FileMarkerNew {
				if f, ok := cursor.take(); ok {
					*writes = append(*writes, assetWrite{key: assets.ThumbnailKey(userID, course.ID), file: f})
					course.Thumbnail = &model.AssetRef{ContentType: f.contentType, Size: int64(len(f.data))}
				}
			}
			return course
		},
	})

	for _, old := range profile.Courses {
		if old.Thumbnail == nil {
			continue
		}
		kept := false
		for _, c := range next {
			if c.ID == old.ID {
				kept = true
				break
			}
		}
		if !kept {
			*removals = append(*removals, assets.ThumbnailKey(userID, old.ID))
		}
	}

	profile.Courses = next
}

func (s *Service) reconcileJobs(profile *model.Profile, incoming []JobInput, author model.AuthorSnapshot, now time.Time) {
	profile.JobDescriptions = reconcileList(incoming, profile.JobDescriptions, listOptions[JobInput, model.JobDescription]{
		retainUnmatched: true,
		incomingID:      func(in JobInput) string { return in.ID },
		existingID:      func(j model.JobDescription) string { return j.ID },
		merge: func(in JobInput, prev *model.JobDescription) model.JobDescription {
			return mergeJob(in, prev, s.newID, author, now)
		},
	})
}

// mergeJob fills unspecified fields from the existing posting, falling
// back to defaults for brand-new ones.
func mergeJob(in JobInput, prev *model.JobDescription, newID func() string, author model.AuthorSnapshot, now time.Time) model.JobDescription {
	job := model.JobDescription{
		ID:              newID(),
		Position:        in.Position,
		WageRange:       in.WageRange,
		Location:        in.Location,
		ExperienceLevel: enums.ExperienceLevel(in.ExperienceLevel),
		RemoteOption:    enums.RemoteOption(in.RemoteOption),
		Description:     in.Description,
		JobDescription:  in.JobDescription,
		DatePosted:      in.DatePosted,
		RoleType:        enums.RoleType(in.RoleType),
		PostActivity:    false,
		Author:          author,
	}

	if prev != nil {
		job.ID = prev.ID
		job.Position = fallback(in.Position, prev.Position)
		job.WageRange = fallback(in.WageRange, prev.WageRange)
		job.Location = fallback(in.Location, prev.Location)
		job.Description = fallback(in.Description, prev.Description)
		job.JobDescription = fallback(in.JobDescription, prev.JobDescription)
		if in.ExperienceLevel == "" {
			job.ExperienceLevel = prev.ExperienceLevel
		}
		if in.RemoteOption == "" {
			job.RemoteOption = prev.RemoteOption
		}
		if in.RoleType == "" {
			job.RoleType = prev.RoleType
		}
		if in.DatePosted.IsZero() {
			job.DatePosted = prev.DatePosted
		}
		job.PostActivity = prev.PostActivity
	}

	if !job.ExperienceLevel.Valid() {
		job.ExperienceLevel = enums.ExperienceJunior
	}
	if !job.RemoteOption.Valid() {
		job.RemoteOption = enums.RemoteOptionRemote
	}
	if !job.RoleType.Valid() {
		job.RoleType = enums.RoleTypeRegular
	}
	if job.DatePosted.IsZero() {
		job.DatePosted = now
	}
	if in.PostActivity != nil {
		job.PostActivity = *in.PostActivity
	}
	if in.Author != nil {
		job.Author.Username = fallback(in.Author.Username, job.Author.Username)
		job.Author.AvatarURL = fallback(in.Author.AvatarURL, job.Author.AvatarURL)
	}

	return job
}

func coursePrice(in CourseInput, prev *model.Course) model.Money {
	if in.PriceAmount == 0 && in.PriceCurrency == "" && prev != nil {
		return prev.Price
	}
	currency := enums.Currency(in.PriceCurrency)
	if !currency.Valid() {
		currency = enums.CurrencyEUR
	}
	return model.Money{Amount: in.PriceAmount, Currency: currency}
}

func (s *Service) processImage(upload *FileUpload) (*processedFile, error) {
	if upload == nil {
		return nil, nil
	}
	data, err := s.processor.Normalize(upload.Data)
	if err != nil {
		return nil, err
	}
	return &processedFile{data: data, contentType: "image/jpeg"}, nil
}

func (s *Service) processImages(uploads []FileUpload) ([]processedFile, error) {
	if len(uploads) == 0 {
		return nil, nil
	}
	out := make([]processedFile, 0, len(uploads))
	for i := range uploads {
		f, err := s.processImage(&uploads[i])
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, nil
}

// applyProfileData applies the top-level scalar fields. An explicit
// JSON null clears the field, an absent key leaves it alone. The
// removeAvatar/removeBackground/cvUrl keys are asset directives and
// handled by the caller; unknown keys are ignored.
func applyProfileData(profile *model.Profile, data map[string]json.RawMessage) error {
	for key, raw := range data {
		var err error
		switch key {
		case "tagline":
			err = setString(&profile.Tagline, raw)
		case "industry":
			err = setString(&profile.Industry, raw)
		case "location":
			err = setString(&profile.Location, raw)
		case "size":
			err = setString(&profile.Size, raw)
		case "bio":
			err = setString(&profile.Bio, raw)
		case "phone":
			err = setString(&profile.Phone, raw)
		case "email":
			err = setString(&profile.Email, raw)
		case "website":
			err = setString(&profile.Website, raw)
		case "github":
			err = setString(&profile.GitHub, raw)
		case "activeRole":
			err = setString(&profile.ActiveRole, raw)
		case "jobPostVisibility":
			err = setBool(&profile.JobPostVisibility, raw)
		case "publishedRoles":
			if isNull(raw) {
				profile.PublishedRoles = map[string]bool{}
			} else {
				err = json.Unmarshal(raw, &profile.PublishedRoles)
			}
		}
		if err != nil {
			return fmt.Errorf("field %q: %w", key, ErrValidation)
		}
	}
	return nil
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func setString(dst *string, raw json.RawMessage) error {
	if isNull(raw) {
		*dst = ""
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func setBool(dst *bool, raw json.RawMessage) error {
	if isNull(raw) {
		*dst = false
		return nil
	}
	return json.Unmarshal(raw, dst)
}

func boolFlag(data map[string]json.RawMessage, key string) bool {
	raw, ok := data[key]
	if !ok {
		return false
	}
	var v bool
	if err := json.Unmarshal(raw, &v); err != nil {
		return false
	}
	return v
}

func nullFlag(data map[string]json.RawMessage, key string) bool {
	raw, ok := data[key]
	return ok && isNull(raw)
}
