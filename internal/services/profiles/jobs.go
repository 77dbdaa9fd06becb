package profiles

import (
	"context"
	"errors"
	"fmt"

	"github.com/BorisVilhard/IT-MAXI-BE/internal/domain/model"
	pgrepo "github.com/BorisVilhard/IT-MAXI-BE/internal/repo/postgres"
)

// CreateJob appends one posting to the caller's profile. The caller
// must already have a profile; postings never create one implicitly.
func (s *Service) CreateJob(ctx context.Context, userID int64, in JobInput) (model.JobDescription, error) {
	user, err := s.lookupUser(ctx, userID)
	if err != nil {
		return model.JobDescription{}, err
	}

	profile, err := s.loadExisting(ctx, userID)
	if err != nil {
		return model.JobDescription{}, err
	}

	in.ID = ""
	job := mergeJob(in, nil, s.newID, model.AuthorSnapshot{
		ID:        userID,
		Username:  user.Username,
		AvatarURL: s.avatarURL(profile),
	}, s.now())

	profile.JobDescriptions = append(profile.JobDescriptions, job)
	profile.UpdatedAt = s.now()
	if err := s.profiles.Save(ctx, profile); err != nil {
		return model.JobDescription{}, fmt.Errorf("save profile: %w", err)
	}
	return job, nil
}

// UpdateJob patches one posting in place, keeping fields the update
// does not mention.
func (s *Service) UpdateJob(ctx context.Context, userID int64, jobID string, in JobInput) (model.JobDescription, error) {
	profile, err := s.loadExisting(ctx, userID)
	if err != nil {
		return model.JobDescription{}, err
	}

	existing := profile.FindJob(jobID)
	if existing == nil {
		return model.JobDescription{}, ErrJobNotFound
	}

	in.ID = jobID
	job := mergeJob(in, existing, s.newID, existing.Author, s.now())
	*existing = job

	profile.UpdatedAt = s.now()
	if err := s.profiles.Save(ctx, profile); err != nil {
		return model.JobDescription{}, fmt.Errorf("save profile: %w", err)
	}
	return job, nil
}

func (s *Service) DeleteJob(ctx context.Context, userID int64, jobID string) error {
	profile, err := s.loadExisting(ctx, userID)
	if err != nil {
		return err
	}

	idx := -1
	for i := range profile.JobDescriptions {
		if profile.JobDescriptions[i].ID == jobID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrJobNotFound
	}

	profile.JobDescriptions = append(profile.JobDescriptions[:idx], profile.JobDescriptions[idx+1:]...)
	profile.UpdatedAt = s.now()
	if err := s.profiles.Save(ctx, profile); err != nil {
		return fmt.Errorf("save profile: %w", err)
	}
	return nil
}

func (s *Service) loadExisting(ctx context.Context, userID int64) (*model.Profile, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrProfileNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return profile, nil
}
