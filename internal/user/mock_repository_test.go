package user

import "context"

type MockRepository struct {
	Profiles map[string]Profile
	Err      error
}

func newMockRepository() *MockRepository {
	return &MockRepository{Profiles: map[string]Profile{}}
}

func (m *MockRepository) getProfile(ctx context.Context, userID string) (*Profile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	p, ok := m.Profiles[userID]
	if !ok {
		return nil, ErrUserNotFound
	}
	return &p, nil
}

func (m *MockRepository) createProfile(ctx context.Context, profile Profile) (*Profile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if _, ok := m.Profiles[profile.UserID]; ok {
		return nil, ErrUserAlreadyOnboarded
	}
	m.Profiles[profile.UserID] = profile
	return &profile, nil
}

func (m *MockRepository) updateProfile(ctx context.Context, profile Profile) (*Profile, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	existing, ok := m.Profiles[profile.UserID]
	if !ok {
		return nil, ErrUserNotFound
	}
	if profile.PictureURL == nil {
		profile.PictureURL, profile.PictureKey = existing.PictureURL, existing.PictureKey
	}
	m.Profiles[profile.UserID] = profile
	return &profile, nil
}
