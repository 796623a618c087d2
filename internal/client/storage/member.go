package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/models"
	"github.com/dmitrijs2005/fortunekeeper/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/fortunekeeper/internal/common"
)

// SaveMember stores m together with the identity subject it belongs to.
func (s *Storage) SaveMember(ctx context.Context, subject string, m *models.Member) error {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode member: %w", err)
	}
	return s.Update(ctx, func(ctx context.Context, repo metadata.Repository) error {
		if err := repo.Set(ctx, common.MemberStorageKey, data); err != nil {
			return err
		}
		return repo.Set(ctx, common.MemberSubjectStorageKey, []byte(subject))
	})
}

// LoadMember returns the stored member and its subject. Both are zero when
// nothing is stored. A record that no longer decodes is reported as
// common.ErrorNotFound so callers start over with a fresh login.
func (s *Storage) LoadMember(ctx context.Context) (string, *models.Member, error) {
	data, err := s.Metadata.Get(ctx, common.MemberStorageKey)
	if err != nil {
		return "", nil, err
	}
	if data == nil {
		return "", nil, nil
	}

	var m models.Member
	if err := json.Unmarshal(data, &m); err != nil || m.ID == "" {
		return "", nil, fmt.Errorf("stored member: %w", common.ErrorNotFound)
	}

	subject, err := s.Metadata.Get(ctx, common.MemberSubjectStorageKey)
	if err != nil {
		return "", nil, err
	}
	return string(subject), &m, nil
}

func (s *Storage) ClearMember(ctx context.Context) error {
	return s.Update(ctx, func(ctx context.Context, repo metadata.Repository) error {
		if err := repo.Delete(ctx, common.MemberStorageKey); err != nil {
			return err
		}
		return repo.Delete(ctx, common.MemberSubjectStorageKey)
	})
}
