package adapter

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/fortunekeeper/internal/client/models"
	"github.com/dmitrijs2005/fortunekeeper/internal/common"
)

var expiryLayouts = []string{time.DateTime, time.DateOnly, time.RFC3339}

// Member adapts the login exchange answer. A status other than "success"
// yields common.ErrLoginRejected; a success without member_id is a shape
// error.
func Member(raw []byte) (*models.Member, error) {
	root, err := parseObject("login", raw)
	if err != nil {
		return nil, err
	}
	if status := str(root, "status", ""); status != "success" {
		return nil, fmt.Errorf("%w: status %q", common.ErrLoginRejected, status)
	}

	id := root.Get("member_id")
	if !id.Exists() || id.String() == "" {
		return nil, shapeErr("login", "member_id", "required field missing")
	}

	m := &models.Member{
		ID:     id.String(),
		Email:  str(root, "email", ""),
		Name:   str(root, "name", ""),
		AppID:  str(root, "app_id", ""),
		Tier:   models.ParseTier(str(root, "subscription", "")),
		Avatar: str(root, "avatar", ""),
	}

	if exp := str(root, "expire_date", ""); exp != "" {
		for _, layout := range expiryLayouts {
			if t, err := time.Parse(layout, exp); err == nil {
				m.ExpiresAt = &t
				break
			}
		}
	}

	if pid := root.Get("user_fortune_id"); pid.Exists() && pid.String() != "" {
		if v, err := strconv.ParseInt(pid.String(), 10, 64); err == nil {
			m.LinkedProfileID = &v
		}
	}
	return m, nil
}
