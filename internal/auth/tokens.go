package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudkeeper/ck-prism/internal/tokenstore"
	"github.com/cloudkeeper/ck-prism/models"
	log "github.com/sirupsen/logrus"
)

// How long before the real expiry a cached access token stops being served.
const expiryBuffer = 5 * time.Minute

// Authenticator is the interactive/refresh surface the lifecycle manager
// needs from the login flow.
type Authenticator interface {
	InteractiveLogin(ctx context.Context, cfg *models.ProfileConfig) (*models.TokenRecord, error)
	Refresh(ctx context.Context, cfg *models.ProfileConfig, refreshToken string) (*models.TokenRecord, error)
}

// TokenManager returns a valid access token for a profile, in order of
// preference: unexpired cache, silent refresh, full interactive login.
// Every failure short of the final login degrades to the next step.
type TokenManager struct {
	Store tokenstore.Store
	Flow  Authenticator
	now   func() time.Time
}

func NewTokenManager(store tokenstore.Store, flow Authenticator) *TokenManager {
	return &TokenManager{
		Store: store,
		Flow:  flow,
		now:   time.Now,
	}
}

// GetValidToken resolves a usable token record for the profile. A cache hit
// makes no network call at all.
func (m *TokenManager) GetValidToken(ctx context.Context, profile string, cfg *models.ProfileConfig) (*models.TokenRecord, error) {
	cached, err := m.Store.Load(profile)
	if err != nil {
		return nil, err
	}

	if cached != nil {
		if cached.ValidFor(m.now(), expiryBuffer) {
			return cached, nil
		}

		if cached.RefreshToken != "" {
			fmt.Println("Refreshing tokens...")
			refreshed, err := m.Flow.Refresh(ctx, cfg, cached.RefreshToken)
			if err == nil {
				if err := m.Store.Save(profile, refreshed); err != nil {
					return nil, err
				}
				return refreshed, nil
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			log.Debugf("token refresh failed, falling back to interactive login: %v", err)
		}
	}

	fmt.Println("Performing interactive login...")
	record, err := m.Flow.InteractiveLogin(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := m.Store.Save(profile, record); err != nil {
		return nil, err
	}
	return record, nil
}
