package services

import (
	"fmt"

	"github.com/anonto42/careerpulse/backend/internal/models"
)

// AuthorizeOwner allows the action only when actor owns the resource
func AuthorizeOwner(actor *models.User, ownerID, action string) error {
	if actor == nil || actor.ID != ownerID {
		return models.NewForbiddenError(fmt.Sprintf("Not authorized to %s", action))
	}
	return nil
}

// AuthorizeFollow rejects following oneself
func AuthorizeFollow(actor *models.User, targetID string) error {
	if actor.ID == targetID {
		return models.NewInvalidRequestError("Cannot follow yourself")
	}
	return nil
}
