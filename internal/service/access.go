package service

import (
	domainauth "github.com/favoriteblog/blog-ui/internal/domain/auth"
	apperrors "github.com/favoriteblog/blog-ui/internal/errors"
	"github.com/favoriteblog/blog-ui/internal/ports"
)

// Default listing sizes used by the blog pages.
const (
	DefaultPostsPerPage    = 10
	DefaultCommentsPerPage = 20
	DefaultMaxImageBytes   = 5 << 20
)

// authorize maps a non-granted policy decision to the error a content action returns.
// Role checks always go through domainauth.Evaluate.
func authorize(sessions ports.SessionReader, req domainauth.Requirement) (domainauth.Session, error) {
	sess := sessions.Session()
	switch domainauth.Evaluate(sess, req) {
	case domainauth.DecisionGranted:
		return sess, nil
	case domainauth.DecisionRedirectHome:
		return sess, apperrors.Forbidden("You do not have permission to do that")
	case domainauth.DecisionPending:
		return sess, apperrors.Unauthorized("Session is still loading")
	default:
		return sess, apperrors.Unauthorized("Please log in")
	}
}

// authorizeOwner additionally requires ownership of ownerID or the ADMIN role.
func authorizeOwner(sessions ports.SessionReader, req domainauth.Requirement, ownerID string) error {
	sess, err := authorize(sessions, req)
	if err != nil {
		return err
	}
	if !domainauth.CanManage(sess, ownerID) {
		return apperrors.Forbidden("You can only change your own content")
	}
	return nil
}

func pageOrFirst(page int) int {
	if page < 1 {
		return 1
	}
	return page
}
