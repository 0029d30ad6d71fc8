package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/summitworks/eventreg/internal/application"
	repo "github.com/summitworks/eventreg/internal/domain/repository"
	"github.com/summitworks/eventreg/pkg/apierror"
)

// writeError translates domain sentinels into the response taxonomy.
// Anything unrecognized falls through to apierror.Classify, which collapses
// it to a 500 without leaking detail.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repo.ErrEmailTaken):
		apierror.Write(c, apierror.UserExists())
	case errors.Is(err, application.ErrInvalidCredentials):
		apierror.Write(c, apierror.InvalidCredentials())
	case errors.Is(err, application.ErrRegistrationClosed):
		apierror.Write(c, apierror.BadRequest("Registration is not open for this event"))
	case errors.Is(err, repo.ErrNotFound):
		apierror.Write(c, apierror.NotFound())
	default:
		apierror.Write(c, err)
	}
}
