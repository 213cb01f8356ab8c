package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/MKhiriev/commerce-console/internal/adapter"
	"github.com/MKhiriev/commerce-console/internal/app"
	"github.com/MKhiriev/commerce-console/internal/logger"
	"github.com/MKhiriev/commerce-console/models"
)

// Picture is a profile picture chosen for upload.
type Picture struct {
	FileName string
	Content  []byte
}

// ProfileUpdate is the edited profile form.
type ProfileUpdate struct {
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	Address           string
	Bio               string
	ProfilePictureURL string

	// Picture, when set, is uploaded before the profile is saved.
	Picture *Picture
}

// ProfileService edits the signed-in operator's own record.
type ProfileService struct {
	users   adapter.UsersAPI
	session SessionService
	logger  *logger.Logger
}

func NewProfileService(users adapter.UsersAPI, session SessionService, log *logger.Logger) *ProfileService {
	return &ProfileService{users: users, session: session, logger: log}
}

// ResolveID returns the users-service id of the operator. When the session
// has none it is looked up by username and stored in the session.
func (p *ProfileService) ResolveID(ctx context.Context) (int64, error) {
	user := p.session.Session().User
	if user == nil {
		return 0, ErrNotAuthenticated
	}

	if user.ID != "" {
		id, err := strconv.ParseInt(user.ID, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrUnknownUserID, user.ID)
		}
		return id, nil
	}

	record, err := p.users.GetByUsername(ctx, user.Username)
	if err != nil {
		return 0, userError(err, app.MsgLoadProfileFailed)
	}

	resolved := strconv.FormatInt(record.ID, 10)
	if err = p.session.UpdateUser(ctx, models.UserPatch{ID: &resolved}); err != nil {
		p.logger.Warn().Err(err).Msg("failed to store resolved user id")
	}
	return record.ID, nil
}

// Load returns the full record of the operator.
func (p *ProfileService) Load(ctx context.Context) (models.DirectoryUser, error) {
	id, err := p.ResolveID(ctx)
	if err != nil {
		return models.DirectoryUser{}, userError(err, app.MsgLoadProfileFailed)
	}

	record, err := p.users.Get(ctx, id)
	if err != nil {
		return models.DirectoryUser{}, userError(err, app.MsgLoadProfileFailed)
	}
	return record, nil
}

// Save uploads the new picture, if any, then saves the profile and patches
// the session user. A failed upload aborts the save.
func (p *ProfileService) Save(ctx context.Context, upd ProfileUpdate) (models.DirectoryUser, error) {
	id, err := p.ResolveID(ctx)
	if err != nil {
		return models.DirectoryUser{}, userError(err, app.MsgUpdateProfileFailed)
	}

	pictureURL := upd.ProfilePictureURL
	if upd.Picture != nil {
		uploaded, err := p.users.UploadProfilePicture(ctx, id, upd.Picture.FileName, upd.Picture.Content)
		if err != nil {
			detail, ok := adapter.MessageOf(err)
			if !ok {
				detail = err.Error()
			}
			return models.DirectoryUser{}, &UserError{
				Message:   app.MsgUploadPictureFailed + ": " + detail,
				Retryable: adapter.IsRetryable(err),
				Err:       err,
			}
		}
		pictureURL = uploaded.ProfilePictureURL
	}

	updated, err := p.users.Update(ctx, id, models.UpdateUserRequest{
		FirstName:         upd.FirstName,
		LastName:          upd.LastName,
		Email:             upd.Email,
		Phone:             models.NullableString(upd.Phone),
		Address:           models.NullableString(upd.Address),
		Bio:               models.NullableString(upd.Bio),
		ProfilePictureURL: models.NullableString(pictureURL),
	})
	if err != nil {
		return models.DirectoryUser{}, userError(err, app.MsgUpdateProfileFailed)
	}

	resolved := strconv.FormatInt(id, 10)
	patch := models.UserPatch{
		ID:        &resolved,
		FirstName: &updated.FirstName,
		LastName:  &updated.LastName,
		Email:     &updated.Email,
	}
	if err = p.session.UpdateUser(ctx, patch); err != nil {
		p.logger.Warn().Err(err).Msg("profile saved but session snapshot not updated")
	}

	return updated, nil
}
