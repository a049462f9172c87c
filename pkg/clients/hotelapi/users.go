package hotelapi

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
)

// Upload is a file attached to a multipart request.
type Upload struct {
	Filename string
	Reader   io.Reader
}

// UserResource adds multipart image upload to the user collection.
type UserResource struct {
	*Resource[models.User]
}

// CreateWithImage creates a user. With a nil image it behaves like Create.
func (u *UserResource) CreateWithImage(ctx context.Context, user models.User, image *Upload) (*models.User, error) {
	if image == nil {
		return u.Create(ctx, user)
	}
	created := new(models.User)
	req := u.c.request(ctx).
		SetMultipartFormData(userFormFields(user)).
		SetFileReader("image", image.Filename, image.Reader).
		SetResult(created)
	if err := u.c.execute(req, http.MethodPost, u.path); err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateWithImage updates a user, sending multipart data when an image is attached.
func (u *UserResource) UpdateWithImage(ctx context.Context, id int64, user models.User, image *Upload) (*models.User, error) {
	if image == nil {
		return u.Update(ctx, id, user)
	}
	updated := new(models.User)
	req := u.c.request(ctx).
		SetMultipartFormData(userFormFields(user)).
		SetFileReader("image", image.Filename, image.Reader).
		SetResult(updated)
	if err := u.c.execute(req, http.MethodPut, u.itemPath(id)); err != nil {
		return nil, err
	}
	return updated, nil
}

func userFormFields(user models.User) map[string]string {
	fields := map[string]string{
		"prenom":    user.FirstName,
		"nom":       user.LastName,
		"email":     user.Email,
		"telephone": user.Phone,
		"IDprofil":  strconv.FormatInt(user.ProfileID, 10),
	}
	if user.Password != "" {
		fields["mot_de_passe"] = user.Password
	}
	return fields
}
