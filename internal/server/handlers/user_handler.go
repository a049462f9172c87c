package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/hotel-admin/internal/domain/models"
	"github.com/mamadbah2/hotel-admin/internal/service/hotel"
	"github.com/mamadbah2/hotel-admin/pkg/clients/hotelapi"
)

// UserHandler manages back-office accounts.
type UserHandler struct {
	svc    *hotel.Service
	logger *zap.Logger
}

func NewUserHandler(svc *hotel.Service, logger *zap.Logger) *UserHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandler{svc: svc, logger: logger}
}

// List returns the user directory, narrowed by "q".
func (h *UserHandler) List(c *gin.Context) {
	dir, err := h.svc.Users(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, "list users failed", err)
		return
	}
	dir.Users = hotel.FilterUsers(dir.Users, c.Query("q"))
	c.JSON(http.StatusOK, dir)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	u, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, "get user failed", err)
		return
	}
	c.JSON(http.StatusOK, u)
}

func (h *UserHandler) Create(c *gin.Context) {
	user, image, closeImage, err := bindUser(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	defer closeImage()

	created, err := h.svc.CreateUser(c.Request.Context(), user, image)
	if err != nil {
		respondError(c, h.logger, "create user failed", err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *UserHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	user, image, closeImage, err := bindUser(c)
	if err != nil {
		badRequest(c, err.Error())
		return
	}
	defer closeImage()

	updated, err := h.svc.UpdateUser(c.Request.Context(), id, user, image)
	if err != nil {
		respondError(c, h.logger, "update user failed", err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, "delete user failed", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bindUser reads a user from JSON, or from a multipart form with an optional
// "image" file. The returned close func is always safe to call.
func bindUser(c *gin.Context) (models.User, *hotelapi.Upload, func(), error) {
	noop := func() {}
	var user models.User

	if c.ContentType() != gin.MIMEMultipartPOSTForm {
		if err := c.ShouldBindJSON(&user); err != nil {
			return user, nil, noop, errors.New("corps de requête invalide")
		}
		return user, nil, noop, nil
	}

	user.FirstName = c.PostForm("prenom")
	user.LastName = c.PostForm("nom")
	user.Email = c.PostForm("email")
	user.Phone = c.PostForm("telephone")
	user.Password = c.PostForm("mot_de_passe")
	if raw := c.PostForm("IDprofil"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return user, nil, noop, errors.New("profil invalide")
		}
		user.ProfileID = id
	}

	header, err := c.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return user, nil, noop, nil
	}
	if err != nil {
		return user, nil, noop, errors.New("image invalide")
	}
	f, err := header.Open()
	if err != nil {
		return user, nil, noop, errors.New("image illisible")
	}
	return user, &hotelapi.Upload{Filename: header.Filename, Reader: f}, func() { _ = f.Close() }, nil
}
