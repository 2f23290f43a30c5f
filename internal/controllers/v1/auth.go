package v1

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/pennywise-app/backend/internal/auth"
	"github.com/pennywise-app/backend/internal/httputil"
	"github.com/pennywise-app/backend/internal/models"
	"github.com/pennywise-app/backend/internal/notify"
	"github.com/rs/zerolog/log"
)

const passwordResetMessage = "We have sent you a link to reset your password"

// RegisterAuthRoutes registers the routes for accounts and sessions with
// the RouterGroup that is passed.
func (co Controller) RegisterAuthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/signup", OptionsPost)
	r.POST("/signup", co.Signup)

	r.OPTIONS("/login", OptionsPost)
	r.POST("/login", co.Login)

	r.OPTIONS("/token/refresh", OptionsPost)
	r.POST("/token/refresh", co.RefreshToken)

	r.OPTIONS("/password-reset", OptionsPost)
	r.POST("/password-reset", co.RequestPasswordReset)

	r.OPTIONS("/password-reset-confirm", OptionsPatch)
	r.PATCH("/password-reset-confirm", co.ConfirmPasswordReset)

	r.OPTIONS("/profile", OptionsProfile)
	r.GET("/profile", co.authenticated(), GetProfile)
	r.PATCH("/profile", co.authenticated(), UpdateProfile)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Authentication
// @Success		204
// @Router			/v1/auth/signup [options]
// @Router			/v1/auth/login [options]
// @Router			/v1/auth/token/refresh [options]
// @Router			/v1/auth/password-reset [options]
func OptionsPost(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Authentication
// @Success		204
// @Router			/v1/auth/password-reset-confirm [options]
func OptionsPatch(c *gin.Context) {
	httputil.OptionsPatch(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Authentication
// @Success		204
// @Router			/v1/auth/profile [options]
func OptionsProfile(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Sign up
// @Description	Creates a new user. A welcome email is sent to the address of the user.
// @Tags			Authentication
// @Produce		json
// @Success		201		{object}	UserResponse
// @Failure		400		{object}	httpError
// @Failure		403		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			user	body		SignupEditable	true	"User"
// @Router			/v1/auth/signup [post]
func (co Controller) Signup(c *gin.Context) {
	var editable SignupEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	if strings.TrimSpace(editable.Name) == "" {
		c.JSON(http.StatusBadRequest, httpError{
			Error: "the name must not be empty",
			Code:  httputil.CodeValidation,
			Field: "name",
		})
		return
	}

	if !co.Allowlist.Allows(editable.Email) {
		handleError(c, ErrRegistrationClosed)
		return
	}

	if err := auth.ValidatePassword(editable.Password); err != nil {
		c.JSON(http.StatusBadRequest, httpError{
			Error: err.Error(),
			Code:  httputil.CodeValidation,
			Field: "password",
		})
		return
	}

	hash, err := auth.HashPassword(editable.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	user := models.User{
		Name:         editable.Name,
		Email:        editable.Email,
		PasswordHash: hash,
	}

	if err := models.DB.Create(&user).Error; err != nil {
		handleError(c, err)
		return
	}

	// The account exists either way, a failed welcome message is not an error for the client
	if err := co.Queue.Enqueue(c, notify.Welcome(user.Name, user.Email)); err != nil {
		log.Warn().Str("request-id", requestid.Get(c)).Str("user", user.ID.String()).Err(err).Msg("could not enqueue welcome message")
	}

	c.JSON(http.StatusCreated, UserResponse{Data: newUser(user)})
}

// @Summary		Log in
// @Description	Returns an access and a refresh token for the user
// @Tags			Authentication
// @Produce		json
// @Success		200			{object}	LoginResponse
// @Failure		400			{object}	httpError
// @Failure		401			{object}	httpError
// @Failure		500			{object}	httpError
// @Param			credentials	body		LoginEditable	true	"Credentials"
// @Router			/v1/auth/login [post]
func (co Controller) Login(c *gin.Context) {
	var editable LoginEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	user, err := models.FindUserByEmail(models.DB, editable.Email)
	if errors.Is(err, models.ErrResourceNotFound) {
		handleError(c, auth.ErrInvalidCredentials)
		return
	} else if err != nil {
		handleError(c, err)
		return
	}

	if err := auth.CheckPassword(user.PasswordHash, editable.Password); err != nil {
		handleError(c, err)
		return
	}

	pair, err := co.Tokens.IssuePair(user.ID)
	if err != nil {
		handleError(c, err)
		return
	}

	now := time.Now().In(time.UTC)
	if err := models.DB.Model(&user).UpdateColumn("last_login", now).Error; err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		Access:  pair.Access,
		Refresh: pair.Refresh,
		Name:    user.Name,
		Email:   user.Email,
	})
}

// @Summary		Refresh access token
// @Description	Returns a new access token for a valid refresh token
// @Tags			Authentication
// @Produce		json
// @Success		200		{object}	RefreshResponse
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			token	body		RefreshEditable	true	"Refresh token"
// @Router			/v1/auth/token/refresh [post]
func (co Controller) RefreshToken(c *gin.Context) {
	var editable RefreshEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	id, err := co.Tokens.ParseRefresh(editable.Refresh)
	if err != nil {
		httputil.NewError(c, http.StatusUnauthorized, err)
		return
	}

	// Tokens of deleted users are not renewed
	if _, err := models.FindUser(models.DB, id); err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			httputil.NewError(c, http.StatusUnauthorized, auth.ErrInvalidToken)
			return
		}
		handleError(c, err)
		return
	}

	access, err := co.Tokens.IssueAccess(id)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, RefreshResponse{Access: access})
}

// @Summary		Request password reset
// @Description	Sends a password reset link to the email address if a user with it exists.
// @Description	The response is the same whether the user exists or not.
// @Tags			Authentication
// @Produce		json
// @Success		200		{object}	ResponseMessage
// @Failure		400		{object}	httpError
// @Param			request	body		PasswordResetEditable	true	"Email address"
// @Router			/v1/auth/password-reset [post]
func (co Controller) RequestPasswordReset(c *gin.Context) {
	var editable PasswordResetEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	user, err := models.FindUserByEmail(models.DB, editable.Email)
	if err != nil {
		if !errors.Is(err, models.ErrResourceNotFound) {
			log.Error().Str("request-id", requestid.Get(c)).Err(err).Msg("password reset lookup failed")
		}

		c.JSON(http.StatusOK, ResponseMessage{Message: passwordResetMessage})
		return
	}

	token, err := co.Tokens.ResetToken(user.ID, user.PasswordHash)
	if err != nil {
		handleError(c, err)
		return
	}

	link := strings.TrimSuffix(co.FrontendURL, "/") + "/reset-password/" + auth.EncodeUID(user.ID) + "/" + token
	if err := co.Queue.Enqueue(c, notify.PasswordReset(user.Name, user.Email, link)); err != nil {
		log.Error().Str("request-id", requestid.Get(c)).Str("user", user.ID.String()).Err(err).Msg("could not enqueue password reset message")
	}

	c.JSON(http.StatusOK, ResponseMessage{Message: passwordResetMessage})
}

// @Summary		Reset password
// @Description	Sets a new password with a token from a password reset link. Each token can only be used once.
// @Tags			Authentication
// @Produce		json
// @Success		200		{object}	ResponseMessage
// @Failure		400		{object}	httpError
// @Failure		500		{object}	httpError
// @Param			reset	body		PasswordResetConfirmEditable	true	"New password"
// @Router			/v1/auth/password-reset-confirm [patch]
func (co Controller) ConfirmPasswordReset(c *gin.Context) {
	var editable PasswordResetConfirmEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	if editable.Password != editable.ConfirmPassword {
		httputil.NewError(c, http.StatusBadRequest, auth.ErrPasswordMismatch)
		return
	}

	if err := auth.ValidatePassword(editable.Password); err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	id, err := auth.DecodeUID(editable.UIDB64)
	if err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	user, err := models.FindUser(models.DB, id)
	if err != nil {
		if errors.Is(err, models.ErrResourceNotFound) {
			httputil.NewError(c, http.StatusBadRequest, auth.ErrInvalidToken)
			return
		}
		handleError(c, err)
		return
	}

	if err := co.Tokens.VerifyResetToken(editable.Token, user.ID, user.PasswordHash); err != nil {
		httputil.NewError(c, http.StatusBadRequest, err)
		return
	}

	hash, err := auth.HashPassword(editable.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	if err := models.DB.Model(&user).UpdateColumn("password_hash", hash).Error; err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ResponseMessage{Message: "Password reset success"})
}

// @Summary		Get profile
// @Description	Returns the authenticated user
// @Tags			Authentication
// @Produce		json
// @Security		BearerAuth
// @Success		200	{object}	UserResponse
// @Failure		401	{object}	httpError
// @Failure		404	{object}	httpError
// @Router			/v1/auth/profile [get]
func GetProfile(c *gin.Context) {
	user, err := models.FindUser(models.DB, auth.Owner(c))
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: newUser(user)})
}

// @Summary		Update profile
// @Description	Updates the name of the authenticated user
// @Tags			Authentication
// @Produce		json
// @Security		BearerAuth
// @Success		200		{object}	UserResponse
// @Failure		400		{object}	httpError
// @Failure		401		{object}	httpError
// @Failure		404		{object}	httpError
// @Param			profile	body		ProfileEditable	true	"Profile"
// @Router			/v1/auth/profile [patch]
func UpdateProfile(c *gin.Context) {
	user, err := models.FindUser(models.DB, auth.Owner(c))
	if err != nil {
		handleError(c, err)
		return
	}

	var editable ProfileEditable
	if err := httputil.BindData(c, &editable); err != nil {
		return
	}

	if editable.Name != nil {
		user.Name = *editable.Name
	}

	if err := models.DB.Save(&user).Error; err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{Data: newUser(user)})
}
