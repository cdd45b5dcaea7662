package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/metrics"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/models"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/otp"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/store"
	"github.com/Deepan003/IEM-MEDIA-TEAM-WEBSITE/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SendOtpInput is the body of POST /api/auth/send-otp.
type SendOtpInput struct {
	Email string `json:"email" binding:"required,email"`
}

// RegisterPhotographerInput carries the photographer registration form.
type RegisterPhotographerInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	OTP      string `json:"otp" binding:"required"`
	FullName string `json:"fullName" binding:"required"`
	Username string `json:"username" binding:"required"`

	EnrollmentNumber string `json:"enrollmentNumber,omitempty"`
	RollNumber       string `json:"rollNumber,omitempty"`
	Year             int    `json:"year,omitempty"`
	Department       string `json:"department,omitempty"`
	Device           string `json:"device,omitempty"`
	Lenses           string `json:"lenses,omitempty"`
	Phone            string `json:"phone,omitempty"`
	Whatsapp         string `json:"whatsapp,omitempty"`
	Gender           string `json:"gender,omitempty"`
	City             string `json:"city,omitempty"`
	ProfilePicture   string `json:"profilePicture,omitempty"`
}

// RegisterGuestInput carries the guest registration form. Students supply an
// institution (possibly "Other" plus free text) and enrollment number,
// teachers a department.
type RegisterGuestInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	OTP         string `json:"otp" binding:"required"`
	FullName    string `json:"fullName" binding:"required"`
	Designation string `json:"designation" binding:"required"`

	Institution      string `json:"institution,omitempty"`
	OtherInstitution string `json:"otherInstitution,omitempty"`
	EnrollmentNumber string `json:"enrollmentNumber,omitempty"`
	Department       string `json:"department,omitempty"`
	Phone            string `json:"phone,omitempty"`
}

// LoginInput is the body of POST /api/auth/login.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SendOtp issues a registration code for a not-yet-registered email, stores
// it with a 10 minute expiry (overwriting any earlier code) and mails it.
// The code never appears in the response.
func (a *API) SendOtp(c *gin.Context) {
	var input SendOtpInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	_, err := a.Store.GetUserByEmail(c.Request.Context(), input.Email)
	if err == nil {
		fail(c, http.StatusBadRequest, "duplicate_email", "User with this email already exists")
		return
	}
	if !errors.Is(err, store.ErrNotFound) {
		a.respondErr(c, errUnavailable("could not check email"))
		return
	}

	code := utils.GenerateOTP(6)
	entry := otp.Entry{Code: code, ExpiresAt: a.now().Add(otp.TTL)}
	if err := a.OTP.Put(c.Request.Context(), input.Email, entry); err != nil {
		a.respondErr(c, errUnavailable("could not store verification code"))
		return
	}

	body := "Your OTP for registration is: " + code + "\nIt is valid for 10 minutes."
	if err := a.Mailer.Send(input.Email, "Your Verification Code", body); err != nil {
		a.Log.Warn("otp mail delivery failed", zap.String("email", input.Email), zap.Error(err))
		a.respondErr(c, errUnavailable("could not send verification email"))
		return
	}

	metrics.ObserveOTPIssued()
	a.Log.Info("otp issued", zap.String("email", input.Email))
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent successfully"})
}

// consumeCheck validates a submitted code against the pending entry. A stale
// entry is deleted as a side effect; a valid one is left for the caller to
// delete only after the account is actually created.
func (a *API) consumeCheck(c *gin.Context, email, code string) *apiError {
	entry, err := a.OTP.Get(c.Request.Context(), email)
	if errors.Is(err, otp.ErrNoCode) {
		return errBadRequest("otp_not_found", "OTP not found. Please request one again.")
	}
	if err != nil {
		return errUnavailable("could not check verification code")
	}
	if entry.Expired(a.now()) {
		_ = a.OTP.Delete(c.Request.Context(), email)
		return errBadRequest("otp_expired", "OTP has expired. Please request a new one.")
	}
	if entry.Code != code {
		return errBadRequest("otp_mismatch", "Invalid OTP.")
	}
	return nil
}

// issueRegistrationToken persists the new account and answers 201 with a
// session token. The embedded role comes from the registration path, never
// from the request.
func (a *API) issueRegistrationToken(c *gin.Context, user *models.User) {
	if err := a.Store.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			fail(c, http.StatusBadRequest, "duplicate_identity", "User with this email or username already exists.")
			return
		}
		a.respondErr(c, err)
		return
	}

	_ = a.OTP.Delete(c.Request.Context(), user.Email)

	token, err := utils.GenerateToken(a.Secret, user.ID.Hex(), user.Role, "")
	if err != nil {
		a.respondErr(c, err)
		return
	}

	a.Log.Info("user registered",
		zap.String("email", user.Email), zap.String("role", string(user.Role)))
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// RegisterPhotographer creates a photographer account after OTP
// verification.
func (a *API) RegisterPhotographer(c *gin.Context) {
	var input RegisterPhotographerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if apiErr := a.consumeCheck(c, input.Email, input.OTP); apiErr != nil {
		fail(c, apiErr.status, apiErr.code, apiErr.message)
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		a.respondErr(c, err)
		return
	}

	user := &models.User{
		FullName:         input.FullName,
		Email:            input.Email,
		Password:         hash,
		Role:             models.RolePhotographer,
		Username:         input.Username,
		EnrollmentNumber: input.EnrollmentNumber,
		RollNumber:       input.RollNumber,
		Year:             input.Year,
		Department:       input.Department,
		Device:           input.Device,
		Lenses:           input.Lenses,
		Phone:            input.Phone,
		Whatsapp:         input.Whatsapp,
		Gender:           input.Gender,
		City:             input.City,
		ProfilePicture:   input.ProfilePicture,
	}
	a.issueRegistrationToken(c, user)
}

// RegisterGuest creates a guest account after OTP verification.
func (a *API) RegisterGuest(c *gin.Context) {
	var input RegisterGuestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	if apiErr := a.consumeCheck(c, input.Email, input.OTP); apiErr != nil {
		fail(c, apiErr.status, apiErr.code, apiErr.message)
		return
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		a.respondErr(c, err)
		return
	}

	user := &models.User{
		FullName:    input.FullName,
		Email:       input.Email,
		Password:    hash,
		Role:        models.RoleGuest,
		Designation: input.Designation,
		Phone:       input.Phone,
	}
	switch input.Designation {
	case "Student":
		user.EnrollmentNumber = input.EnrollmentNumber
		if input.Institution == "Other" {
			user.Institution = input.OtherInstitution
		} else {
			user.Institution = input.Institution
		}
	case "Teacher":
		user.Department = input.Department
	}
	a.issueRegistrationToken(c, user)
}

// Login authenticates by email and password. The failure message is the
// same whether the account is missing or the password is wrong, so the
// endpoint cannot be used to enumerate accounts.
func (a *API) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	user, err := a.Store.GetUserByEmail(c.Request.Context(), input.Email)
	if err != nil {
		fail(c, http.StatusBadRequest, "invalid_credentials", "Invalid credentials")
		return
	}
	if err := utils.CheckPassword(user.Password, input.Password); err != nil {
		fail(c, http.StatusBadRequest, "invalid_credentials", "Invalid credentials")
		return
	}

	token, err := utils.GenerateToken(a.Secret, user.ID.Hex(), user.Role, user.FullName)
	if err != nil {
		a.respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// CheckUsername answers whether a username is still free,
// case-insensitively. Absence means available.
func (a *API) CheckUsername(c *gin.Context) {
	username := strings.TrimSpace(c.Query("username"))
	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"available": false, "message": "Username is required."})
		return
	}

	_, err := a.Store.GetUserByUsername(c.Request.Context(), username)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"available": false})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusOK, gin.H{"available": true})
	default:
		a.respondErr(c, errUnavailable("could not check username"))
	}
}
