package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fitx/api/internal/service"
)

// registerRequest has no role field; any role in the body is ignored.
type registerRequest struct {
	Username  trimmedString  `json:"username" binding:"required,min=3,max=50"`
	Email     trimmedString  `json:"email" binding:"required,email"`
	Password  string         `json:"password" binding:"required,min=6,max=72"`
	FirstName *trimmedString `json:"firstName" binding:"omitnil,min=1"`
	LastName  *trimmedString `json:"lastName" binding:"omitnil,min=1"`
}

type authResponse struct {
	User  userView `json:"user"`
	Token string   `json:"token"`
}

func (h HandlerSet) RegisterUser(c *gin.Context) {
	var req registerRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.auth.Register(c.Request.Context(), service.RegisterInput{
		Username:  string(req.Username),
		Email:     string(req.Email),
		Password:  req.Password,
		FirstName: req.FirstName.ptr(),
		LastName:  req.LastName.ptr(),
	})
	if err != nil {
		h.respondError(c, err, "Server error during registration")
		return
	}

	respondOK(c, http.StatusCreated, "User registered successfully", authResponse{
		User:  newUserView(result.User),
		Token: result.Token,
	})
}

type loginRequest struct {
	Email    trimmedString `json:"email" binding:"required,email"`
	Password string        `json:"password" binding:"required"`
}

func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req) {
		return
	}

	result, err := h.auth.IssueToken(c.Request.Context(), string(req.Email), req.Password)
	if err != nil {
		h.respondError(c, err, "Server error during login")
		return
	}

	respondOK(c, http.StatusOK, "Login successful", authResponse{
		User:  newUserView(result.User),
		Token: result.Token,
	})
}

func (h HandlerSet) Me(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	respondOK(c, http.StatusOK, "", gin.H{"user": newUserView(user)})
}
