package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/smonzon/registration-service/internal/model"
	"github.com/smonzon/registration-service/internal/repository"
	"github.com/smonzon/registration-service/internal/service"
)

// RegistrationService is the workflow surface the controller needs.
type RegistrationService interface {
	Register(ctx context.Context, input service.RegistrationInput) (*model.User, error)
	ListUsers(ctx context.Context, query repository.Query) ([]*model.User, error)
}

// RegistrationController handles HTTP requests for the registration flow.
type RegistrationController struct {
	registrationService RegistrationService
}

// NewRegistrationController creates a new RegistrationController.
func NewRegistrationController(registrationService RegistrationService) *RegistrationController {
	return &RegistrationController{
		registrationService: registrationService,
	}
}

// RegisterRequest represents the request body for registering a user. The
// binding tags carry the form-validation contract: required fields, minimum
// lengths and email format are rejected before the workflow runs.
type RegisterRequest struct {
	Name           string `json:"name" binding:"required,min=2"`
	LastName       string `json:"last_name" binding:"required,min=2"`
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=6"`
	DocumentType   string `json:"document_type" binding:"required"`
	DocumentNumber string `json:"document_number" binding:"required"`
	Address        string `json:"address"`
	CountryCode    string `json:"country_code" binding:"required"`
	CountryName    string `json:"country_name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	CellPhone      string `json:"cell_phone"`
	EmergencyName  string `json:"emergency_name"`
	EmergencyPhone string `json:"emergency_phone"`
}

// UserResponse represents the response body for a registered user.
type UserResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Lastname       string `json:"lastname"`
	Email          string `json:"email"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	CreatedAt      string `json:"created_at"`
}

// Register handles the HTTP POST request for registering a new user.
func (rc *RegistrationController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := rc.registrationService.Register(c.Request.Context(), service.RegistrationInput{
		Name:           req.Name,
		LastName:       req.LastName,
		Email:          req.Email,
		Password:       req.Password,
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		Address:        req.Address,
		CountryCode:    req.CountryCode,
		CountryName:    req.CountryName,
		Phone:          req.Phone,
		CellPhone:      req.CellPhone,
		EmergencyName:  req.EmergencyName,
		EmergencyPhone: req.EmergencyPhone,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrDuplicateRegistration):
			c.JSON(http.StatusConflict, gin.H{"error": service.ErrDuplicateRegistration.Error()})
		case errors.Is(err, service.ErrDuplicateCheck):
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": service.ErrDuplicateCheck.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register user"})
		}
		return
	}

	c.JSON(http.StatusCreated, toUserResponse(user))
}

// ListUsersRequest represents the query parameters for listing users.
type ListUsersRequest struct {
	Limit int32  `form:"limit"`
	Token string `form:"token"`
}

// ListUsersResponse represents the response body for listing users.
type ListUsersResponse struct {
	Users         []UserResponse `json:"users"`
	NextPageToken string         `json:"next_page_token,omitempty"`
}

// ListUsers handles the HTTP GET request for listing registered users with
// pagination, newest first.
func (rc *RegistrationController) ListUsers(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	query := repository.NewQuery()
	if err := query.ApplyPagination(req.Limit, req.Token); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	users, err := rc.registrationService.ListUsers(c.Request.Context(), *query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list users"})
		return
	}

	var userResponses []UserResponse
	for _, user := range users {
		userResponses = append(userResponses, toUserResponse(user))
	}

	response := ListUsersResponse{
		Users: userResponses,
	}

	if len(users) > 0 {
		lastUser := users[len(users)-1]
		paginator := repository.Paginator{
			LastID:        lastUser.ID,
			LastCreatedAt: lastUser.CreatedAt,
		}
		response.NextPageToken = paginator.Encode()
	}

	c.JSON(http.StatusOK, response)
}

func toUserResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:             user.ID.String(),
		Name:           user.Name,
		Lastname:       user.Lastname,
		Email:          user.Email,
		DocumentType:   user.DocumentType,
		DocumentNumber: user.DocumentNumber,
		CreatedAt:      user.CreatedAt.Format(time.RFC3339),
	}
}
