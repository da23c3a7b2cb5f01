package api

import (
	"errors"
	"io"
	"net/http"

	"treinoapp/fitness-tracker/internal/repository"
	"treinoapp/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the profile read path, the onboarding commit and
// the photo upload step.
type ProfileHandler struct {
	profileService    service.ProfileService
	onboardingService service.OnboardingService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService, onboardingService service.OnboardingService) *ProfileHandler {
	return &ProfileHandler{
		profileService:    profileService,
		onboardingService: onboardingService,
	}
}

// OnboardingRequest carries the raw wizard inputs. Age, height and
// weight arrive as text, exactly as typed into the numeric fields.
type OnboardingRequest struct {
	Gender string `json:"gender" binding:"required"`
	Age    string `json:"age" binding:"required"`
	Height string `json:"height" binding:"required"`
	Weight string `json:"weight" binding:"required"`
}

type PhotoResponse struct {
	PhotoURL string `json:"photoUrl"`
}

// GetProfile godoc
// @Summary Fetch the current user's profile
// @Tags Profile
// @Produce json
// @Success 200 {object} UserResponse
// @Failure 404 {object} gin.H "Profile not found"
// @Security BearerAuth
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "No authenticated user")
		return
	}

	user, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "Profile not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not load the profile. Please try again.")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// CompleteOnboarding godoc
// @Summary Commit the onboarding wizard
// @Description Runs the collected inputs through the onboarding steps in
// order and merges the result into the profile in a single update.
// @Tags Profile
// @Accept json
// @Produce json
// @Param fields body OnboardingRequest true "Collected onboarding fields"
// @Success 200 {object} UserResponse
// @Failure 400 {object} gin.H "Validation failure"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Security BearerAuth
// @Router /profile/onboarding [put]
func (h *ProfileHandler) CompleteOnboarding(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "No authenticated user")
		return
	}

	var req OnboardingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Gender, age, height and weight are required")
		return
	}

	// Replay the wizard: each step validates one input and enlarges the
	// accumulator.
	var acc service.Accumulator
	steps := []struct {
		apply func(service.Accumulator, string) (service.Accumulator, error)
		input string
	}{
		{service.ApplyGender, req.Gender},
		{service.ApplyAge, req.Age},
		{service.ApplyHeight, req.Height},
		{service.ApplyWeight, req.Weight},
	}
	for _, step := range steps {
		acc, err = step.apply(acc, step.input)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	user, err := h.onboardingService.Complete(c.Request.Context(), userID, acc)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "Profile not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not save your data. Please try again.")
		}
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UploadPhoto godoc
// @Summary Upload the profile photo
// @Description Stores the photo in the blob store and merges its
// download URL into the profile document.
// @Tags Profile
// @Accept mpfd
// @Produce json
// @Param photo formData file true "Profile photo (JPEG or PNG)"
// @Success 200 {object} PhotoResponse
// @Failure 400 {object} gin.H "Missing or invalid photo"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Security BearerAuth
// @Router /profile/photo [post]
func (h *ProfileHandler) UploadPhoto(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "No authenticated user")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "A photo file is required")
		return
	}
	if fileHeader.Size > service.MaxPhotoSize {
		abortWithError(c, http.StatusBadRequest, "Photo exceeds the maximum allowed size")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Could not read the photo file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, service.MaxPhotoSize+1))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Could not read the photo file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	photoURL, err := h.profileService.UploadPhoto(c.Request.Context(), userID, data, contentType)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyPhoto),
			errors.Is(err, service.ErrPhotoTooLarge),
			errors.Is(err, service.ErrUnsupportedPhoto):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not save the photo. Please try again.")
		}
		return
	}

	c.JSON(http.StatusOK, PhotoResponse{PhotoURL: photoURL})
}
