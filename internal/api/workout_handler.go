package api

import (
	"errors"
	"net/http"

	"treinoapp/fitness-tracker/internal/catalog"
	"treinoapp/fitness-tracker/internal/repository"
	"treinoapp/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// WorkoutHandler serves the workout builder save path and the read path.
type WorkoutHandler struct {
	workoutService service.WorkoutService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- Request/Response Structs ---

// WorkoutExerciseRequest mirrors the exercise configuration form. Sets
// and reps are pointers so an omitted field picks up the form's default
// while an explicitly empty one fails validation.
type WorkoutExerciseRequest struct {
	ExerciseID    string  `json:"exerciseId" binding:"required"`
	Sets          *string `json:"sets"`
	Reps          *string `json:"reps"`
	InitialWeight string  `json:"initialWeight"`
	FinalWeight   string  `json:"finalWeight"`
}

type CreateWorkoutRequest struct {
	Name        string                   `json:"name" binding:"required"`
	Description string                   `json:"description" binding:"required"`
	Days        []string                 `json:"days" binding:"required"`
	Exercises   []WorkoutExerciseRequest `json:"exercises" binding:"required"`
}

// CreateWorkout godoc
// @Summary Create a workout
// @Description Assembles the builder draft from the request and persists
// it as one workout document.
// @Tags Workouts
// @Accept json
// @Produce json
// @Param workout body CreateWorkoutRequest true "Workout definition"
// @Success 201 {object} domain.Workout
// @Failure 400 {object} gin.H "Validation failure"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Security BearerAuth
// @Router /workouts [post]
func (h *WorkoutHandler) CreateWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "No authenticated user")
		return
	}

	var req CreateWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Name, description, days and exercises are required")
		return
	}

	draft := &service.Draft{
		Name:        req.Name,
		Description: req.Description,
	}
	if err := draft.SetDays(req.Days); err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	for _, exReq := range req.Exercises {
		ex, ok := catalog.FindExercise(exReq.ExerciseID)
		if !ok {
			abortWithError(c, http.StatusBadRequest, "Unknown exercise: "+exReq.ExerciseID)
			return
		}
		cfg, err := service.ParseExerciseConfig(service.ExerciseInput{
			Sets:          valueOrDefault(exReq.Sets, service.DefaultSetsInput),
			Reps:          valueOrDefault(exReq.Reps, service.DefaultRepsInput),
			InitialWeight: exReq.InitialWeight,
			FinalWeight:   exReq.FinalWeight,
		})
		if err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		draft.AddExercise(ex, cfg)
	}

	workout, err := h.workoutService.Create(c.Request.Context(), userID, draft)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameTooShort),
			errors.Is(err, service.ErrDescriptionTooShort),
			errors.Is(err, service.ErrNoDaysSelected),
			errors.Is(err, service.ErrNoExercises):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not save the workout. Please try again.")
		}
		return
	}

	c.JSON(http.StatusCreated, workout)
}

// ListWorkouts godoc
// @Summary List the current user's workouts
// @Tags Workouts
// @Produce json
// @Success 200 {array} domain.Workout
// @Failure 500 {object} gin.H "Internal Server Error"
// @Security BearerAuth
// @Router /workouts [get]
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "No authenticated user")
		return
	}

	workouts, err := h.workoutService.List(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load workouts. Please try again.")
		return
	}
	c.JSON(http.StatusOK, workouts)
}

// GetWorkout godoc
// @Summary Fetch a single workout
// @Tags Workouts
// @Produce json
// @Param id path string true "Workout ID"
// @Success 200 {object} domain.Workout
// @Failure 404 {object} gin.H "Workout not found"
// @Security BearerAuth
// @Router /workouts/{id} [get]
func (h *WorkoutHandler) GetWorkout(c *gin.Context) {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "No authenticated user")
		return
	}

	workout, err := h.workoutService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "Workout not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Could not load the workout. Please try again.")
		}
		return
	}
	c.JSON(http.StatusOK, workout)
}

func valueOrDefault(v *string, def string) string {
	if v == nil {
		return def
	}
	return *v
}
