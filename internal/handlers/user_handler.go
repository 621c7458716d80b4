package handlers

import (
	"net/http"

	"github.com/Aiionteam/app.aiion.site/internal/models"
	"github.com/Aiionteam/app.aiion.site/internal/services"

	"github.com/gin-gonic/gin"
)

// UserHandler serves /api/users.
type UserHandler struct {
	users *services.UserService
}

func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

type findByEmailProviderRequest struct {
	Email    string `json:"email"`
	Provider string `json:"provider"`
}

func badRequest(c *gin.Context, msg string) {
	writeResult(c, &services.Result{Code: http.StatusBadRequest, Message: msg})
}

// FindByID godoc
//
//	@Summary	Get user
//	@Tags		Users
//	@Produce	json
//	@Param		id	path		int	true	"User ID"
//	@Success	200	{object}	services.Result{data=models.User}
//	@Failure	404	{object}	services.Result
//	@Router		/api/users/{id} [get]
func (h *UserHandler) FindByID(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		badRequest(c, "invalid user id")
		return
	}
	writeResult(c, h.users.FindByID(c.Request.Context(), id))
}

// FindAll godoc
//
//	@Summary	List users
//	@Tags		Users
//	@Produce	json
//	@Param		page		query		int		false	"Page number"
//	@Param		page_size	query		int		false	"Page size"
//	@Param		search		query		string	false	"Search by name or email"
//	@Success	200			{object}	services.Result
//	@Router		/api/users [get]
func (h *UserHandler) FindAll(c *gin.Context) {
	writeResult(c, h.users.FindAll(c.Request.Context(), paginationFromQuery(c)))
}

// Save godoc
//
//	@Summary	Create user
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		user	body		models.User	true	"User"
//	@Success	200		{object}	services.Result{data=models.User}
//	@Failure	409		{object}	services.Result
//	@Router		/api/users [post]
func (h *UserHandler) Save(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	writeResult(c, h.users.Save(c.Request.Context(), &user))
}

func (h *UserHandler) SaveAll(c *gin.Context) {
	var users []models.User
	if err := c.ShouldBindJSON(&users); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	writeResult(c, h.users.SaveAll(c.Request.Context(), users))
}

func (h *UserHandler) Update(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		badRequest(c, "invalid user id")
		return
	}
	var patch models.User
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	writeResult(c, h.users.Update(c.Request.Context(), id, &patch))
}

func (h *UserHandler) Delete(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		badRequest(c, "invalid user id")
		return
	}
	writeResult(c, h.users.Delete(c.Request.Context(), id))
}

// FindByEmailAndProvider is the lookup the remote user directory calls.
//
//	@Summary	Find user by email and provider
//	@Tags		Users
//	@Accept		json
//	@Produce	json
//	@Param		request	body		object{email=string,provider=string}	true	"Lookup key"
//	@Success	200		{object}	services.Result{data=models.User}
//	@Failure	404		{object}	services.Result
//	@Router		/api/users/find-by-email-provider [post]
func (h *UserHandler) FindByEmailAndProvider(c *gin.Context) {
	var req findByEmailProviderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	writeResult(c, h.users.Lookup(c.Request.Context(), req.Email, req.Provider))
}
