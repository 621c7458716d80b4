package handlers

import (
	"github.com/Aiionteam/app.aiion.site/internal/models"
	"github.com/Aiionteam/app.aiion.site/internal/services"

	"github.com/gin-gonic/gin"
)

// DiaryHandler serves /api/diaries.
type DiaryHandler struct {
	diaries *services.DiaryService
}

func NewDiaryHandler(diaries *services.DiaryService) *DiaryHandler {
	return &DiaryHandler{diaries: diaries}
}

func (h *DiaryHandler) FindByID(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		badRequest(c, "invalid diary id")
		return
	}
	writeResult(c, h.diaries.FindByID(c.Request.Context(), id))
}

// FindAll godoc
//
//	@Summary	List diaries
//	@Tags		Diaries
//	@Produce	json
//	@Param		page		query		int		false	"Page number"
//	@Param		page_size	query		int		false	"Page size"
//	@Param		search		query		string	false	"Search by title"
//	@Success	200			{object}	services.Result
//	@Router		/api/diaries [get]
func (h *DiaryHandler) FindAll(c *gin.Context) {
	writeResult(c, h.diaries.FindAll(c.Request.Context(), paginationFromQuery(c)))
}

// FindByUserID godoc
//
//	@Summary	List a user's diaries
//	@Tags		Diaries
//	@Produce	json
//	@Param		userId	path		int	true	"User ID"
//	@Success	200		{object}	services.Result{data=[]models.Diary}
//	@Router		/api/diaries/user/{userId} [get]
func (h *DiaryHandler) FindByUserID(c *gin.Context) {
	userID := parseID(c, "userId")
	if userID == 0 {
		badRequest(c, "invalid user id")
		return
	}
	writeResult(c, h.diaries.FindByUserID(c.Request.Context(), userID))
}

// Save godoc
//
//	@Summary	Create diary
//	@Tags		Diaries
//	@Accept		json
//	@Produce	json
//	@Param		diary	body		models.Diary	true	"Diary"
//	@Success	200		{object}	services.Result{data=models.Diary}
//	@Failure	400		{object}	services.Result
//	@Router		/api/diaries [post]
func (h *DiaryHandler) Save(c *gin.Context) {
	var diary models.Diary
	if err := c.ShouldBindJSON(&diary); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	writeResult(c, h.diaries.Save(c.Request.Context(), &diary))
}

func (h *DiaryHandler) Update(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		badRequest(c, "invalid diary id")
		return
	}
	var patch models.Diary
	if err := c.ShouldBindJSON(&patch); err != nil {
		badRequest(c, "invalid request body: "+err.Error())
		return
	}
	writeResult(c, h.diaries.Update(c.Request.Context(), id, &patch))
}

func (h *DiaryHandler) Delete(c *gin.Context) {
	id := parseID(c, "id")
	if id == 0 {
		badRequest(c, "invalid diary id")
		return
	}
	writeResult(c, h.diaries.Delete(c.Request.Context(), id))
}
