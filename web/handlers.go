package web

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pevans/newsnow/headlines"
	"github.com/pevans/newsnow/newsapi"
	"github.com/pevans/newsnow/render"
)

// HeadlinesResponse is the body of GET /api/v1/headlines.
type HeadlinesResponse struct {
	State headlines.QueryState `json:"state"`
	View  render.Snapshot      `json:"view"`
}

// StateResponse acknowledges a UI event with the resulting query state.
type StateResponse struct {
	State         headlines.QueryState `json:"state"`
	SearchPending bool                 `json:"search_pending,omitempty"`
}

// CatalogResponse lists the accepted filter values.
type CatalogResponse struct {
	Countries  []newsapi.Country `json:"countries"`
	Categories []string          `json:"categories"`
}

type countryRequest struct {
	Country string `json:"country" binding:"required"`
}

type categoryRequest struct {
	Category *string `json:"category" binding:"required"`
}

type searchRequest struct {
	Q *string `json:"q" binding:"required"`
}

type pageRequest struct {
	Page *int `json:"page" binding:"required"`
}

type autoRefreshRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// errorResponse creates a standardized error response.
func errorResponse(code, message string) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}

// HandlePage handles GET /.
func (s *Server) HandlePage(ctx *gin.Context) {
	page := render.NewPage(s.view.Snapshot(), s.controller.State())

	ctx.Header("Content-Type", "text/html; charset=utf-8")
	ctx.Status(http.StatusOK)
	if err := render.WriteHTML(ctx.Writer, page); err != nil {
		s.logger.Error().Err(err).Msg("failed to render page")
	}
}

// HandleGetHeadlines handles GET /api/v1/headlines.
func (s *Server) HandleGetHeadlines(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, HeadlinesResponse{
		State: s.controller.State(),
		View:  s.view.Snapshot(),
	})
}

// HandleGetCatalog handles GET /api/v1/catalog.
func (s *Server) HandleGetCatalog(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, CatalogResponse{
		Countries:  newsapi.Countries,
		Categories: newsapi.Categories,
	})
}

// HandleSetCountry handles PUT /api/v1/query/country.
func (s *Server) HandleSetCountry(ctx *gin.Context) {
	var body countryRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("bad_request", err.Error()))
		return
	}

	if err := s.controller.SetCountry(body.Country); err != nil {
		s.writeControllerError(ctx, err)
		return
	}

	s.accepted(ctx)
}

// HandleSetCategory handles PUT /api/v1/query/category. An empty category
// clears the filter.
func (s *Server) HandleSetCategory(ctx *gin.Context) {
	var body categoryRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("bad_request", err.Error()))
		return
	}

	if err := s.controller.SetCategory(*body.Category); err != nil {
		s.writeControllerError(ctx, err)
		return
	}

	s.accepted(ctx)
}

// HandleSetSearch handles PUT /api/v1/query/search. The update is debounced,
// so the returned state may not include it yet.
func (s *Server) HandleSetSearch(ctx *gin.Context) {
	var body searchRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("bad_request", err.Error()))
		return
	}

	s.controller.SetSearchText(*body.Q)
	s.accepted(ctx)
}

// HandleSetPage handles PUT /api/v1/query/page.
func (s *Server) HandleSetPage(ctx *gin.Context) {
	var body pageRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("bad_request", err.Error()))
		return
	}

	if err := s.controller.GoToPage(*body.Page); err != nil {
		s.writeControllerError(ctx, err)
		return
	}

	s.accepted(ctx)
}

// HandleRefresh handles POST /api/v1/refresh.
func (s *Server) HandleRefresh(ctx *gin.Context) {
	s.controller.ManualRefresh()
	s.accepted(ctx)
}

// HandleSetAutoRefresh handles PUT /api/v1/auto-refresh.
func (s *Server) HandleSetAutoRefresh(ctx *gin.Context) {
	var body autoRefreshRequest
	if err := ctx.ShouldBindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("bad_request", err.Error()))
		return
	}

	s.controller.SetAutoRefresh(*body.Enabled)
	s.accepted(ctx)
}

func (s *Server) accepted(ctx *gin.Context) {
	ctx.JSON(http.StatusAccepted, StateResponse{
		State:         s.controller.State(),
		SearchPending: s.controller.SearchPending(),
	})
}

// writeControllerError maps controller rejections onto HTTP statuses.
func (s *Server) writeControllerError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, headlines.ErrUnknownCountry), errors.Is(err, headlines.ErrUnknownCategory):
		ctx.JSON(http.StatusBadRequest, errorResponse("validation_error", err.Error()))
	case errors.Is(err, headlines.ErrPageOutOfRange):
		ctx.JSON(http.StatusConflict, errorResponse("page_out_of_range", err.Error()))
	default:
		ctx.JSON(http.StatusInternalServerError, errorResponse("internal_error", err.Error()))
	}
}
