package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/socialdesk/socialdesk-api/internal/middleware"
	"github.com/socialdesk/socialdesk-api/internal/platform"
	"github.com/socialdesk/socialdesk-api/internal/services"
	"github.com/socialdesk/socialdesk-api/pkg/dto"
)

// PostsHandler serves page-scoped post reads and publishing. Every
// page-scoped route consults the access service before touching content.
type PostsHandler struct {
	postService   PostServiceInterface
	accessService AccessServiceInterface
}

func NewPostsHandler(postService PostServiceInterface, accessService AccessServiceInterface) *PostsHandler {
	return &PostsHandler{
		postService:   postService,
		accessService: accessService,
	}
}

// platformError maps an upstream platform failure to 502 with the platform's
// own message; anything else stays a 500.
func platformError(c *drift.Context, err error, fallback string) {
	var perr *platform.Error
	if errors.As(err, &perr) {
		c.BadGateway(perr.Error())
		return
	}
	c.InternalServerError(fallback)
}

func (h *PostsHandler) List(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}
	pageID, ok := pageIDParam(c)
	if !ok {
		return
	}

	if err := h.accessService.RequirePageAccess(context.Background(), middleware.Actor(c), pageID); err != nil {
		c.Forbidden("access to this page is denied")
		return
	}

	query, ok := postQuery(c)
	if !ok {
		return
	}

	posts, err := h.postService.GetPosts(context.Background(), tenantID, pageID, query)
	if err != nil {
		if errors.Is(err, services.ErrPageNotFound) {
			c.NotFound("page not found")
			return
		}
		platformError(c, err, "failed to get posts")
		return
	}

	_ = c.JSON(200, posts)
}

// ListAll aggregates posts across every page the tenant owns. Pages whose
// refresh failed are reported alongside the successful results. The window
// parameters are startDate/endDate here, not the per-page since/until.
func (h *PostsHandler) ListAll(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	since, ok := timeQuery(c, "startDate")
	if !ok {
		return
	}
	until, ok := timeQuery(c, "endDate")
	if !ok {
		return
	}
	query := services.PostQuery{
		Since:   since,
		Until:   until,
		Limit:   limitQuery(c),
		Refresh: refreshQuery(c),
	}

	posts, failures, err := h.postService.GetAllPosts(context.Background(), tenantID, c.QueryParam("platform"), query)
	if err != nil {
		c.InternalServerError("failed to get posts")
		return
	}

	response := dto.AggregatedPostsResponse{Posts: posts}
	for _, f := range failures {
		response.Errors = append(response.Errors, dto.PageError{
			PageID:   f.PageID.String(),
			PageName: f.PageName,
			Error:    f.Error,
		})
	}
	_ = c.JSON(200, response)
}

func (h *PostsHandler) Get(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}
	pageID, ok := pageIDParam(c)
	if !ok {
		return
	}

	postID, err := uuid.Parse(c.Param("postId"))
	if err != nil {
		c.BadRequest("invalid post id")
		return
	}

	if err := h.accessService.RequirePageAccess(context.Background(), middleware.Actor(c), pageID); err != nil {
		c.Forbidden("access to this page is denied")
		return
	}

	post, err := h.postService.GetPostByID(context.Background(), tenantID, pageID, postID, refreshQuery(c))
	if err != nil {
		if errors.Is(err, services.ErrPageNotFound) || errors.Is(err, services.ErrPostNotFound) {
			c.NotFound("post not found")
			return
		}
		c.InternalServerError("failed to get post")
		return
	}

	_ = c.JSON(200, post)
}

// Create publishes a post; the target page travels in the body.
func (h *PostsHandler) Create(c *drift.Context) {
	tenantID, ok := tenantScope(c)
	if !ok {
		return
	}

	var req dto.CreatePostRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.SocialPageID == uuid.Nil {
		c.BadRequest("social_page_id is required")
		return
	}

	if err := h.accessService.RequirePageAccess(context.Background(), middleware.Actor(c), req.SocialPageID); err != nil {
		c.Forbidden("access to this page is denied")
		return
	}

	post, err := h.postService.CreatePost(context.Background(), tenantID, req.SocialPageID, services.CreatePostParams{
		Platform:  req.Platform,
		Content:   req.Content,
		MediaURLs: req.MediaURLs,
	})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPageNotFound):
			c.NotFound("page not found")
		case errors.Is(err, services.ErrPlatformMismatch):
			c.BadRequest("this platform does not support posts")
		case errors.Is(err, services.ErrPagePlatformMismatch):
			c.BadRequest("platform does not match this page")
		case errors.Is(err, services.ErrMediaRequired):
			c.BadRequest("this platform requires at least one media url")
		case errors.Is(err, services.ErrEmptyContent):
			c.BadRequest("content must not be empty")
		default:
			platformError(c, err, "failed to create post")
		}
		return
	}

	_ = c.JSON(201, post)
}
