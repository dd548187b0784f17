package mindtile

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eringen/mindtile/api"
	"github.com/eringen/mindtile/guard"
	"github.com/eringen/mindtile/views"
)

func (a *App) handleHome(c echo.Context) error {
	ctx := c.Request().Context()
	tag := c.QueryParam("tag")
	posts := a.Cache.ListPosts(ctx, tag)
	tags := a.Cache.ListTags(ctx)
	if isHX(c) {
		switch c.QueryParam("partial") {
		case "blog":
			return Render(c, views.BlogSection(posts, tag, tags))
		case "home":
			return Render(c, views.HomePartial(a.site, posts, tag, tags))
		}
	}
	return Render(c, views.Home(a.site, posts, tag, tags))
}

func (a *App) handlePost(c echo.Context) error {
	ctx := c.Request().Context()
	post := a.API.Post(ctx, c.Param("id"))
	if post == nil {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site))
	}
	visitor := a.Guard.Visitor(c.RealIP(), c.Request().UserAgent())
	liked := a.Guard.Seen(visitor, guard.LikeKey(post.ID))
	if isHX(c) && c.QueryParam("partial") == "post" {
		return Render(c, views.PostPartial(a.site, *post, liked))
	}
	return Render(c, views.Post(a.site, *post, liked))
}

// handleLike flips a visitor's like on a post. The guard keeps one honest
// browser from counting twice; the actual counter lives on the API side.
func (a *App) handleLike(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")
	visitor := a.Guard.Visitor(c.RealIP(), c.Request().UserAgent())
	key := guard.LikeKey(id)

	switch c.FormValue("action") {
	case "remove":
		if a.Guard.Unmark(visitor, key) {
			if !a.API.Like(ctx, id, api.LikeRemove) {
				a.Guard.Mark(visitor, key)
			}
		}
	default:
		if a.Guard.Mark(visitor, key) {
			if !a.API.Like(ctx, id, api.LikeAdd) {
				a.Guard.Unmark(visitor, key)
			}
		}
	}

	a.Cache.Invalidate()
	return c.Redirect(http.StatusSeeOther, "/blog/"+id+"/")
}

// handleVote records a vote on a voting block. One vote per visitor per
// block; a failed API push rolls the guard mark back so a retry can count.
func (a *App) handleVote(c echo.Context) error {
	ctx := c.Request().Context()
	postID := c.Param("id")
	blockID := c.FormValue("block")
	optionID := c.FormValue("option")
	if blockID == "" || optionID == "" {
		return c.Redirect(http.StatusSeeOther, "/blog/"+postID+"/")
	}

	visitor := a.Guard.Visitor(c.RealIP(), c.Request().UserAgent())
	key := guard.VoteKey(postID, blockID)
	if a.Guard.Mark(visitor, key) {
		if !a.API.VoteOnBlock(ctx, postID, blockID, optionID) {
			a.Guard.Unmark(visitor, key)
		}
	}

	return c.Redirect(http.StatusSeeOther, "/blog/"+postID+"/#block-"+blockID)
}

func (a *App) handleFeed(c echo.Context) error {
	posts := a.Cache.ListPosts(c.Request().Context(), "")
	return a.renderRSS(c, posts)
}

func handleBlogRedirect(c echo.Context) error {
	return c.Redirect(http.StatusMovedPermanently, "/")
}

func (a *App) handleRobots(c echo.Context) error {
	return c.String(http.StatusOK, "User-agent: *\nAllow: /\nDisallow: /admin/\n")
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, views.NotFound(a.site))
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, views.ServerError(a.site))
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
