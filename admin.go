package mindtile

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/mindtile/api"
	"github.com/eringen/mindtile/block"
	"github.com/eringen/mindtile/views"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, views.AdminLogin(a.site, false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	if !a.loginLimiter.Allow(c.RealIP()) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	return Render(c, views.AdminLogin(a.site, true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminCreate(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Title+is+required.")
	}
	date := strings.TrimSpace(c.FormValue("date"))
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
		}
	}

	id, ok := a.API.CreatePost(c.Request().Context(), api.PostInput{
		Title:   title,
		Content: c.FormValue("content"),
		Theme:   c.FormValue("theme"),
		Date:    date,
	})
	if !ok {
		return a.renderAdminDashboard(c, "Could not create the post. The content API is unreachable.")
	}

	a.Cache.Invalidate()
	if id != "" {
		return c.Redirect(http.StatusSeeOther, "/admin/post/"+id+"/builder/")
	}
	return a.renderAdminDashboard(c, "created")
}

func (a *App) handleAdminSettings(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	post := a.API.Post(c.Request().Context(), c.Param("id"))
	if post == nil {
		return c.NoContent(http.StatusNotFound)
	}
	return Render(c, views.PostSettings(a.site, *post, CsrfToken(c)))
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	ctx := c.Request().Context()
	id := c.Param("id")
	post := a.API.Post(ctx, id)
	if post == nil {
		return c.NoContent(http.StatusNotFound)
	}

	title := strings.TrimSpace(c.FormValue("title"))
	if title == "" {
		title = post.Title
	}
	date := strings.TrimSpace(c.FormValue("date"))
	if date != "" {
		if _, err := time.Parse("2006-01-02", date); err != nil {
			return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
		}
	}
	tags := strings.Split(c.FormValue("tags"), ",")
	for i := range tags {
		tags[i] = strings.TrimSpace(tags[i])
	}
	tags = FilterEmpty(tags)

	props := post.Props
	if props == nil {
		props = map[string]any{}
	}
	if theme := c.FormValue("theme"); theme != "" {
		props["theme"] = theme
	}

	if !a.API.UpdatePost(ctx, id, api.PostInput{
		Title:   title,
		Content: c.FormValue("content"),
		Tags:    tags,
		Date:    date,
		Props:   props,
	}) {
		return a.renderAdminDashboard(c, "Could not save the post. The content API is unreachable.")
	}

	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id := c.Param("id")
	if !a.API.DeletePost(c.Request().Context(), id) {
		return a.renderAdminDashboard(c, "Could not delete the post. The content API is unreachable.")
	}
	a.editors.drop(id)
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	posts := a.API.AllPosts(c.Request().Context())
	return Render(c, views.AdminDashboard(a.site, posts, msg, CsrfToken(c)))
}

// --- Block builder ---

// handleBuilder opens the drag-and-drop builder for a post. The canvas
// document lives server-side in an editor session; the page only reports
// gestures back.
func (a *App) handleBuilder(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	id := c.Param("id")
	post := a.API.Post(c.Request().Context(), id)
	if post == nil {
		return RenderStatus(c, http.StatusNotFound, views.NotFound(a.site))
	}

	sess := a.editors.open(id, block.FromBlocks(post.Blocks))
	var elements []block.Element
	sess.withDoc(func(ctrl *block.Controller) {
		elements = ctrl.Document().Elements()
	})
	return Render(c, views.Builder(a.site, *post, elements, CsrfToken(c)))
}

// handleBuilderDrag is the end-of-gesture endpoint. The page posts the drag
// source (a palette tag or canvas element id) and the drop target (element
// id, the canvas, or the trash); the controller decides what that means.
func (a *App) handleBuilderDrag(c echo.Context) error {
	if !IsAdmin(c) {
		return c.NoContent(http.StatusForbidden)
	}
	id := c.Param("id")
	sess, ok := a.editors.get(id)
	if !ok {
		// Session swept; a full reload reopens it from the API.
		c.Response().Header().Set("HX-Refresh", "true")
		return c.NoContent(http.StatusConflict)
	}

	var elements []block.Element
	sess.withDoc(func(ctrl *block.Controller) {
		ctrl.DragEnd(c.FormValue("source"), c.FormValue("target"))
		elements = ctrl.Document().Elements()
	})
	return Render(c, views.BuilderCanvas(id, elements, CsrfToken(c)))
}

// handleBuilderElement applies an edit form post to one canvas element and
// re-renders its card.
func (a *App) handleBuilderElement(c echo.Context) error {
	if !IsAdmin(c) {
		return c.NoContent(http.StatusForbidden)
	}
	id := c.Param("id")
	elementID := c.Param("element")
	sess, ok := a.editors.get(id)
	if !ok {
		c.Response().Header().Set("HX-Refresh", "true")
		return c.NoContent(http.StatusConflict)
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}

	var (
		el    block.Element
		found bool
	)
	sess.withDoc(func(ctrl *block.Controller) {
		doc := ctrl.Document()
		current, ok := doc.ByID(elementID)
		if !ok {
			return
		}
		doc.Update(elementID, block.ApplyForm(current, c.Request().PostForm))
		el, found = doc.ByID(elementID)
	})
	if !found {
		return c.NoContent(http.StatusNotFound)
	}
	return Render(c, views.BuilderElement(id, el, CsrfToken(c)))
}

// handleBuilderSave pushes the session's document to the API as a full
// block-list replace. The busy flag rejects a save that arrives while the
// previous one is still in flight.
func (a *App) handleBuilderSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.NoContent(http.StatusForbidden)
	}
	id := c.Param("id")
	sess, ok := a.editors.get(id)
	if !ok {
		c.Response().Header().Set("HX-Refresh", "true")
		return c.NoContent(http.StatusConflict)
	}
	if !sess.beginSave() {
		return RenderStatus(c, http.StatusConflict, views.BuilderSaveStatus(false, "A save is already in progress."))
	}
	defer sess.endSave()

	var blocks []block.Block
	sess.withDoc(func(ctrl *block.Controller) {
		blocks = ctrl.Document().Blocks(id)
	})

	if !a.API.SaveBlocks(c.Request().Context(), id, blocks) {
		return RenderStatus(c, http.StatusBadGateway, views.BuilderSaveStatus(false, "Saving failed. The content API is unreachable."))
	}
	a.Cache.Invalidate()
	return Render(c, views.BuilderSaveStatus(true, "Saved."))
}
