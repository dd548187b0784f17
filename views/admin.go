package views

import (
	"bytes"
	"time"

	"github.com/a-h/templ"

	"github.com/eringen/mindtile/api"
)

// AdminLogin is the password prompt for the admin area.
func AdminLogin(cfg SiteConfig, showError bool, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeLayoutOpen(buf, cfg, "Admin | "+cfg.Name)
		buf.WriteString(`<section class="admin-login"><h1>Admin</h1>`)
		if showError {
			buf.WriteString(`<p class="form-error">Wrong password.</p>`)
		}
		buf.WriteString(`<form method="post" action="/admin/login/">`)
		writeCsrf(buf, csrfToken)
		buf.WriteString(`<input type="password" name="password" placeholder="Password" autofocus required/>`)
		buf.WriteString(`<button type="submit">Log in</button>`)
		buf.WriteString(`</form></section>`)
		writeLayoutClose(buf, cfg)
	})
}

// AdminDashboard lists every post, drafts included, with links into the
// builder and the settings form.
func AdminDashboard(cfg SiteConfig, posts []api.Post, message, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeLayoutOpen(buf, cfg, "Dashboard | "+cfg.Name)
		buf.WriteString(`<section class="admin-dashboard"><header class="admin-header"><h1>Posts</h1>`)
		buf.WriteString(`<form method="post" action="/admin/logout/" class="logout-form">`)
		writeCsrf(buf, csrfToken)
		buf.WriteString(`<button type="submit">Log out</button></form></header>`)
		if message != "" {
			buf.WriteString(`<p class="admin-message">` + esc(message) + `</p>`)
		}

		writeNewPostForm(buf, csrfToken)

		buf.WriteString(`<table class="post-table"><thead><tr>`)
		buf.WriteString(`<th>Title</th><th>Date</th><th>Likes</th><th>Status</th><th></th>`)
		buf.WriteString(`</tr></thead><tbody>`)
		for _, p := range posts {
			writeDashboardRow(buf, p, csrfToken)
		}
		buf.WriteString(`</tbody></table></section>`)
		writeLayoutClose(buf, cfg)
	})
}

func writeNewPostForm(buf *bytes.Buffer, csrfToken string) {
	buf.WriteString(`<form class="new-post-form" method="post" action="/admin/post/">`)
	writeCsrf(buf, csrfToken)
	buf.WriteString(`<input type="text" name="title" placeholder="New post title" required/>`)
	buf.WriteString(`<input type="date" name="date"/>`)
	buf.WriteString(`<select name="theme"><option value="default">default</option><option value="dark">dark</option><option value="paper">paper</option></select>`)
	buf.WriteString(`<button type="submit">Create</button>`)
	buf.WriteString(`</form>`)
}

func writeDashboardRow(buf *bytes.Buffer, p api.Post, csrfToken string) {
	status := "published"
	if at, ok := p.PublishedAt(); ok && at.After(time.Now()) {
		status = "scheduled"
	}
	id := PathEscape(p.ID)

	buf.WriteString(`<tr>`)
	buf.WriteString(`<td><a href="/admin/post/` + id + `/builder/">` + esc(p.Title) + `</a></td>`)
	buf.WriteString(`<td>` + esc(p.Date) + `</td>`)
	buf.WriteString(`<td>` + itoa(p.Likes) + `</td>`)
	buf.WriteString(`<td><span class="status status-` + status + `">` + status + `</span></td>`)
	buf.WriteString(`<td class="row-actions">`)
	buf.WriteString(`<a href="/admin/post/` + id + `/settings/">Settings</a> `)
	buf.WriteString(`<button type="button" hx-delete="/admin/post/` + id + `/"`)
	buf.WriteString(` hx-headers='{"X-CSRF-Token":"` + esc(csrfToken) + `"}'`)
	buf.WriteString(` hx-confirm="Delete this post and all of its blocks?"`)
	buf.WriteString(` hx-target="body">Delete</button>`)
	buf.WriteString(`</td></tr>`)
}

// PostSettings is the metadata form for one post: title, description,
// tags, date and theme. Block content is edited in the builder.
func PostSettings(cfg SiteConfig, post api.Post, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeLayoutOpen(buf, cfg, "Settings | "+cfg.Name)
		id := PathEscape(post.ID)
		buf.WriteString(`<section class="post-settings"><h1>Settings</h1>`)
		buf.WriteString(`<nav class="admin-nav"><a href="/admin/">Dashboard</a> <a href="/admin/post/` + id + `/builder/">Builder</a></nav>`)
		buf.WriteString(`<form method="post" action="/admin/post/` + id + `/settings/">`)
		writeCsrf(buf, csrfToken)

		buf.WriteString(`<label>Title<input type="text" name="title" value="` + esc(post.Title) + `" required/></label>`)
		buf.WriteString(`<label>Description<textarea name="content" rows="3">` + esc(post.Content) + `</textarea></label>`)
		buf.WriteString(`<label>Tags<input type="text" name="tags" value="` + esc(JoinTags(post.Tags)) + `" placeholder="go, web"/></label>`)
		buf.WriteString(`<label>Date<input type="date" name="date" value="` + esc(post.Date) + `"/></label>`)

		theme := post.Theme()
		buf.WriteString(`<label>Theme<select name="theme">`)
		for _, t := range []string{"default", "dark", "paper"} {
			buf.WriteString(`<option value="` + t + `"`)
			if t == theme {
				buf.WriteString(` selected`)
			}
			buf.WriteString(`>` + t + `</option>`)
		}
		buf.WriteString(`</select></label>`)

		buf.WriteString(`<button type="submit">Save settings</button>`)
		buf.WriteString(`</form></section>`)
		writeLayoutClose(buf, cfg)
	})
}

func writeCsrf(buf *bytes.Buffer, token string) {
	buf.WriteString(`<input type="hidden" name="_csrf" value="` + esc(token) + `"/>`)
}
