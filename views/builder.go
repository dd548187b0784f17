package views

import (
	"bytes"

	"github.com/a-h/templ"

	"github.com/eringen/mindtile/api"
	"github.com/eringen/mindtile/block"
)

// Builder is the drag-and-drop block editor page. The canvas document lives
// on the server; the page reports gestures to the drag endpoint and swaps
// the canvas with whatever comes back.
func Builder(cfg SiteConfig, post api.Post, elements []block.Element, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeLayoutOpen(buf, cfg, "Builder | "+cfg.Name)
		id := PathEscape(post.ID)

		buf.WriteString(`<section class="builder">`)
		buf.WriteString(`<header class="builder-header"><h1>` + esc(post.Title) + `</h1>`)
		buf.WriteString(`<nav class="admin-nav"><a href="/admin/">Dashboard</a> `)
		buf.WriteString(`<a href="/admin/post/` + id + `/settings/">Settings</a> `)
		buf.WriteString(`<a href="/blog/` + id + `/" target="_blank">View</a></nav>`)
		buf.WriteString(`<span id="save-status" class="save-status"></span>`)
		buf.WriteString(`<button class="save-button" hx-post="/admin/post/` + id + `/builder/save/"`)
		buf.WriteString(` hx-vals='{"_csrf":"` + esc(csrfToken) + `"}'`)
		buf.WriteString(` hx-target="#save-status" hx-swap="innerHTML" hx-disabled-elt="this">Save</button>`)
		buf.WriteString(`</header>`)

		buf.WriteString(`<div class="builder-body">`)
		writePalette(buf, post.ID, csrfToken)
		writeCanvas(buf, post.ID, elements, csrfToken)
		buf.WriteString(`<div id="builder-trash" class="builder-trash" data-target="` + block.TrashTarget + `">Drop here to delete</div>`)
		buf.WriteString(`</div>`)

		writeDragScript(buf, post.ID, csrfToken)
		buf.WriteString(`</section>`)
		writeLayoutClose(buf, cfg)
	})
}

// BuilderCanvas is the canvas partial the drag endpoint responds with.
func BuilderCanvas(postID string, elements []block.Element, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeCanvas(buf, postID, elements, csrfToken)
	})
}

// BuilderElement is a single element card, swapped in after an edit post.
func BuilderElement(postID string, el block.Element, csrfToken string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		writeElementCard(buf, postID, el, csrfToken)
	})
}

// BuilderSaveStatus is the save feedback snippet.
func BuilderSaveStatus(ok bool, message string) templ.Component {
	return component(func(buf *bytes.Buffer) {
		class := "save-ok"
		if !ok {
			class = "save-failed"
		}
		buf.WriteString(`<span class="` + class + `">` + esc(message) + `</span>`)
	})
}

func writePalette(buf *bytes.Buffer, postID, csrfToken string) {
	dragURL := "/admin/post/" + PathEscape(postID) + "/builder/drag/"
	buf.WriteString(`<aside class="builder-palette">`)
	for _, def := range block.All() {
		tag := string(def.Type)
		// Click appends to the canvas; dragging picks the drop position.
		buf.WriteString(`<button type="button" class="palette-item" draggable="true" data-source="` + esc(tag) + `"`)
		buf.WriteString(` hx-post="` + esc(dragURL) + `"`)
		buf.WriteString(` hx-vals='{"source":"` + esc(tag) + `","target":"` + block.CanvasTarget + `","_csrf":"` + esc(csrfToken) + `"}'`)
		buf.WriteString(` hx-target="#builder-canvas" hx-swap="outerHTML">`)
		buf.WriteString(`<span class="palette-icon" data-icon="` + esc(def.Icon) + `"></span>`)
		buf.WriteString(esc(def.Label))
		buf.WriteString(`</button>`)
	}
	buf.WriteString(`</aside>`)
}

func writeCanvas(buf *bytes.Buffer, postID string, elements []block.Element, csrfToken string) {
	buf.WriteString(`<div id="builder-canvas" class="builder-canvas" data-target="` + block.CanvasTarget + `">`)
	if len(elements) == 0 {
		buf.WriteString(`<p class="canvas-empty">Drop blocks here.</p>`)
	}
	for _, el := range elements {
		writeElementCard(buf, postID, el, csrfToken)
	}
	buf.WriteString(`</div>`)
}

func writeElementCard(buf *bytes.Buffer, postID string, el block.Element, csrfToken string) {
	def, known := block.Lookup(el.Type)
	label := string(el.Type)
	if known {
		label = def.Label
	}
	id := esc(el.ID)
	dragURL := "/admin/post/" + PathEscape(postID) + "/builder/drag/"

	buf.WriteString(`<div class="builder-element" id="element-` + id + `" draggable="true" data-id="` + id + `">`)
	buf.WriteString(`<header class="element-header">`)
	buf.WriteString(`<span class="element-grip" title="Drag to reorder">&#10303;</span>`)
	buf.WriteString(`<span class="element-label">` + esc(label) + `</span>`)
	buf.WriteString(`<button type="button" class="element-remove" title="Remove"`)
	buf.WriteString(` hx-post="` + esc(dragURL) + `"`)
	buf.WriteString(` hx-vals='{"source":"` + id + `","target":"` + block.TrashTarget + `","_csrf":"` + esc(csrfToken) + `"}'`)
	buf.WriteString(` hx-target="#builder-canvas" hx-swap="outerHTML">&times;</button>`)
	buf.WriteString(`</header>`)

	if !known {
		// Unknown variants from a newer schema stay untouched and unsaved
		// edits cannot corrupt them.
		buf.WriteString(`<p class="element-unknown">Unknown block type.</p></div>`)
		return
	}

	buf.WriteString(`<form hx-post="/admin/post/` + PathEscape(postID) + `/builder/element/` + PathEscape(el.ID) + `/"`)
	buf.WriteString(` hx-target="#element-` + id + `" hx-swap="outerHTML">`)
	writeCsrf(buf, csrfToken)
	block.RenderHTML(buf, el, block.ModeEdit)
	buf.WriteString(`<button type="submit" class="element-apply">Apply</button>`)
	buf.WriteString(`</form></div>`)
}

// writeDragScript wires native HTML5 drag events to the drag endpoint.
// Sources are palette items (data-source) and canvas members (data-id);
// targets are members, the canvas and the trash (data-target).
func writeDragScript(buf *bytes.Buffer, postID, csrfToken string) {
	dragURL := "/admin/post/" + PathEscape(postID) + "/builder/drag/"
	buf.WriteString(`<script>(function(){`)
	buf.WriteString(`var src=null;`)
	buf.WriteString(`document.addEventListener('dragstart',function(e){`)
	buf.WriteString(`var el=e.target.closest('[data-source],[data-id]');if(!el)return;`)
	buf.WriteString(`src=el.dataset.source||el.dataset.id;});`)
	buf.WriteString(`document.addEventListener('dragover',function(e){if(src)e.preventDefault();});`)
	buf.WriteString(`document.addEventListener('drop',function(e){`)
	buf.WriteString(`if(!src)return;e.preventDefault();`)
	buf.WriteString(`var t=e.target.closest('[data-id],[data-target]');`)
	buf.WriteString(`var target=t?(t.dataset.id||t.dataset.target):'';`)
	buf.WriteString(`htmx.ajax('POST','` + dragURL + `',{target:'#builder-canvas',swap:'outerHTML',`)
	buf.WriteString(`values:{source:src,target:target,_csrf:'` + esc(csrfToken) + `'}});`)
	buf.WriteString(`src=null;});`)
	buf.WriteString(`document.addEventListener('dragend',function(){src=null;});`)
	buf.WriteString(`})();</script>`)
}
