// Package server exposes editor sessions and published sites over HTTP.
//
// # Editor API
//
// Every website being edited is backed by one [editor.Session], created on
// first access and kept in memory until the website is deleted. Requests
// map one to one onto session operations:
//
//	GET    /api/components                      registered component types (?q= search)
//	GET    /api/templates                       template catalogue
//	GET    /api/websites                        stored websites
//	POST   /api/websites                        create (optionally from a template)
//	GET    /api/websites/{id}                   website record
//	DELETE /api/websites/{id}                   delete
//	GET    /api/websites/{id}/state             dirty flag, history and selection
//	GET    /api/websites/{id}/render            page HTML (?mode=edit|preview)
//	POST   /api/websites/{id}/components        insert {type, at}
//	PATCH  /api/websites/{id}/components/{cid}  merge fields
//	PUT    /api/websites/{id}/components/{cid}  replace record
//	DELETE /api/websites/{id}/components/{cid}  remove
//	POST   /api/websites/{id}/components/{cid}/duplicate
//	POST   /api/websites/{id}/components/{cid}/image   raw image body (?field=)
//	POST   /api/websites/{id}/move              {from, to}
//	PUT    /api/websites/{id}/order             {ids}
//	POST   /api/websites/{id}/controls          {control, value}
//	PUT    /api/websites/{id}/selection         {selectedId, hoveredId}
//	PATCH  /api/websites/{id}/palette           palette fields
//	POST   /api/websites/{id}/palette/{preset}  apply preset
//	PUT    /api/websites/{id}/seo               SEO settings
//	PATCH  /api/websites/{id}/meta              {title, slug, status}
//	POST   /api/websites/{id}/undo | /redo
//	POST   /api/websites/{id}/save
//	POST   /api/websites/{id}/publish
//
// Errors are JSON objects {"error": {"code", "message", "field"}} with the
// HTTP status derived from the error code.
//
// # Published sites
//
//	GET /sites/{slug}
//
// serves the last published page for slug from the cache, falling back to
// rendering the stored website when it is published but not cached.
package server
