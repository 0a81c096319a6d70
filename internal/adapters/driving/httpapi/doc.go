// Package httpapi exposes the translation pipeline over HTTP.
//
// Routes:
//   - GET  /health          reachability of the index and the model
//   - POST /api/translate   free text to structured query
//   - POST /api/search      free text to structured query, executed
//
// Model-backed routes answer with a {"data": ..., "error": ...} envelope in
// which exactly one side is null.
package httpapi
