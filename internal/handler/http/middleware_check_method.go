// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import "net/http"

// methodNotAllowedAsNotFound is registered as the router's MethodNotAllowed
// handler. Chi would answer 405 when the path exists but the method does not;
// answering 404 instead hides which methods a route supports.
func methodNotAllowedAsNotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}
