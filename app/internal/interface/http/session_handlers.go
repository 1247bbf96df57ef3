package http

import "net/http"

func (a *API) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	token, session, err := a.sessionSvc.Issue()
	if err != nil {
		handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"token":      token,
		"session_id": session.ID,
		"expires_at": session.ExpiresAt,
	})
}

func (a *API) handleEndSession(w http.ResponseWriter, r *http.Request) {
	session := getSession(r.Context())
	if session == nil {
		respondError(w, http.StatusUnauthorized, errUnauthenticated)
		return
	}

	if err := a.carts.Discard(r.Context(), session.ID); err != nil {
		handleDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
