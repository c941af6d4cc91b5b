package handlers

import (
	"net"
	"net/http"

	apierrors "github.com/pribylovaa/go-portfolio-showcase/internal/errors"
	"github.com/pribylovaa/go-portfolio-showcase/internal/models"
)

func (h *Handlers) SubmitContact(w http.ResponseWriter, r *http.Request) {
	var in models.ContactInput
	if err := decodeStrict(w, r, &in); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	in.RemoteAddr = clientIP(r)

	c, err := h.Service.SubmitContact(r.Context(), in)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, models.ContactReceiptFrom(c))
}

// clientIP — хост из RemoteAddr; порт для лимита не нужен.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
