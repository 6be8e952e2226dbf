// Package sdk provides the MyanmarCares Go SDK for the content API behind the
// donation and volunteering marketplace.
package sdk

import (
	"net/http"

	"github.com/myanmarcares/myanmarcares/sdk/go/auth"
	"github.com/myanmarcares/myanmarcares/sdk/go/headers"
)

type authStrategy interface {
	Apply(req *http.Request)
}

type bearerAuth struct {
	token string
}

func (b bearerAuth) Apply(req *http.Request) {
	if b.token == "" {
		return
	}
	req.Header.Set(headers.Authorization, "Bearer "+b.token)
}

// snapshotAuth reads the token source once. The returned strategy keeps that
// value even if the source is later cleared or replaced.
func snapshotAuth(src auth.TokenSource) authStrategy {
	if src == nil {
		return bearerAuth{}
	}
	return bearerAuth{token: src.Token()}
}
