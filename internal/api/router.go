package api

import (
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// serviceMux dispatches requests for one service by full procedure path.
type serviceMux map[string]http.Handler

func (m serviceMux) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := m[r.URL.Path]; ok {
		h.ServeHTTP(w, r)
		return
	}
	http.NotFound(w, r)
}

func servicePath(name string) string {
	return "/" + name + "/"
}

func procedureURL(baseURL, procedure string) string {
	return strings.TrimRight(baseURL, "/") + procedure
}

func newClient[Req, Res any](httpClient connect.HTTPClient, baseURL, procedure string, opts []connect.ClientOption) *connect.Client[Req, Res] {
	return connect.NewClient[Req, Res](httpClient, procedureURL(baseURL, procedure), opts...)
}
