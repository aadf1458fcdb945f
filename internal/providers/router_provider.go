package providers

import (
	"net/http"
	"sort"
	"strings"

	"fittrack/internal/structures"
)

type RouterProviderInterface interface {
	Get(url string, handler http.Handler)
	Post(url string, handler http.Handler)
	GetRoutes() []structures.Route
}

// RouterProvider collects handlers per URL. Registering a second method on the
// same URL extends the existing route instead of adding a duplicate pattern.
type RouterProvider struct {
	order  []string
	routes map[string]methodRouter
}

func (rp *RouterProvider) Get(url string, handler http.Handler) {
	rp.handle(http.MethodGet, url, handler)
}

func (rp *RouterProvider) Post(url string, handler http.Handler) {
	rp.handle(http.MethodPost, url, handler)
}

func (rp *RouterProvider) handle(method, url string, handler http.Handler) {
	mr, ok := rp.routes[url]
	if !ok {
		mr = methodRouter{}
		rp.routes[url] = mr
		rp.order = append(rp.order, url)
	}
	mr[method] = handler
}

func (rp *RouterProvider) GetRoutes() []structures.Route {
	routes := make([]structures.Route, 0, len(rp.order))
	for _, url := range rp.order {
		routes = append(routes, structures.Route{
			Url:     url,
			Handler: rp.routes[url],
		})
	}
	return routes
}

func NewRouterProvider() RouterProviderInterface {
	return &RouterProvider{routes: make(map[string]methodRouter)}
}

// methodRouter dispatches on the request method and answers 405 with an Allow
// header for anything unregistered.
type methodRouter map[string]http.Handler

func (mr methodRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h, ok := mr[r.Method]; ok {
		h.ServeHTTP(w, r)
		return
	}
	allowed := make([]string, 0, len(mr))
	for m := range mr {
		allowed = append(allowed, m)
	}
	sort.Strings(allowed)
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
}
