package router

import (
	"fmt"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

// DefaultBasePath prefixes every API route
const DefaultBasePath = "/api"

// RouteInfo describes one registered endpoint with its full path
type RouteInfo struct {
	Group  string
	Method string
	Path   string
}

// RouteRegistrar mounts a set of routes and can list them beforehand
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
	Routes(basePath string) []RouteInfo
}

// Router collects registrars and mounts them under one base path
type Router struct {
	engine     *gin.Engine
	basePath   string
	middleware []gin.HandlerFunc
	registrars []RouteRegistrar
}

type RouterOption func(*Router)

// WithBasePath overrides the API prefix
func WithBasePath(p string) RouterOption {
	return func(r *Router) { r.basePath = p }
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, basePath: DefaultBasePath}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use adds middleware applied to every API route
func (r *Router) Use(middleware ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Routes lists every endpoint the registrars will mount
func (r *Router) Routes() []RouteInfo {
	var routes []RouteInfo
	for _, registrar := range r.registrars {
		routes = append(routes, registrar.Routes(r.basePath)...)
	}
	return routes
}

// Setup mounts all registrars on the engine. Route tables that gin would
// reject with a panic (a repeated route, or two wildcard names at the same
// position) are reported as an error instead and nothing is mounted.
func (r *Router) Setup() error {
	if err := checkRoutes(r.Routes()); err != nil {
		return err
	}
	api := r.engine.Group(r.basePath, r.middleware...)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
	return nil
}

func checkRoutes(routes []RouteInfo) error {
	seen := make(map[string]RouteInfo, len(routes))
	wildcards := make(map[string]string)

	for _, rt := range routes {
		segments := strings.Split(strings.Trim(rt.Path, "/"), "/")
		shape := make([]string, len(segments))

		for i, seg := range segments {
			if seg == "" || (seg[0] != ':' && seg[0] != '*') {
				shape[i] = seg
				continue
			}
			shape[i] = seg[:1]
			at := rt.Method + " /" + strings.Join(shape[:i+1], "/")
			if prev, ok := wildcards[at]; ok && prev != seg {
				return fmt.Errorf("route %s %s: wildcard %s conflicts with %s", rt.Method, rt.Path, seg, prev)
			}
			wildcards[at] = seg
		}

		key := rt.Method + " /" + strings.Join(shape, "/")
		if prev, ok := seen[key]; ok {
			return fmt.Errorf("route %s %s registered by both %q and %q", rt.Method, rt.Path, prev.Group, rt.Group)
		}
		seen[key] = rt
	}
	return nil
}

// DomainGroup collects the routes of one area under a shared prefix
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware run before every route of the group and its subgroups
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) handle(method, p string, handlers []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: p, handlers: handlers})
	return dg
}

func (dg *DomainGroup) GET(p string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodGet, p, handlers)
}

func (dg *DomainGroup) POST(p string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPost, p, handlers)
}

func (dg *DomainGroup) PUT(p string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodPut, p, handlers)
}

func (dg *DomainGroup) DELETE(p string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.handle(http.MethodDelete, p, handlers)
}

// Group nests a sub-group that inherits this group's prefix and middleware
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	sub := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, sub)
	return sub
}

func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix, dg.middleware...)
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
	for _, sub := range dg.subgroups {
		sub.RegisterRoutes(group)
	}
}

func (dg *DomainGroup) Routes(basePath string) []RouteInfo {
	prefix := joinRoutePath(basePath, dg.prefix)
	routes := make([]RouteInfo, 0, len(dg.routes))
	for _, route := range dg.routes {
		routes = append(routes, RouteInfo{
			Group:  dg.name,
			Method: route.method,
			Path:   joinRoutePath(prefix, route.path),
		})
	}
	for _, sub := range dg.subgroups {
		routes = append(routes, sub.Routes(prefix)...)
	}
	return routes
}

func (dg *DomainGroup) Name() string   { return dg.name }
func (dg *DomainGroup) Prefix() string { return dg.prefix }

// joinRoutePath joins like gin does, keeping no trailing slash for "" paths
func joinRoutePath(base, rel string) string {
	if rel == "" {
		return base
	}
	joined := path.Join(base, rel)
	if strings.HasSuffix(rel, "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	return joined
}
