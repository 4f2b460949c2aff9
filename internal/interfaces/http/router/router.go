// Package router assembles the versioned API from domain route groups.
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mampirjaya/backoffice/internal/interfaces/http/handler"
)

// RouteRegistrar registers a set of routes on a parent group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts registrars under /api/<version>
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion sets the version segment, "v1" by default
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a Router on engine
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues registrars for Setup
func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// Setup mounts every queued registrar
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup is a prefix with its own middleware, routes and nested groups
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []routeDefinition
	subgroups  []*DomainGroup
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a group mounted at prefix
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to every route of the group
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// Handle registers a route for an arbitrary method
func (dg *DomainGroup) Handle(method, path string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

// GET registers a GET route
func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodGet, path, handlers...)
}

// POST registers a POST route
func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPost, path, handlers...)
}

// PUT registers a PUT route
func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPut, path, handlers...)
}

// PATCH registers a PATCH route
func (dg *DomainGroup) PATCH(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodPatch, path, handlers...)
}

// DELETE registers a DELETE route
func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle(http.MethodDelete, path, handlers...)
}

// Group creates a nested group
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	sub := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, sub)
	return sub
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix, dg.middleware...)
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
	for _, sub := range dg.subgroups {
		sub.RegisterRoutes(group)
	}
}

// Name returns the group name
func (dg *DomainGroup) Name() string {
	return dg.name
}

// Prefix returns the group prefix
func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// Handlers are the endpoint sets mounted by RegisterAPI
type Handlers struct {
	Sales       *handler.SaleHandler
	Purchases   *handler.PurchaseHandler
	SalesOrders *handler.SalesOrderHandler
	Products    *handler.ProductHandler
	Partners    *handler.PartnerHandler
	System      *handler.SystemHandler
}

// RegisterAPI registers the back-office routes. idempotency guards the
// document-creating POSTs; nil disables it.
func RegisterAPI(r *Router, h Handlers, idempotency gin.HandlerFunc) {
	guard := func(next gin.HandlerFunc) []gin.HandlerFunc {
		if idempotency == nil {
			return []gin.HandlerFunc{next}
		}
		return []gin.HandlerFunc{idempotency, next}
	}

	sales := NewDomainGroup("sales", "/sales")
	sales.POST("", guard(h.Sales.Create)...)
	sales.GET("", h.Sales.List)
	sales.GET("/:id", h.Sales.Get)
	sales.PUT("/:id", h.Sales.Update)
	sales.DELETE("/:id", h.Sales.Delete)

	purchases := NewDomainGroup("purchases", "/purchases")
	purchases.POST("", guard(h.Purchases.Create)...)
	purchases.GET("", h.Purchases.List)
	purchases.GET("/:id", h.Purchases.Get)
	purchases.PUT("/:id", h.Purchases.Update)
	purchases.DELETE("/:id", h.Purchases.Delete)

	salesOrders := NewDomainGroup("sales-orders", "/sales-orders")
	salesOrders.POST("", guard(h.SalesOrders.Create)...)
	salesOrders.GET("", h.SalesOrders.List)
	salesOrders.GET("/:id", h.SalesOrders.Get)
	salesOrders.PUT("/:id", h.SalesOrders.Update)
	salesOrders.DELETE("/:id", h.SalesOrders.Delete)
	salesOrders.PATCH("/:id/status", h.SalesOrders.ChangeStatus)
	salesOrders.POST("/:id/invoice", h.SalesOrders.Invoice)

	products := NewDomainGroup("products", "/products")
	products.POST("", h.Products.Create)
	products.GET("", h.Products.List)
	products.GET("/:id", h.Products.GetByID)

	customers := NewDomainGroup("customers", "/customers")
	customers.POST("", h.Partners.CreateCustomer)
	customers.GET("", h.Partners.ListCustomers)
	customers.GET("/:id", h.Partners.GetCustomer)

	suppliers := NewDomainGroup("suppliers", "/suppliers")
	suppliers.POST("", h.Partners.CreateSupplier)
	suppliers.GET("", h.Partners.ListSuppliers)
	suppliers.GET("/:id", h.Partners.GetSupplier)

	system := NewDomainGroup("system", "")
	system.GET("/health", h.System.Health)
	system.GET("/system/info", h.System.GetSystemInfo)

	r.Register(sales, purchases, salesOrders, products, customers, suppliers, system)
}
