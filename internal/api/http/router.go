package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kryx404/gohealth/internal/api/http/handlers"
	"github.com/Kryx404/gohealth/internal/auth"
)

// RouteConfig carries everything RegisterRoutes needs to wire the app.
type RouteConfig struct {
	Guard      *auth.RouteGuard
	Auth       *auth.Middleware
	Health     *handlers.HealthHandler
	AuthH      *handlers.AuthHandler
	Pages      *handlers.PagesHandler
	Products   *handlers.ProductsHandler
	Categories *handlers.CategoriesHandler
	Orders     *handlers.OrdersHandler
	Users      *handlers.UsersHandler
	Dashboard  *handlers.DashboardHandler
	Wilayah    *handlers.WilayahHandler
	Mail       *handlers.MailHandler
}

// RegisterRoutes wires page routes behind the route guard and the JSON API
// under /api. Page routes mirror the storefront navigation; the guard decides
// per request whether to serve or redirect.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Use(cfg.Guard.Handle)

	registerPageRoutes(app, cfg)
	registerAPIRoutes(app, cfg)
}

func registerPageRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/", cfg.Pages.Home)
	app.Get("/shop", cfg.Pages.Shop)
	app.Get("/product/:slug", cfg.Pages.Product)
	app.Get("/cart", cfg.Pages.Cart)
	app.Get("/orders", cfg.Pages.Orders)
	app.Get("/pricing", cfg.Pages.Pricing)
	app.Get("/login", cfg.Pages.Login)
	app.Get("/admin", cfg.Pages.Admin)
	app.Get("/admin/*", cfg.Pages.Admin)
}

func registerAPIRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.Post("/login", cfg.AuthH.Login)
	authGroup.Post("/register", cfg.AuthH.Register)
	authGroup.Post("/logout", cfg.AuthH.Logout)
	authGroup.Get("/session", cfg.AuthH.Session)

	// Public catalog reads. best-selling is registered before :slug so the
	// literal segment is not captured as a slug.
	api.Get("/products", cfg.Products.List)
	api.Get("/products/best-selling", cfg.Products.BestSelling)
	api.Get("/products/:slug", cfg.Products.Get)
	api.Get("/categories", cfg.Categories.List)

	api.Get("/wilayah", cfg.Wilayah.Lookup)
	api.Post("/send-question", cfg.Mail.SendQuestion)

	authed := api.Group("", cfg.Auth.Handle)
	authed.Get("/profile", auth.RequireUser(), cfg.Users.Profile)
	authed.Patch("/profile", auth.RequireUser(), cfg.Users.UpdateProfile)
	authed.Post("/orders", auth.RequireUser(), cfg.Orders.Create)
	authed.Get("/orders", auth.RequireUser(), cfg.Orders.ListOwn)
	authed.Get("/orders/all", auth.RequireAdmin(), cfg.Orders.ListAll)
	authed.Patch("/orders/:id", auth.RequireAdmin(), cfg.Orders.UpdateStatus)
	authed.Post("/send-invoice", auth.RequireUser(), cfg.Mail.SendInvoice)

	admin := api.Group("/admin", cfg.Auth.Handle, auth.RequireAdmin())
	admin.Get("/products/:id", cfg.Products.AdminGet)
	admin.Post("/products", cfg.Products.Create)
	admin.Put("/products/:id", cfg.Products.Update)
	admin.Delete("/products/:id", cfg.Products.Delete)
	admin.Post("/categories", cfg.Categories.Create)
	admin.Put("/categories/:id", cfg.Categories.Rename)
	admin.Delete("/categories/:id", cfg.Categories.Delete)
	admin.Get("/users", cfg.Users.List)
	admin.Patch("/users/:id/role", cfg.Users.ChangeRole)
	admin.Patch("/users/:id/active", cfg.Users.SetActive)
	admin.Get("/dashboard", cfg.Dashboard.Summary)
}
